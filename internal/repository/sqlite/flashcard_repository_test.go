package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/lcampos/vocadeck/internal/db"
	"github.com/lcampos/vocadeck/internal/repository"
	"github.com/lcampos/vocadeck/internal/repository/sqlite"
	"github.com/lcampos/vocadeck/internal/testutil"
)

type FlashcardRepositorySuite struct {
	suite.Suite
	db   *db.DB
	repo repository.FlashcardRepository
}

func (s *FlashcardRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewFlashcardRepository(s.db.DB)
}

func (s *FlashcardRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *FlashcardRepositorySuite) TestPutAndList() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Put(ctx, "a", []byte(`{"id":"a","word":"w"}`)))
	s.Require().NoError(s.repo.Put(ctx, "b", []byte(`{"id":"b","word":"x"}`)))

	values, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Len(values, 2)

	seen := map[string]bool{}
	for _, v := range values {
		seen[string(v)] = true
	}
	s.True(seen[`{"id":"a","word":"w"}`])
	s.True(seen[`{"id":"b","word":"x"}`])
}

func (s *FlashcardRepositorySuite) TestPutReplacesLastWriteWins() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Put(ctx, "a", []byte(`{"id":"a","interval":0}`)))
	s.Require().NoError(s.repo.Put(ctx, "a", []byte(`{"id":"a","interval":1}`)))
	s.Require().NoError(s.repo.Put(ctx, "a", []byte(`{"id":"a","interval":2}`)))

	values, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(values, 1, "replacing by id must not grow the namespace")
	s.Equal(`{"id":"a","interval":2}`, string(values[0]))
}

func (s *FlashcardRepositorySuite) TestListEmpty() {
	values, err := s.repo.List(context.Background())
	s.Require().NoError(err)
	s.Empty(values)
}

func (s *FlashcardRepositorySuite) TestDelete() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Put(ctx, "a", []byte(`{"id":"a"}`)))

	existed, err := s.repo.Delete(ctx, "a")
	s.Require().NoError(err)
	s.True(existed)

	values, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Empty(values)
}

func (s *FlashcardRepositorySuite) TestDeleteAbsentID() {
	existed, err := s.repo.Delete(context.Background(), "never-existed")
	s.Require().NoError(err)
	s.False(existed, "deleting an absent id is not an error")
}

func TestFlashcardRepositorySuite(t *testing.T) {
	suite.Run(t, new(FlashcardRepositorySuite))
}
