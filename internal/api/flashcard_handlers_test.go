package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcampos/vocadeck/internal/api"
	"github.com/lcampos/vocadeck/internal/db"
	"github.com/lcampos/vocadeck/internal/models"
	"github.com/lcampos/vocadeck/internal/repository/sqlite"
	"github.com/lcampos/vocadeck/internal/services"
	"github.com/lcampos/vocadeck/internal/session"
	"github.com/lcampos/vocadeck/internal/store"
	"github.com/lcampos/vocadeck/internal/testutil"
)

// newTestServer wires the real stack: sqlite-backed repository, service
// with a pinned clock and deterministic ids, chi routes.
func newTestServer(t *testing.T) (*httptest.Server, *db.DB) {
	t.Helper()

	database := testutil.NewTestDB(t)
	seq := 0
	svc := services.NewFlashcardService(
		sqlite.NewFlashcardRepository(database.DB),
		services.WithClock(func() int64 { return 1_700_000_000_000 }),
		services.WithIDGenerator(func() (string, error) {
			seq++
			return "card-" + itoa(seq), nil
		}),
	)
	srv := httptest.NewServer((&api.Server{FlashcardService: svc}).Routes())
	t.Cleanup(func() {
		srv.Close()
		testutil.MustClose(t, database)
	})
	return srv, database
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

func TestCreateThenList_RoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)
	client := store.New(srv.URL)
	ctx := context.Background()

	draft := models.FlashcardDraft{
		Word:            "petrichor",
		Definition:      "the smell of rain on dry earth",
		ExampleSentence: "Petrichor filled the air.",
	}
	created, err := client.Create(ctx, draft)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 0.0, created.Interval)
	assert.Equal(t, created.CreatedAt, created.DueDate)

	cards, err := client.List(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, draft.Word, cards[0].Word)
	assert.Equal(t, draft.Definition, cards[0].Definition)
	assert.Equal(t, draft.ExampleSentence, cards[0].ExampleSentence)
	assert.Equal(t, created.ID, cards[0].ID)
}

func TestCreate_MissingFieldsRejected(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/flashcards", "application/json",
		strings.NewReader(`{"definition":"orphaned"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Error, "word")
}

func TestCreate_MalformedBodyRejected(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/flashcards", "application/json",
		strings.NewReader(`{broken`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdate_PathBodyIDMismatch(t *testing.T) {
	srv, _ := newTestServer(t)
	ctx := context.Background()
	client := store.New(srv.URL)

	created, err := client.Create(ctx, models.FlashcardDraft{Word: "w", Definition: "d"})
	require.NoError(t, err)

	payload, _ := json.Marshal(models.Flashcard{ID: "someone-else", Word: "w", Definition: "d"})
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/flashcards/"+created.ID, strings.NewReader(string(payload)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdate_FullReplacement(t *testing.T) {
	srv, _ := newTestServer(t)
	ctx := context.Background()
	client := store.New(srv.URL)

	created, err := client.Create(ctx, models.FlashcardDraft{
		Word: "laconic", Definition: "terse", ExampleSentence: "A laconic reply.",
	})
	require.NoError(t, err)

	// Replacement omits the example sentence; the stored copy must too.
	replacement := created
	replacement.ExampleSentence = ""
	replacement.Interval = 1
	replacement.DueDate = created.DueDate + models.MillisPerDay
	replacement.LastReviewedAt = created.DueDate

	updated, err := client.Update(ctx, replacement)
	require.NoError(t, err)
	assert.Equal(t, replacement, updated)

	cards, err := client.List(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, replacement, cards[0], "update is full replacement, not a merge")
}

func TestDelete_IsIdempotent(t *testing.T) {
	srv, _ := newTestServer(t)
	ctx := context.Background()
	client := store.New(srv.URL)

	created, err := client.Create(ctx, models.FlashcardDraft{Word: "w", Definition: "d"})
	require.NoError(t, err)

	require.NoError(t, client.Delete(ctx, created.ID))
	require.NoError(t, client.Delete(ctx, created.ID), "repeated delete of the same id succeeds")

	cards, err := client.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestList_CorruptStoredRecordSkipped(t *testing.T) {
	srv, database := newTestServer(t)
	ctx := context.Background()
	client := store.New(srv.URL)

	_, err := client.Create(ctx, models.FlashcardDraft{Word: "alpha", Definition: "a"})
	require.NoError(t, err)
	_, err = client.Create(ctx, models.FlashcardDraft{Word: "beta", Definition: "b"})
	require.NoError(t, err)

	// Corrupt a record behind the service's back.
	_, err = database.ExecContext(ctx,
		`INSERT INTO flashcards (id, data) VALUES (?, ?)`, "corrupt", `{chopped off`)
	require.NoError(t, err)

	cards, err := client.List(ctx)
	require.NoError(t, err, "one corrupt record must not break the listing")
	assert.Len(t, cards, 2)
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t)

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/api/flashcards", nil)
	req.Header.Set("Origin", "https://anywhere.example")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

// The whole loop: coordinator -> client -> server -> sqlite and back.
func TestSessionAgainstRealServer(t *testing.T) {
	srv, _ := newTestServer(t)
	ctx := context.Background()

	reviewTime := int64(1_700_000_000_000)
	coord := session.New(
		store.New(srv.URL),
		session.WithClock(func() int64 { return reviewTime }),
	)

	require.NoError(t, coord.Add(ctx, models.FlashcardDraft{Word: "first", Definition: "1"}))
	require.NoError(t, coord.Add(ctx, models.FlashcardDraft{Word: "second", Definition: "2"}))
	require.NoError(t, coord.Load(ctx))
	require.Equal(t, 2, coord.Deck().Len())

	current := coord.Deck().Current()
	require.NotNil(t, current)

	require.NoError(t, coord.Review(ctx, current.ID, true))
	reviewed := coord.Deck().Get(current.ID)
	require.NotNil(t, reviewed)
	assert.Equal(t, 1.0, reviewed.Interval)
	assert.Equal(t, reviewTime+models.MillisPerDay, reviewed.DueDate)

	// The store has the reviewed state too.
	require.NoError(t, coord.Load(ctx))
	persisted := coord.Deck().Get(current.ID)
	require.NotNil(t, persisted)
	assert.Equal(t, 1.0, persisted.Interval)

	require.NoError(t, coord.Remove(ctx, current.ID))
	assert.Equal(t, 1, coord.Deck().Len())
}
