package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"

	"github.com/lcampos/vocadeck/internal/logger"
	"github.com/lcampos/vocadeck/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type flashcardRepository struct {
	db *sql.DB
}

// NewFlashcardRepository creates a new FlashcardRepository implementation
func NewFlashcardRepository(db *sql.DB) repository.FlashcardRepository {
	return &flashcardRepository{db: db}
}

func (r *flashcardRepository) Put(ctx context.Context, id string, data []byte) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("putting flashcard: id=%s, bytes=%d", id, len(data))

	// INSERT OR REPLACE keeps the namespace last-write-wins: no version
	// check, the newest write for an id simply overwrites.
	query, args, err := sqlBuilder.
		Insert("flashcards").
		Options("OR REPLACE").
		Columns("id", "data", "updated_at").
		Values(id, string(data), squirrel.Expr("CURRENT_TIMESTAMP")).
		ToSql()
	if err != nil {
		log.Error("failed to build put query: %v", err)
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to put flashcard: %v", err)
		return err
	}
	log.Debug("flashcard stored: id=%s", id)
	return nil
}

func (r *flashcardRepository) List(ctx context.Context) ([][]byte, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("listing flashcards")

	query, args, err := sqlBuilder.
		Select("data").
		From("flashcards").
		ToSql()
	if err != nil {
		log.Error("failed to build list query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query flashcards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var values [][]byte
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			log.Error("failed to scan flashcard row: %v", err)
			return nil, err
		}
		values = append(values, data)
	}
	log.Debug("found %d stored flashcards", len(values))
	return values, rows.Err()
}

func (r *flashcardRepository) Delete(ctx context.Context, id string) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("deleting flashcard: id=%s", id)

	query, args, err := sqlBuilder.
		Delete("flashcards").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		log.Error("failed to build delete query: %v", err)
		return false, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to delete flashcard: %v", err)
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		log.Error("failed to read affected rows: %v", err)
		return false, err
	}
	log.Debug("flashcard delete: id=%s, existed=%t", id, affected > 0)
	return affected > 0, nil
}
