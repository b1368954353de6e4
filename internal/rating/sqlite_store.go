package rating

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tobihoff/anirate/pkg/models"
)

// SQLiteStore persists ratings in the `ratings` table. Every Save and
// DeleteByID runs in its own transaction; the categories slice is stored as a
// JSON text column.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an already-opened database handle. The handle's
// lifecycle (open at process start, close at shutdown) belongs to the caller.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Save(ctx context.Context, r models.AnimeRating, userID int) (models.AnimeRating, error) {
	if r.ID == "" {
		return models.AnimeRating{}, newStorageError("save", errMissingID)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.AnimeRating{}, newStorageError("save", err)
	}
	defer tx.Rollback()

	var priorCreated string
	var prior *models.AnimeRating
	err = tx.QueryRowContext(ctx,
		`SELECT created_at FROM ratings WHERE id = ? AND user_id = ?`,
		r.ID, userID,
	).Scan(&priorCreated)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return models.AnimeRating{}, newStorageError("save", err)
	default:
		created, perr := time.Parse(time.RFC3339Nano, priorCreated)
		if perr != nil {
			return models.AnimeRating{}, newStorageError("save", fmt.Errorf("parse created_at: %w", perr))
		}
		prior = &models.AnimeRating{CreatedAt: created}
	}

	saved, err := normalizeSave(r, prior)
	if err != nil {
		return models.AnimeRating{}, err
	}

	categoriesJSON, err := json.Marshal(saved.Categories)
	if err != nil {
		return models.AnimeRating{}, newStorageError("save", fmt.Errorf("serialize categories: %w", err))
	}

	query := `INSERT INTO ratings (id, user_id, anime_id, anime_title, anime_image, categories, overall_rating, notes, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	          ON CONFLICT(id, user_id) DO UPDATE SET
	              anime_id = excluded.anime_id,
	              anime_title = excluded.anime_title,
	              anime_image = excluded.anime_image,
	              categories = excluded.categories,
	              overall_rating = excluded.overall_rating,
	              notes = excluded.notes,
	              updated_at = excluded.updated_at`

	_, err = tx.ExecContext(ctx, query,
		saved.ID,
		userID,
		saved.AnimeID,
		saved.AnimeTitle,
		saved.AnimeImage,
		string(categoriesJSON),
		saved.OverallRating,
		saved.Notes,
		saved.CreatedAt.Format(time.RFC3339Nano),
		saved.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return models.AnimeRating{}, newStorageError("save", err)
	}

	if err := tx.Commit(); err != nil {
		return models.AnimeRating{}, newStorageError("save", err)
	}
	return saved, nil
}

func (s *SQLiteStore) List(ctx context.Context, userID int) ([]models.AnimeRating, error) {
	query := `SELECT id, anime_id, anime_title, anime_image, categories, overall_rating, notes, created_at, updated_at
	          FROM ratings WHERE user_id = ?`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, newStorageError("list", err)
	}
	defer rows.Close()

	out := make([]models.AnimeRating, 0)
	for rows.Next() {
		var r models.AnimeRating
		var categoriesJSON, createdAt, updatedAt string
		if err := rows.Scan(
			&r.ID,
			&r.AnimeID,
			&r.AnimeTitle,
			&r.AnimeImage,
			&categoriesJSON,
			&r.OverallRating,
			&r.Notes,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, newStorageError("list", err)
		}
		if categoriesJSON != "" {
			if err := json.Unmarshal([]byte(categoriesJSON), &r.Categories); err != nil {
				return nil, newStorageError("list", fmt.Errorf("decode categories for %s: %w", r.ID, err))
			}
		}
		if r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, newStorageError("list", fmt.Errorf("parse created_at for %s: %w", r.ID, err))
		}
		if r.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
			return nil, newStorageError("list", fmt.Errorf("parse updated_at for %s: %w", r.ID, err))
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, newStorageError("list", err)
	}
	return out, nil
}

func (s *SQLiteStore) DeleteByID(ctx context.Context, id string, userID int) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, newStorageError("delete", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM ratings WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, newStorageError("delete", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, newStorageError("delete", err)
	}
	if err := tx.Commit(); err != nil {
		return false, newStorageError("delete", err)
	}
	return affected > 0, nil
}

// Close is a no-op; the database handle belongs to the caller.
func (s *SQLiteStore) Close() error { return nil }
