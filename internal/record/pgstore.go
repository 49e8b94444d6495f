package record

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/promptweaver/api/internal/models"
)

// PgStore persists prompt records in Postgres. Row-level ownership is
// enforced by filtering every statement on user_id.
type PgStore struct {
	db *pgxpool.Pool
}

func NewPgStore(db *pgxpool.Pool) *PgStore {
	return &PgStore{db: db}
}

const recordColumns = `id, user_id, original_text, level, custom_styles,
	refined_text_1, refined_rating_1, refined_text_2, refined_rating_2,
	refined_text_3, refined_rating_3, is_favorite, is_temporary, expires_at, created_at`

func (s *PgStore) Insert(ctx context.Context, rec *models.PromptRecord) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO prompts (id, user_id, original_text, level, custom_styles,
		    refined_text_1, refined_rating_1, refined_text_2, refined_rating_2,
		    refined_text_3, refined_rating_3, is_favorite, is_temporary, expires_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		rec.ID, rec.UserID, rec.OriginalText, rec.Level, rec.CustomStyles,
		rec.RefinedText1, rec.RefinedRating1, rec.RefinedText2, rec.RefinedRating2,
		rec.RefinedText3, rec.RefinedRating3, rec.IsFavorite, rec.IsTemporary, rec.ExpiresAt, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert prompt record: %w", err)
	}
	return nil
}

func (s *PgStore) UpdateLifecycle(ctx context.Context, rec *models.PromptRecord) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE prompts SET is_favorite = $1, is_temporary = $2, expires_at = $3
		 WHERE id = $4 AND user_id = $5`,
		rec.IsFavorite, rec.IsTemporary, rec.ExpiresAt, rec.ID, rec.UserID,
	)
	if err != nil {
		return fmt.Errorf("update prompt record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PgStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	_, err := s.db.Exec(ctx,
		"DELETE FROM prompts WHERE id = $1 AND user_id = $2", id, userID,
	)
	if err != nil {
		return fmt.Errorf("delete prompt record: %w", err)
	}
	return nil
}

func (s *PgStore) DeleteMany(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.db.Exec(ctx,
		"DELETE FROM prompts WHERE user_id = $1 AND id = ANY($2)", userID, ids,
	)
	if err != nil {
		return fmt.Errorf("delete expired prompt records: %w", err)
	}
	return nil
}

func (s *PgStore) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.PromptRecord, error) {
	var rec models.PromptRecord
	err := s.db.QueryRow(ctx,
		"SELECT "+recordColumns+" FROM prompts WHERE id = $1 AND user_id = $2", id, userID,
	).Scan(
		&rec.ID, &rec.UserID, &rec.OriginalText, &rec.Level, &rec.CustomStyles,
		&rec.RefinedText1, &rec.RefinedRating1, &rec.RefinedText2, &rec.RefinedRating2,
		&rec.RefinedText3, &rec.RefinedRating3, &rec.IsFavorite, &rec.IsTemporary, &rec.ExpiresAt, &rec.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get prompt record: %w", err)
	}
	return &rec, nil
}

func (s *PgStore) QueryByUser(ctx context.Context, userID uuid.UUID) ([]models.PromptRecord, error) {
	rows, err := s.db.Query(ctx,
		"SELECT "+recordColumns+" FROM prompts WHERE user_id = $1 ORDER BY created_at DESC", userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query prompt records: %w", err)
	}
	defer rows.Close()

	var records []models.PromptRecord
	for rows.Next() {
		var rec models.PromptRecord
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.OriginalText, &rec.Level, &rec.CustomStyles,
			&rec.RefinedText1, &rec.RefinedRating1, &rec.RefinedText2, &rec.RefinedRating2,
			&rec.RefinedText3, &rec.RefinedRating3, &rec.IsFavorite, &rec.IsTemporary, &rec.ExpiresAt, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan prompt record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
