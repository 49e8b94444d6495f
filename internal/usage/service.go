package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/promptweaver/api/internal/models"
)

// Service writes refinement usage rows. Called from the background worker,
// never on the request path.
type Service struct {
	db *pgxpool.Pool
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{db: db}
}

type Entry struct {
	UserID       string
	Provider     string
	Model        string
	Level        string
	InputTokens  int
	OutputTokens int
	CostUSD      float64
	LatencyMs    int64
}

func (s *Service) Record(ctx context.Context, e Entry) error {
	var userID *uuid.UUID
	if e.UserID != "" {
		if parsed, err := uuid.Parse(e.UserID); err == nil && parsed != uuid.Nil {
			userID = &parsed
		}
	}

	_, err := s.db.Exec(ctx,
		`INSERT INTO refinement_usage (user_id, provider, model, level, input_tokens, output_tokens, cost_usd, latency_ms)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		userID, e.Provider, e.Model, e.Level, e.InputTokens, e.OutputTokens, e.CostUSD, e.LatencyMs,
	)
	if err != nil {
		return fmt.Errorf("insert usage row: %w", err)
	}
	return nil
}

// Summary aggregates usage for a user since the given time.
func (s *Service) Summary(ctx context.Context, userID uuid.UUID, since time.Time) (*models.RefinementUsage, error) {
	var sum models.RefinementUsage
	err := s.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0), COALESCE(SUM(cost_usd), 0)
		 FROM refinement_usage WHERE user_id = $1 AND created_at >= $2`,
		userID, since,
	).Scan(&sum.InputTokens, &sum.OutputTokens, &sum.CostUSD)
	if err != nil {
		return nil, fmt.Errorf("usage summary: %w", err)
	}
	sum.UserID = &userID
	return &sum, nil
}
