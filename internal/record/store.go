package record

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/promptweaver/api/internal/models"
)

// ErrNotFound is returned when a record does not exist or belongs to a
// different user.
var ErrNotFound = errors.New("prompt record not found")

// Store is the persistence contract for prompt records. The lifecycle
// manager never assumes a specific engine, only these CRUD primitives plus
// owner filtering. Deleting an absent record is a no-op, which keeps the
// expiry sweep idempotent across concurrent sessions.
type Store interface {
	Insert(ctx context.Context, rec *models.PromptRecord) error
	UpdateLifecycle(ctx context.Context, rec *models.PromptRecord) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	DeleteMany(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.PromptRecord, error)
	QueryByUser(ctx context.Context, userID uuid.UUID) ([]models.PromptRecord, error)
}
