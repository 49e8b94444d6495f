package record

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/promptweaver/api/internal/models"
)

// Lifecycle errors.
var (
	// ErrCannotRevertFavorite is returned when unsaving a favorited record.
	// A favorite is permanently pinned and can never return to temporary.
	ErrCannotRevertFavorite = errors.New("a favorited prompt cannot be reverted to temporary")

	// ErrInvariantViolation is returned when a write would leave a record
	// in an inconsistent favorite/temporary state. Violating writes are
	// rejected rather than silently coerced.
	ErrInvariantViolation = errors.New("prompt record lifecycle invariant violated")
)

// DefaultRetentionDays is how long a temporary record lives before the
// expiry sweep removes it.
const DefaultRetentionDays = 10

// Service manages the lifecycle of prompt records: temporary on creation,
// promoted to permanent by saving, pinned by favoriting, and lazily swept
// once expired. Concurrent sessions for the same user are tolerated with
// last-write-wins semantics; no cross-device locking is attempted.
type Service struct {
	store     Store
	retention time.Duration
	now       func() time.Time
}

func NewService(store Store, retentionDays int) *Service {
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	return &Service{
		store:     store,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		now:       time.Now,
	}
}

// CreateParams describes a freshly generated refinement to persist.
type CreateParams struct {
	UserID       uuid.UUID
	OriginalText string
	Level        string
	CustomStyles string
	Suggestions  []models.Suggestion
}

// Create persists a new temporary record expiring one retention window from
// now. This is the initial state of every record.
func (s *Service) Create(ctx context.Context, p CreateParams) (*models.PromptRecord, error) {
	now := s.now()
	expires := now.Add(s.retention)

	rec := &models.PromptRecord{
		ID:           uuid.New(),
		UserID:       p.UserID,
		OriginalText: p.OriginalText,
		Level:        p.Level,
		CustomStyles: p.CustomStyles,
		IsFavorite:   false,
		IsTemporary:  true,
		ExpiresAt:    &expires,
		CreatedAt:    now,
	}
	rec.SetSuggestions(p.Suggestions)

	if err := checkInvariants(rec); err != nil {
		return nil, err
	}
	if err := s.store.Insert(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Promote makes a temporary record permanent and clears its expiry. It is a
// no-op on records that are already permanent or favorited.
func (s *Service) Promote(ctx context.Context, userID, id uuid.UUID) (*models.PromptRecord, error) {
	rec, err := s.store.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !rec.IsTemporary {
		return rec, nil
	}

	rec.IsTemporary = false
	rec.ExpiresAt = nil
	return s.commit(ctx, rec)
}

// Revert returns a permanent record to temporary with a fresh expiry.
// Favorited records can never be reverted.
func (s *Service) Revert(ctx context.Context, userID, id uuid.UUID) (*models.PromptRecord, error) {
	rec, err := s.store.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if rec.IsFavorite {
		return nil, ErrCannotRevertFavorite
	}
	if rec.IsTemporary {
		return rec, nil
	}

	expires := s.now().Add(s.retention)
	rec.IsTemporary = true
	rec.ExpiresAt = &expires
	return s.commit(ctx, rec)
}

// Favorite pins a record: the favorite flag is set and the promote side
// effects (permanent, no expiry) are applied atomically with it.
func (s *Service) Favorite(ctx context.Context, userID, id uuid.UUID) (*models.PromptRecord, error) {
	rec, err := s.store.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	rec.IsFavorite = true
	rec.IsTemporary = false
	rec.ExpiresAt = nil
	return s.commit(ctx, rec)
}

// Unfavorite clears the favorite flag. The record stays permanent; only an
// explicit Revert can make a non-favorite temporary again.
func (s *Service) Unfavorite(ctx context.Context, userID, id uuid.UUID) (*models.PromptRecord, error) {
	rec, err := s.store.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	rec.IsFavorite = false
	return s.commit(ctx, rec)
}

// Delete removes a record in any state. Deleting an already-deleted record
// is a no-op.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.store.Delete(ctx, userID, id)
}

// List returns the user's live records, sweeping expired temporaries first.
// The sweep is a lazy garbage-collection pass on the read path: expired
// records are deleted before the remaining set is returned, and running it
// concurrently from multiple sessions is safe because the underlying
// deletes are idempotent.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]models.PromptRecord, error) {
	records, err := s.store.QueryByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var expired []uuid.UUID
	live := records[:0]
	for _, rec := range records {
		if rec.Expired(now) {
			expired = append(expired, rec.ID)
			continue
		}
		live = append(live, rec)
	}

	if len(expired) > 0 {
		if err := s.store.DeleteMany(ctx, userID, expired); err != nil {
			return nil, fmt.Errorf("sweep expired records: %w", err)
		}
	}

	return live, nil
}

// commit re-checks the favorite/temporary invariants before writing.
func (s *Service) commit(ctx context.Context, rec *models.PromptRecord) (*models.PromptRecord, error) {
	if err := checkInvariants(rec); err != nil {
		return nil, err
	}
	if err := s.store.UpdateLifecycle(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func checkInvariants(rec *models.PromptRecord) error {
	if rec.IsFavorite && rec.IsTemporary {
		return fmt.Errorf("%w: favorite records must be permanent", ErrInvariantViolation)
	}
	if !rec.IsTemporary && rec.ExpiresAt != nil {
		return fmt.Errorf("%w: permanent records must not expire", ErrInvariantViolation)
	}
	if rec.IsTemporary && rec.ExpiresAt == nil {
		return fmt.Errorf("%w: temporary records must carry an expiry", ErrInvariantViolation)
	}
	return nil
}
