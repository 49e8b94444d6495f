package record

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/promptweaver/api/internal/models"
)

// memStore is an in-memory Store with the same idempotent-delete semantics
// as the Postgres implementation.
type memStore struct {
	records map[uuid.UUID]models.PromptRecord
}

func newMemStore() *memStore {
	return &memStore{records: make(map[uuid.UUID]models.PromptRecord)}
}

func (m *memStore) Insert(ctx context.Context, rec *models.PromptRecord) error {
	m.records[rec.ID] = *rec
	return nil
}

func (m *memStore) UpdateLifecycle(ctx context.Context, rec *models.PromptRecord) error {
	existing, ok := m.records[rec.ID]
	if !ok || existing.UserID != rec.UserID {
		return ErrNotFound
	}
	existing.IsFavorite = rec.IsFavorite
	existing.IsTemporary = rec.IsTemporary
	existing.ExpiresAt = rec.ExpiresAt
	m.records[rec.ID] = existing
	return nil
}

func (m *memStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if rec, ok := m.records[id]; ok && rec.UserID == userID {
		delete(m.records, id)
	}
	return nil
}

func (m *memStore) DeleteMany(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	for _, id := range ids {
		if rec, ok := m.records[id]; ok && rec.UserID == userID {
			delete(m.records, id)
		}
	}
	return nil
}

func (m *memStore) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.PromptRecord, error) {
	rec, ok := m.records[id]
	if !ok || rec.UserID != userID {
		return nil, ErrNotFound
	}
	out := rec
	return &out, nil
}

func (m *memStore) QueryByUser(ctx context.Context, userID uuid.UUID) ([]models.PromptRecord, error) {
	var out []models.PromptRecord
	for _, rec := range m.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func newTestService(store Store) (*Service, time.Time) {
	svc := NewService(store, 10)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	return svc, now
}

func createRecord(t *testing.T, svc *Service, userID uuid.UUID) *models.PromptRecord {
	t.Helper()
	rec, err := svc.Create(context.Background(), CreateParams{
		UserID:       userID,
		OriginalText: "write a haiku about snow",
		Level:        "Balanced",
		Suggestions: []models.Suggestion{
			{Text: "first", Rating: 8},
			{Text: "second", Rating: 6},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return rec
}

func TestCreateStartsTemporaryWithExpiry(t *testing.T) {
	svc, now := newTestService(newMemStore())
	rec := createRecord(t, svc, uuid.New())

	if !rec.IsTemporary {
		t.Error("new record must be temporary")
	}
	if rec.IsFavorite {
		t.Error("new record must not be a favorite")
	}
	if rec.ExpiresAt == nil {
		t.Fatal("temporary record must carry an expiry")
	}
	want := now.Add(10 * 24 * time.Hour)
	if !rec.ExpiresAt.Equal(want) {
		t.Errorf("expires at %v, want %v", rec.ExpiresAt, want)
	}
	if got := rec.Suggestions(); len(got) != 2 {
		t.Errorf("stored %d suggestions, want 2", len(got))
	}
}

func TestPromoteClearsExpiry(t *testing.T) {
	svc, _ := newTestService(newMemStore())
	userID := uuid.New()
	rec := createRecord(t, svc, userID)

	saved, err := svc.Promote(context.Background(), userID, rec.ID)
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if saved.IsTemporary {
		t.Error("promoted record must be permanent")
	}
	if saved.ExpiresAt != nil {
		t.Error("promoted record must not expire")
	}

	// Promoting again is a no-op.
	again, err := svc.Promote(context.Background(), userID, rec.ID)
	if err != nil {
		t.Fatalf("second promote: %v", err)
	}
	if again.IsTemporary || again.ExpiresAt != nil {
		t.Error("second promote changed state")
	}
}

func TestRevertRestoresExpiry(t *testing.T) {
	svc, now := newTestService(newMemStore())
	userID := uuid.New()
	rec := createRecord(t, svc, userID)

	if _, err := svc.Promote(context.Background(), userID, rec.ID); err != nil {
		t.Fatalf("promote: %v", err)
	}

	reverted, err := svc.Revert(context.Background(), userID, rec.ID)
	if err != nil {
		t.Fatalf("revert: %v", err)
	}
	if !reverted.IsTemporary {
		t.Error("reverted record must be temporary")
	}
	if reverted.ExpiresAt == nil {
		t.Fatal("reverted record must carry a fresh expiry")
	}
	want := now.Add(10 * 24 * time.Hour)
	if !reverted.ExpiresAt.Equal(want) {
		t.Errorf("expires at %v, want %v", reverted.ExpiresAt, want)
	}
}

func TestFavoriteAlwaysEndsPinnedAndPermanent(t *testing.T) {
	// Favoriting must land in the same state whether the record was
	// temporary or already saved.
	for _, promoteFirst := range []bool{false, true} {
		svc, _ := newTestService(newMemStore())
		userID := uuid.New()
		rec := createRecord(t, svc, userID)

		if promoteFirst {
			if _, err := svc.Promote(context.Background(), userID, rec.ID); err != nil {
				t.Fatalf("promote: %v", err)
			}
		}

		fav, err := svc.Favorite(context.Background(), userID, rec.ID)
		if err != nil {
			t.Fatalf("favorite (promoteFirst=%v): %v", promoteFirst, err)
		}
		if !fav.IsFavorite || fav.IsTemporary || fav.ExpiresAt != nil {
			t.Errorf("promoteFirst=%v: favorite=%v temporary=%v expires=%v, want pinned permanent",
				promoteFirst, fav.IsFavorite, fav.IsTemporary, fav.ExpiresAt)
		}
	}
}

func TestRevertFavoriteFailsUnchanged(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestService(store)
	userID := uuid.New()
	rec := createRecord(t, svc, userID)

	if _, err := svc.Favorite(context.Background(), userID, rec.ID); err != nil {
		t.Fatalf("favorite: %v", err)
	}

	_, err := svc.Revert(context.Background(), userID, rec.ID)
	if !errors.Is(err, ErrCannotRevertFavorite) {
		t.Fatalf("want ErrCannotRevertFavorite, got %v", err)
	}

	// The record must be untouched by the failed operation.
	after, err := svc.store.GetByID(context.Background(), userID, rec.ID)
	if err != nil {
		t.Fatalf("get after failed revert: %v", err)
	}
	if !after.IsFavorite || after.IsTemporary || after.ExpiresAt != nil {
		t.Error("failed revert modified the record")
	}
}

func TestUnfavoriteStaysPermanent(t *testing.T) {
	svc, _ := newTestService(newMemStore())
	userID := uuid.New()
	rec := createRecord(t, svc, userID)

	if _, err := svc.Favorite(context.Background(), userID, rec.ID); err != nil {
		t.Fatalf("favorite: %v", err)
	}

	un, err := svc.Unfavorite(context.Background(), userID, rec.ID)
	if err != nil {
		t.Fatalf("unfavorite: %v", err)
	}
	if un.IsFavorite {
		t.Error("unfavorited record still flagged")
	}
	if un.IsTemporary || un.ExpiresAt != nil {
		t.Error("unfavorite must not revert the record to temporary")
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	svc, _ := newTestService(newMemStore())
	userID := uuid.New()
	rec := createRecord(t, svc, userID)

	if err := svc.Delete(context.Background(), userID, rec.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(context.Background(), userID, rec.ID); err != nil {
		t.Fatalf("second delete must be a no-op, got %v", err)
	}
}

func TestLifecycleEnforcesOwnership(t *testing.T) {
	svc, _ := newTestService(newMemStore())
	owner := uuid.New()
	intruder := uuid.New()
	rec := createRecord(t, svc, owner)

	if _, err := svc.Promote(context.Background(), intruder, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-user promote: want ErrNotFound, got %v", err)
	}
}

func TestListSweepsExpiredRecords(t *testing.T) {
	store := newMemStore()
	svc, now := newTestService(store)
	userID := uuid.New()

	fresh := createRecord(t, svc, userID)
	saved := createRecord(t, svc, userID)
	if _, err := svc.Promote(context.Background(), userID, saved.ID); err != nil {
		t.Fatalf("promote: %v", err)
	}
	expired := createRecord(t, svc, userID)

	// Jump past the retention window; only the expired temporary goes.
	svc.now = func() time.Time { return now.Add(11 * 24 * time.Hour) }
	past := now.Add(-time.Hour)
	rec := store.records[fresh.ID]
	future := now.Add(20 * 24 * time.Hour)
	rec.ExpiresAt = &future
	store.records[fresh.ID] = rec

	exp := store.records[expired.ID]
	exp.ExpiresAt = &past
	store.records[expired.ID] = exp

	live, err := svc.List(context.Background(), userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	ids := make(map[uuid.UUID]bool)
	for _, r := range live {
		ids[r.ID] = true
	}
	if len(live) != 2 || !ids[fresh.ID] || !ids[saved.ID] {
		t.Errorf("live = %v, want exactly {fresh, saved}", ids)
	}
	if _, ok := store.records[expired.ID]; ok {
		t.Error("expired record was not swept from the store")
	}
}

func TestListSweepIsRepeatable(t *testing.T) {
	store := newMemStore()
	svc, now := newTestService(store)
	userID := uuid.New()

	createRecord(t, svc, userID)
	svc.now = func() time.Time { return now.Add(11 * 24 * time.Hour) }

	for i := 0; i < 2; i++ {
		live, err := svc.List(context.Background(), userID)
		if err != nil {
			t.Fatalf("list pass %d: %v", i, err)
		}
		if len(live) != 0 {
			t.Errorf("pass %d: %d live records, want 0", i, len(live))
		}
	}
}
