package refine

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/promptweaver/api/internal/models"
	"github.com/promptweaver/api/internal/queue"
	"github.com/promptweaver/api/internal/record"
)

type fakeCreator struct {
	created []record.CreateParams
	err     error
}

func (f *fakeCreator) Create(ctx context.Context, p record.CreateParams) (*models.PromptRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, p)
	rec := &models.PromptRecord{ID: uuid.New(), UserID: p.UserID}
	rec.SetSuggestions(p.Suggestions)
	return rec, nil
}

type fakeCache struct {
	entries map[string][]byte
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest any) error {
	data, ok := f.entries[key]
	if !ok {
		return errors.New("cache miss")
	}
	return json.Unmarshal(data, dest)
}

func (f *fakeCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = data
	f.sets++
	return nil
}

type fakeEnqueuer struct {
	payloads []queue.UsageRecordPayload
}

func (f *fakeEnqueuer) EnqueueUsageRecord(p queue.UsageRecordPayload) error {
	f.payloads = append(f.payloads, p)
	return nil
}

const haikuContent = `{"refinedPrompts": [
	{"promptText": "Write a haiku capturing the stillness of fresh snow.", "rating": 8},
	{"promptText": "Compose a haiku about snow using sensory imagery.", "rating": 6},
	{"promptText": "Craft a traditional 5-7-5 haiku on snowfall at dusk.", "rating": 9}
]}`

func newTestService(gw *fakeGateway, creator RecordCreator, cache ResponseCache, usage UsageEnqueuer) *Service {
	gen := NewGenerator(gw, "test-model", 3, time.Millisecond, time.Second)
	return NewService(gen, creator, cache, usage, 5000, time.Hour)
}

func TestRefineAuthenticatedPersistsRecord(t *testing.T) {
	gw := &fakeGateway{responses: []fakeCall{{content: haikuContent}}}
	creator := &fakeCreator{}
	enq := &fakeEnqueuer{}
	svc := newTestService(gw, creator, newFakeCache(), enq)
	userID := uuid.New()

	result, err := svc.Refine(context.Background(), Input{
		Instruction: "write a haiku about snow",
		Level:       "Balanced",
		UserID:      userID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Suggestions) != 3 {
		t.Fatalf("got %d suggestions, want 3", len(result.Suggestions))
	}
	wantRatings := []int{8, 6, 9}
	for i, s := range result.Suggestions {
		if s.Rating != wantRatings[i] {
			t.Errorf("suggestion %d rating = %d, want %d", i, s.Rating, wantRatings[i])
		}
	}

	if result.RecordID == nil {
		t.Error("record ID missing for authenticated user")
	}
	if result.Warning != "" {
		t.Errorf("unexpected warning: %q", result.Warning)
	}
	if len(creator.created) != 1 {
		t.Fatalf("created %d records, want 1", len(creator.created))
	}
	if creator.created[0].UserID != userID {
		t.Error("record created for wrong user")
	}

	if len(enq.payloads) != 1 {
		t.Fatalf("enqueued %d usage payloads, want 1", len(enq.payloads))
	}
	if enq.payloads[0].Level != string(LevelBalanced) {
		t.Errorf("usage level = %q, want %q", enq.payloads[0].Level, LevelBalanced)
	}
}

func TestRefineGuestSkipsPersistence(t *testing.T) {
	gw := &fakeGateway{responses: []fakeCall{{content: haikuContent}}}
	creator := &fakeCreator{}
	svc := newTestService(gw, creator, newFakeCache(), &fakeEnqueuer{})

	result, err := svc.Refine(context.Background(), Input{
		Instruction: "write a haiku about snow",
		Level:       "Quick",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Suggestions) != 3 {
		t.Fatalf("got %d suggestions, want 3", len(result.Suggestions))
	}
	if result.RecordID != nil {
		t.Error("guest refinement must not produce a record")
	}
	if len(creator.created) != 0 {
		t.Errorf("created %d records for a guest, want 0", len(creator.created))
	}
}

func TestRefinePersistenceFailureIsNonFatal(t *testing.T) {
	gw := &fakeGateway{responses: []fakeCall{{content: haikuContent}}}
	creator := &fakeCreator{err: errors.New("db down")}
	svc := newTestService(gw, creator, newFakeCache(), &fakeEnqueuer{})

	result, err := svc.Refine(context.Background(), Input{
		Instruction: "write a haiku about snow",
		Level:       "Balanced",
		UserID:      uuid.New(),
	})
	if err != nil {
		t.Fatalf("persistence failure must not fail the refinement, got %v", err)
	}
	if len(result.Suggestions) != 3 {
		t.Fatalf("got %d suggestions, want 3", len(result.Suggestions))
	}
	if result.Warning == "" {
		t.Error("expected a warning about the failed save")
	}
	if result.RecordID != nil {
		t.Error("record ID must be absent when the save failed")
	}
}

func TestRefineRejectsOutOfRangeRating(t *testing.T) {
	content := `{"refinedPrompts": [{"promptText": "fine", "rating": 11}]}`
	gw := &fakeGateway{responses: []fakeCall{{content: content}}}
	svc := newTestService(gw, &fakeCreator{}, newFakeCache(), &fakeEnqueuer{})

	_, err := svc.Refine(context.Background(), Input{Instruction: "anything", Level: "Quick"})
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("want ErrMalformedResponse, got %v", err)
	}
}

func TestRefineValidationShortCircuits(t *testing.T) {
	gw := &fakeGateway{}
	svc := newTestService(gw, &fakeCreator{}, newFakeCache(), &fakeEnqueuer{})

	_, err := svc.Refine(context.Background(), Input{Instruction: "   "})
	if !errors.Is(err, ErrEmptyInstruction) {
		t.Fatalf("want ErrEmptyInstruction, got %v", err)
	}
	if gw.calls != 0 {
		t.Errorf("backend called %d times for invalid input, want 0", gw.calls)
	}
}

func TestRefineServesFromCache(t *testing.T) {
	gw := &fakeGateway{responses: []fakeCall{{content: haikuContent}}}
	cache := newFakeCache()
	enq := &fakeEnqueuer{}
	svc := newTestService(gw, &fakeCreator{}, cache, enq)
	in := Input{Instruction: "write a haiku about snow", Level: "Balanced"}

	if _, err := svc.Refine(context.Background(), in); err != nil {
		t.Fatalf("first refinement: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("cache sets = %d, want 1", cache.sets)
	}

	result, err := svc.Refine(context.Background(), in)
	if err != nil {
		t.Fatalf("second refinement: %v", err)
	}
	if gw.calls != 1 {
		t.Errorf("backend calls = %d, want 1 (second request should hit the cache)", gw.calls)
	}
	if len(result.Suggestions) != 3 {
		t.Errorf("cached result has %d suggestions, want 3", len(result.Suggestions))
	}
	if len(enq.payloads) != 1 {
		t.Errorf("usage payloads = %d, want 1 (cache hits are not billable)", len(enq.payloads))
	}
}
