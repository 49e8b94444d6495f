package refine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/promptweaver/api/internal/models"
	"github.com/promptweaver/api/internal/queue"
	"github.com/promptweaver/api/internal/record"
)

// RecordCreator persists a freshly generated refinement as a temporary
// record. Satisfied by record.Service.
type RecordCreator interface {
	Create(ctx context.Context, p record.CreateParams) (*models.PromptRecord, error)
}

// ResponseCache caches validated suggestion sets keyed by the resolved
// request. Satisfied by cache.Cache.
type ResponseCache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// UsageEnqueuer hands usage accounting off to the background worker.
// Satisfied by queue.Client.
type UsageEnqueuer interface {
	EnqueueUsageRecord(p queue.UsageRecordPayload) error
}

// Service is the top-level refinement entry point: it validates the input,
// resolves the level, calls the generation backend with retry, validates the
// response, and best-effort persists a temporary record for authenticated
// users. Persistence and caching never block or fail the user-visible
// result.
type Service struct {
	generator *Generator
	records   RecordCreator
	cache     ResponseCache
	usage     UsageEnqueuer

	maxInstructionLength int
	cacheTTL             time.Duration
}

func NewService(gen *Generator, records RecordCreator, cache ResponseCache, usage UsageEnqueuer, maxInstructionLength int, cacheTTL time.Duration) *Service {
	if maxInstructionLength <= 0 {
		maxInstructionLength = DefaultMaxInstructionLength
	}
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}
	return &Service{
		generator:            gen,
		records:              records,
		cache:                cache,
		usage:                usage,
		maxInstructionLength: maxInstructionLength,
		cacheTTL:             cacheTTL,
	}
}

// Refine runs one refinement request end to end. A zero UserID means a
// guest request: suggestions are returned but nothing is persisted.
func (s *Service) Refine(ctx context.Context, in Input) (*Result, error) {
	req, err := ValidateRequest(in.Instruction, in.Level, in.Styles, s.maxInstructionLength)
	if err != nil {
		return nil, err
	}

	suggestions, raw, err := s.generate(ctx, *req)
	if err != nil {
		return nil, err
	}

	result := &Result{Suggestions: suggestions}

	if in.UserID != uuid.Nil {
		rec, err := s.records.Create(ctx, record.CreateParams{
			UserID:       in.UserID,
			OriginalText: req.Instruction,
			Level:        string(req.Level),
			CustomStyles: req.StyleString,
			Suggestions:  suggestions,
		})
		if err != nil {
			// Auto-save is best-effort: log, warn, and still return the
			// suggestions.
			slog.Warn("auto-save failed", "user_id", in.UserID, "error", err)
			result.Warning = "Your suggestions were generated but could not be saved."
		} else {
			result.RecordID = &rec.ID
		}
	}

	if raw != nil && s.usage != nil {
		if err := s.usage.EnqueueUsageRecord(queue.UsageRecordPayload{
			UserID:       in.UserID.String(),
			Provider:     raw.Provider,
			Model:        raw.Model,
			Level:        string(req.Level),
			InputTokens:  raw.InputTokens,
			OutputTokens: raw.OutputTokens,
			CostUSD:      raw.CostUSD,
			LatencyMs:    raw.LatencyMs,
		}); err != nil {
			slog.Warn("usage enqueue failed", "error", err)
		}
	}

	return result, nil
}

// generate returns validated suggestions, consulting the response cache
// first. raw is nil when the result was served from cache.
func (s *Service) generate(ctx context.Context, req Request) ([]models.Suggestion, *RawOutput, error) {
	key := cacheKey(req)

	if s.cache != nil {
		var cached []models.Suggestion
		if err := s.cache.Get(ctx, key, &cached); err == nil && len(cached) > 0 {
			return cached, nil, nil
		}
	}

	raw, err := s.generator.Generate(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	suggestions, err := ValidateResponse(raw)
	if err != nil {
		return nil, nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, suggestions, s.cacheTTL); err != nil {
			slog.Warn("response cache write failed", "error", err)
		}
	}

	return suggestions, raw, nil
}

func cacheKey(req Request) string {
	h := sha256.New()
	h.Write([]byte(req.Instruction))
	h.Write([]byte{0})
	h.Write([]byte(req.Level))
	h.Write([]byte{0})
	h.Write([]byte(req.StyleString))
	return "refine:" + hex.EncodeToString(h.Sum(nil))
}
