package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/promptweaver/api/internal/queue"
	"github.com/promptweaver/api/internal/usage"
)

// UsageWorker drains refinement usage tasks into the usage table.
type UsageWorker struct {
	usage *usage.Service
}

func NewUsageWorker(svc *usage.Service) *UsageWorker {
	return &UsageWorker{usage: svc}
}

func (w *UsageWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.UsageRecordPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal usage payload: %w", err)
	}

	err := w.usage.Record(ctx, usage.Entry{
		UserID:       payload.UserID,
		Provider:     payload.Provider,
		Model:        payload.Model,
		Level:        payload.Level,
		InputTokens:  payload.InputTokens,
		OutputTokens: payload.OutputTokens,
		CostUSD:      payload.CostUSD,
		LatencyMs:    payload.LatencyMs,
	})
	if err != nil {
		return err
	}

	slog.Debug("recorded usage", "provider", payload.Provider, "model", payload.Model)
	return nil
}
