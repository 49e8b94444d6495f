package models

import (
	"time"

	"github.com/google/uuid"
)

// RefinementUsage is one accounting row per successful generation call,
// written asynchronously by the worker.
type RefinementUsage struct {
	ID           int64      `json:"id" db:"id"`
	UserID       *uuid.UUID `json:"user_id,omitempty" db:"user_id"`
	Provider     string     `json:"provider" db:"provider"`
	Model        string     `json:"model" db:"model"`
	Level        string     `json:"level" db:"level"`
	InputTokens  int        `json:"input_tokens" db:"input_tokens"`
	OutputTokens int        `json:"output_tokens" db:"output_tokens"`
	CostUSD      float64    `json:"cost_usd" db:"cost_usd"`
	LatencyMs    int64      `json:"latency_ms" db:"latency_ms"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}
