package queue

const TypeUsageRecord = "refinement:usage"

// UsageRecordPayload is enqueued after each successful generation call and
// written to the usage table by the worker. UserID is empty for guest
// refinements.
type UsageRecordPayload struct {
	UserID       string  `json:"user_id,omitempty"`
	Provider     string  `json:"provider"`
	Model        string  `json:"model"`
	Level        string  `json:"level"`
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	CostUSD      float64 `json:"cost_usd"`
	LatencyMs    int64   `json:"latency_ms"`
}
