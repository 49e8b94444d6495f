package refine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/promptweaver/api/internal/llm"
)

// Generator calls the generation backend with the structured-output contract
// and retries transient failures with exponential backoff. Each attempt
// fully resolves before the next begins; the backoff delay doubles per
// retry starting from InitialBackoff.
type Generator struct {
	gateway llm.Gateway

	Model          string
	MaxRetries     int
	InitialBackoff time.Duration
	RequestTimeout time.Duration
}

func NewGenerator(gw llm.Gateway, model string, maxRetries int, initialBackoff, requestTimeout time.Duration) *Generator {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	if initialBackoff <= 0 {
		initialBackoff = time.Second
	}
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}
	return &Generator{
		gateway:        gw,
		Model:          model,
		MaxRetries:     maxRetries,
		InitialBackoff: initialBackoff,
		RequestTimeout: requestTimeout,
	}
}

// Generate performs the backend call for a validated request and returns the
// unvalidated structured payload. Only transient failures are retried; a
// permanent failure, an empty payload, or an unparseable payload propagates
// immediately.
func (g *Generator) Generate(ctx context.Context, req Request) (*RawOutput, error) {
	userPrompt, err := buildRefineUserPrompt(req)
	if err != nil {
		return nil, fmt.Errorf("build prompt: %w", err)
	}

	chatReq := llm.ChatRequest{
		Model: g.Model,
		Messages: []llm.Message{
			{Role: "system", Content: refineSystemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0.7,
	}

	var lastErr error
	for attempt := 1; attempt <= g.MaxRetries; attempt++ {
		if attempt > 1 {
			backoff := g.InitialBackoff << (attempt - 2)
			slog.Debug("retrying generation", "attempt", attempt, "backoff", backoff)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, err := g.chatOnce(ctx, chatReq)
		if err != nil {
			if llm.IsTransient(err) {
				lastErr = err
				continue
			}
			return nil, err
		}

		out, err := parsePayload(resp)
		if err != nil {
			return nil, err
		}
		out.Attempts = attempt
		return out, nil
	}

	return nil, fmt.Errorf("%w after %d attempts: %v", ErrBackendUnavailable, g.MaxRetries, lastErr)
}

func (g *Generator) chatOnce(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, g.RequestTimeout)
	defer cancel()
	return g.gateway.Chat(attemptCtx, req)
}

// parsePayload decodes the backend content into the unvalidated structured
// payload. Some models wrap JSON in code fences despite instructions, so
// those are stripped first.
func parsePayload(resp *llm.ChatResponse) (*RawOutput, error) {
	content := strings.TrimSpace(resp.Content)
	if content == "" {
		return nil, ErrEmptyBackendResponse
	}

	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var payload map[string]any
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("%w: invalid format: %v", ErrMalformedResponse, err)
	}

	return &RawOutput{
		Payload:      payload,
		Provider:     resp.Provider,
		Model:        resp.Model,
		InputTokens:  resp.InputTokens,
		OutputTokens: resp.OutputTokens,
		CostUSD:      resp.CostUSD,
		LatencyMs:    resp.LatencyMs,
	}, nil
}
