package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider serves as the fallback route when the primary provider
// fails permanently. It speaks the OpenAI-compatible chat completions API.
type OpenRouterProvider struct {
	apiKey     string
	httpClient *http.Client
}

func NewOpenRouterProvider(apiKey string) *OpenRouterProvider {
	return &OpenRouterProvider{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

func (p *OpenRouterProvider) Name() string { return "openrouter" }

func (p *OpenRouterProvider) Models() []string {
	return []string{
		"mistralai/mistral-7b-instruct",
		"meta-llama/llama-3-8b-instruct",
		"google/gemini-flash-1.5",
	}
}

type openRouterChatReq struct {
	Model       string              `json:"model"`
	Messages    []openRouterMessage `json:"messages"`
	Temperature float64             `json:"temperature,omitempty"`
	MaxTokens   int                 `json:"max_tokens,omitempty"`
}

type openRouterMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openRouterChatResp struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message openRouterMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Code    any    `json:"code"`
	} `json:"error,omitempty"`
}

func (p *OpenRouterProvider) ChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	start := time.Now()

	msgs := make([]openRouterMessage, len(req.Messages))
	for i, m := range req.Messages {
		msgs[i] = openRouterMessage{Role: m.Role, Content: m.Content}
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 800
	}

	oReq := openRouterChatReq{
		Model:       req.Model,
		Messages:    msgs,
		Temperature: req.Temperature,
		MaxTokens:   maxTokens,
	}

	body, _ := json.Marshal(oReq)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", openRouterBaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("openrouter request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("openrouter chat: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{
			Provider:   "openrouter",
			StatusCode: resp.StatusCode,
			Body:       string(payload),
		}
	}

	var oResp openRouterChatResp
	if err := json.NewDecoder(resp.Body).Decode(&oResp); err != nil {
		return nil, fmt.Errorf("openrouter decode: %w", err)
	}
	if oResp.Error != nil {
		return nil, fmt.Errorf("openrouter: %s", oResp.Error.Message)
	}

	content := ""
	if len(oResp.Choices) > 0 {
		content = oResp.Choices[0].Message.Content
	}

	latency := time.Since(start).Milliseconds()

	return &ChatResponse{
		ID:           oResp.ID,
		Provider:     "openrouter",
		Model:        oResp.Model,
		Content:      content,
		InputTokens:  oResp.Usage.PromptTokens,
		OutputTokens: oResp.Usage.CompletionTokens,
		TotalTokens:  oResp.Usage.TotalTokens,
		CostUSD:      0, // routed pricing varies per upstream model
		LatencyMs:    latency,
	}, nil
}

func (p *OpenRouterProvider) GenerateEmbedding(_ context.Context, _ EmbeddingRequest) (*EmbeddingResponse, error) {
	return nil, fmt.Errorf("openrouter embeddings not supported, use OpenAI")
}
