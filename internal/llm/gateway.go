package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/promptweaver/api/internal/config"
)

type gateway struct {
	providers        map[string]Provider
	defaultProvider  string
	fallbackProvider string
	fallbackModel    string
}

// NewGateway builds a Gateway from whichever provider keys are configured.
// Retry of transient failures is the caller's policy (see internal/refine);
// the gateway only routes and, for permanent primary failures, falls back.
func NewGateway(cfg config.LLMConfig) Gateway {
	g := &gateway{
		providers:        make(map[string]Provider),
		defaultProvider:  cfg.DefaultProvider,
		fallbackProvider: cfg.FallbackProvider,
		fallbackModel:    cfg.FallbackModel,
	}

	if cfg.OpenAIKey != "" {
		g.providers["openai"] = NewOpenAIProvider(cfg.OpenAIKey)
	}
	if cfg.AnthropicKey != "" {
		g.providers["anthropic"] = NewAnthropicProvider(cfg.AnthropicKey)
	}
	if cfg.OpenRouterKey != "" {
		g.providers["openrouter"] = NewOpenRouterProvider(cfg.OpenRouterKey)
	}

	return g
}

func (g *gateway) Provider(name string) (Provider, error) {
	p, ok := g.providers[name]
	if !ok {
		return nil, fmt.Errorf("provider %q not configured", name)
	}
	return p, nil
}

func (g *gateway) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	providerName := req.Provider
	if providerName == "" {
		providerName = g.defaultProvider
	}

	p, err := g.Provider(providerName)
	if err != nil {
		return nil, err
	}

	resp, err := p.ChatCompletion(ctx, req)
	if err == nil {
		return resp, nil
	}

	// Transient failures propagate so the caller's retry loop can back off.
	// Anything else gets one shot at the fallback provider, if configured.
	if IsTransient(err) || g.fallbackProvider == "" || g.fallbackProvider == providerName {
		return nil, err
	}

	fb, fbErr := g.Provider(g.fallbackProvider)
	if fbErr != nil {
		return nil, err
	}

	slog.Warn("primary provider failed, trying fallback",
		"primary", providerName,
		"fallback", g.fallbackProvider,
		"error", err,
	)

	fbReq := req
	fbReq.Provider = g.fallbackProvider
	if g.fallbackModel != "" {
		fbReq.Model = g.fallbackModel
	}
	return fb.ChatCompletion(ctx, fbReq)
}

func (g *gateway) Embed(ctx context.Context, req EmbeddingRequest) (*EmbeddingResponse, error) {
	providerName := req.Provider
	if providerName == "" {
		providerName = g.defaultProvider
	}

	p, err := g.Provider(providerName)
	if err != nil {
		return nil, err
	}

	return p.GenerateEmbedding(ctx, req)
}
