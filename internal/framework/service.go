package framework

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/promptweaver/api/internal/embedding"
	"github.com/promptweaver/api/internal/llm"
	"github.com/promptweaver/api/internal/vectorstore"
)

var (
	ErrEmptyInstruction = fmt.Errorf("instruction cannot be empty")
	ErrInvalidCategory  = fmt.Errorf("unknown template category")
)

// TemplateCategories are the template kinds the suggestion endpoint accepts.
var TemplateCategories = []string{"Email", "Resume", "Coding", "Story", "ChatGPT"}

// Suggestion pairs a catalog framework with the model's one-line reason
// for recommending it.
type Suggestion struct {
	Framework Framework `json:"framework"`
	Reason    string    `json:"reason"`
}

// Match is a semantic-search hit against the indexed catalog.
type Match struct {
	Framework Framework `json:"framework"`
	Score     float64   `json:"score"`
}

// Service recommends prompt frameworks for a rough instruction, serves
// category templates, and answers semantic searches over the catalog.
type Service struct {
	gateway  llm.Gateway
	model    string
	embedder *embedding.Service
	vectors  vectorstore.VectorStore
}

func NewService(gw llm.Gateway, model string, embedder *embedding.Service, vectors vectorstore.VectorStore) *Service {
	return &Service{gateway: gw, model: model, embedder: embedder, vectors: vectors}
}

// Suggest asks the backend which catalog framework best fits the
// instruction. The returned framework is always resolved against the
// catalog; an off-list answer falls back to R-T-F, the catalog's default
// for vague input.
func (s *Service) Suggest(ctx context.Context, instruction string) (*Suggestion, error) {
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return nil, ErrEmptyInstruction
	}

	resp, err := s.gateway.Chat(ctx, llm.ChatRequest{
		Model: s.model,
		Messages: []llm.Message{
			{Role: "system", Content: suggestSystemPrompt()},
			{Role: "user", Content: "User's Input:\n" + instruction},
		},
		Temperature: 0.3,
		MaxTokens:   300,
	})
	if err != nil {
		return nil, fmt.Errorf("framework suggestion: %w", err)
	}

	var out struct {
		Framework string `json:"framework"`
		Reason    string `json:"reason"`
	}
	if err := json.Unmarshal([]byte(stripFences(resp.Content)), &out); err != nil {
		return nil, fmt.Errorf("parse framework suggestion: %w", err)
	}
	if out.Framework == "" || out.Reason == "" {
		return nil, fmt.Errorf("backend did not return a framework suggestion with reason")
	}

	fw, ok := ByName(out.Framework)
	if !ok {
		slog.Warn("suggested framework not in catalog, defaulting", "framework", out.Framework)
		fw, _ = ByID("rtf")
	}
	return &Suggestion{Framework: fw, Reason: out.Reason}, nil
}

// SuggestTemplate generates a starter prompt template for one of the
// supported categories.
func (s *Service) SuggestTemplate(ctx context.Context, category string) (string, error) {
	if !validCategory(category) {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}

	resp, err := s.gateway.Chat(ctx, llm.ChatRequest{
		Model: s.model,
		Messages: []llm.Message{
			{Role: "system", Content: "You are an expert prompt template generator. Based on the category provided, suggest a prompt template that the user can use. Respond ONLY with a JSON object: {\"template\": \"...\"}."},
			{Role: "user", Content: "Category: " + category},
		},
		Temperature: 0.5,
		MaxTokens:   500,
	})
	if err != nil {
		return "", fmt.Errorf("template suggestion: %w", err)
	}

	var out struct {
		Template string `json:"template"`
	}
	if err := json.Unmarshal([]byte(stripFences(resp.Content)), &out); err != nil {
		return "", fmt.Errorf("parse template suggestion: %w", err)
	}
	if strings.TrimSpace(out.Template) == "" {
		return "", fmt.Errorf("backend returned an empty template")
	}
	return out.Template, nil
}

// Search embeds the query and ranks catalog frameworks by cosine
// similarity against the indexed embeddings.
func (s *Service) Search(ctx context.Context, query string, topK int) ([]Match, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyInstruction
	}

	vec, err := s.embedder.EmbedOne(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	results, err := s.vectors.SimilaritySearch(ctx, vec, vectorstore.SearchOptions{TopK: topK})
	if err != nil {
		return nil, err
	}

	matches := make([]Match, 0, len(results))
	for _, r := range results {
		fw, ok := ByID(r.FrameworkID)
		if !ok {
			slog.Warn("indexed framework missing from catalog", "framework_id", r.FrameworkID)
			continue
		}
		matches = append(matches, Match{Framework: fw, Score: r.Score})
	}
	return matches, nil
}

// IndexCatalog embeds every catalog entry and upserts the vectors. Safe
// to run on every startup; existing rows are overwritten in place.
func (s *Service) IndexCatalog(ctx context.Context) error {
	texts := make([]string, len(Catalog))
	for i, f := range Catalog {
		texts[i] = indexText(f)
	}

	vecs, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed catalog: %w", err)
	}

	entries := make([]vectorstore.Entry, len(Catalog))
	for i, f := range Catalog {
		entries[i] = vectorstore.Entry{
			FrameworkID: f.ID,
			Content:     texts[i],
			Embedding:   vecs[i],
		}
	}

	if err := s.vectors.Upsert(ctx, entries); err != nil {
		return fmt.Errorf("index catalog: %w", err)
	}
	slog.Info("framework catalog indexed", "frameworks", len(entries))
	return nil
}

func indexText(f Framework) string {
	return fmt.Sprintf("%s\nWhen to use: %s\nStructure: %s", f.Name, f.WhenToUse, f.Structure)
}

func validCategory(category string) bool {
	for _, c := range TemplateCategories {
		if c == category {
			return true
		}
	}
	return false
}

// suggestSystemPrompt renders the framework list into the strategist
// prompt so the catalog stays the single source of truth.
func suggestSystemPrompt() string {
	var b strings.Builder
	b.WriteString(`You are a prompt strategist.

Given a user's rough prompt or idea, recommend the most suitable prompt framework from this list.

Respond ONLY with a JSON object containing:
- framework: The framework name
- reason: A 1-line reason why it fits

Framework Options:
`)
	for _, f := range Catalog {
		fmt.Fprintf(&b, "\n%s\nWhen to use: %s\nStructure: %s\n", f.Name, f.WhenToUse, f.Structure)
	}
	b.WriteString(`
Use R-T-F if the input is too vague or simple.

Remember to respond with ONLY a JSON object containing the framework name and a one-line reason.
Example:
{
  "framework": "D-R-E-A-M",
  "reason": "Because the user is planning a detailed AI course and needs structure, execution, and analysis."
}`)
	return b.String()
}

// stripFences removes markdown code fences some models wrap JSON in.
func stripFences(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
