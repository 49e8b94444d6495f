package refine

import (
	"github.com/google/uuid"

	"github.com/promptweaver/api/internal/models"
)

// Level is a canonical generation tier governing depth and verbosity.
type Level string

const (
	LevelQuick         Level = "Quick"
	LevelBalanced      Level = "Balanced"
	LevelComprehensive Level = "Comprehensive"
)

// StyleFacets holds the optional categorical style customizations. Each
// facet belongs to a fixed category; the zero value means "not selected".
type StyleFacets struct {
	Structure      string `json:"structure,omitempty"`
	Tone           string `json:"tone,omitempty"`
	Purpose        string `json:"purpose,omitempty"`
	AIOptimization string `json:"ai_optimization,omitempty"`
	Audience       string `json:"audience,omitempty"`
}

// ordered returns the selected facets in category order: structure, tone,
// purpose, aiOptimization, audience.
func (f StyleFacets) ordered() []string {
	var out []string
	for _, v := range []string{f.Structure, f.Tone, f.Purpose, f.AIOptimization, f.Audience} {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Empty reports whether no facet is selected.
func (f StyleFacets) Empty() bool {
	return len(f.ordered()) == 0
}

// Request is a validated refinement request. Instruction is trimmed and
// within the configured length ceiling; Level is one of the canonical tiers.
type Request struct {
	Instruction string
	Level       Level
	StyleString string // comma-joined facets, empty when none selected
}

// RawOutput is the generation backend's unvalidated structured payload plus
// the call metadata needed for usage accounting. The payload claims to match
// {refinedPrompts: [{promptText, rating}]} but must be checked by
// ValidateResponse before use.
type RawOutput struct {
	Payload      map[string]any
	Provider     string
	Model        string
	InputTokens  int
	OutputTokens int
	CostUSD      float64
	LatencyMs    int64
	Attempts     int
}

// Input is the raw, caller-supplied refinement request.
type Input struct {
	Instruction string      `json:"instruction"`
	Level       string      `json:"level"`
	Styles      StyleFacets `json:"styles"`
	UserID      uuid.UUID   `json:"-"`
}

// Result is the caller-facing refinement outcome. Suggestions are always
// present on success; RecordID is set only when auto-save succeeded, and
// Warning carries the non-fatal reason when it did not.
type Result struct {
	Suggestions []models.Suggestion `json:"suggestions"`
	RecordID    *uuid.UUID          `json:"record_id,omitempty"`
	Warning     string              `json:"warning,omitempty"`
}
