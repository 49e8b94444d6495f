package refine

import "strings"

// UI levels accepted alongside the canonical tiers. The web client exposes
// Simple/Moderate/Expert plus a Custom mode that layers style facets on top
// of the Balanced baseline.
var levelAliases = map[string]Level{
	"quick":         LevelQuick,
	"simple":        LevelQuick,
	"balanced":      LevelBalanced,
	"moderate":      LevelBalanced,
	"comprehensive": LevelComprehensive,
	"expert":        LevelComprehensive,
	"custom":        LevelBalanced,
}

// Facet option lists, kept for reference and for clients that render
// dropdowns. Facet values are not validated against these: the categories
// are closed, the values are advisory.
var (
	StructureOptions      = []string{"Concise", "Expanded", "Step-by-step"}
	ToneOptions           = []string{"Creative", "Casual", "Formal", "Witty"}
	PurposeOptions        = []string{"SEO-Friendly", "Conversion-Oriented", "Informative"}
	AIOptimizationOptions = []string{"GPT-4 Optimized", "Chain-of-Thought", "Instructional"}
	AudienceOptions       = []string{"Beginner-Friendly", "Technical", "Marketing"}
)

// ResolveLevel maps a user-facing level plus optional style facets to the
// canonical tier and style string the generation backend expects. Unknown or
// missing levels normalize to Balanced; this default-safe behavior is
// deliberate, not an error. With zero facets selected the style string is
// empty and the request behaves as the plain baseline tier.
func ResolveLevel(raw string, facets StyleFacets) (Level, string) {
	level, ok := levelAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		level = LevelBalanced
	}

	styleString := strings.Join(facets.ordered(), ", ")
	return level, styleString
}
