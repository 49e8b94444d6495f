package refine

import "testing"

func TestResolveLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want Level
	}{
		{"Quick", LevelQuick},
		{"quick", LevelQuick},
		{"Simple", LevelQuick},
		{"Balanced", LevelBalanced},
		{"Moderate", LevelBalanced},
		{"Custom", LevelBalanced},
		{"Comprehensive", LevelComprehensive},
		{"Expert", LevelComprehensive},
		{"EXPERT", LevelComprehensive},
		{"  balanced  ", LevelBalanced},
		{"", LevelBalanced},
		{"nonsense", LevelBalanced},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			level, _ := ResolveLevel(tt.raw, StyleFacets{})
			if level != tt.want {
				t.Errorf("ResolveLevel(%q) = %q, want %q", tt.raw, level, tt.want)
			}
		})
	}
}

func TestResolveLevelStyleString(t *testing.T) {
	tests := []struct {
		name   string
		facets StyleFacets
		want   string
	}{
		{
			name:   "no facets",
			facets: StyleFacets{},
			want:   "",
		},
		{
			name:   "single facet",
			facets: StyleFacets{Tone: "Formal"},
			want:   "Formal",
		},
		{
			name: "all facets in category order",
			facets: StyleFacets{
				Structure:      "Concise",
				Tone:           "Witty",
				Purpose:        "Informative",
				AIOptimization: "Chain-of-Thought",
				Audience:       "Technical",
			},
			want: "Concise, Witty, Informative, Chain-of-Thought, Technical",
		},
		{
			name: "gaps preserve category order",
			facets: StyleFacets{
				Audience:  "Beginner-Friendly",
				Structure: "Step-by-step",
			},
			want: "Step-by-step, Beginner-Friendly",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := ResolveLevel("Custom", tt.facets)
			if got != tt.want {
				t.Errorf("style string = %q, want %q", got, tt.want)
			}
		})
	}
}
