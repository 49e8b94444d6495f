package refine

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name        string
		instruction string
		level       string
		wantErr     error
		wantLevel   Level
	}{
		{
			name:        "valid balanced",
			instruction: "write a haiku about autumn",
			level:       "Balanced",
			wantLevel:   LevelBalanced,
		},
		{
			name:        "empty instruction",
			instruction: "",
			level:       "Quick",
			wantErr:     ErrEmptyInstruction,
		},
		{
			name:        "whitespace only",
			instruction: "   \n\t  ",
			level:       "Quick",
			wantErr:     ErrEmptyInstruction,
		},
		{
			name:        "too long",
			instruction: strings.Repeat("a", 5001),
			level:       "Quick",
			wantErr:     ErrInstructionTooLong,
		},
		{
			name:        "exactly at the limit",
			instruction: strings.Repeat("a", 5000),
			level:       "Quick",
			wantLevel:   LevelQuick,
		},
		{
			name:        "unknown level normalizes to balanced",
			instruction: "summarize this article",
			level:       "turbo",
			wantLevel:   LevelBalanced,
		},
		{
			name:        "empty level normalizes to balanced",
			instruction: "summarize this article",
			level:       "",
			wantLevel:   LevelBalanced,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ValidateRequest(tt.instruction, tt.level, StyleFacets{}, 5000)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if req.Level != tt.wantLevel {
				t.Errorf("level = %q, want %q", req.Level, tt.wantLevel)
			}
		})
	}
}

func TestValidateRequestTrimsInstruction(t *testing.T) {
	req, err := ValidateRequest("  write a haiku  ", "Quick", StyleFacets{}, 5000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Instruction != "write a haiku" {
		t.Errorf("instruction = %q, want trimmed", req.Instruction)
	}
}

func TestValidateRequestLengthCountsTrimmed(t *testing.T) {
	// Padding that trims away must not count toward the limit.
	instruction := "  " + strings.Repeat("b", 5000) + "  "
	if _, err := ValidateRequest(instruction, "Quick", StyleFacets{}, 5000); err != nil {
		t.Fatalf("trimmed instruction at limit should pass, got %v", err)
	}
}
