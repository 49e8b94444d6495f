package refine

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultMaxInstructionLength bounds the trimmed instruction, in characters.
const DefaultMaxInstructionLength = 5000

// ValidateRequest checks a raw instruction and level against the input
// contract and returns a normalized Request. The instruction must be
// non-empty after trimming and at most maxLen characters; an unknown level
// normalizes to Balanced rather than failing. Validation happens before any
// network activity.
func ValidateRequest(rawInstruction, rawLevel string, facets StyleFacets, maxLen int) (*Request, error) {
	if maxLen <= 0 {
		maxLen = DefaultMaxInstructionLength
	}

	instruction := strings.TrimSpace(rawInstruction)
	if instruction == "" {
		return nil, ErrEmptyInstruction
	}
	if utf8.RuneCountInString(instruction) > maxLen {
		return nil, fmt.Errorf("%w: %d > %d characters", ErrInstructionTooLong, utf8.RuneCountInString(instruction), maxLen)
	}

	level, styleString := ResolveLevel(rawLevel, facets)

	return &Request{
		Instruction: instruction,
		Level:       level,
		StyleString: styleString,
	}, nil
}
