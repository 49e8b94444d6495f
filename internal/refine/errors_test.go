package refine

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"empty instruction", ErrEmptyInstruction, KindValidation},
		{"too long", fmt.Errorf("%w: 5100 > 5000 characters", ErrInstructionTooLong), KindValidation},
		{"backend unavailable", fmt.Errorf("%w after 3 attempts: status 503", ErrBackendUnavailable), KindOverloaded},
		{"malformed response", fmt.Errorf("%w: element 1 rating 11 out of range", ErrMalformedResponse), KindMalformedResponse},
		{"empty backend response", ErrEmptyBackendResponse, KindMalformedResponse},
		{"overloaded substring", errors.New("model is overloaded right now"), KindOverloaded},
		{"503 substring", errors.New("upstream returned 503"), KindOverloaded},
		{"service unavailable substring", errors.New("Service Unavailable"), KindOverloaded},
		{"network failure", errors.New("dial tcp: connection refused"), KindNetworkError},
		{"unknown", errors.New("something novel broke"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			if got.Kind != tt.want {
				t.Errorf("Classify(%v).Kind = %q, want %q", tt.err, got.Kind, tt.want)
			}
			if got.UserMessage == "" {
				t.Error("user message must not be empty")
			}
		})
	}
}

func TestClassifyUnknownIncludesDetail(t *testing.T) {
	got := Classify(errors.New("flux capacitor misaligned"))
	if got.Kind != KindUnknown {
		t.Fatalf("kind = %q, want unknown", got.Kind)
	}
	if want := "flux capacitor misaligned"; !strings.Contains(got.UserMessage, want) {
		t.Errorf("user message %q missing detail %q", got.UserMessage, want)
	}
}
