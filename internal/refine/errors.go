package refine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/promptweaver/api/internal/llm"
)

// Validation errors, returned before any network activity.
var (
	ErrEmptyInstruction   = errors.New("instruction is empty")
	ErrInstructionTooLong = errors.New("instruction exceeds the maximum length")
)

// Generation errors.
var (
	// ErrBackendUnavailable is returned when every attempt failed with a
	// transient backend condition.
	ErrBackendUnavailable = errors.New("generation backend unavailable")

	// ErrEmptyBackendResponse is returned when the backend answered with no
	// payload at all. This is a contract violation, not a transient
	// condition, and is never retried.
	ErrEmptyBackendResponse = errors.New("generation backend returned an empty response")

	// ErrMalformedResponse is returned when the backend's payload does not
	// match the expected suggestions schema. A single violating element
	// invalidates the whole response.
	ErrMalformedResponse = errors.New("backend did not return the expected refined prompts")
)

// Kind is the coarse error taxonomy surfaced to callers.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindOverloaded        Kind = "overloaded"
	KindMalformedResponse Kind = "malformed_response"
	KindNetworkError      Kind = "network_error"
	KindUnknown           Kind = "unknown"
)

// Classified pairs an error kind with a user-facing message.
type Classified struct {
	Kind        Kind   `json:"kind"`
	UserMessage string `json:"user_message"`
}

// Classify maps a raw failure from the refinement pipeline into the error
// taxonomy and produces the message shown to the user. Where structured
// classification is unavailable it falls back to case-insensitive substring
// matching on the failure text.
func Classify(err error) Classified {
	switch {
	case errors.Is(err, ErrEmptyInstruction):
		return Classified{KindValidation, "Please enter an idea to refine."}
	case errors.Is(err, ErrInstructionTooLong):
		return Classified{KindValidation, "Your idea is too long. Please shorten it and try again."}
	case errors.Is(err, ErrBackendUnavailable):
		return Classified{KindOverloaded, "The AI model is currently busy or overloaded. Please try again in a few moments."}
	case errors.Is(err, ErrMalformedResponse), errors.Is(err, ErrEmptyBackendResponse):
		return Classified{KindMalformedResponse, "The AI did not return usable prompt suggestions. You might want to try rephrasing your idea or trying again."}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "overloaded"), strings.Contains(msg, "service unavailable"), strings.Contains(msg, "503"):
		return Classified{KindOverloaded, "The AI model is currently busy or overloaded. Please try again in a few moments."}
	case strings.Contains(msg, "did not return the expected"), strings.Contains(msg, "invalid format"):
		return Classified{KindMalformedResponse, "The AI did not return usable prompt suggestions. You might want to try rephrasing your idea or trying again."}
	case llm.IsNetwork(err):
		return Classified{KindNetworkError, "Could not reach the refinement service. Please check your connection and that the service is available."}
	}

	return Classified{KindUnknown, fmt.Sprintf("An error occurred while refining your prompt: %s", err.Error())}
}
