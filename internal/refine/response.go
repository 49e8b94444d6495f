package refine

import (
	"fmt"
	"math"

	"github.com/promptweaver/api/internal/models"
)

// ValidateResponse checks the backend's payload against the expected schema:
// a non-empty "refinedPrompts" array whose every element has a string
// "promptText" and a numeric "rating" within [0, 10]. Validation is
// all-or-nothing: a single violating element invalidates the whole response,
// so partially garbled AI output is never partially trusted.
func ValidateResponse(raw *RawOutput) ([]models.Suggestion, error) {
	if raw == nil || raw.Payload == nil {
		return nil, ErrEmptyBackendResponse
	}

	arr, ok := raw.Payload["refinedPrompts"].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: missing refinedPrompts array", ErrMalformedResponse)
	}
	if len(arr) == 0 {
		return nil, fmt.Errorf("%w: refinedPrompts array is empty", ErrMalformedResponse)
	}

	suggestions := make([]models.Suggestion, 0, len(arr))
	for i, el := range arr {
		obj, ok := el.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: element %d is not an object", ErrMalformedResponse, i)
		}

		text, ok := obj["promptText"].(string)
		if !ok || text == "" {
			return nil, fmt.Errorf("%w: element %d has no promptText", ErrMalformedResponse, i)
		}

		rating, ok := obj["rating"].(float64)
		if !ok {
			return nil, fmt.Errorf("%w: element %d has a non-numeric rating", ErrMalformedResponse, i)
		}
		if rating < 0 || rating > 10 {
			return nil, fmt.Errorf("%w: element %d rating %v out of range [0,10]", ErrMalformedResponse, i, rating)
		}

		suggestions = append(suggestions, models.Suggestion{
			Text:   text,
			Rating: int(math.Round(rating)),
		})
	}

	return suggestions, nil
}
