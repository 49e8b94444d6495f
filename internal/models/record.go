package models

import (
	"time"

	"github.com/google/uuid"
)

// Suggestion is one refined prompt variant with its quality rating (0-10).
type Suggestion struct {
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

// PromptRecord is a persisted refinement result owned by a user. Records are
// created temporary with a retention deadline; saving or favoriting makes
// them permanent. Up to three suggestion slots are stored, mirroring the
// dashboard layout.
type PromptRecord struct {
	ID           uuid.UUID `json:"id" db:"id"`
	UserID       uuid.UUID `json:"user_id" db:"user_id"`
	OriginalText string    `json:"original_text" db:"original_text"`
	Level        string    `json:"level" db:"level"`
	CustomStyles string    `json:"custom_styles,omitempty" db:"custom_styles"`

	RefinedText1   *string `json:"refined_text_1,omitempty" db:"refined_text_1"`
	RefinedRating1 *int    `json:"refined_rating_1,omitempty" db:"refined_rating_1"`
	RefinedText2   *string `json:"refined_text_2,omitempty" db:"refined_text_2"`
	RefinedRating2 *int    `json:"refined_rating_2,omitempty" db:"refined_rating_2"`
	RefinedText3   *string `json:"refined_text_3,omitempty" db:"refined_text_3"`
	RefinedRating3 *int    `json:"refined_rating_3,omitempty" db:"refined_rating_3"`

	IsFavorite  bool       `json:"is_favorite" db:"is_favorite"`
	IsTemporary bool       `json:"is_temporary" db:"is_temporary"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty" db:"expires_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// Expired reports whether the record is a temporary record past its
// retention deadline. Expired records must not be shown to the user.
func (r *PromptRecord) Expired(now time.Time) bool {
	return r.IsTemporary && r.ExpiresAt != nil && r.ExpiresAt.Before(now)
}

// Suggestions collects the populated suggestion slots in order.
func (r *PromptRecord) Suggestions() []Suggestion {
	var out []Suggestion
	for _, slot := range []struct {
		text   *string
		rating *int
	}{
		{r.RefinedText1, r.RefinedRating1},
		{r.RefinedText2, r.RefinedRating2},
		{r.RefinedText3, r.RefinedRating3},
	} {
		if slot.text != nil && slot.rating != nil {
			out = append(out, Suggestion{Text: *slot.text, Rating: *slot.rating})
		}
	}
	return out
}

// SetSuggestions fills the three suggestion slots from the given list,
// ignoring anything past the third entry.
func (r *PromptRecord) SetSuggestions(suggestions []Suggestion) {
	texts := []**string{&r.RefinedText1, &r.RefinedText2, &r.RefinedText3}
	ratings := []**int{&r.RefinedRating1, &r.RefinedRating2, &r.RefinedRating3}
	for i := 0; i < len(suggestions) && i < 3; i++ {
		s := suggestions[i]
		text := s.Text
		rating := s.Rating
		*texts[i] = &text
		*ratings[i] = &rating
	}
}
