package entities

import "time"

// Helpfulness is the user's qualitative rating of a suggestion list.
type Helpfulness string

const (
	HelpfulnessNo       Helpfulness = "No"
	HelpfulnessSomewhat Helpfulness = "Somewhat"
	HelpfulnessYes      Helpfulness = "Yes"
)

// Multiplier converts the rating into the signed scalar that scales every
// learning update derived from this feedback event. Unknown ratings fall
// back to the Somewhat multiplier.
func (h Helpfulness) Multiplier() float64 {
	switch h {
	case HelpfulnessNo:
		return -0.5
	case HelpfulnessYes:
		return 0.5
	default:
		return 0.1
	}
}

// FeedbackEvent is one append-only record of user feedback on a shown
// suggestion list. Events are never mutated or deleted; the weight tables
// are derived caches of their accumulated effects.
type FeedbackEvent struct {
	ID               string                `json:"id"`
	Timestamp        time.Time             `json:"timestamp"`
	UserID           string                `json:"user_id,omitempty"`
	Symptoms         string                `json:"symptoms"`
	Predictions      []ConditionSuggestion `json:"predictions"`
	CorrectCondition string                `json:"correct_condition,omitempty"`
	Helpfulness      Helpfulness           `json:"helpful_score"`
	Comments         string                `json:"comments,omitempty"`
}
