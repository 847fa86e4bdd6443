package entities

// ConditionSuggestion is a scored candidate condition for a symptom description.
type ConditionSuggestion struct {
	Condition  string  `json:"condition"`
	Score      float64 `json:"score"`
	Severity   string  `json:"severity"`
	Category   string  `json:"category"`
	Confidence string  `json:"confidence"`
}

// Severity tags carried by suggestions.
const (
	SeverityEmergency = "emergency"
	SeverityUrgent    = "urgent"
	SeverityRoutine   = "routine"
)

// ConfidenceLabel derives the display confidence from a score.
func ConfidenceLabel(score float64) string {
	switch {
	case score > 0.7:
		return "high"
	case score > 0.5:
		return "moderate"
	default:
		return "low"
	}
}

// ClampScore bounds a score to the [0, 1] range.
func ClampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
