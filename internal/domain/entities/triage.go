package entities

// TriageLevel is a total-ordered urgency classification.
type TriageLevel string

const (
	LevelEmergency TriageLevel = "Emergency"
	LevelUrgent    TriageLevel = "Urgent"
	LevelRoutine   TriageLevel = "Routine"
	LevelSelfCare  TriageLevel = "Self-care"
)

// Rank returns the severity order of a level, higher is more severe.
func (l TriageLevel) Rank() int {
	switch l {
	case LevelEmergency:
		return 3
	case LevelUrgent:
		return 2
	case LevelRoutine:
		return 1
	default:
		return 0
	}
}

// MoreSevereThan reports whether l outranks other.
func (l TriageLevel) MoreSevereThan(other TriageLevel) bool {
	return l.Rank() > other.Rank()
}

// TriageResult is the outcome of a single triage request. Immutable once
// constructed; reasons keep insertion order (detected patterns first, then
// patient-context reasons).
type TriageResult struct {
	Level   TriageLevel `json:"level"`
	Reasons []string    `json:"reasons"`
	Actions []string    `json:"actions"`
}
