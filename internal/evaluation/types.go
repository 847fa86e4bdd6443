package evaluation

import (
	"time"

	"github.com/carepilot/symptom-triage/backend/internal/domain/entities"
)

// GoldenCase represents a labeled symptom description with expected outcomes.
type GoldenCase struct {
	ID                 string   `json:"id"`
	Text               string   `json:"text"`
	Age                *int     `json:"age,omitempty"`
	DurationHours      *float64 `json:"duration_hours,omitempty"`
	MedicalHistory     string   `json:"medical_history,omitempty"`
	PainScale          *int     `json:"pain_scale,omitempty"`
	Severity           string   `json:"severity,omitempty"`
	ExpectedLevel      string   `json:"expected_level"`
	ExpectedConditions []string `json:"expected_conditions"`
	Difficulty         string   `json:"difficulty"` // easy, medium, hard
}

// Report converts the case into the request shape the services consume.
func (c *GoldenCase) Report() *entities.SymptomReport {
	return &entities.SymptomReport{
		Text:           c.Text,
		Age:            c.Age,
		DurationHours:  c.DurationHours,
		MedicalHistory: c.MedicalHistory,
		PainScale:      c.PainScale,
		Severity:       c.Severity,
	}
}

// EvalResult holds the evaluation outcome for a single case.
type EvalResult struct {
	CaseID              string
	Text                string
	ExpectedLevel       entities.TriageLevel
	ActualLevel         entities.TriageLevel
	LevelMatch          bool
	Undertriaged        bool
	RecallAt5           float64
	MRRAt5              float64
	SuggestionCount     int
	RetrievedConditions []string
	Latency             time.Duration
}

// EvalSummary holds aggregate metrics across all golden cases.
type EvalSummary struct {
	TotalCases          int
	LevelAccuracy       float64
	UndertriageRate     float64
	AvgRecallAt5        float64
	AvgMRRAt5           float64
	AvgLatency          time.Duration
	CasesWithSuggestion int // cases that returned at least 1 suggestion
	ByLevel             map[entities.TriageLevel]*LevelSummary
}

// LevelSummary holds metrics grouped by expected triage level.
type LevelSummary struct {
	Count        int
	Accuracy     float64
	AvgRecallAt5 float64
}
