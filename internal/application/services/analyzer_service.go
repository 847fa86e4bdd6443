package services

import (
	"strings"

	"github.com/carepilot/symptom-triage/backend/internal/domain/entities"
	"github.com/carepilot/symptom-triage/backend/internal/taxonomy"
)

// SymptomAnalyzerService derives structured descriptors from free-text
// symptom descriptions. It is read-only and shares no state with triage or
// suggestion scoring.
type SymptomAnalyzerService struct {
	view *taxonomy.AnalysisView
}

func NewSymptomAnalyzerService(view *taxonomy.AnalysisView) *SymptomAnalyzerService {
	return &SymptomAnalyzerService{view: view}
}

// Analyze extracts severity, onset, duration class, body parts, named
// symptom patterns, affected body systems and an urgency hint from the text.
func (s *SymptomAnalyzerService) Analyze(symptomText string) *entities.SymptomAnalysis {
	text := strings.ToLower(symptomText)

	return &entities.SymptomAnalysis{
		Severity:       s.view.Severity(text),
		DurationClass:  s.view.DurationClass(text),
		Onset:          s.view.Onset(text),
		BodyParts:      s.view.BodyParts(text),
		PatternMatches: s.view.PatternMatches(text),
		BodySystems:    s.view.BodySystems(text),
		UrgencyLevel:   s.view.UrgencyLevel(text),
	}
}
