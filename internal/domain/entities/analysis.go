package entities

// SymptomAnalysis holds display-oriented descriptors extracted from free
// symptom text. It feeds no other subsystem.
type SymptomAnalysis struct {
	Severity       string   `json:"severity"`
	DurationClass  string   `json:"duration"`
	Onset          string   `json:"onset"`
	BodyParts      []string `json:"body_parts"`
	PatternMatches []string `json:"pattern_matches"`
	BodySystems    []string `json:"body_systems_affected"`
	UrgencyLevel   string   `json:"urgency_level"`
}
