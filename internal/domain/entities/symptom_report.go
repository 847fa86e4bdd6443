package entities

// SymptomReport carries one request's symptom description plus optional
// patient context. It has no identity and is never persisted on its own.
type SymptomReport struct {
	Text           string   `json:"text"`
	Age            *int     `json:"age,omitempty"`
	DurationHours  *float64 `json:"duration_hours,omitempty"`
	MedicalHistory string   `json:"medical_history,omitempty"`
	PainScale      *int     `json:"pain_scale,omitempty"`
	Severity       string   `json:"severity,omitempty"`
}
