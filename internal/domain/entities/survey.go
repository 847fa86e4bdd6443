package entities

import "time"

// Survey is one submitted symptom-check form, mirrored best-effort to the
// remote row store for later analysis. Local triage never reads it back.
type Survey struct {
	UserID         string    `json:"user_id,omitempty"`
	Age            int       `json:"age"`
	DurationHours  float64   `json:"duration_hours"`
	SymptomsText   string    `json:"symptoms_text"`
	MedicalHistory string    `json:"medical_history,omitempty"`
	PainScale      int       `json:"pain_scale"`
	Severity       string    `json:"severity"`
	CreatedAt      time.Time `json:"created_at"`
}
