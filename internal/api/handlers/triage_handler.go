package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/carepilot/symptom-triage/backend/internal/domain/entities"
)

// TriageEvaluator defines the triage operation used by the handler.
type TriageEvaluator interface {
	Evaluate(report *entities.SymptomReport) *entities.TriageResult
}

// TriageHandler handles triage-related HTTP requests
type TriageHandler struct {
	service TriageEvaluator
}

// NewTriageHandler creates a new triage handler
func NewTriageHandler(service TriageEvaluator) *TriageHandler {
	return &TriageHandler{
		service: service,
	}
}

// EvaluateTriage handles POST /api/triage
func (h *TriageHandler) EvaluateTriage(w http.ResponseWriter, r *http.Request) {
	var report entities.SymptomReport
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	report.Text = strings.TrimSpace(report.Text)
	if report.Text == "" {
		respondWithError(w, http.StatusBadRequest, "symptom text is required")
		return
	}
	if len(report.Text) > 2000 {
		respondWithError(w, http.StatusBadRequest, "symptom text is too long")
		return
	}
	if report.Age != nil && (*report.Age < 0 || *report.Age > 120) {
		respondWithError(w, http.StatusBadRequest, "age must be between 0 and 120")
		return
	}
	if report.DurationHours != nil && *report.DurationHours < 0 {
		respondWithError(w, http.StatusBadRequest, "duration_hours must not be negative")
		return
	}
	if report.PainScale != nil && (*report.PainScale < 0 || *report.PainScale > 10) {
		respondWithError(w, http.StatusBadRequest, "pain_scale must be between 0 and 10")
		return
	}

	result := h.service.Evaluate(&report)
	respondWithJSON(w, http.StatusOK, result)
}
