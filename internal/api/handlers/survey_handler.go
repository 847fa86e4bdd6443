package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/carepilot/symptom-triage/backend/internal/domain/entities"
)

// SurveySubmitter defines the survey operation used by the handler.
type SurveySubmitter interface {
	Submit(ctx context.Context, survey *entities.Survey) error
}

// SurveyHandler handles survey submission HTTP requests
type SurveyHandler struct {
	service SurveySubmitter
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(service SurveySubmitter) *SurveyHandler {
	return &SurveyHandler{
		service: service,
	}
}

// SubmitSurvey handles POST /api/surveys
func (h *SurveyHandler) SubmitSurvey(w http.ResponseWriter, r *http.Request) {
	var survey entities.Survey
	if err := json.NewDecoder(r.Body).Decode(&survey); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	survey.SymptomsText = strings.TrimSpace(survey.SymptomsText)
	if survey.SymptomsText == "" {
		respondWithError(w, http.StatusBadRequest, "symptoms_text is required")
		return
	}
	if survey.Age < 0 || survey.Age > 120 {
		respondWithError(w, http.StatusBadRequest, "age must be between 0 and 120")
		return
	}
	if survey.DurationHours < 0 {
		respondWithError(w, http.StatusBadRequest, "duration_hours must not be negative")
		return
	}
	if survey.PainScale < 0 || survey.PainScale > 10 {
		respondWithError(w, http.StatusBadRequest, "pain_scale must be between 0 and 10")
		return
	}

	if err := h.service.Submit(r.Context(), &survey); err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to submit survey")
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{
		"status": "received",
	})
}
