package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/carepilot/symptom-triage/backend/internal/domain/entities"
)

// SymptomAnalyzer defines the analysis operation used by the handler.
type SymptomAnalyzer interface {
	Analyze(symptomText string) *entities.SymptomAnalysis
}

// AnalysisHandler handles symptom analysis HTTP requests
type AnalysisHandler struct {
	service SymptomAnalyzer
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(service SymptomAnalyzer) *AnalysisHandler {
	return &AnalysisHandler{
		service: service,
	}
}

type analysisRequest struct {
	Text string `json:"text"`
}

// AnalyzeSymptoms handles POST /api/analysis
func (h *AnalysisHandler) AnalyzeSymptoms(w http.ResponseWriter, r *http.Request) {
	var payload analysisRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	payload.Text = strings.TrimSpace(payload.Text)
	if payload.Text == "" {
		respondWithError(w, http.StatusBadRequest, "symptom text is required")
		return
	}
	if len(payload.Text) > 2000 {
		respondWithError(w, http.StatusBadRequest, "symptom text is too long")
		return
	}

	analysis := h.service.Analyze(payload.Text)
	respondWithJSON(w, http.StatusOK, analysis)
}
