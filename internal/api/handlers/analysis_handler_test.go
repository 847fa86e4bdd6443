package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carepilot/symptom-triage/backend/internal/api/handlers"
	"github.com/carepilot/symptom-triage/backend/internal/domain/entities"
)

type stubAnalyzer struct {
	lastText string
}

func (s *stubAnalyzer) Analyze(symptomText string) *entities.SymptomAnalysis {
	s.lastText = symptomText
	return &entities.SymptomAnalysis{
		Severity:      "severe",
		DurationClass: "acute",
		Onset:         "sudden",
		BodyParts:     []string{"chest"},
		BodySystems:   []string{"cardiovascular"},
		UrgencyLevel:  "emergency",
	}
}

func TestAnalysisHandler_AnalyzeSymptoms_Success(t *testing.T) {
	service := &stubAnalyzer{}
	handler := handlers.NewAnalysisHandler(service)

	body := `{"text":"sudden severe chest pain"}`
	req := httptest.NewRequest("POST", "/api/analysis", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.AnalyzeSymptoms(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sudden severe chest pain", service.lastText)

	var analysis entities.SymptomAnalysis
	err := json.NewDecoder(w.Body).Decode(&analysis)
	assert.NoError(t, err)
	assert.Equal(t, "severe", analysis.Severity)
	assert.Equal(t, []string{"chest"}, analysis.BodyParts)
}

func TestAnalysisHandler_AnalyzeSymptoms_RequiresText(t *testing.T) {
	handler := handlers.NewAnalysisHandler(&stubAnalyzer{})

	req := httptest.NewRequest("POST", "/api/analysis", strings.NewReader(`{"text":""}`))
	w := httptest.NewRecorder()

	handler.AnalyzeSymptoms(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
