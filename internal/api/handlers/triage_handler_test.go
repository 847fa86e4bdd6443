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

type stubTriageService struct {
	lastReport *entities.SymptomReport
	result     *entities.TriageResult
}

func (s *stubTriageService) Evaluate(report *entities.SymptomReport) *entities.TriageResult {
	s.lastReport = report
	return s.result
}

func TestTriageHandler_EvaluateTriage_Success(t *testing.T) {
	service := &stubTriageService{
		result: &entities.TriageResult{
			Level:   entities.LevelUrgent,
			Reasons: []string{"Urgent concern detected"},
			Actions: []string{"Seek medical care within 24 hours"},
		},
	}
	handler := handlers.NewTriageHandler(service)

	body := `{"text":"fever and abdominal pain","age":70,"pain_scale":6}`
	req := httptest.NewRequest("POST", "/api/triage", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.EvaluateTriage(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var result entities.TriageResult
	err := json.NewDecoder(w.Body).Decode(&result)
	assert.NoError(t, err)
	assert.Equal(t, entities.LevelUrgent, result.Level)

	assert.NotNil(t, service.lastReport)
	assert.Equal(t, "fever and abdominal pain", service.lastReport.Text)
	assert.Equal(t, 70, *service.lastReport.Age)
	assert.Equal(t, 6, *service.lastReport.PainScale)
}

func TestTriageHandler_EvaluateTriage_RequiresText(t *testing.T) {
	handler := handlers.NewTriageHandler(&stubTriageService{})

	req := httptest.NewRequest("POST", "/api/triage", strings.NewReader(`{"text":"   "}`))
	w := httptest.NewRecorder()

	handler.EvaluateTriage(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTriageHandler_EvaluateTriage_RejectsInvalidAge(t *testing.T) {
	handler := handlers.NewTriageHandler(&stubTriageService{})

	req := httptest.NewRequest("POST", "/api/triage", strings.NewReader(`{"text":"headache","age":-3}`))
	w := httptest.NewRecorder()

	handler.EvaluateTriage(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTriageHandler_EvaluateTriage_RejectsInvalidPainScale(t *testing.T) {
	handler := handlers.NewTriageHandler(&stubTriageService{})

	req := httptest.NewRequest("POST", "/api/triage", strings.NewReader(`{"text":"headache","pain_scale":11}`))
	w := httptest.NewRecorder()

	handler.EvaluateTriage(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTriageHandler_EvaluateTriage_RejectsBadJSON(t *testing.T) {
	handler := handlers.NewTriageHandler(&stubTriageService{})

	req := httptest.NewRequest("POST", "/api/triage", strings.NewReader(`not json`))
	w := httptest.NewRecorder()

	handler.EvaluateTriage(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
