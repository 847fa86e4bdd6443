package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carepilot/symptom-triage/backend/internal/api/handlers"
	"github.com/carepilot/symptom-triage/backend/internal/domain/entities"
)

type stubConditionAdvisor struct {
	lastCondition string
	lastAge       *int
	lastDuration  *float64
}

func (s *stubConditionAdvisor) Recommendations(condition string) *entities.ConditionRecommendations {
	s.lastCondition = condition
	return &entities.ConditionRecommendations{
		ImmediateActions: []string{"Rest in a dark room"},
		WarningSigns:     []string{"Sudden worst-ever headache"},
		Prevention:       []string{"Maintain a regular sleep schedule"},
	}
}

func (s *stubConditionAdvisor) Explanation(condition string, age *int, durationHours *float64) string {
	s.lastCondition = condition
	s.lastAge = age
	s.lastDuration = durationHours
	return "A migraine is a neurological condition."
}

func (s *stubConditionAdvisor) ConditionResources(condition string) []entities.ResourceLink {
	s.lastCondition = condition
	if condition == "migraine" {
		return []entities.ResourceLink{{Name: "Migraine basics", URL: "https://example.org/migraine"}}
	}
	return nil
}

func (s *stubConditionAdvisor) GeneralResources() []entities.ResourceLink {
	return []entities.ResourceLink{{Name: "Symptom checker guide", URL: "https://example.org/guide"}}
}

func TestConditionHandler_GetRecommendations(t *testing.T) {
	service := &stubConditionAdvisor{}
	handler := handlers.NewConditionHandler(service)

	req := httptest.NewRequest("GET", "/api/conditions/migraine/recommendations", nil)
	req.SetPathValue("condition", "migraine")
	w := httptest.NewRecorder()

	handler.GetRecommendations(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "migraine", service.lastCondition)

	var recs entities.ConditionRecommendations
	err := json.NewDecoder(w.Body).Decode(&recs)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Rest in a dark room"}, recs.ImmediateActions)
}

func TestConditionHandler_GetExplanation_WithContext(t *testing.T) {
	service := &stubConditionAdvisor{}
	handler := handlers.NewConditionHandler(service)

	req := httptest.NewRequest("GET", "/api/conditions/migraine/explanation?age=70&duration_hours=12.5", nil)
	req.SetPathValue("condition", "migraine")
	w := httptest.NewRecorder()

	handler.GetExplanation(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, service.lastAge)
	assert.Equal(t, 70, *service.lastAge)
	assert.NotNil(t, service.lastDuration)
	assert.Equal(t, 12.5, *service.lastDuration)

	var response map[string]string
	err := json.NewDecoder(w.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "migraine", response["condition"])
	assert.NotEmpty(t, response["explanation"])
}

func TestConditionHandler_GetExplanation_RejectsBadAge(t *testing.T) {
	handler := handlers.NewConditionHandler(&stubConditionAdvisor{})

	req := httptest.NewRequest("GET", "/api/conditions/migraine/explanation?age=abc", nil)
	req.SetPathValue("condition", "migraine")
	w := httptest.NewRecorder()

	handler.GetExplanation(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConditionHandler_GetConditionResources_UnknownConditionIsEmpty(t *testing.T) {
	handler := handlers.NewConditionHandler(&stubConditionAdvisor{})

	req := httptest.NewRequest("GET", "/api/conditions/unknownitis/resources", nil)
	req.SetPathValue("condition", "unknownitis")
	w := httptest.NewRecorder()

	handler.GetConditionResources(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Resources []entities.ResourceLink `json:"resources"`
	}
	err := json.NewDecoder(w.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Empty(t, response.Resources)
}

func TestConditionHandler_GetGeneralResources(t *testing.T) {
	handler := handlers.NewConditionHandler(&stubConditionAdvisor{})

	req := httptest.NewRequest("GET", "/api/resources", nil)
	w := httptest.NewRecorder()

	handler.GetGeneralResources(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Resources []entities.ResourceLink `json:"resources"`
	}
	err := json.NewDecoder(w.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Len(t, response.Resources, 1)
}
