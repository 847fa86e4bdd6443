package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/carepilot/symptom-triage/backend/internal/domain/entities"
)

// ConditionAdvisor defines the per-condition guidance operations used by the handler.
type ConditionAdvisor interface {
	Recommendations(condition string) *entities.ConditionRecommendations
	Explanation(condition string, age *int, durationHours *float64) string
	ConditionResources(condition string) []entities.ResourceLink
	GeneralResources() []entities.ResourceLink
}

// ConditionHandler handles condition guidance HTTP requests
type ConditionHandler struct {
	service ConditionAdvisor
}

// NewConditionHandler creates a new condition handler
func NewConditionHandler(service ConditionAdvisor) *ConditionHandler {
	return &ConditionHandler{
		service: service,
	}
}

// GetRecommendations handles GET /api/conditions/{condition}/recommendations
func (h *ConditionHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	condition := strings.TrimSpace(r.PathValue("condition"))
	if condition == "" {
		respondWithError(w, http.StatusBadRequest, "condition is required")
		return
	}

	respondWithJSON(w, http.StatusOK, h.service.Recommendations(condition))
}

// GetExplanation handles GET /api/conditions/{condition}/explanation
func (h *ConditionHandler) GetExplanation(w http.ResponseWriter, r *http.Request) {
	condition := strings.TrimSpace(r.PathValue("condition"))
	if condition == "" {
		respondWithError(w, http.StatusBadRequest, "condition is required")
		return
	}

	var age *int
	if raw := r.URL.Query().Get("age"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 || parsed > 120 {
			respondWithError(w, http.StatusBadRequest, "age must be between 0 and 120")
			return
		}
		age = &parsed
	}

	var durationHours *float64
	if raw := r.URL.Query().Get("duration_hours"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			respondWithError(w, http.StatusBadRequest, "duration_hours must not be negative")
			return
		}
		durationHours = &parsed
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"condition":   condition,
		"explanation": h.service.Explanation(condition, age, durationHours),
	})
}

// GetConditionResources handles GET /api/conditions/{condition}/resources
func (h *ConditionHandler) GetConditionResources(w http.ResponseWriter, r *http.Request) {
	condition := strings.TrimSpace(r.PathValue("condition"))
	if condition == "" {
		respondWithError(w, http.StatusBadRequest, "condition is required")
		return
	}

	resources := h.service.ConditionResources(condition)
	if resources == nil {
		resources = []entities.ResourceLink{}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"condition": condition,
		"resources": resources,
	})
}

// GetGeneralResources handles GET /api/resources
func (h *ConditionHandler) GetGeneralResources(w http.ResponseWriter, r *http.Request) {
	resources := h.service.GeneralResources()
	if resources == nil {
		resources = []entities.ResourceLink{}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"resources": resources,
	})
}
