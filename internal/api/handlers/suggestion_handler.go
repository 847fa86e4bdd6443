package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/carepilot/symptom-triage/backend/internal/domain/entities"
)

const maxSuggestionLimit = 10

// ConditionSuggester defines the suggestion operation used by the handler.
type ConditionSuggester interface {
	Suggest(ctx context.Context, report *entities.SymptomReport, k int) ([]entities.ConditionSuggestion, error)
}

// SuggestionHandler handles condition suggestion HTTP requests
type SuggestionHandler struct {
	service ConditionSuggester
}

// NewSuggestionHandler creates a new suggestion handler
func NewSuggestionHandler(service ConditionSuggester) *SuggestionHandler {
	return &SuggestionHandler{
		service: service,
	}
}

type suggestionRequest struct {
	entities.SymptomReport
	Limit int `json:"limit"`
}

// SuggestConditions handles POST /api/suggestions
func (h *SuggestionHandler) SuggestConditions(w http.ResponseWriter, r *http.Request) {
	var payload suggestionRequest
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

	limit := payload.Limit
	if limit <= 0 {
		limit = 5
	}
	if limit > maxSuggestionLimit {
		limit = maxSuggestionLimit
	}

	suggestions, err := h.service.Suggest(r.Context(), &payload.SymptomReport, limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to suggest conditions")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"suggestions": suggestions,
		"count":       len(suggestions),
	})
}
