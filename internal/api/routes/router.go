package routes

import (
	"net/http"

	"github.com/carepilot/symptom-triage/backend/internal/api/handlers"
	"github.com/carepilot/symptom-triage/backend/internal/api/middleware"
	"github.com/carepilot/symptom-triage/backend/internal/infrastructure/observability"
)

// Router holds all route handlers

type Router struct {
	mux *http.ServeMux

	triageHandler *handlers.TriageHandler

	suggestionHandler *handlers.SuggestionHandler

	analysisHandler *handlers.AnalysisHandler

	conditionHandler *handlers.ConditionHandler

	feedbackHandler *handlers.FeedbackHandler
	surveyHandler   *handlers.SurveyHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router

func NewRouter(

	triageHandler *handlers.TriageHandler,

	suggestionHandler *handlers.SuggestionHandler,

	analysisHandler *handlers.AnalysisHandler,

	conditionHandler *handlers.ConditionHandler,

	feedbackHandler *handlers.FeedbackHandler,
	surveyHandler *handlers.SurveyHandler,

	cacheMiddleware *middleware.CacheMiddleware,

	metrics *observability.Metrics,

) *Router {

	return &Router{

		mux: http.NewServeMux(),

		triageHandler: triageHandler,

		suggestionHandler: suggestionHandler,

		analysisHandler: analysisHandler,

		conditionHandler: conditionHandler,

		feedbackHandler: feedbackHandler,
		surveyHandler:   surveyHandler,

		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
	}

}

// SetupRoutes configures all application routes

func (r *Router) SetupRoutes() http.Handler {

	// Health check endpoint

	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {

		w.WriteHeader(http.StatusOK)

		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}

	})

	// Triage endpoints

	r.mux.HandleFunc("POST /api/triage", r.triageHandler.EvaluateTriage)

	// Suggestion endpoints

	r.mux.HandleFunc("POST /api/suggestions", r.suggestionHandler.SuggestConditions)

	// Analysis endpoints

	r.mux.HandleFunc("POST /api/analysis", r.analysisHandler.AnalyzeSymptoms)

	// Condition guidance endpoints

	r.mux.HandleFunc("GET /api/conditions/{condition}/recommendations", r.conditionHandler.GetRecommendations)

	r.mux.HandleFunc("GET /api/conditions/{condition}/explanation", r.conditionHandler.GetExplanation)

	r.mux.HandleFunc("GET /api/conditions/{condition}/resources", r.conditionHandler.GetConditionResources)

	r.mux.HandleFunc("GET /api/resources", r.conditionHandler.GetGeneralResources)

	// Feedback endpoints

	r.mux.HandleFunc("POST /api/feedback", r.feedbackHandler.SubmitFeedback)

	// Survey endpoints

	r.mux.HandleFunc("POST /api/surveys", r.surveyHandler.SubmitSurvey)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// Apply HTTP performance optimizations (compression, ETag, cache headers)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
