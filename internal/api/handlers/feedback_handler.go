package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/carepilot/symptom-triage/backend/internal/domain/entities"
	"github.com/carepilot/symptom-triage/backend/internal/domain/providers"
	"github.com/carepilot/symptom-triage/backend/internal/infrastructure/observability"
)

const (
	feedbackRateLimit   = 5
	feedbackRateWindow  = time.Hour
	feedbackDedupWindow = 24 * time.Hour
)

// LearningRecorder defines the feedback operations used by the handler.
type LearningRecorder interface {
	Record(ctx context.Context, event *entities.FeedbackEvent) error
}

// FeedbackHandler handles feedback submissions.
type FeedbackHandler struct {
	service LearningRecorder
	cache   providers.CacheProvider
	metrics *observability.Metrics
	local   *localRateLimiter
	deduper *localDeduper
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(service LearningRecorder, cache providers.CacheProvider, metrics *observability.Metrics) *FeedbackHandler {
	return &FeedbackHandler{
		service: service,
		cache:   cache,
		metrics: metrics,
		local:   newLocalRateLimiter(),
		deduper: newLocalDeduper(),
	}
}

type feedbackRequest struct {
	Symptoms         string                         `json:"symptoms"`
	Predictions      []entities.ConditionSuggestion `json:"predictions"`
	CorrectCondition string                         `json:"correct_condition"`
	HelpfulScore     string                         `json:"helpful_score"`
	Comments         string                         `json:"comments"`
	UserID           string                         `json:"user_id"`
}

// SubmitFeedback handles POST /api/feedback
func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var payload feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	payload.Symptoms = strings.TrimSpace(payload.Symptoms)
	payload.CorrectCondition = strings.TrimSpace(payload.CorrectCondition)
	payload.Comments = strings.TrimSpace(payload.Comments)
	payload.UserID = strings.TrimSpace(payload.UserID)

	if payload.Symptoms == "" {
		respondWithError(w, http.StatusBadRequest, "symptoms text is required")
		return
	}
	if len(payload.Symptoms) > 2000 {
		respondWithError(w, http.StatusBadRequest, "symptoms text is too long")
		return
	}
	if len(payload.Comments) > 1000 {
		respondWithError(w, http.StatusBadRequest, "comments are too long")
		return
	}

	score := entities.Helpfulness(payload.HelpfulScore)
	switch score {
	case entities.HelpfulnessNo, entities.HelpfulnessSomewhat, entities.HelpfulnessYes:
	case "":
		score = entities.HelpfulnessSomewhat
	default:
		respondWithError(w, http.StatusBadRequest, "helpful_score must be No, Somewhat or Yes")
		return
	}

	key := "feedback:rate:" + clientIP(r)
	allowed, retryAfter := h.allowRequest(r.Context(), key)
	if !allowed {
		w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
		respondWithError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	dupKey := "feedback:dup:" + feedbackFingerprint(payload, string(score), clientIP(r))
	if h.isDuplicate(r.Context(), dupKey) {
		respondWithJSON(w, http.StatusAccepted, map[string]string{
			"status": "duplicate_ignored",
		})
		return
	}

	event := &entities.FeedbackEvent{
		UserID:           payload.UserID,
		Symptoms:         payload.Symptoms,
		Predictions:      payload.Predictions,
		CorrectCondition: payload.CorrectCondition,
		Helpfulness:      score,
		Comments:         payload.Comments,
	}

	start := time.Now()
	if err := h.service.Record(r.Context(), event); err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to record feedback")
		return
	}

	if h.metrics != nil {
		observability.RecordFeedback(r.Context(), h.metrics, string(score), payload.CorrectCondition != "")
		observability.RecordWeightApply(r.Context(), h.metrics, time.Since(start))
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{
		"status": "received",
		"id":     event.ID,
	})
}

func (h *FeedbackHandler) allowRequest(ctx context.Context, key string) (bool, time.Duration) {
	if h.cache == nil {
		return h.local.allow(key, feedbackRateLimit, feedbackRateWindow)
	}

	state := rateLimitState{}
	if data, err := h.cache.Get(ctx, key); err == nil {
		_ = json.Unmarshal(data, &state)
	}

	if state.Count >= feedbackRateLimit {
		return false, feedbackRateWindow
	}

	state.Count++
	data, _ := json.Marshal(state)
	_ = h.cache.Set(ctx, key, data, int(feedbackRateWindow.Seconds()))
	return true, feedbackRateWindow
}

type rateLimitState struct {
	Count int `json:"count"`
}

func (h *FeedbackHandler) isDuplicate(ctx context.Context, key string) bool {
	if h.cache == nil {
		return h.deduper.seen(key, feedbackDedupWindow)
	}

	exists, err := h.cache.Exists(ctx, key)
	if err == nil && exists {
		return true
	}

	_ = h.cache.Set(ctx, key, []byte("1"), int(feedbackDedupWindow.Seconds()))
	return false
}

type localRateLimiter struct {
	mu     sync.Mutex
	states map[string]*localRateState
}

type localRateState struct {
	count   int
	resetAt time.Time
}

func newLocalRateLimiter() *localRateLimiter {
	return &localRateLimiter{
		states: make(map[string]*localRateState),
	}
}

func (l *localRateLimiter) allow(key string, limit int, window time.Duration) (bool, time.Duration) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.states[key]
	if !ok || now.After(state.resetAt) {
		state = &localRateState{count: 0, resetAt: now.Add(window)}
		l.states[key] = state
	}

	if state.count >= limit {
		retryAfter := time.Until(state.resetAt)
		if retryAfter < 0 {
			retryAfter = window
		}
		return false, retryAfter
	}

	state.count++
	return true, window
}

type localDeduper struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func newLocalDeduper() *localDeduper {
	return &localDeduper{
		entries: make(map[string]time.Time),
	}
}

func (d *localDeduper) seen(key string, window time.Duration) bool {
	now := time.Now()

	d.mu.Lock()
	defer d.mu.Unlock()

	if expiresAt, ok := d.entries[key]; ok && now.Before(expiresAt) {
		return true
	}

	d.entries[key] = now.Add(window)
	return false
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return strings.TrimSpace(realIP)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}

func feedbackFingerprint(payload feedbackRequest, score, ip string) string {
	normalized := []string{
		normalizeFingerprintText(payload.Symptoms),
		normalizeFingerprintText(payload.CorrectCondition),
		score,
		ip,
	}

	hash := sha256.Sum256([]byte(strings.Join(normalized, "|")))
	return hex.EncodeToString(hash[:])
}

func normalizeFingerprintText(value string) string {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	if trimmed == "" {
		return ""
	}
	return strings.Join(strings.Fields(trimmed), " ")
}
