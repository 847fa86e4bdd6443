package services

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/carepilot/symptom-triage/backend/internal/domain/entities"
	"github.com/carepilot/symptom-triage/backend/internal/domain/providers"
	"github.com/carepilot/symptom-triage/backend/internal/domain/repositories"
	"github.com/carepilot/symptom-triage/backend/internal/taxonomy"
)

// Learning deltas. Every delta is scaled by the helpfulness multiplier of
// the event that produced it.
const (
	weightDeltaCorrectTop   = 0.1
	weightDeltaWrongTop     = 0.05
	weightDeltaNoCorrection = 0.02

	correctionDeltaCorrect = 0.2
	correctionDeltaWrong   = 0.1

	// Learned weights are clamped to this range at write time so repeated
	// feedback on the same tokens cannot drift scores without bound.
	weightFloor   = -5.0
	weightCeiling = 5.0

	similarityTokenBonus = 0.05
	similarityBonusCap   = 0.2
	strongPatternBonus   = 0.1
	emergencyMatchBonus  = 0.15
	confidenceBonusCap   = 0.2
)

// LearningService records feedback events and applies the learned weight
// tables to fresh suggestions. All table mutation is serialized behind one
// mutex; the append-only event log is the authoritative history and the
// tables are derived caches rebuilt from it by the backfill command.
type LearningService struct {
	mu            sync.Mutex
	view          *taxonomy.LearningView
	stateRepo     repositories.LearningStateRepository
	logRepo       repositories.FeedbackLogRepository
	mirror        repositories.RowStoreRepository // nil disables mirroring
	bus           providers.EventBus              // nil disables notifications
	state         *repositories.LearningState
	feedbackCount int
}

func NewLearningService(
	view *taxonomy.LearningView,
	stateRepo repositories.LearningStateRepository,
	logRepo repositories.FeedbackLogRepository,
	mirror repositories.RowStoreRepository,
	bus providers.EventBus,
) (*LearningService, error) {
	state, err := stateRepo.Load(context.Background())
	if err != nil {
		return nil, err
	}
	return &LearningService{
		view:      view,
		stateRepo: stateRepo,
		logRepo:   logRepo,
		mirror:    mirror,
		bus:       bus,
		state:     state,
	}, nil
}

// Record appends the event to the durable log, mirrors it best-effort,
// folds it into the weight tables and persists them. A log-append failure
// is returned to the caller; mirror and notification failures are not.
func (s *LearningService) Record(ctx context.Context, event *entities.FeedbackEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.Helpfulness == "" {
		event.Helpfulness = entities.HelpfulnessSomewhat
	}

	if err := s.logRepo.Append(ctx, event); err != nil {
		return err
	}

	s.mirrorFeedback(ctx, event)

	s.mu.Lock()
	s.updatePatternWeights(event)
	s.updateConditionCorrections(event)
	s.state.Version++
	s.feedbackCount++
	version := s.state.Version
	count := s.feedbackCount
	err := s.stateRepo.Save(ctx, s.state)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.publishUpdate(ctx, version, count)
	return nil
}

// Apply adjusts suggestion scores using the learned tables and re-sorts the
// list descending. The input slice is not modified.
func (s *LearningService) Apply(symptoms string, suggestions []entities.ConditionSuggestion) []entities.ConditionSuggestion {
	if len(suggestions) == 0 {
		return suggestions
	}
	normalized := taxonomy.NormalizeText(symptoms)
	patterns := s.view.ExtractPatterns(normalized)

	s.mu.Lock()
	defer s.mu.Unlock()

	patternAdjustment := 0.0
	strongPatterns := 0
	for _, p := range patterns {
		w := s.state.Weights[p]
		patternAdjustment += w * s.view.PatternScale(p)
		if w > 0.2 {
			strongPatterns++
		}
	}

	adjusted := make([]entities.ConditionSuggestion, len(suggestions))
	for i, sug := range suggestions {
		total := patternAdjustment +
			s.state.Corrections[normalized][sug.Condition] +
			s.similarityAdjustment(normalized, sug.Condition) +
			s.confidenceAdjustment(normalized, sug.Condition, strongPatterns)

		adjusted[i] = sug
		adjusted[i].Score = entities.ClampScore(sug.Score + total)
		adjusted[i].Confidence = entities.ConfidenceLabel(adjusted[i].Score)
	}

	sort.SliceStable(adjusted, func(i, j int) bool { return adjusted[i].Score > adjusted[j].Score })
	return adjusted
}

// PatternWeight returns the current learned weight for a token.
func (s *LearningService) PatternWeight(pattern string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Weights[pattern]
}

// ConditionCorrection returns the learned correction for a condition under
// the normalized symptom text.
func (s *LearningService) ConditionCorrection(symptoms, condition string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Corrections[taxonomy.NormalizeText(symptoms)][condition]
}

// StateVersion returns the version of the in-memory weight tables.
func (s *LearningService) StateVersion() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Version
}

// Reload replaces the in-memory tables with the durable snapshot. Called
// when another instance publishes a weights-updated event.
func (s *LearningService) Reload(ctx context.Context) error {
	state, err := s.stateRepo.Load(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	if state.Version >= s.state.Version {
		s.state = state
	}
	s.mu.Unlock()
	return nil
}

// Rebuild discards the weight tables and re-derives them from the given
// event history, then persists the result. Used by the backfill command to
// recover from a lost or corrupted table file; the event log stays untouched.
func (s *LearningService) Rebuild(ctx context.Context, events []entities.FeedbackEvent) error {
	s.mu.Lock()
	s.state = &repositories.LearningState{
		Weights:     make(repositories.PatternWeights),
		Corrections: make(repositories.ConditionCorrections),
	}
	for i := range events {
		event := &events[i]
		if event.Helpfulness == "" {
			event.Helpfulness = entities.HelpfulnessSomewhat
		}
		s.updatePatternWeights(event)
		s.updateConditionCorrections(event)
		s.state.Version++
	}
	s.feedbackCount = len(events)
	version := s.state.Version
	err := s.stateRepo.Save(ctx, s.state)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.publishUpdate(ctx, version, len(events))
	return nil
}

func (s *LearningService) updatePatternWeights(event *entities.FeedbackEvent) {
	normalized := taxonomy.NormalizeText(event.Symptoms)
	patterns := s.view.ExtractPatterns(normalized)
	multiplier := event.Helpfulness.Multiplier()

	var topCondition string
	if len(event.Predictions) > 0 {
		topCondition = event.Predictions[0].Condition
	}

	for _, pattern := range patterns {
		var delta float64
		if event.CorrectCondition != "" {
			if topCondition == event.CorrectCondition {
				delta = weightDeltaCorrectTop * multiplier
			} else {
				delta = -weightDeltaWrongTop * multiplier
			}
		} else {
			delta = weightDeltaNoCorrection * multiplier
		}
		s.state.Weights[pattern] = clampWeight(s.state.Weights[pattern] + delta)
	}
}

func (s *LearningService) updateConditionCorrections(event *entities.FeedbackEvent) {
	if event.CorrectCondition == "" {
		return
	}
	normalized := taxonomy.NormalizeText(event.Symptoms)
	multiplier := event.Helpfulness.Multiplier()

	corrections := s.state.Corrections[normalized]
	if corrections == nil {
		corrections = make(map[string]float64)
		s.state.Corrections[normalized] = corrections
	}
	for _, pred := range event.Predictions {
		var delta float64
		if pred.Condition == event.CorrectCondition {
			delta = correctionDeltaCorrect * multiplier
		} else {
			delta = -correctionDeltaWrong * multiplier
		}
		corrections[pred.Condition] = clampWeight(corrections[pred.Condition] + delta)
	}
}

// similarityAdjustment rewards conditions that were confirmed for symptom
// texts sharing tokens with the current one.
func (s *LearningService) similarityAdjustment(normalized, condition string) float64 {
	score := 0.0
	current := strings.Fields(normalized)
	for key, corrections := range s.state.Corrections {
		if corrections[condition] <= 0.1 {
			continue
		}
		score += similarityTokenBonus * float64(sharedTokens(current, strings.Fields(key)))
	}
	if score > similarityBonusCap {
		return similarityBonusCap
	}
	return score
}

// confidenceAdjustment rewards strong learned patterns and emergency
// conditions paired with emergency wording.
func (s *LearningService) confidenceAdjustment(normalized, condition string, strongPatterns int) float64 {
	score := strongPatternBonus * float64(strongPatterns)
	if s.view.IsEmergencyCondition(condition) && s.view.HasEmergencyMarkers(normalized) {
		score += emergencyMatchBonus
	}
	if score > confidenceBonusCap {
		return confidenceBonusCap
	}
	return score
}

// mirrorFeedback inserts the event into the relational mirror. The mirror
// is an optional convenience copy: any failure is logged and swallowed,
// and an insert rejected over the user reference is retried once without it.
func (s *LearningService) mirrorFeedback(ctx context.Context, event *entities.FeedbackEvent) {
	if s.mirror == nil {
		return
	}

	predictions, err := json.Marshal(event.Predictions)
	if err != nil {
		log.Warn().Err(err).Msg("failed to encode predictions for feedback mirror")
		return
	}

	row := map[string]interface{}{
		"symptoms":          event.Symptoms,
		"predictions":       string(predictions),
		"correct_condition": event.CorrectCondition,
		"helpful_score":     string(event.Helpfulness),
		"comments":          event.Comments,
		"created_at":        event.Timestamp,
	}
	if event.UserID != "" {
		row["user_id"] = event.UserID
	}

	if err := s.mirror.Insert(ctx, "feedback", row); err != nil {
		if _, hasUser := row["user_id"]; hasUser && strings.Contains(err.Error(), "user_id") {
			delete(row, "user_id")
			if retryErr := s.mirror.Insert(ctx, "feedback", row); retryErr != nil {
				log.Warn().Err(retryErr).Msg("feedback mirror retry without user_id failed")
			}
			return
		}
		log.Warn().Err(err).Msg("feedback mirror insert failed")
	}
}

func (s *LearningService) publishUpdate(ctx context.Context, version int64, count int) {
	if s.bus == nil {
		return
	}
	event := entities.NewLearningEvent(entities.LearningEventTypeWeightsUpdated, version, count)
	if err := s.bus.Publish(ctx, providers.EventChannelLearningUpdates, event); err != nil {
		log.Warn().Err(err).Msg("failed to publish learning update event")
	}
}

func clampWeight(w float64) float64 {
	if w < weightFloor {
		return weightFloor
	}
	if w > weightCeiling {
		return weightCeiling
	}
	return w
}

func sharedTokens(a, b []string) int {
	set := make(map[string]bool, len(a))
	for _, t := range a {
		set[t] = true
	}
	n := 0
	seen := make(map[string]bool, len(b))
	for _, t := range b {
		if set[t] && !seen[t] {
			seen[t] = true
			n++
		}
	}
	return n
}
