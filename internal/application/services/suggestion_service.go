package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/carepilot/symptom-triage/backend/internal/domain/entities"
	"github.com/carepilot/symptom-triage/backend/internal/domain/providers"
	"github.com/carepilot/symptom-triage/backend/internal/taxonomy"
)

const (
	// Inputs of at most this many tokens go through the keyword table
	// instead of the classifier.
	shortInputTokenLimit = 3

	defaultSuggestionLimit = 5

	classifierCacheTTLSeconds = 24 * 60 * 60
)

// ScoreAdjuster reworks suggestion scores from accumulated feedback. It is
// applied after suggestion generation and before results are returned.
type ScoreAdjuster interface {
	Apply(symptoms string, suggestions []entities.ConditionSuggestion) []entities.ConditionSuggestion
}

// SuggestionService produces ranked, non-diagnostic condition suggestions.
// Short inputs hit the keyword table directly; longer inputs go through the
// zero-shot classifier with synonym expansion, falling back to the keyword
// path when no classifier is available.
type SuggestionService struct {
	view       *taxonomy.SuggestionView
	classifier providers.TextClassifier // nil when not configured
	cache      providers.CacheProvider  // nil when not configured
	adjuster   ScoreAdjuster            // nil disables learning adjustments
}

func NewSuggestionService(view *taxonomy.SuggestionView, classifier providers.TextClassifier, cache providers.CacheProvider, adjuster ScoreAdjuster) *SuggestionService {
	return &SuggestionService{
		view:       view,
		classifier: classifier,
		cache:      cache,
		adjuster:   adjuster,
	}
}

// Suggest returns up to k suggestions for the report, highest score first.
// Empty input yields an empty list, never an error.
func (s *SuggestionService) Suggest(ctx context.Context, report *entities.SymptomReport, k int) ([]entities.ConditionSuggestion, error) {
	if k <= 0 {
		k = defaultSuggestionLimit
	}
	text := strings.TrimSpace(report.Text)
	if text == "" {
		return []entities.ConditionSuggestion{}, nil
	}
	normalized := taxonomy.NormalizeText(text)

	var suggestions []entities.ConditionSuggestion
	if taxonomy.TokenCount(normalized) <= shortInputTokenLimit {
		suggestions = s.keywordSuggestions(normalized, report)
	}

	if len(suggestions) == 0 {
		classified, err := s.classify(ctx, normalized, report)
		if err != nil {
			log.Warn().Err(err).Msg("classifier unavailable, falling back to keyword matching")
		}
		if classified != nil {
			suggestions = classified
		} else {
			suggestions = s.keywordSuggestions(normalized, report)
		}
	}

	// Truncate before adjusting: learned weights reorder the shown list,
	// they never promote a condition the ranking already cut.
	if len(suggestions) > k {
		suggestions = suggestions[:k]
	}
	if s.adjuster != nil {
		suggestions = s.adjuster.Apply(text, suggestions)
	}
	return suggestions, nil
}

// keywordSuggestions handles exact keyword-table hits plus emergency
// keyword triggers that may fire on any input length.
func (s *SuggestionService) keywordSuggestions(normalized string, report *entities.SymptomReport) []entities.ConditionSuggestion {
	var out []entities.ConditionSuggestion

	if conditions, ok := s.view.KeywordConditions(normalized); ok {
		for _, cs := range conditions {
			score := s.adjustScore(cs.Condition, cs.Score, normalized, report)
			confidence := "moderate"
			if score > 0.7 {
				confidence = "high"
			}
			out = append(out, entities.ConditionSuggestion{
				Condition:  cs.Condition,
				Score:      entities.ClampScore(score),
				Severity:   s.view.ConditionSeverity(cs.Condition),
				Category:   s.view.ConditionCategory(cs.Condition),
				Confidence: confidence,
			})
		}
	}

	emergencyScore := 0.8
	if strings.Contains(normalized, "severe") {
		emergencyScore = 0.9
	}
	for _, condition := range s.view.EmergencyMatches(normalized) {
		out = append(out, entities.ConditionSuggestion{
			Condition:  condition,
			Score:      emergencyScore,
			Severity:   entities.SeverityEmergency,
			Category:   "emergency",
			Confidence: "high",
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > defaultSuggestionLimit {
		out = out[:defaultSuggestionLimit]
	}
	return out
}

// classify runs the zero-shot classifier over the synonym-expanded text and
// applies contextual adjustments. Returns nil when no classifier is
// configured or classification fails, signalling fallback.
func (s *SuggestionService) classify(ctx context.Context, normalized string, report *entities.SymptomReport) ([]entities.ConditionSuggestion, error) {
	if s.classifier == nil {
		return nil, nil
	}

	expanded := s.view.ExpandSynonyms(normalized)
	results, err := s.cachedClassify(ctx, expanded)
	if err != nil {
		return nil, err
	}

	out := make([]entities.ConditionSuggestion, 0, len(results))
	for _, ls := range results {
		score := s.adjustScore(ls.Label, ls.Score, normalized, report)
		score = s.view.EmergencyBoost(ls.Label, score, normalized)
		out = append(out, entities.ConditionSuggestion{
			Condition:  ls.Label,
			Score:      entities.ClampScore(score),
			Severity:   s.view.ConditionSeverity(ls.Label),
			Category:   s.view.ConditionCategory(ls.Label),
			Confidence: entities.ConfidenceLabel(score),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

// cachedClassify memoizes raw classifier output. Learning adjustments run
// after this, so cached entries stay valid as weights change.
func (s *SuggestionService) cachedClassify(ctx context.Context, expanded string) ([]providers.LabelScore, error) {
	key := classifierCacheKey(expanded)

	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key); err == nil && data != nil {
			var cached []providers.LabelScore
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	results, err := s.classifier.Classify(ctx, expanded, s.view.CandidateLabels())
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(results); err == nil {
			if err := s.cache.Set(ctx, key, data, classifierCacheTTLSeconds); err != nil {
				log.Debug().Err(err).Msg("failed to cache classifier result")
			}
		}
	}
	return results, nil
}

func (s *SuggestionService) adjustScore(condition string, score float64, normalized string, report *entities.SymptomReport) float64 {
	if report.Age != nil {
		score = s.view.AdjustForAge(condition, score, *report.Age)
	}
	if report.DurationHours != nil {
		score = s.view.AdjustForDuration(condition, score, *report.DurationHours)
	}
	if report.MedicalHistory != "" {
		score = s.view.AdjustForHistory(condition, score, report.MedicalHistory)
	}
	return score
}

func classifierCacheKey(expanded string) string {
	sum := sha256.Sum256([]byte(expanded))
	return "classifier:zeroshot:" + hex.EncodeToString(sum[:8])
}
