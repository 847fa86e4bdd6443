package repositories

import "context"

// PatternWeights maps a pattern token to its learned signed weight.
// Unseen tokens read as 0.
type PatternWeights map[string]float64

// ConditionCorrections maps a normalized symptom text to per-condition
// signed corrections.
type ConditionCorrections map[string]map[string]float64

// LearningState bundles both weight tables with the monotonic version of
// the durable snapshot they were loaded from.
type LearningState struct {
	Version     int64
	Weights     PatternWeights
	Corrections ConditionCorrections
}

// LearningStateRepository persists the derived weight tables. Tables are
// rewritten in full on every save; a missing or unreadable snapshot loads
// as empty rather than failing. Save must be atomic with respect to
// concurrent readers of the backing files.
type LearningStateRepository interface {
	Load(ctx context.Context) (*LearningState, error)
	Save(ctx context.Context, state *LearningState) error
}
