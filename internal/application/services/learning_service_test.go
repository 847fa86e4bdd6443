package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carepilot/symptom-triage/backend/internal/domain/entities"
	"github.com/carepilot/symptom-triage/backend/internal/domain/providers"
	"github.com/carepilot/symptom-triage/backend/internal/domain/repositories"
	"github.com/carepilot/symptom-triage/backend/internal/taxonomy"
)

type memStateRepo struct {
	stored *repositories.LearningState
	saves  int
}

func newMemStateRepo() *memStateRepo {
	return &memStateRepo{stored: &repositories.LearningState{
		Weights:     repositories.PatternWeights{},
		Corrections: repositories.ConditionCorrections{},
	}}
}

func cloneState(s *repositories.LearningState) *repositories.LearningState {
	out := &repositories.LearningState{
		Version:     s.Version,
		Weights:     make(repositories.PatternWeights, len(s.Weights)),
		Corrections: make(repositories.ConditionCorrections, len(s.Corrections)),
	}
	for k, v := range s.Weights {
		out.Weights[k] = v
	}
	for k, m := range s.Corrections {
		inner := make(map[string]float64, len(m))
		for c, v := range m {
			inner[c] = v
		}
		out.Corrections[k] = inner
	}
	return out
}

func (r *memStateRepo) Load(ctx context.Context) (*repositories.LearningState, error) {
	return cloneState(r.stored), nil
}

func (r *memStateRepo) Save(ctx context.Context, state *repositories.LearningState) error {
	r.stored = cloneState(state)
	r.saves++
	return nil
}

type memLogRepo struct {
	events []entities.FeedbackEvent
	err    error
}

func (r *memLogRepo) Append(ctx context.Context, event *entities.FeedbackEvent) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, *event)
	return nil
}

func (r *memLogRepo) ReadAll(ctx context.Context) ([]entities.FeedbackEvent, error) {
	return r.events, nil
}

type memRowStore struct {
	inserts  []map[string]interface{}
	tables   []string
	failures int
	failMsg  string
}

func (r *memRowStore) Insert(ctx context.Context, table string, row map[string]interface{}) error {
	if r.failures > 0 {
		r.failures--
		return errors.New(r.failMsg)
	}
	copied := make(map[string]interface{}, len(row))
	for k, v := range row {
		copied[k] = v
	}
	r.inserts = append(r.inserts, copied)
	r.tables = append(r.tables, table)
	return nil
}

type memBus struct {
	published []*entities.LearningEvent
}

func (b *memBus) Publish(ctx context.Context, channel string, event *entities.LearningEvent) error {
	b.published = append(b.published, event)
	return nil
}

func (b *memBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.LearningEvent, error) {
	return nil, nil
}

func (b *memBus) Unsubscribe(ctx context.Context, channel string) error { return nil }

func (b *memBus) Close() error { return nil }

var _ providers.EventBus = (*memBus)(nil)

func newLearningService(t *testing.T, stateRepo repositories.LearningStateRepository, logRepo repositories.FeedbackLogRepository, mirror repositories.RowStoreRepository, bus providers.EventBus) *LearningService {
	t.Helper()
	svc, err := NewLearningService(taxonomy.NewLearningView(), stateRepo, logRepo, mirror, bus)
	require.NoError(t, err)
	return svc
}

func TestLearning_RecordThenApplyBoostsConfirmedCondition(t *testing.T) {
	stateRepo := newMemStateRepo()
	svc := newLearningService(t, stateRepo, &memLogRepo{}, nil, nil)

	err := svc.Record(context.Background(), &entities.FeedbackEvent{
		Symptoms:         "rash",
		Predictions:      []entities.ConditionSuggestion{{Condition: "eczema", Score: 0.7}},
		CorrectCondition: "eczema",
		Helpfulness:      entities.HelpfulnessYes,
	})
	require.NoError(t, err)

	adjusted := svc.Apply("rash", []entities.ConditionSuggestion{{Condition: "eczema", Score: 0.5}})
	require.Len(t, adjusted, 1)
	assert.Greater(t, adjusted[0].Score, 0.5)
}

func TestLearning_RecordDeltas(t *testing.T) {
	svc := newLearningService(t, newMemStateRepo(), &memLogRepo{}, nil, nil)

	err := svc.Record(context.Background(), &entities.FeedbackEvent{
		Symptoms: "fever and cough",
		Predictions: []entities.ConditionSuggestion{
			{Condition: "influenza", Score: 0.8},
			{Condition: "bronchitis", Score: 0.6},
		},
		CorrectCondition: "influenza",
		Helpfulness:      entities.HelpfulnessYes,
	})
	require.NoError(t, err)

	// Top prediction matched the correction: tokens gain 0.1 x 0.5.
	assert.InDelta(t, 0.05, svc.PatternWeight("fever"), 1e-9)
	assert.InDelta(t, 0.05, svc.PatternWeight("cough"), 1e-9)
	assert.InDelta(t, 0.05, svc.PatternWeight("fever_cough_combo"), 1e-9)
	// Corrections: +0.2 x 0.5 for the confirmed condition, -0.1 x 0.5 for
	// the others shown.
	assert.InDelta(t, 0.1, svc.ConditionCorrection("fever and cough", "influenza"), 1e-9)
	assert.InDelta(t, -0.05, svc.ConditionCorrection("fever and cough", "bronchitis"), 1e-9)
}

func TestLearning_RecordWrongTopPenalizesPatterns(t *testing.T) {
	svc := newLearningService(t, newMemStateRepo(), &memLogRepo{}, nil, nil)

	err := svc.Record(context.Background(), &entities.FeedbackEvent{
		Symptoms:         "fever",
		Predictions:      []entities.ConditionSuggestion{{Condition: "pneumonia", Score: 0.8}},
		CorrectCondition: "influenza",
		Helpfulness:      entities.HelpfulnessYes,
	})
	require.NoError(t, err)

	assert.InDelta(t, -0.025, svc.PatternWeight("fever"), 1e-9)
}

func TestLearning_RecordWithoutCorrection(t *testing.T) {
	svc := newLearningService(t, newMemStateRepo(), &memLogRepo{}, nil, nil)

	err := svc.Record(context.Background(), &entities.FeedbackEvent{
		Symptoms:    "fever",
		Predictions: []entities.ConditionSuggestion{{Condition: "influenza", Score: 0.8}},
		Helpfulness: entities.HelpfulnessNo,
	})
	require.NoError(t, err)

	// General-helpfulness delta: 0.02 x -0.5.
	assert.InDelta(t, -0.01, svc.PatternWeight("fever"), 1e-9)
	assert.Zero(t, svc.ConditionCorrection("fever", "influenza"))
}

func TestLearning_KeysNormalized(t *testing.T) {
	svc := newLearningService(t, newMemStateRepo(), &memLogRepo{}, nil, nil)

	err := svc.Record(context.Background(), &entities.FeedbackEvent{
		Symptoms:         "  ITCHY   Rash \n",
		Predictions:      []entities.ConditionSuggestion{{Condition: "eczema", Score: 0.7}},
		CorrectCondition: "eczema",
		Helpfulness:      entities.HelpfulnessYes,
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.1, svc.ConditionCorrection("itchy rash", "eczema"), 1e-9)
	assert.InDelta(t, 0.1, svc.ConditionCorrection("Itchy  rash", "eczema"), 1e-9)
}

func TestLearning_AppendFailureSurfaces(t *testing.T) {
	stateRepo := newMemStateRepo()
	svc := newLearningService(t, stateRepo, &memLogRepo{err: errors.New("disk full")}, nil, nil)

	err := svc.Record(context.Background(), &entities.FeedbackEvent{
		Symptoms:    "fever",
		Helpfulness: entities.HelpfulnessYes,
	})

	require.Error(t, err)
	// No table update happens when the authoritative log write failed.
	assert.Zero(t, stateRepo.saves)
	assert.Zero(t, svc.PatternWeight("fever"))
}

func TestLearning_MirrorRetriesWithoutUserID(t *testing.T) {
	mirror := &memRowStore{failures: 1, failMsg: `insert violates foreign key constraint on column "user_id"`}
	svc := newLearningService(t, newMemStateRepo(), &memLogRepo{}, mirror, nil)

	err := svc.Record(context.Background(), &entities.FeedbackEvent{
		UserID:      "user-123",
		Symptoms:    "fever",
		Helpfulness: entities.HelpfulnessYes,
	})

	require.NoError(t, err)
	require.Len(t, mirror.inserts, 1)
	assert.Equal(t, "feedback", mirror.tables[0])
	assert.NotContains(t, mirror.inserts[0], "user_id")
}

func TestLearning_MirrorFailureSwallowed(t *testing.T) {
	mirror := &memRowStore{failures: 2, failMsg: "connection refused"}
	svc := newLearningService(t, newMemStateRepo(), &memLogRepo{}, mirror, nil)

	err := svc.Record(context.Background(), &entities.FeedbackEvent{
		Symptoms:    "fever",
		Helpfulness: entities.HelpfulnessYes,
	})

	require.NoError(t, err)
	assert.Empty(t, mirror.inserts)
}

func TestLearning_WeightsClamped(t *testing.T) {
	svc := newLearningService(t, newMemStateRepo(), &memLogRepo{}, nil, nil)

	for i := 0; i < 200; i++ {
		err := svc.Record(context.Background(), &entities.FeedbackEvent{
			Symptoms:         "fever",
			Predictions:      []entities.ConditionSuggestion{{Condition: "influenza", Score: 0.8}},
			CorrectCondition: "influenza",
			Helpfulness:      entities.HelpfulnessYes,
		})
		require.NoError(t, err)
	}

	assert.LessOrEqual(t, svc.PatternWeight("fever"), 5.0)
	assert.LessOrEqual(t, svc.ConditionCorrection("fever", "influenza"), 5.0)
}

func TestLearning_RoundTripThroughStorage(t *testing.T) {
	stateRepo := newMemStateRepo()
	svc := newLearningService(t, stateRepo, &memLogRepo{}, nil, nil)

	err := svc.Record(context.Background(), &entities.FeedbackEvent{
		Symptoms:         "rash",
		Predictions:      []entities.ConditionSuggestion{{Condition: "eczema", Score: 0.7}},
		CorrectCondition: "eczema",
		Helpfulness:      entities.HelpfulnessYes,
	})
	require.NoError(t, err)

	// A fresh service loading the same durable state sees the deltas.
	reloaded := newLearningService(t, stateRepo, &memLogRepo{}, nil, nil)
	assert.Equal(t, svc.PatternWeight("rash"), reloaded.PatternWeight("rash"))
	assert.Equal(t, svc.ConditionCorrection("rash", "eczema"), reloaded.ConditionCorrection("rash", "eczema"))
	assert.Equal(t, svc.StateVersion(), reloaded.StateVersion())
}

func TestLearning_VersionIncrementsAndPublishes(t *testing.T) {
	bus := &memBus{}
	svc := newLearningService(t, newMemStateRepo(), &memLogRepo{}, nil, bus)

	for i := 0; i < 3; i++ {
		err := svc.Record(context.Background(), &entities.FeedbackEvent{
			Symptoms:    "fever",
			Helpfulness: entities.HelpfulnessSomewhat,
		})
		require.NoError(t, err)
	}

	assert.Equal(t, int64(3), svc.StateVersion())
	require.Len(t, bus.published, 3)
	assert.Equal(t, entities.LearningEventTypeWeightsUpdated, bus.published[2].EventType)
	assert.Equal(t, int64(3), bus.published[2].StateVersion)
	assert.Equal(t, 3, bus.published[2].FeedbackCount)
}

func TestLearning_ApplyReordersByAdjustedScore(t *testing.T) {
	svc := newLearningService(t, newMemStateRepo(), &memLogRepo{}, nil, nil)

	// Teach a strong preference for eczema on this exact text.
	for i := 0; i < 5; i++ {
		err := svc.Record(context.Background(), &entities.FeedbackEvent{
			Symptoms: "itchy rash",
			Predictions: []entities.ConditionSuggestion{
				{Condition: "allergic reaction", Score: 0.8},
				{Condition: "eczema", Score: 0.7},
			},
			CorrectCondition: "eczema",
			Helpfulness:      entities.HelpfulnessYes,
		})
		require.NoError(t, err)
	}

	adjusted := svc.Apply("itchy rash", []entities.ConditionSuggestion{
		{Condition: "allergic reaction", Score: 0.8},
		{Condition: "eczema", Score: 0.7},
	})

	require.Len(t, adjusted, 2)
	assert.Equal(t, "eczema", adjusted[0].Condition)
	for _, s := range adjusted {
		assert.GreaterOrEqual(t, s.Score, 0.0)
		assert.LessOrEqual(t, s.Score, 1.0)
	}
}

func TestLearning_ApplyEmptyInput(t *testing.T) {
	svc := newLearningService(t, newMemStateRepo(), &memLogRepo{}, nil, nil)

	assert.Empty(t, svc.Apply("anything", nil))
}

func TestLearning_RebuildReplaysHistory(t *testing.T) {
	stateRepo := newMemStateRepo()
	svc := newLearningService(t, stateRepo, &memLogRepo{}, nil, nil)

	// Pollute the live tables, then rebuild from a two-event history.
	err := svc.Record(context.Background(), &entities.FeedbackEvent{
		Symptoms:    "stale entry",
		Helpfulness: entities.HelpfulnessNo,
	})
	require.NoError(t, err)

	history := []entities.FeedbackEvent{
		{
			Symptoms:         "rash",
			Predictions:      []entities.ConditionSuggestion{{Condition: "eczema", Score: 0.7}},
			CorrectCondition: "eczema",
			Helpfulness:      entities.HelpfulnessYes,
		},
		{
			Symptoms:    "fever",
			Helpfulness: "", // defaults to Somewhat on replay
		},
	}
	require.NoError(t, svc.Rebuild(context.Background(), history))

	assert.Zero(t, svc.PatternWeight("stale"))
	assert.InDelta(t, 0.1, svc.ConditionCorrection("rash", "eczema"), 1e-9)
	assert.Equal(t, int64(2), svc.StateVersion())

	// The rebuilt tables were persisted.
	reloaded := newLearningService(t, stateRepo, &memLogRepo{}, nil, nil)
	assert.Equal(t, int64(2), reloaded.StateVersion())
}

func TestLearning_Reload(t *testing.T) {
	stateRepo := newMemStateRepo()
	writer := newLearningService(t, stateRepo, &memLogRepo{}, nil, nil)
	reader := newLearningService(t, stateRepo, &memLogRepo{}, nil, nil)

	err := writer.Record(context.Background(), &entities.FeedbackEvent{
		Symptoms:         "rash",
		Predictions:      []entities.ConditionSuggestion{{Condition: "eczema", Score: 0.7}},
		CorrectCondition: "eczema",
		Helpfulness:      entities.HelpfulnessYes,
	})
	require.NoError(t, err)

	assert.Zero(t, reader.PatternWeight("rash"))
	require.NoError(t, reader.Reload(context.Background()))
	assert.InDelta(t, 0.05, reader.PatternWeight("rash"), 1e-9)
}
