package evaluation

import (
	"context"
	"testing"

	"github.com/carepilot/symptom-triage/backend/internal/domain/entities"
)

type stubTriage struct {
	levels map[string]entities.TriageLevel
}

func (s *stubTriage) Evaluate(report *entities.SymptomReport) *entities.TriageResult {
	level, ok := s.levels[report.Text]
	if !ok {
		level = entities.LevelSelfCare
	}
	return &entities.TriageResult{Level: level}
}

type stubSuggester struct {
	results map[string][]entities.ConditionSuggestion
}

func (s *stubSuggester) Suggest(ctx context.Context, report *entities.SymptomReport, k int) ([]entities.ConditionSuggestion, error) {
	return s.results[report.Text], nil
}

func TestRunner_Run_AggregatesLevelAccuracy(t *testing.T) {
	triage := &stubTriage{levels: map[string]entities.TriageLevel{
		"severe chest pain": entities.LevelEmergency,
		"mild skin dryness": entities.LevelRoutine,
	}}
	suggester := &stubSuggester{results: map[string][]entities.ConditionSuggestion{
		"severe chest pain": {{Condition: "heart attack", Score: 0.9}},
	}}
	runner := NewRunner(triage, suggester)

	cases := []GoldenCase{
		{ID: "c1", Text: "severe chest pain", ExpectedLevel: "Emergency", ExpectedConditions: []string{"heart attack"}, Difficulty: "easy"},
		{ID: "c2", Text: "mild skin dryness", ExpectedLevel: "Self-care", Difficulty: "easy"},
	}

	summary, err := runner.Run(context.Background(), cases)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.TotalCases != 2 {
		t.Fatalf("expected 2 cases, got %d", summary.TotalCases)
	}
	if summary.LevelAccuracy != 0.5 {
		t.Errorf("expected accuracy 0.5, got %f", summary.LevelAccuracy)
	}
	if summary.CasesWithSuggestion != 1 {
		t.Errorf("expected 1 case with suggestions, got %d", summary.CasesWithSuggestion)
	}
}

func TestRunner_Run_TracksUndertriage(t *testing.T) {
	triage := &stubTriage{levels: map[string]entities.TriageLevel{
		"crushing chest pain": entities.LevelRoutine,
	}}
	runner := NewRunner(triage, &stubSuggester{})

	cases := []GoldenCase{
		{ID: "c1", Text: "crushing chest pain", ExpectedLevel: "Emergency", Difficulty: "hard"},
	}

	summary, err := runner.Run(context.Background(), cases)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.UndertriageRate != 1.0 {
		t.Errorf("expected undertriage rate 1.0, got %f", summary.UndertriageRate)
	}
}

func TestRunner_Run_GroupsByExpectedLevel(t *testing.T) {
	triage := &stubTriage{levels: map[string]entities.TriageLevel{
		"severe chest pain": entities.LevelEmergency,
		"crushing pressure": entities.LevelEmergency,
	}}
	suggester := &stubSuggester{results: map[string][]entities.ConditionSuggestion{
		"severe chest pain": {{Condition: "heart attack", Score: 0.9}},
	}}
	runner := NewRunner(triage, suggester)

	cases := []GoldenCase{
		{ID: "c1", Text: "severe chest pain", ExpectedLevel: "Emergency", ExpectedConditions: []string{"heart attack"}, Difficulty: "easy"},
		{ID: "c2", Text: "crushing pressure", ExpectedLevel: "Emergency", ExpectedConditions: []string{"heart attack"}, Difficulty: "hard"},
	}

	summary, err := runner.Run(context.Background(), cases)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ls := summary.ByLevel[entities.LevelEmergency]
	if ls == nil {
		t.Fatal("expected a summary for Emergency cases")
	}
	if ls.Count != 2 {
		t.Errorf("expected 2 Emergency cases, got %d", ls.Count)
	}
	if ls.Accuracy != 1.0 {
		t.Errorf("expected Emergency accuracy 1.0, got %f", ls.Accuracy)
	}
	if ls.AvgRecallAt5 != 0.5 {
		t.Errorf("expected Emergency avg recall 0.5, got %f", ls.AvgRecallAt5)
	}
}
