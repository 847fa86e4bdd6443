package evaluation

import (
	"context"
	"time"

	"github.com/carepilot/symptom-triage/backend/internal/domain/entities"
)

// TriageProvider evaluates a symptom report into a triage result.
type TriageProvider interface {
	Evaluate(report *entities.SymptomReport) *entities.TriageResult
}

// SuggestionProvider scores candidate conditions for a symptom report.
type SuggestionProvider interface {
	Suggest(ctx context.Context, report *entities.SymptomReport, k int) ([]entities.ConditionSuggestion, error)
}

// Runner runs evaluation across a set of golden cases.
type Runner struct {
	triage    TriageProvider
	suggester SuggestionProvider
}

func NewRunner(triage TriageProvider, suggester SuggestionProvider) *Runner {
	return &Runner{triage: triage, suggester: suggester}
}

func (r *Runner) Run(ctx context.Context, cases []GoldenCase) (*EvalSummary, error) {
	summary := &EvalSummary{
		TotalCases: len(cases),
		ByLevel:    make(map[entities.TriageLevel]*LevelSummary),
	}

	for _, gc := range cases {
		report := gc.Report()

		start := time.Now()
		triageResult := r.triage.Evaluate(report)

		suggestions, err := r.suggester.Suggest(ctx, report, 5)
		duration := time.Since(start)
		if err != nil {
			continue
		}

		retrieved := make([]string, len(suggestions))
		for i, s := range suggestions {
			retrieved[i] = s.Condition
		}

		expected := entities.TriageLevel(gc.ExpectedLevel)
		result := EvalResult{
			CaseID:              gc.ID,
			Text:                gc.Text,
			ExpectedLevel:       expected,
			ActualLevel:         triageResult.Level,
			LevelMatch:          triageResult.Level == expected,
			Undertriaged:        expected.MoreSevereThan(triageResult.Level),
			RecallAt5:           RecallAtK(gc.ExpectedConditions, retrieved, 5),
			MRRAt5:              MRRAtK(gc.ExpectedConditions, retrieved, 5),
			SuggestionCount:     len(suggestions),
			RetrievedConditions: retrieved,
			Latency:             duration,
		}

		r.updateSummary(summary, result)
	}

	r.finalizeSummary(summary)
	return summary, nil
}

func (r *Runner) updateSummary(s *EvalSummary, res EvalResult) {
	if res.LevelMatch {
		s.LevelAccuracy++
	}
	if res.Undertriaged {
		s.UndertriageRate++
	}
	s.AvgRecallAt5 += res.RecallAt5
	s.AvgMRRAt5 += res.MRRAt5
	s.AvgLatency += res.Latency
	if res.SuggestionCount > 0 {
		s.CasesWithSuggestion++
	}

	if _, ok := s.ByLevel[res.ExpectedLevel]; !ok {
		s.ByLevel[res.ExpectedLevel] = &LevelSummary{}
	}
	ls := s.ByLevel[res.ExpectedLevel]
	ls.Count++
	if res.LevelMatch {
		ls.Accuracy++
	}
	ls.AvgRecallAt5 += res.RecallAt5
}

func (r *Runner) finalizeSummary(s *EvalSummary) {
	if s.TotalCases > 0 {
		n := float64(s.TotalCases)
		s.LevelAccuracy /= n
		s.UndertriageRate /= n
		s.AvgRecallAt5 /= n
		s.AvgMRRAt5 /= n
		s.AvgLatency /= time.Duration(s.TotalCases)
	}

	for _, ls := range s.ByLevel {
		if ls.Count > 0 {
			n := float64(ls.Count)
			ls.Accuracy /= n
			ls.AvgRecallAt5 /= n
		}
	}
}
