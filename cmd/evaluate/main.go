package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/carepilot/symptom-triage/backend/internal/adapters/storage"
	"github.com/carepilot/symptom-triage/backend/internal/application/services"
	"github.com/carepilot/symptom-triage/backend/internal/evaluation"
	"github.com/carepilot/symptom-triage/backend/internal/taxonomy"
	"github.com/carepilot/symptom-triage/backend/pkg/config"
)

// Runs the golden-case evaluation: every case goes through triage and the
// keyword suggestion path (no classifier, no network) and the summary is
// printed as JSON. Learned weights are applied when the table files exist,
// so the same case set measures drift after feedback accumulates.
func main() {
	var goldenPath string
	var withLearning bool

	flag.StringVar(&goldenPath, "golden", "config/golden_cases.json", "Path to the golden case file")
	flag.BoolVar(&withLearning, "learning", true, "Apply learned weight tables if present")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Setup services
	triageService := services.NewTriageService(taxonomy.NewTriageView())

	var adjuster services.ScoreAdjuster
	if withLearning {
		feedbackLog, err := storage.NewFeedbackLogAdapter(cfg.Storage.FeedbackLog)
		if err != nil {
			log.Fatalf("Failed to open feedback log: %v", err)
		}
		stateRepo, err := storage.NewLearningStateAdapter(cfg.Storage.PatternWeights, cfg.Storage.Corrections)
		if err != nil {
			log.Fatalf("Failed to open learning state storage: %v", err)
		}
		learningService, err := services.NewLearningService(taxonomy.NewLearningView(), stateRepo, feedbackLog, nil, nil)
		if err != nil {
			log.Fatalf("Failed to create learning service: %v", err)
		}
		adjuster = learningService
	}

	suggestionService := services.NewSuggestionService(taxonomy.NewSuggestionView(), nil, nil, adjuster)

	// Load golden cases
	cases, err := evaluation.LoadGoldenCases(goldenPath)
	if err != nil {
		log.Fatalf("Failed to load golden cases: %v", err)
	}
	if err := evaluation.ValidateGoldenCases(cases); err != nil {
		log.Fatalf("Invalid golden cases: %v", err)
	}

	runner := evaluation.NewRunner(triageService, suggestionService)
	summary, err := runner.Run(context.Background(), cases)
	if err != nil {
		log.Fatalf("Evaluation failed: %v", err)
	}

	// Output results as JSON
	out, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(out))
}
