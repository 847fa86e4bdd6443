package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carepilot/symptom-triage/backend/internal/adapters/storage"
	"github.com/carepilot/symptom-triage/backend/internal/application/services"
	"github.com/carepilot/symptom-triage/backend/internal/taxonomy"
	"github.com/carepilot/symptom-triage/backend/pkg/config"
)

// Rebuilds the pattern-weight and condition-correction tables from the
// append-only feedback log. The log is the authoritative history; the
// tables are derived caches that can always be regenerated.
func main() {
	var dryRun bool

	flag.BoolVar(&dryRun, "dry-run", false, "Replay the log without writing the tables")
	flag.Parse()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	feedbackLog, err := storage.NewFeedbackLogAdapter(cfg.Storage.FeedbackLog)
	if err != nil {
		log.Fatalf("Failed to open feedback log: %v", err)
	}

	stateRepo, err := storage.NewLearningStateAdapter(cfg.Storage.PatternWeights, cfg.Storage.Corrections)
	if err != nil {
		log.Fatalf("Failed to open learning state storage: %v", err)
	}

	svc, err := services.NewLearningService(taxonomy.NewLearningView(), stateRepo, feedbackLog, nil, nil)
	if err != nil {
		log.Fatalf("Failed to create learning service: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	start := time.Now()

	events, err := feedbackLog.ReadAll(ctx)
	if err != nil {
		log.Fatalf("Failed to read feedback log: %v", err)
	}
	log.Printf("Replaying %d feedback events from %s", len(events), cfg.Storage.FeedbackLog)

	if dryRun {
		log.Printf("Dry run: tables not written (current version %d)", svc.StateVersion())
		return
	}

	if err := svc.Rebuild(ctx, events); err != nil {
		log.Fatalf("Failed to rebuild weight tables: %v", err)
	}

	log.Printf("Rebuild complete in %s", time.Since(start))
	log.Printf("Events replayed: %d", len(events))
	log.Printf("Table version: %d", svc.StateVersion())
}
