package main

import (
	"context"
	"log"
	"os"

	"github.com/carepilot/symptom-triage/backend/internal/infrastructure/clients/postgres"
	"github.com/carepilot/symptom-triage/backend/pkg/config"
)

// Bootstraps the optional relational mirror. The JSONL feedback log and the
// weight tables remain the authoritative store; the mirror only exists for
// ad-hoc SQL over collected feedback and surveys.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if !cfg.Database.MirrorEnabled() {
		log.Fatal("Mirror database is not configured, set DB_HOST to enable it")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating mirror tables")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				feedback,
				surveys
			RESTART IDENTITY
		`)
		if err != nil {
			log.Printf("Truncate failed (tables may not exist yet): %v", err)
		}
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS feedback (
			id BIGSERIAL PRIMARY KEY,
			symptoms TEXT NOT NULL,
			predictions JSONB NOT NULL DEFAULT '[]',
			correct_condition TEXT NOT NULL DEFAULT '',
			helpful_score TEXT NOT NULL DEFAULT 'Somewhat',
			comments TEXT NOT NULL DEFAULT '',
			user_id TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_feedback_created_at ON feedback (created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_feedback_correct_condition ON feedback (correct_condition)`,
		`CREATE TABLE IF NOT EXISTS surveys (
			id BIGSERIAL PRIMARY KEY,
			age INT NOT NULL,
			duration_hours DOUBLE PRECISION NOT NULL,
			symptoms_text TEXT NOT NULL,
			medical_history TEXT NOT NULL DEFAULT '',
			pain_scale INT NOT NULL,
			severity TEXT NOT NULL DEFAULT '',
			user_id TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_surveys_created_at ON surveys (created_at)`,
	}

	for _, stmt := range statements {
		if _, err := pgClient.DB().ExecContext(ctx, stmt); err != nil {
			log.Fatalf("Failed to run migration statement: %v", err)
		}
	}

	log.Println("Mirror tables are ready")
}
