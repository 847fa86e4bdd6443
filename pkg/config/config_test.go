package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_StorageConfig(t *testing.T) {
	// Setup environment variables
	os.Setenv("STORAGE_DIR", "/var/lib/triage")
	os.Setenv("FEEDBACK_LOG_FILE", "/var/lib/triage/events.jsonl")
	defer func() {
		os.Unsetenv("STORAGE_DIR")
		os.Unsetenv("FEEDBACK_LOG_FILE")
	}()

	// Load config
	cfg, err := Load()
	assert.NoError(t, err)

	// Verify storage config
	assert.Equal(t, "/var/lib/triage", cfg.Storage.Dir)
	assert.Equal(t, "/var/lib/triage/events.jsonl", cfg.Storage.FeedbackLog)
	assert.Equal(t, filepath.Join("/var/lib/triage", "pattern_weights.json"), cfg.Storage.PatternWeights)
}

func TestLoad_Defaults(t *testing.T) {
	// Ensure env vars are cleared
	os.Unsetenv("STORAGE_DIR")
	os.Unsetenv("FEEDBACK_LOG_FILE")
	os.Unsetenv("DB_HOST")

	cfg, err := Load()
	assert.NoError(t, err)

	// Verify defaults
	assert.Equal(t, filepath.Join("storage", "feedback.jsonl"), cfg.Storage.FeedbackLog)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.False(t, cfg.Database.MirrorEnabled())
}

func TestLoad_MirrorEnabled(t *testing.T) {
	os.Setenv("DB_HOST", "db.internal")
	defer os.Unsetenv("DB_HOST")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.True(t, cfg.Database.MirrorEnabled())
	assert.Contains(t, cfg.Database.DatabaseDSN(), "host=db.internal")
}
