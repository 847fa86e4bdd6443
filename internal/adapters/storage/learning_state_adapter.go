package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/carepilot/symptom-triage/backend/internal/domain/repositories"
	apperrors "github.com/carepilot/symptom-triage/backend/pkg/errors"
)

type weightsFile struct {
	Version int64                       `json:"version"`
	Weights repositories.PatternWeights `json:"weights"`
}

type correctionsFile struct {
	Version     int64                             `json:"version"`
	Corrections repositories.ConditionCorrections `json:"corrections"`
}

// LearningStateAdapter persists the weight tables as two JSON files, each
// rewritten in full through a temp file and an atomic rename so concurrent
// readers never observe a torn write.
type LearningStateAdapter struct {
	weightsPath     string
	correctionsPath string
}

func NewLearningStateAdapter(weightsPath, correctionsPath string) (repositories.LearningStateRepository, error) {
	for _, p := range []string{weightsPath, correctionsPath} {
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return nil, apperrors.NewInternalError("failed to create learning state directory", err)
		}
	}
	return &LearningStateAdapter{weightsPath: weightsPath, correctionsPath: correctionsPath}, nil
}

// Load reads both tables. A missing or unreadable file loads as an empty
// table, never as an error.
func (a *LearningStateAdapter) Load(ctx context.Context) (*repositories.LearningState, error) {
	state := &repositories.LearningState{
		Weights:     repositories.PatternWeights{},
		Corrections: repositories.ConditionCorrections{},
	}

	var wf weightsFile
	if readJSONFile(a.weightsPath, &wf) && wf.Weights != nil {
		state.Weights = wf.Weights
		state.Version = wf.Version
	}

	var cf correctionsFile
	if readJSONFile(a.correctionsPath, &cf) && cf.Corrections != nil {
		state.Corrections = cf.Corrections
		if cf.Version > state.Version {
			state.Version = cf.Version
		}
	}
	return state, nil
}

// Save rewrites both tables with the state's version.
func (a *LearningStateAdapter) Save(ctx context.Context, state *repositories.LearningState) error {
	if err := writeJSONFile(a.weightsPath, weightsFile{Version: state.Version, Weights: state.Weights}); err != nil {
		return apperrors.NewInternalError("failed to write pattern weights", err)
	}
	if err := writeJSONFile(a.correctionsPath, correctionsFile{Version: state.Version, Corrections: state.Corrections}); err != nil {
		return apperrors.NewInternalError("failed to write condition corrections", err)
	}
	return nil
}

func readJSONFile(path string, out interface{}) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", path).Msg("failed to read learning state file, starting empty")
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to decode learning state file, starting empty")
		return false
	}
	return true
}

func writeJSONFile(path string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
