package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/carepilot/symptom-triage/backend/internal/domain/entities"
	"github.com/carepilot/symptom-triage/backend/internal/domain/repositories"
	apperrors "github.com/carepilot/symptom-triage/backend/pkg/errors"
)

// FeedbackLogAdapter stores feedback events as newline-delimited JSON. The
// file is append-only; it is the authoritative record the weight tables are
// derived from.
type FeedbackLogAdapter struct {
	path string
}

func NewFeedbackLogAdapter(path string) (repositories.FeedbackLogRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, apperrors.NewInternalError("failed to create feedback log directory", err)
	}
	return &FeedbackLogAdapter{path: path}, nil
}

// Append writes one event as a single JSON line. Failure here is the one
// persistence error that must reach the caller.
func (a *FeedbackLogAdapter) Append(ctx context.Context, event *entities.FeedbackEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return apperrors.NewInternalError("failed to encode feedback event", err)
	}

	f, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return apperrors.NewInternalError("failed to open feedback log", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return apperrors.NewInternalError("failed to append feedback event", err)
	}
	return f.Sync()
}

// ReadAll replays the log in append order. A missing file is an empty log.
// Lines that fail to decode are skipped rather than aborting the replay.
func (a *FeedbackLogAdapter) ReadAll(ctx context.Context) ([]entities.FeedbackEvent, error) {
	f, err := os.Open(a.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, apperrors.NewInternalError("failed to open feedback log", err)
	}
	defer f.Close()

	var events []entities.FeedbackEvent
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event entities.FeedbackEvent
		if err := json.Unmarshal(line, &event); err != nil {
			continue
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.NewInternalError(fmt.Sprintf("failed to scan feedback log %s", a.path), err)
	}
	return events, nil
}
