package repositories

import (
	"context"

	"github.com/carepilot/symptom-triage/backend/internal/domain/entities"
)

// FeedbackLogRepository is the append-only durable event log. Append is the
// one write this system guarantees; its failure surfaces to the caller.
type FeedbackLogRepository interface {
	Append(ctx context.Context, event *entities.FeedbackEvent) error

	// ReadAll replays the full log in append order. Used by the backfill
	// tool to rebuild the derived weight tables.
	ReadAll(ctx context.Context) ([]entities.FeedbackEvent, error)
}

// RowStoreRepository is the opaque remote row store used to mirror feedback
// events and survey submissions. Writes are best-effort; a nil repository
// means mirroring is unconfigured.
type RowStoreRepository interface {
	Insert(ctx context.Context, table string, row map[string]interface{}) error
}
