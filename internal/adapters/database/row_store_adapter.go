package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/carepilot/symptom-triage/backend/internal/domain/repositories"
	"github.com/carepilot/symptom-triage/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/carepilot/symptom-triage/backend/pkg/errors"
)

// RowStoreAdapter mirrors rows into Postgres. It is intentionally generic:
// callers own the table name and row shape, the adapter owns SQL building
// and execution.
type RowStoreAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewRowStoreAdapter creates a new row store adapter.
func NewRowStoreAdapter(client *postgres.Client) repositories.RowStoreRepository {
	return &RowStoreAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Insert writes one row into the named table.
func (a *RowStoreAdapter) Insert(ctx context.Context, table string, row map[string]interface{}) error {
	record := goqu.Record{}
	for column, value := range row {
		record[column] = value
	}

	query, args, err := a.db.Insert(table).Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build row insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to insert row into "+table, err)
	}
	return nil
}
