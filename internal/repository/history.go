package repository

import (
	"context"

	"github.com/AlkamaSunasara00/tranzora-ai/internal/model"
)

// HistoryRepository defines persistence for translation history records.
// Records are append-only: they are created once at export time and never
// updated, only listed and removed.
type HistoryRepository interface {
	// Create inserts a new record and returns the stored row.
	Create(ctx context.Context, rec *model.HistoryRecord) (*model.HistoryRecord, error)

	// List returns every record newest-first (date DESC, id as tiebreak).
	List(ctx context.Context) ([]model.HistoryRecord, error)

	// FindByID returns a single record by its ID.
	FindByID(ctx context.Context, id string) (*model.HistoryRecord, error)

	// DeleteByID removes the record with the given ID. Missing rows are not
	// an error.
	DeleteByID(ctx context.Context, id string) error

	// ClearAll truncates the history. Confirmation gating happens above the
	// repository.
	ClearAll(ctx context.Context) error
}
