package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/AlkamaSunasara00/tranzora-ai/internal/model"
	"github.com/AlkamaSunasara00/tranzora-ai/internal/repository"
)

// HistoryPostgres is a PostgreSQL implementation of
// repository.HistoryRepository. It uses database/sql with parameterized
// queries; the per-page document structure travels as a JSONB column.
type HistoryPostgres struct {
	db *sql.DB
}

// NewHistoryPostgres creates a new HistoryPostgres repository.
func NewHistoryPostgres(db *sql.DB) *HistoryPostgres {
	return &HistoryPostgres{db: db}
}

var _ repository.HistoryRepository = (*HistoryPostgres)(nil)

// Create inserts a new history row and returns the stored record.
func (r *HistoryPostgres) Create(ctx context.Context, rec *model.HistoryRecord) (*model.HistoryRecord, error) {
	structure, err := marshalStructure(rec.DocumentStructure)
	if err != nil {
		return nil, fmt.Errorf("encode document structure: %w", err)
	}

	const q = `
		INSERT INTO translations (id, file_name, date, original_text, translated_text, document_structure, layout_preserved)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, file_name, date, original_text, translated_text, document_structure, layout_preserved
	`
	row := r.db.QueryRowContext(ctx, q,
		rec.ID,
		rec.FileName,
		rec.Date,
		rec.OriginalText,
		rec.TranslatedText,
		structure,
		rec.LayoutPreserved,
	)
	return scanRecord(row)
}

// List returns all records newest-first.
func (r *HistoryPostgres) List(ctx context.Context) ([]model.HistoryRecord, error) {
	const q = `
		SELECT id, file_name, date, original_text, translated_text, document_structure, layout_preserved
		FROM translations
		ORDER BY date DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.HistoryRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID fetches a single record by its ID.
func (r *HistoryPostgres) FindByID(ctx context.Context, id string) (*model.HistoryRecord, error) {
	const q = `
		SELECT id, file_name, date, original_text, translated_text, document_structure, layout_preserved
		FROM translations
		WHERE id = $1
	`
	return scanRecord(r.db.QueryRowContext(ctx, q, id))
}

// DeleteByID removes a record. It does not return an error if the row does
// not exist.
func (r *HistoryPostgres) DeleteByID(ctx context.Context, id string) error {
	const q = `DELETE FROM translations WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}

// ClearAll truncates the history.
func (r *HistoryPostgres) ClearAll(ctx context.Context) error {
	const q = `DELETE FROM translations`
	_, err := r.db.ExecContext(ctx, q)
	return err
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*model.HistoryRecord, error) {
	var rec model.HistoryRecord
	var structure []byte
	if err := s.Scan(
		&rec.ID,
		&rec.FileName,
		&rec.Date,
		&rec.OriginalText,
		&rec.TranslatedText,
		&structure,
		&rec.LayoutPreserved,
	); err != nil {
		return nil, err
	}
	if len(structure) > 0 {
		var ds model.DocumentStructure
		if err := json.Unmarshal(structure, &ds); err != nil {
			return nil, fmt.Errorf("decode document structure: %w", err)
		}
		rec.DocumentStructure = &ds
	}
	return &rec, nil
}

func marshalStructure(ds *model.DocumentStructure) ([]byte, error) {
	if ds == nil {
		return nil, nil
	}
	return json.Marshal(ds)
}
