// Package db provides PostgreSQL access for the export audit log.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/cv-builder/internal/export"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the audit table if it does not exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create export schema: %w", err)
	}
	return nil
}

// RecordFromOutcome converts an export outcome into an audit row.
func RecordFromOutcome(out export.Outcome) ExportRecord {
	id, err := uuid.Parse(out.ID)
	if err != nil {
		id = uuid.New()
	}
	rec := ExportRecord{
		ID:         id,
		SessionID:  out.SessionID,
		Status:     string(out.Status),
		Message:    out.Message,
		Filename:   out.Filename,
		Pages:      out.Pages,
		Bytes:      out.Bytes,
		DurationMS: out.Duration().Milliseconds(),
		StartedAt:  out.StartedAt,
		FinishedAt: out.FinishedAt,
	}
	if out.Err != nil {
		rec.ErrorDetail = out.Err.Error()
	}
	return rec
}

// RecordExport stores an export outcome. It satisfies export.Recorder.
func (db *DB) RecordExport(ctx context.Context, out export.Outcome) error {
	return db.InsertExport(ctx, RecordFromOutcome(out))
}

// InsertExport writes one audit row. Re-recording the same id updates it.
func (db *DB) InsertExport(ctx context.Context, rec ExportRecord) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO cv_exports (id, session_id, status, message, error_detail, filename, pages, bytes, duration_ms, started_at, finished_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (id) DO UPDATE SET status = $3, message = $4, error_detail = $5,
		   pages = $7, bytes = $8, duration_ms = $9, finished_at = $11`,
		rec.ID, rec.SessionID, rec.Status, rec.Message, rec.ErrorDetail, rec.Filename,
		rec.Pages, rec.Bytes, rec.DurationMS, rec.StartedAt, rec.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record export: %w", err)
	}
	return nil
}

const exportColumns = `id, session_id, status, message, error_detail, filename, pages, bytes, duration_ms, started_at, finished_at`

func scanExport(row pgx.Row) (ExportRecord, error) {
	var rec ExportRecord
	err := row.Scan(&rec.ID, &rec.SessionID, &rec.Status, &rec.Message, &rec.ErrorDetail, &rec.Filename,
		&rec.Pages, &rec.Bytes, &rec.DurationMS, &rec.StartedAt, &rec.FinishedAt)
	return rec, err
}

// GetExport retrieves an export by ID. A missing row returns nil, nil.
func (db *DB) GetExport(ctx context.Context, id uuid.UUID) (*ExportRecord, error) {
	rec, err := scanExport(db.pool.QueryRow(ctx,
		`SELECT `+exportColumns+` FROM cv_exports WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get export: %w", err)
	}
	return &rec, nil
}

// buildListQuery builds the filtered listing query and its arguments
func buildListQuery(filters ExportFilters) (string, []any) {
	if filters.Limit <= 0 {
		filters.Limit = DefaultListLimit
	}

	query := `SELECT ` + exportColumns + ` FROM cv_exports WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.SessionID != "" {
		query += fmt.Sprintf(" AND session_id = $%d", argNum)
		args = append(args, filters.SessionID)
		argNum++
	}
	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, filters.Status)
		argNum++
	}
	if !filters.Since.IsZero() {
		query += fmt.Sprintf(" AND started_at >= $%d", argNum)
		args = append(args, filters.Since)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY started_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)
	return query, args
}

// ListExports retrieves recent exports with optional filters
func (db *DB) ListExports(ctx context.Context, filters ExportFilters) ([]ExportRecord, error) {
	query, args := buildListQuery(filters)
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	defer rows.Close()

	var records []ExportRecord
	for rows.Next() {
		rec, err := scanExport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan export: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	return records, nil
}
