package db

import (
	"time"

	"github.com/google/uuid"
)

// ExportRecord is one row of the export audit log
type ExportRecord struct {
	ID          uuid.UUID `json:"id"`
	SessionID   string    `json:"session_id,omitempty"`
	Status      string    `json:"status"`
	Message     string    `json:"message"`
	ErrorDetail string    `json:"error_detail,omitempty"`
	Filename    string    `json:"filename,omitempty"`
	Pages       int       `json:"pages"`
	Bytes       int       `json:"bytes"`
	DurationMS  int64     `json:"duration_ms"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
}

// ExportFilters holds optional filters for listing exports
type ExportFilters struct {
	SessionID string
	Status    string
	Since     time.Time
	Limit     int
}

// DefaultListLimit caps ListExports when no limit is given
const DefaultListLimit = 50

// schemaSQL creates the audit table. It is idempotent.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS cv_exports (
	id           UUID PRIMARY KEY,
	session_id   TEXT NOT NULL DEFAULT '',
	status       TEXT NOT NULL,
	message      TEXT NOT NULL DEFAULT '',
	error_detail TEXT NOT NULL DEFAULT '',
	filename     TEXT NOT NULL DEFAULT '',
	pages        INTEGER NOT NULL DEFAULT 0,
	bytes        INTEGER NOT NULL DEFAULT 0,
	duration_ms  BIGINT NOT NULL DEFAULT 0,
	started_at   TIMESTAMPTZ NOT NULL,
	finished_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS cv_exports_started_at_idx ON cv_exports (started_at DESC);
CREATE INDEX IF NOT EXISTS cv_exports_session_idx ON cv_exports (session_id);
`
