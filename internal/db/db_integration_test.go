//go:build integration
// +build integration

package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/export"
)

func setupTestDB(t *testing.T) *DB {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("Skipping integration test: DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	db, err := Connect(ctx, dbURL)
	if err != nil {
		t.Skipf("Skipping integration test: failed to connect to DB: %v", err)
	}
	require.NoError(t, db.EnsureSchema(ctx))
	return db
}

func TestRecordExport_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	sessionID := uuid.NewString()
	start := time.Now().UTC().Truncate(time.Millisecond)
	out := export.Outcome{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		Status:     export.StatusSuccess,
		Message:    export.SuccessMessage,
		Filename:   "cv.pdf",
		Pages:      1,
		Bytes:      1024,
		StartedAt:  start,
		FinishedAt: start.Add(time.Second),
	}

	require.NoError(t, db.RecordExport(ctx, out))
	// recording twice updates in place
	require.NoError(t, db.RecordExport(ctx, out))

	got, err := db.GetExport(ctx, uuid.MustParse(out.ID))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, sessionID, got.SessionID)
	assert.Equal(t, 1, got.Pages)
	assert.Equal(t, int64(1000), got.DurationMS)

	list, err := db.ListExports(ctx, ExportFilters{SessionID: sessionID})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestGetExport_Missing_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()

	got, err := db.GetExport(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}
