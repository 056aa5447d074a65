package sqlite

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stazhbg/internship-portal/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepository(t *testing.T) (*SessionRepository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, smock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewSessionRepository(sqlxDB, log), smock
}

func TestSessionRepository_Get(t *testing.T) {
	ctx := context.Background()
	query := regexp.QuoteMeta("SELECT snapshot FROM sessions WHERE token = ?")

	t.Run("Success: snapshot is returned", func(t *testing.T) {
		repo, smock := newMockRepository(t)

		snapshot := []byte(`{"id":"student-1"}`)
		smock.ExpectQuery(query).
			WithArgs("token-1").
			WillReturnRows(sqlmock.NewRows([]string{"snapshot"}).AddRow(snapshot))

		got, err := repo.Get(ctx, "token-1")
		require.NoError(t, err)
		assert.Equal(t, snapshot, got)

		assert.NoError(t, smock.ExpectationsWereMet())
	})

	t.Run("Failure: unknown token maps to ErrNotFound", func(t *testing.T) {
		repo, smock := newMockRepository(t)

		smock.ExpectQuery(query).
			WithArgs("token-missing").
			WillReturnRows(sqlmock.NewRows([]string{"snapshot"}))

		_, err := repo.Get(ctx, "token-missing")
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)

		assert.NoError(t, smock.ExpectationsWereMet())
	})

	t.Run("Failure: driver error is wrapped", func(t *testing.T) {
		repo, smock := newMockRepository(t)

		smock.ExpectQuery(query).
			WithArgs("token-1").
			WillReturnError(errors.New("disk I/O error"))

		_, err := repo.Get(ctx, "token-1")
		require.Error(t, err)
		assert.NotErrorIs(t, err, apperrors.ErrNotFound)

		assert.NoError(t, smock.ExpectationsWereMet())
	})
}

func TestSessionRepository_Set(t *testing.T) {
	ctx := context.Background()
	query := regexp.QuoteMeta(
		"INSERT INTO sessions (token,snapshot) VALUES (?,?) " +
			"ON CONFLICT(token) DO UPDATE SET snapshot = excluded.snapshot, updated_at = CURRENT_TIMESTAMP",
	)

	t.Run("Success: insert", func(t *testing.T) {
		repo, smock := newMockRepository(t)

		snapshot := []byte(`{"id":"student-1"}`)
		smock.ExpectExec(query).
			WithArgs("token-1", snapshot).
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, repo.Set(ctx, "token-1", snapshot))
		assert.NoError(t, smock.ExpectationsWereMet())
	})

	t.Run("Success: overwrite rewrites the snapshot in full", func(t *testing.T) {
		repo, smock := newMockRepository(t)

		updated := []byte(`{"id":"student-1","profile_completed":true}`)
		smock.ExpectExec(query).
			WithArgs("token-1", updated).
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, repo.Set(ctx, "token-1", updated))
		assert.NoError(t, smock.ExpectationsWereMet())
	})

	t.Run("Failure: driver error is wrapped", func(t *testing.T) {
		repo, smock := newMockRepository(t)

		smock.ExpectExec(query).
			WithArgs("token-1", []byte(`{}`)).
			WillReturnError(errors.New("database is locked"))

		err := repo.Set(ctx, "token-1", []byte(`{}`))
		assert.Error(t, err)

		assert.NoError(t, smock.ExpectationsWereMet())
	})
}

func TestSessionRepository_Remove(t *testing.T) {
	ctx := context.Background()
	query := regexp.QuoteMeta("DELETE FROM sessions WHERE token = ?")

	t.Run("Success: existing session is removed", func(t *testing.T) {
		repo, smock := newMockRepository(t)

		smock.ExpectExec(query).
			WithArgs("token-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Remove(ctx, "token-1"))
		assert.NoError(t, smock.ExpectationsWereMet())
	})

	t.Run("Success: removing an unknown token is a no-op", func(t *testing.T) {
		repo, smock := newMockRepository(t)

		smock.ExpectExec(query).
			WithArgs("token-missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, repo.Remove(ctx, "token-missing"))
		assert.NoError(t, smock.ExpectationsWereMet())
	})
}

// The round trip below runs against the real driver so the generated SQL is
// checked against sqlite itself, not just against the mock expectations.
func TestSessionRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()

	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE sessions (
		token TEXT PRIMARY KEY,
		snapshot TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	require.NoError(t, err)

	repo := NewSessionRepository(db, slog.New(slog.NewTextHandler(io.Discard, nil)))

	snapshot := []byte(`{"id":"student-1"}`)
	require.NoError(t, repo.Set(ctx, "token-1", snapshot))

	got, err := repo.Get(ctx, "token-1")
	require.NoError(t, err)
	assert.Equal(t, snapshot, got)

	// The upsert replaces the snapshot for an existing token.
	updated := []byte(`{"id":"student-1","profile_completed":true}`)
	require.NoError(t, repo.Set(ctx, "token-1", updated))

	got, err = repo.Get(ctx, "token-1")
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	require.NoError(t, repo.Remove(ctx, "token-1"))

	_, err = repo.Get(ctx, "token-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
