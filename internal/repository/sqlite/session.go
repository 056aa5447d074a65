package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/stazhbg/internship-portal/internal/apperrors"
)

type SessionRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewSessionRepository(db *sqlx.DB, log *slog.Logger) *SessionRepository {
	return &SessionRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

func (sr *SessionRepository) Get(ctx context.Context, token string) ([]byte, error) {
	const op = "internal.repository.sqlite.Get"

	query, args, err := sr.sq.Select("snapshot").
		From("sessions").
		Where(sq.Eq{"token": token}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build select query: %w", op, err)
	}

	var snapshot []byte
	if err := sr.db.QueryRowxContext(ctx, query, args...).Scan(&snapshot); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: session '%s'", apperrors.ErrNotFound, token)
		}

		return nil, fmt.Errorf("%s: failed to read session: %w", op, err)
	}

	return snapshot, nil
}

func (sr *SessionRepository) Set(ctx context.Context, token string, snapshot []byte) error {
	const op = "internal.repository.sqlite.Set"

	query, args, err := sr.sq.Insert("sessions").
		Columns("token", "snapshot").
		Values(token, snapshot).
		Suffix("ON CONFLICT(token) DO UPDATE SET snapshot = excluded.snapshot, updated_at = CURRENT_TIMESTAMP").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build upsert query: %w", op, err)
	}

	if _, err := sr.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: failed to write session: %w", op, err)
	}

	return nil
}

func (sr *SessionRepository) Remove(ctx context.Context, token string) error {
	const op = "internal.repository.sqlite.Remove"

	query, args, err := sr.sq.Delete("sessions").
		Where(sq.Eq{"token": token}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build delete query: %w", op, err)
	}

	if _, err := sr.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: failed to delete session: %w", op, err)
	}

	return nil
}
