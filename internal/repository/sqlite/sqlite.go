// package sqlite implements the session snapshot store on an embedded
// SQLite database. The driver is pure Go, so the store stays a local file
// with no server process behind it.
package sqlite

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/stazhbg/internship-portal/internal/config"
	_ "modernc.org/sqlite"
)

type SQLite struct {
	db *sqlx.DB
}

func NewDB(cfg config.Storage, log *slog.Logger) (*SQLite, error) {
	db, err := sqlx.Connect("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("can't open database: %v", err)
	}

	// SQLite allows a single writer; keep the pool tiny to avoid
	// SQLITE_BUSY under concurrent requests.
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	log.Info("session store opened", slog.String("path", cfg.Path))

	return &SQLite{db: db}, nil
}

func (s *SQLite) DB() *sqlx.DB {
	return s.db
}
