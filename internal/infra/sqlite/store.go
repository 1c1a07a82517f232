// Package sqlite is a single-node store for players and boss attempts.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite"

	"chemquest/internal/infra/sqlstore"
)

// Store runs the bun progress store on a sqlite file and doubles as the leaderboard.
type Store struct {
	*sqlstore.ProgressStore
	db *bun.DB
}

// Open opens (or creates) the database at path and creates missing tables.
func Open(ctx context.Context, path string) (*Store, error) {
	sqldb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// sqlite allows one writer at a time.
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if _, err := db.ExecContext(ctx, `PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure sqlite: %w", err)
	}
	if err := sqlstore.CreateTables(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{ProgressStore: sqlstore.NewProgressStore(db), db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SetScore is a no-op: Top reads XP straight from the players table.
func (s *Store) SetScore(context.Context, string, string, int) error {
	return nil
}
