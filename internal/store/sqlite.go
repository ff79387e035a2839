// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/remaimber-it/imagequiz/internal/domain/questionbank"
)

const schema = `
CREATE TABLE IF NOT EXISTS asset_failures (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    kind TEXT NOT NULL,
    question_id INTEGER NOT NULL,
    path TEXT NOT NULL,
    reason TEXT NOT NULL,
    detail TEXT NOT NULL,
    source TEXT NOT NULL,
    occurred_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_asset_failures_occurred_at ON asset_failures(occurred_at);
`

// DefaultListLimit caps ListAssetFailures when no positive limit is given.
const DefaultListLimit = 100

type SQLiteStore struct {
	db *sql.DB
}

// Compile-time check: *SQLiteStore satisfies the Store interface.
var _ Store = (*SQLiteStore)(nil)

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	// modernc's driver serialises writers; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// ============================================================================
// Asset failures
// ============================================================================

func (s *SQLiteStore) SaveAssetFailure(ctx context.Context, f *AssetFailure) error {
	if f.OccurredAt.IsZero() {
		f.OccurredAt = time.Now()
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO asset_failures (kind, question_id, path, reason, detail, source, occurred_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(f.Kind), f.QuestionID, f.Path, f.Reason, f.Detail, f.Source, f.OccurredAt.UnixMilli(),
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = id
	return nil
}

func (s *SQLiteStore) GetAssetFailure(ctx context.Context, id int64) (*AssetFailure, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, kind, question_id, path, reason, detail, source, occurred_at
		 FROM asset_failures WHERE id = ?`, id,
	)

	f, err := scanFailure(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// ListAssetFailures returns the most recent failures first.
func (s *SQLiteStore) ListAssetFailures(ctx context.Context, limit int) ([]AssetFailure, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, question_id, path, reason, detail, source, occurred_at
		 FROM asset_failures ORDER BY occurred_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	failures := []AssetFailure{}
	for rows.Next() {
		f, err := scanFailure(rows)
		if err != nil {
			return nil, err
		}
		failures = append(failures, f)
	}
	return failures, rows.Err()
}

// ClearAssetFailures deletes failures recorded by source, or all of them when
// source is empty.
func (s *SQLiteStore) ClearAssetFailures(ctx context.Context, source string) (int64, error) {
	var (
		result sql.Result
		err    error
	)
	if source == "" {
		result, err = s.db.ExecContext(ctx, "DELETE FROM asset_failures")
	} else {
		result, err = s.db.ExecContext(ctx, "DELETE FROM asset_failures WHERE source = ?", source)
	}
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFailure(row scanner) (AssetFailure, error) {
	var (
		f          AssetFailure
		kind       string
		occurredAt int64
	)
	if err := row.Scan(&f.ID, &kind, &f.QuestionID, &f.Path, &f.Reason, &f.Detail, &f.Source, &occurredAt); err != nil {
		return AssetFailure{}, err
	}
	f.Kind = questionbank.AssetKind(kind)
	f.OccurredAt = time.UnixMilli(occurredAt)
	return f, nil
}
