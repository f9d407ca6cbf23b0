package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"rumo/internal/interview"
	"rumo/internal/logging"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore keeps the record in a single-row table and every saved
// revision in profile_history.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	driver string
	logger *zap.Logger
}

// NewSQLiteStore opens (creating if needed) the database at path using the
// named database/sql driver: "sqlite" (modernc, pure Go) or "sqlite3"
// (mattn, cgo).
func NewSQLiteStore(ctx context.Context, path, driver string, logger *zap.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = logging.Get(logging.CategoryStore)
	}
	if driver == "" {
		driver = "sqlite"
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open(driver, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		logger.Debug("failed to set busy_timeout", zap.Error(err))
	}
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
		logger.Debug("failed to set journal_mode=WAL", zap.Error(err))
	}

	from, to, err := migrate(ctx, db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if from != to {
		logger.Info("sqlite schema migrated", zap.Int("from", from), zap.Int("to", to), zap.String("path", path))
	}

	return &SQLiteStore{db: db, path: path, driver: driver, logger: logger}, nil
}

// Describe implements Store.
func (s *SQLiteStore) Describe() string { return fmt.Sprintf("sqlite(%s):%s", s.driver, s.path) }

// Load implements Store.
func (s *SQLiteStore) Load(ctx context.Context) (*Record, error) {
	var (
		rec       Record
		completed int
		raw       string
		updated   string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT revision, completed, profile_json, updated_at FROM profile WHERE id = 1").
		Scan(&rec.Revision, &completed, &raw, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}

	if err := json.Unmarshal([]byte(raw), &rec.Profile); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if rec.Profile == nil {
		rec.Profile = interview.Profile{}
	}
	rec.Completed = completed != 0
	if rec.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
		return nil, fmt.Errorf("%w: bad updated_at %q", ErrMalformed, updated)
	}
	return &rec, nil
}

// Save implements Store. The current row and the history row are written
// in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, p interview.Profile, completed bool) (*Record, error) {
	rec := newRecord(p, completed)
	raw, err := json.Marshal(rec.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile: %w", err)
	}
	stamp := rec.UpdatedAt.Format(timeLayout)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO profile (id, revision, completed, profile_json, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			revision = excluded.revision,
			completed = excluded.completed,
			profile_json = excluded.profile_json,
			updated_at = excluded.updated_at`,
		rec.Revision, boolInt(completed), string(raw), stamp); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO profile_history (revision, completed, profile_json, saved_at) VALUES (?, ?, ?, ?)",
		rec.Revision, boolInt(completed), string(raw), stamp); err != nil {
		return nil, fmt.Errorf("failed to record history: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit profile: %w", err)
	}

	s.logger.Debug("profile saved",
		zap.String("revision", rec.Revision),
		zap.Bool("completed", completed))
	return rec, nil
}

// History returns up to limit saved revisions, newest first. Rows whose
// JSON no longer decodes are skipped.
func (s *SQLiteStore) History(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT revision, completed, profile_json, saved_at
		FROM profile_history
		ORDER BY saved_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec       Record
			completed int
			raw       string
			saved     string
		)
		if err := rows.Scan(&rec.Revision, &completed, &raw, &saved); err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &rec.Profile); err != nil {
			s.logger.Warn("skipping undecodable history row", zap.String("revision", rec.Revision), zap.Error(err))
			continue
		}
		rec.Completed = completed != 0
		rec.UpdatedAt, _ = time.Parse(timeLayout, saved)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Clear implements Store. History is kept.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM profile"); err != nil {
		return fmt.Errorf("failed to clear profile: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
