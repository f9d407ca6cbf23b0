package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rumo/internal/interview"
)

func openSQLite(t *testing.T, path string) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(context.Background(), path, "sqlite", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.db")
	first := openSQLite(t, path)
	require.NoError(t, first.Close())

	s := openSQLite(t, path)
	v, err := schemaVersion(context.Background(), s.db)
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, v)

	var rows int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM schema_versions").Scan(&rows))
	assert.Equal(t, len(migrations), rows)
}

func TestSQLiteHistory(t *testing.T) {
	s := openSQLite(t, filepath.Join(t.TempDir(), "profile.db"))
	ctx := context.Background()

	var revisions []string
	for _, role := range []string{"one", "two", "three"} {
		rec, err := s.Save(ctx, interview.Profile{"role": interview.Text(role)}, role == "three")
		require.NoError(t, err)
		revisions = append(revisions, rec.Revision)
	}

	hist, err := s.History(ctx, 2)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, revisions[2], hist[0].Revision)
	assert.True(t, hist[0].Completed)
	assert.Equal(t, "two", hist[1].Profile.Text("role"))

	require.NoError(t, s.Clear(ctx))
	hist, err = s.History(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, hist, 3, "clear keeps history")
}

func TestSQLiteMalformedRow(t *testing.T) {
	s := openSQLite(t, filepath.Join(t.TempDir(), "profile.db"))
	_, err := s.db.Exec(`INSERT INTO profile (id, revision, completed, profile_json, updated_at)
		VALUES (1, 'r', 0, '{"stance": {"nested": true}}', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = s.Load(context.Background())
	assert.True(t, errors.Is(err, ErrMalformed), "got %v", err)
}

func TestSQLiteSingleRow(t *testing.T) {
	s := openSQLite(t, filepath.Join(t.TempDir(), "profile.db"))
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := s.Save(ctx, interview.Profile{}, false)
		require.NoError(t, err)
	}
	var n int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM profile").Scan(&n))
	assert.Equal(t, 1, n)

	_, err := s.db.Exec(`INSERT INTO profile (id, revision, completed, profile_json, updated_at) VALUES (2, 'x', 0, '{}', 'now')`)
	assert.Error(t, err, "CHECK (id = 1) must reject a second row")
}
