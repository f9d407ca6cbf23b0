package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"rumo/internal/config"
	"rumo/internal/interview"
	"rumo/internal/persona"
)

type failingStore struct{ MemoryStore }

func (f *failingStore) Load(context.Context) (*Record, error) {
	return nil, errors.New("disk on fire")
}

func TestResumeEmptyStartsFresh(t *testing.T) {
	w, rec := Resume(context.Background(), NewMemoryStore(), persona.Schema(), zap.NewNop())
	assert.Nil(t, rec)
	assert.False(t, w.Completed())
	assert.Equal(t, interview.Position{}, w.Position())
}

func TestResumeNilStore(t *testing.T) {
	w, rec := Resume(context.Background(), nil, persona.Schema(), nil)
	assert.Nil(t, rec)
	assert.NotNil(t, w)
}

func TestResumeMalformedStartsFresh(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := NewMemoryStore()
	s.SetRaw([]byte(`{"profile": {"stance": 42}`))

	w, rec := Resume(context.Background(), s, persona.Schema(), zap.New(core))
	assert.Nil(t, rec)
	assert.False(t, w.Completed())
	assert.Empty(t, w.Profile())
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "ignoring unreadable saved profile", logs.All()[0].Message)
}

func TestResumeLoadErrorStartsFresh(t *testing.T) {
	w, rec := Resume(context.Background(), &failingStore{}, persona.Schema(), zap.NewNop())
	assert.Nil(t, rec)
	assert.False(t, w.Completed())
}

func TestResumeCompletedBypassesWizard(t *testing.T) {
	s := NewMemoryStore()
	saved := interview.Profile{
		persona.FieldStance: interview.Text("anchor"),
		persona.FieldRole:   interview.Text("Designer"),
	}
	_, err := s.Save(context.Background(), saved, true)
	require.NoError(t, err)

	fired := false
	w, rec := Resume(context.Background(), s, persona.Schema(), zap.NewNop(),
		interview.WithRenderer(persona.Renderer()),
		interview.WithOnComplete(func(interview.Profile) { fired = true }),
	)
	require.NotNil(t, rec)
	assert.True(t, w.Completed())
	assert.False(t, fired, "completion already happened in an earlier session")

	doc, ok := w.Document()
	require.True(t, ok)
	assert.Equal(t, persona.Render(saved), doc)
}

func TestResumeInProgressSeedsAnswers(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Save(context.Background(), interview.Profile{
		persona.FieldStance: interview.Text("muse"),
		"retiredQuestion":   interview.Text("gone"),
	}, false)
	require.NoError(t, err)

	w, rec := Resume(context.Background(), s, persona.Schema(), zap.NewNop())
	require.NotNil(t, rec)
	assert.False(t, w.Completed())
	assert.Equal(t, "muse", w.Draft().Choice)
	_, kept := rec.Profile["retiredQuestion"]
	assert.False(t, kept)
}

func TestFileStoreMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewFileStore(path, nil).Load(context.Background())
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(filepath.Join(dir, "profile.json"), zap.NewNop())
	for i := 0; i < 3; i++ {
		_, err := s.Save(context.Background(), interview.Profile{}, false)
		require.NoError(t, err)
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "profile.json", entries[0].Name())
}

func TestStoreHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMemoryStore().Save(ctx, interview.Profile{}, false)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpenBackends(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	cfg := config.DefaultConfig()
	cfg.Store.Path = filepath.Join(dir, "profile.json")
	s, err := Open(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	cfg.Store.Backend = config.BackendMemory
	s, err = Open(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	cfg.Store.Backend = config.BackendSQLite
	cfg.Store.Path = filepath.Join(dir, "profile.db")
	s, err = Open(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	cfg.Store.Backend = "carrier-pigeon"
	_, err = Open(ctx, cfg, zap.NewNop())
	assert.Error(t, err)
}
