package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"rumo/internal/interview"
)

// BackendSuite runs the same contract against every backend.
type BackendSuite struct {
	suite.Suite
	open  func(t *testing.T) Store
	store Store
	ctx   context.Context
}

func (s *BackendSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.open(s.T())
}

func (s *BackendSuite) TearDownTest() {
	if s.store != nil {
		s.Require().NoError(s.store.Clear(s.ctx))
		s.Require().NoError(s.store.Close())
	}
}

func (s *BackendSuite) TestLoadEmpty() {
	_, err := s.store.Load(s.ctx)
	s.True(errors.Is(err, ErrNotFound), "got %v", err)
}

func (s *BackendSuite) TestSaveLoadRoundTrip() {
	p := interview.Profile{
		"stance":    interview.Text("coach"),
		"toneWords": interview.Set("calm", "warm", "sharp"),
		"role":      interview.Text("Founder\nand parent"),
	}
	saved, err := s.store.Save(s.ctx, p, false)
	s.Require().NoError(err)
	s.NotEmpty(saved.Revision)

	got, err := s.store.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal(saved.Revision, got.Revision)
	s.False(got.Completed)
	s.WithinDuration(saved.UpdatedAt, got.UpdatedAt, 0)
	if diff := cmp.Diff(p, got.Profile); diff != "" {
		s.Failf("profile mismatch", "(-want +got):\n%s", diff)
	}
}

func (s *BackendSuite) TestSaveReplacesAndMintsRevision() {
	first, err := s.store.Save(s.ctx, interview.Profile{"role": interview.Text("a")}, false)
	s.Require().NoError(err)
	second, err := s.store.Save(s.ctx, interview.Profile{"role": interview.Text("b")}, true)
	s.Require().NoError(err)
	s.NotEqual(first.Revision, second.Revision)

	got, err := s.store.Load(s.ctx)
	s.Require().NoError(err)
	s.True(got.Completed)
	s.Equal("b", got.Profile.Text("role"))
}

func (s *BackendSuite) TestSaveDoesNotAliasProfile() {
	p := interview.Profile{"role": interview.Text("a")}
	_, err := s.store.Save(s.ctx, p, false)
	s.Require().NoError(err)
	p["role"] = interview.Text("changed")

	got, err := s.store.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal("a", got.Profile.Text("role"))
}

func (s *BackendSuite) TestClear() {
	_, err := s.store.Save(s.ctx, interview.Profile{}, true)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Clear(s.ctx))
	_, err = s.store.Load(s.ctx)
	s.True(errors.Is(err, ErrNotFound))
	s.NoError(s.store.Clear(s.ctx), "clearing twice is fine")
}

func (s *BackendSuite) TestDescribe() {
	s.NotEmpty(s.store.Describe())
}

func TestFileBackend(t *testing.T) {
	suite.Run(t, &BackendSuite{open: func(t *testing.T) Store {
		return NewFileStore(filepath.Join(t.TempDir(), "nested", "profile.json"), zap.NewNop())
	}})
}

func TestMemoryBackend(t *testing.T) {
	suite.Run(t, &BackendSuite{open: func(t *testing.T) Store { return NewMemoryStore() }})
}

func TestSQLiteBackendModernc(t *testing.T) {
	suite.Run(t, &BackendSuite{open: func(t *testing.T) Store {
		s, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "profile.db"), "sqlite", zap.NewNop())
		require.NoError(t, err)
		return s
	}})
}

func TestSQLiteBackendMattn(t *testing.T) {
	probe, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "probe.db"), "sqlite3", zap.NewNop())
	if err != nil {
		t.Skipf("sqlite3 driver unavailable (cgo disabled?): %v", err)
	}
	probe.Close()

	suite.Run(t, &BackendSuite{open: func(t *testing.T) Store {
		s, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "profile.db"), "sqlite3", zap.NewNop())
		require.NoError(t, err)
		return s
	}})
}

func TestRedisBackend(t *testing.T) {
	addr := os.Getenv("RUMO_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("RUMO_TEST_REDIS_ADDR not set")
	}
	suite.Run(t, &BackendSuite{open: func(t *testing.T) Store {
		s, err := NewRedisStore(context.Background(), RedisOptions{Addr: addr, Key: "rumo:test:" + t.Name()}, zap.NewNop())
		require.NoError(t, err)
		return s
	}})
}
