package store

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"rumo/internal/config"
	"rumo/internal/interview"
	"rumo/internal/logging"
)

// Open builds the backend selected by cfg.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = logging.Get(logging.CategoryStore)
	}
	switch cfg.Store.Backend {
	case config.BackendFile, "":
		return NewFileStore(cfg.StorePath(), logger), nil
	case config.BackendSQLite:
		return NewSQLiteStore(ctx, cfg.StorePath(), cfg.Store.SQLiteDriver, logger)
	case config.BackendRedis:
		return NewRedisStore(ctx, RedisOptions{
			Addr:        cfg.Store.Redis.Addr,
			Password:    cfg.Store.Redis.Password,
			DB:          cfg.Store.Redis.DB,
			Key:         cfg.Store.Redis.Key,
			DialTimeout: cfg.GetRedisDialTimeout(),
		}, logger)
	case config.BackendMemory:
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

// Resume builds the wizard for a new session from whatever s holds.
//
// A completed record yields a wizard already in the completed state, so the
// caller goes straight to the finished document. An in-progress record
// pre-seeds the answers. Any load failure, including malformed data, is
// logged and treated as "nothing saved": the caller always gets a usable
// wizard. The returned record is nil in that case.
func Resume(ctx context.Context, s Store, schema *interview.Schema, logger *zap.Logger, opts ...interview.WizardOption) (*interview.Wizard, *Record) {
	if logger == nil {
		logger = logging.Get(logging.CategoryStore)
	}
	if s == nil {
		return interview.New(schema, opts...), nil
	}

	rec, err := s.Load(ctx)
	switch {
	case errors.Is(err, ErrNotFound):
		logger.Debug("no saved profile, starting fresh", zap.String("store", s.Describe()))
		return interview.New(schema, opts...), nil
	case err != nil:
		logger.Warn("ignoring unreadable saved profile", zap.String("store", s.Describe()), zap.Error(err))
		return interview.New(schema, opts...), nil
	}

	profile, dropped := rec.Profile.Sanitize(schema)
	if len(dropped) > 0 {
		logger.Warn("dropped saved answers the interview no longer asks",
			zap.Strings("fields", dropped),
			zap.String("revision", rec.Revision))
	}
	rec.Profile = profile

	if rec.Completed {
		logger.Info("resuming completed profile", zap.String("revision", rec.Revision))
		return interview.Restore(schema, profile, opts...), rec
	}
	logger.Info("resuming interview", zap.String("revision", rec.Revision), zap.Int("answered", len(profile)))
	return interview.New(schema, append(opts, interview.WithProfile(profile))...), rec
}
