package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"rumo/internal/interview"
	"rumo/internal/logging"
)

// RedisOptions configures NewRedisStore.
type RedisOptions struct {
	Addr        string
	Password    string
	DB          int
	Key         string
	DialTimeout time.Duration
}

// RedisStore keeps the encoded record under a single key.
type RedisStore struct {
	rdb    *goredis.Client
	key    string
	addr   string
	logger *zap.Logger
}

// NewRedisStore connects and pings the server.
func NewRedisStore(ctx context.Context, opts RedisOptions, logger *zap.Logger) (*RedisStore, error) {
	if logger == nil {
		logger = logging.Get(logging.CategoryStore)
	}
	if opts.Addr == "" {
		return nil, fmt.Errorf("missing redis addr")
	}
	if opts.Key == "" {
		opts.Key = "rumo:profile"
	}
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = 3 * time.Second
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: opts.DialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisStore{rdb: rdb, key: opts.Key, addr: opts.Addr, logger: logger}, nil
}

// Describe implements Store.
func (s *RedisStore) Describe() string { return fmt.Sprintf("redis:%s/%s", s.addr, s.key) }

// Load implements Store.
func (s *RedisStore) Load(ctx context.Context) (*Record, error) {
	data, err := s.rdb.Get(ctx, s.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return decodeRecord(data)
}

// Save implements Store.
func (s *RedisStore) Save(ctx context.Context, p interview.Profile, completed bool) (*Record, error) {
	rec := newRecord(p, completed)
	data, err := encodeRecord(rec)
	if err != nil {
		return nil, err
	}
	if err := s.rdb.Set(ctx, s.key, data, 0).Err(); err != nil {
		return nil, fmt.Errorf("redis set: %w", err)
	}
	s.logger.Debug("profile saved", zap.String("key", s.key), zap.String("revision", rec.Revision))
	return rec, nil
}

// Clear implements Store.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.rdb.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
