package redis

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/prepmitra/currentaffairs-backend/internal/pkg/logger"
)

// GenerationGuard rate-limits cold-start recommendation generation across
// processes: once a generation has been attempted for a user, further
// attempts are suppressed until the slot expires, regardless of which
// instance served the request.
type GenerationGuard interface {
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
	Close() error
}

type generationGuard struct {
	log *logger.Logger
	rdb *goredis.Client
}

func NewGenerationGuard(log *logger.Logger) (GenerationGuard, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &generationGuard{
		log: log.With("client", "RedisGenerationGuard"),
		rdb: rdb,
	}, nil
}

func (g *generationGuard) TryAcquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if g == nil || g.rdb == nil {
		return false, fmt.Errorf("generation guard not initialized")
	}
	ok, err := g.rdb.SetNX(ctx, key, 1, ttl).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (g *generationGuard) Release(ctx context.Context, key string) error {
	if g == nil || g.rdb == nil {
		return fmt.Errorf("generation guard not initialized")
	}
	return g.rdb.Del(ctx, key).Err()
}

func (g *generationGuard) Close() error {
	if g == nil || g.rdb == nil {
		return nil
	}
	return g.rdb.Close()
}
