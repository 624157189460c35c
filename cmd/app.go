package cmd

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/example/calbook/internal/domain/booking"
	"github.com/example/calbook/internal/domain/slot"
	"github.com/example/calbook/internal/infrastructure/calcom"
	"github.com/example/calbook/internal/infrastructure/config"
	"github.com/example/calbook/internal/infrastructure/logging"
	"github.com/example/calbook/internal/infrastructure/postgres"
	"github.com/example/calbook/internal/infrastructure/redis"
)

// app holds what every command wires from the environment.
type app struct {
	cfg      config.Config
	log      *zap.Logger
	provider *calcom.Provider
	slots    slot.Source
	lister   booking.EventTypeLister
	pool     *pgxpool.Pool
	closers  []func()
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, log: log}
	a.closers = append(a.closers, func() { _ = log.Sync() })

	a.provider = calcom.New(cfg, log)
	a.lister = a.provider

	switch cfg.SlotSource {
	case "postgres":
		pool, err := a.openPool(ctx)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.slots = postgres.NewSlotGridRepo(pool)
	default:
		grid, err := slot.NewGrid(cfg.SlotTimes()...)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("SLOT_GRID: %w", err)
		}
		a.slots = slot.StaticSource{Grid: grid}
	}

	if cfg.RedisAddr != "" {
		client, err := redis.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			// Redis is optional; without it event types are fetched every time
			log.Warn("redis unavailable, event types will not be cached", zap.Error(err))
		} else {
			a.closers = append(a.closers, func() { _ = client.Close() })
			a.lister = redis.NewEventTypeCache(a.provider, client, cfg.EventTypesCacheTTL, log.Named("cache"))
		}
	}
	return a, nil
}

// openPool connects to DATABASE_URL once and reuses the pool afterwards.
func (a *app) openPool(ctx context.Context) (*pgxpool.Pool, error) {
	if a.pool != nil {
		return a.pool, nil
	}
	if a.cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	pool, err := postgres.Open(ctx, a.cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	a.pool = pool
	a.closers = append(a.closers, pool.Close)
	return pool, nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
