package redis

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/example/calbook/internal/domain/booking"
)

const eventTypesKey = "calbook:event-types"

// NewClient dials Redis and pings it with a short deadline.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// EventTypeCache keeps the backend's event-type list in Redis for a while.
// Redis trouble is logged and the backend is asked directly.
type EventTypeCache struct {
	next   booking.EventTypeLister
	client *goredis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewEventTypeCache(next booking.EventTypeLister, client *goredis.Client, ttl time.Duration, log *zap.Logger) *EventTypeCache {
	if log == nil {
		log = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &EventTypeCache{next: next, client: client, ttl: ttl, log: log}
}

func (c *EventTypeCache) ListEventTypes(ctx context.Context) ([]booking.EventType, error) {
	raw, err := c.client.Get(ctx, eventTypesKey).Bytes()
	switch {
	case err == nil:
		var ets []booking.EventType
		if jerr := json.Unmarshal(raw, &ets); jerr == nil {
			return ets, nil
		}
		c.log.Warn("discarding unreadable cached event types")
	case err != goredis.Nil:
		c.log.Warn("event type cache read failed", zap.Error(err))
	}

	ets, err := c.next.ListEventTypes(ctx)
	if err != nil {
		return nil, err
	}
	if b, merr := json.Marshal(ets); merr == nil {
		if serr := c.client.Set(ctx, eventTypesKey, b, c.ttl).Err(); serr != nil {
			c.log.Warn("event type cache write failed", zap.Error(serr))
		}
	}
	return ets, nil
}

// Invalidate drops the cached list so the next call goes to the backend.
func (c *EventTypeCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, eventTypesKey).Err()
}
