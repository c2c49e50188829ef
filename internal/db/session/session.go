package session

import (
	"context"
	"encoding/json"
	"fmt"
	"kedilabs/internal/core/domain/admin"
	c "kedilabs/internal/core/domain/common"
	e "kedilabs/internal/core/domain/errors"
	"time"

	"github.com/go-redis/redis/v9"
)

type record struct {
	UserID    string `json:"userId"`
	CreatedAt string `json:"createdAt"`
	ExpiresAt string `json:"expiresAt"`
}

func key(id admin.SessionID) string {
	return "admin_session:" + string(id)
}

// RedisSessionRepository stores admin sessions as keys that expire at
// Session.ExpiresAt.
type RedisSessionRepository struct {
	client  *redis.Client
	now     func() time.Time
	timeout time.Duration
}

func NewRedisSessionRepository(client *redis.Client, now func() time.Time, timeout time.Duration) *RedisSessionRepository {
	if client == nil {
		panic(e.NewNilArgumentError("client"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &RedisSessionRepository{client: client, now: now, timeout: timeout}
}

func (r *RedisSessionRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *RedisSessionRepository) Create(ctx context.Context, session admin.Session) error {
	ttl := session.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return e.NewInvalidStateError("session is already expired")
	}
	data, err := json.Marshal(record{
		UserID:    session.UserID,
		CreatedAt: c.FormatTime(session.CreatedAt),
		ExpiresAt: c.FormatTime(session.ExpiresAt),
	})
	if err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.client.Set(ctx, key(session.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("could not store session: %w", err)
	}
	return nil
}

func (r *RedisSessionRepository) Exists(ctx context.Context, id admin.SessionID) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	n, err := r.client.Exists(ctx, key(id)).Result()
	if err != nil {
		return false, fmt.Errorf("could not read session: %w", err)
	}
	return n == 1, nil
}

func (r *RedisSessionRepository) Delete(ctx context.Context, id admin.SessionID) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("could not delete session: %w", err)
	}
	return nil
}
