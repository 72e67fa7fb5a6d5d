package repo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/tazhibayda/inventory-service/internal/domain"
)

type Redis struct{ C *redis.Client }

func NewRedis(addr, password string, db int) *Redis {
	return &Redis{C: redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})}
}

func (r *Redis) Ping(ctx context.Context) error { return r.C.Ping(ctx).Err() }
func (r *Redis) Close() error                   { return r.C.Close() }

// Sessions is the session cache: session:<user id> -> JSON user.
// Entry presence is what keeps a refresh token usable.
type Sessions struct {
	c   *redis.Client
	ttl time.Duration
}

func (r *Redis) Sessions(ttl time.Duration) *Sessions { return &Sessions{c: r.C, ttl: ttl} }

func sessionKey(id string) string { return "session:" + id }

func (s *Sessions) Set(ctx context.Context, u *domain.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return s.c.Set(ctx, sessionKey(u.ID.Hex()), b, s.ttl).Err()
}

// Get returns nil, nil when there is no session for id.
func (s *Sessions) Get(ctx context.Context, id string) (*domain.User, error) {
	b, err := s.c.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var u domain.User
	if err := json.Unmarshal(b, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Sessions) Delete(ctx context.Context, id string) error {
	return s.c.Del(ctx, sessionKey(id)).Err()
}
