package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "villadesk/internal/domain/auth"
)

const keyPrefix = "session:"

// RedisStore keeps sessions in Redis with a TTL matching the session
// expiry, so stale tokens evict themselves.
type RedisStore struct {
	Client *redis.Client
}

func NewRedisStore(addr, password string) *RedisStore {
	return &RedisStore{Client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})}
}

func (s *RedisStore) Save(ctx context.Context, session *domainauth.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.Client.Set(ctx, keyPrefix+string(session.Token), payload, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, token domainauth.Token) (*domainauth.Session, error) {
	raw, err := s.Client.Get(ctx, keyPrefix+string(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domainauth.ErrSessionNotFound
		}
		return nil, err
	}
	var session domainauth.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *RedisStore) Delete(ctx context.Context, token domainauth.Token) error {
	return s.Client.Del(ctx, keyPrefix+string(token)).Err()
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}
