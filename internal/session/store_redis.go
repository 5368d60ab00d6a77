package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"comparo/internal/domain"
)

const sessionKeyPrefix = "session:cred:"

// RedisStore is the production credential store. The durable/ephemeral
// split maps onto key TTLs; a single key space serves both policies so
// reads never need to know how a credential was written.
type RedisStore struct {
	client       *redis.Client
	durableTTL   time.Duration
	ephemeralTTL time.Duration
}

func NewRedisStore(client *redis.Client, durableTTL, ephemeralTTL time.Duration) *RedisStore {
	return &RedisStore{
		client:       client,
		durableTTL:   durableTTL,
		ephemeralTTL: ephemeralTTL,
	}
}

type storedCredential struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func (s *RedisStore) Find(ctx context.Context, sessionID string) (domain.Credential, error) {
	raw, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Credential{}, ErrNotFound
	}
	if err != nil {
		return domain.Credential{}, fmt.Errorf("find credential: %w", err)
	}

	var stored storedCredential
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return domain.Credential{}, fmt.Errorf("decode credential: %w", err)
	}
	return domain.Credential{
		AccessToken:  stored.AccessToken,
		RefreshToken: stored.RefreshToken,
		ExpiresAt:    stored.ExpiresAt,
	}, nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, cred domain.Credential, durable bool) error {
	ttl := s.ephemeralTTL
	if durable {
		ttl = s.durableTTL
	}

	raw, err := json.Marshal(storedCredential{
		AccessToken:  cred.AccessToken,
		RefreshToken: cred.RefreshToken,
		ExpiresAt:    cred.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}

	if err := s.client.Set(ctx, sessionKeyPrefix+sessionID, raw, ttl).Err(); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}
