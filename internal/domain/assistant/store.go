// internal/domain/assistant/store.go
package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redisdb "github.com/pressart/storefront-api/internal/infrastructure/database/redis"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrSessionNotFound is returned by Store.Load for unknown or expired sessions
	ErrSessionNotFound = errors.New("assistant session not found")
	// ErrSessionBusy is returned when concurrent writers keep changing a session
	ErrSessionBusy = errors.New("assistant session is being updated, please retry")
)

// maxUpdateAttempts bounds the optimistic retries of Update
const maxUpdateAttempts = 5

// UpdateFunc receives the stored session, or nil when none exists, and
// returns the session to write
type UpdateFunc func(current *Session) (*Session, error)

// Store persists assistant sessions
type Store interface {
	Load(ctx context.Context, sessionID string) (*Session, error)
	Update(ctx context.Context, sessionID string, fn UpdateFunc) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// RedisStore keeps sessions as JSON documents with a sliding TTL
type RedisStore struct {
	client *redisdb.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis backed session store
func NewRedisStore(client *redisdb.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("assistant:session:%s", sessionID)
}

// Load reads a session
func (s *RedisStore) Load(ctx context.Context, sessionID string) (*Session, error) {
	var session Session
	err := s.client.GetJSON(ctx, sessionKey(sessionID), &session)
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load assistant session: %w", err)
	}
	if session.Lines == nil {
		session.Lines = []Line{}
	}
	return &session, nil
}

// Update runs fn as an optimistic read-modify-write under WATCH. When
// another writer changes the session first, fn runs again on the fresh copy.
// Errors returned by fn abort the update and are passed through unchanged.
func (s *RedisStore) Update(ctx context.Context, sessionID string, fn UpdateFunc) (*Session, error) {
	key := sessionKey(sessionID)
	var updated *Session

	txf := func(tx *redis.Tx) error {
		current, err := decodeSession(tx.Get(ctx, key))
		if err != nil {
			return err
		}
		next, err := fn(current)
		if err != nil {
			return err
		}

		next.ExpiresAt = next.UpdatedAt.Add(s.ttl)
		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("failed to encode assistant session: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		if errors.Is(err, redis.TxFailedErr) {
			return err
		}
		if err != nil {
			return fmt.Errorf("failed to save assistant session: %w", err)
		}
		updated = next
		return nil
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := s.client.Redis.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}
	return nil, ErrSessionBusy
}

func decodeSession(cmd *redis.StringCmd) (*Session, error) {
	data, err := cmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode assistant session: %w", err)
	}
	if session.Lines == nil {
		session.Lines = []Line{}
	}
	return &session, nil
}

// Delete removes a session
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKey(sessionID))
}
