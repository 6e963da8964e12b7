package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/fuelplate/backend/internal/engine"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrSessionNotFound is returned when a session is missing or expired.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionBusy is returned when another turn holds the session.
	ErrSessionBusy = errors.New("session is processing another message")
)

const (
	sessionKeyFormat = "conversation:session:%s:%s"
	lockKeyFormat    = "conversation:lock:%s:%s"
	lockTTL          = 30 * time.Second
)

// unlockScript deletes the lock only if it still holds our token.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// SessionStore keeps ConversationState in Redis. Each save refreshes the
// TTL, so a session expires after ttl of inactivity.
type SessionStore struct {
	redis *redis.Client
	ttl   time.Duration
}

// Ensure SessionStore implements SessionRepository
var _ SessionRepository = (*SessionStore)(nil)

// NewSessionStore creates a new SessionStore instance
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{redis: client, ttl: ttl}
}

func sessionKey(userID uuid.UUID, sessionID string) string {
	return fmt.Sprintf(sessionKeyFormat, userID, sessionID)
}

// Load returns the stored state or ErrSessionNotFound.
func (s *SessionStore) Load(ctx context.Context, userID uuid.UUID, sessionID string) (engine.ConversationState, error) {
	data, err := s.redis.Get(ctx, sessionKey(userID, sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return engine.ConversationState{}, ErrSessionNotFound
	}
	if err != nil {
		return engine.ConversationState{}, fmt.Errorf("failed to get session from Redis: %w", err)
	}

	var state engine.ConversationState
	if err := json.Unmarshal(data, &state); err != nil {
		return engine.ConversationState{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return state, nil
}

// Save stores state and refreshes the TTL.
func (s *SessionStore) Save(ctx context.Context, userID uuid.UUID, sessionID string, state engine.ConversationState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.redis.Set(ctx, sessionKey(userID, sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session to Redis: %w", err)
	}
	return nil
}

// Delete removes the session. Deleting a missing session returns
// ErrSessionNotFound.
func (s *SessionStore) Delete(ctx context.Context, userID uuid.UUID, sessionID string) error {
	n, err := s.redis.Del(ctx, sessionKey(userID, sessionID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session from Redis: %w", err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// Lock takes the per-session turn lock. The returned func releases it. A
// held lock yields ErrSessionBusy; the lock expires on its own if the
// holder dies.
func (s *SessionStore) Lock(ctx context.Context, userID uuid.UUID, sessionID string) (func(), error) {
	key := fmt.Sprintf(lockKeyFormat, userID, sessionID)
	token := uuid.NewString()

	ok, err := s.redis.SetNX(ctx, key, token, lockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to lock session: %w", err)
	}
	if !ok {
		return nil, ErrSessionBusy
	}
	return func() {
		// Released with a fresh context so a cancelled request still unlocks.
		_ = unlockScript.Run(context.Background(), s.redis, []string{key}, token).Err()
	}, nil
}
