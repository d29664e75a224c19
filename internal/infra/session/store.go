// Package session keeps in-progress form submissions in Redis under a
// TTL that is renewed on every read and write, so a session lives for
// "TTL since last touch" rather than "TTL since creation".
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/xavierca1/merchant-leads/internal/entity"
)

const keyPrefix = "session:"

// Client is the slice of the Redis API the store needs. *redis.Client
// satisfies it.
type Client interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	SetEx(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type Store struct {
	client Client
	ttl    time.Duration
}

func NewStore(client Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return keyPrefix + sessionID
}

// Create writes an empty session with the full TTL and returns it.
func (s *Store) Create(ctx context.Context) (*entity.Session, error) {
	now := time.Now().UTC()
	session := &entity.Session{
		SessionID: uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.ttl),
		FormData:  entity.NewFormData(),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize session: %w", err)
	}

	if err := s.client.SetEx(ctx, sessionKey(session.SessionID), data, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrStorageUnavailable, err)
	}

	log.Printf("created session %s", session.SessionID)
	return session, nil
}

// Get loads a session and renews its TTL to the full duration.
func (s *Store) Get(ctx context.Context, sessionID string) (*entity.Session, error) {
	key := sessionKey(sessionID)

	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("session %s: %w", sessionID, entity.ErrSessionNotFound)
		}
		return nil, fmt.Errorf("failed to retrieve session: %w", err)
	}

	// Extend TTL on access.
	if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to renew session TTL: %w", err)
	}

	var session entity.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse session data: %w", err)
	}

	return &session, nil
}

// Update shallow-merges the patch into the stored form data, refreshes
// updated_at and rewrites the record with a full TTL reset.
func (s *Store) Update(ctx context.Context, sessionID string, patch *entity.FormDataPatch) (*entity.Session, error) {
	key := sessionKey(sessionID)

	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("session %s: %w", sessionID, entity.ErrSessionNotFound)
		}
		return nil, fmt.Errorf("failed to retrieve session: %w", err)
	}

	var session entity.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse session data: %w", err)
	}

	logStepChanges(&session, patch)

	session.FormData.Apply(patch)
	session.UpdatedAt = time.Now().UTC()

	updated, err := json.Marshal(&session)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize session: %w", err)
	}

	if err := s.client.SetEx(ctx, key, updated, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to store updated session: %w", err)
	}

	return &session, nil
}

// Delete removes a session. Reports whether a record existed; a missing
// key is not an error.
func (s *Store) Delete(ctx context.Context, sessionID string) (bool, error) {
	removed, err := s.client.Del(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to delete session: %w", err)
	}

	if removed > 0 {
		log.Printf("deleted session %s", sessionID)
		return true, nil
	}
	return false, nil
}

// Ping verifies the backing connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func logStepChanges(session *entity.Session, patch *entity.FormDataPatch) {
	if patch == nil {
		return
	}
	if patch.CompletedSteps != nil {
		var completed []string
		for step, done := range patch.CompletedSteps {
			if done {
				completed = append(completed, step)
			}
		}
		if len(completed) > 0 {
			log.Printf("session %s: steps completed: %s", session.SessionID, strings.Join(completed, ", "))
		}
	}
	if patch.CurrentStep != nil && *patch.CurrentStep != session.FormData.CurrentStep {
		log.Printf("session %s: current step %d -> %d", session.SessionID, session.FormData.CurrentStep, *patch.CurrentStep)
	}
}
