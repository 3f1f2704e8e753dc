package sso

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	identityapp "github.com/workify/backend/internal/application/identity"
)

const stateKeyPrefix = "workify:sso:state:"

// RedisStateStore keeps SSO states in Redis so any instance can finish a sign in
type RedisStateStore struct {
	client redis.UniversalClient
}

// NewRedisStateStore creates a Redis backed state store
func NewRedisStateStore(client redis.UniversalClient) *RedisStateStore {
	return &RedisStateStore{client: client}
}

// Put stores data under state for ttl
func (s *RedisStateStore) Put(ctx context.Context, state string, data identityapp.SSOState, ttl time.Duration) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, stateKeyPrefix+state, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store sso state: %w", err)
	}
	return nil
}

// Take atomically reads and deletes state
func (s *RedisStateStore) Take(ctx context.Context, state string) (*identityapp.SSOState, error) {
	raw, err := s.client.GetDel(ctx, stateKeyPrefix+state).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read sso state: %w", err)
	}
	var data identityapp.SSOState
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode sso state: %w", err)
	}
	return &data, nil
}

// MemoryStateStore keeps states in process memory. It only works for a
// single instance and is used when Redis is disabled.
type MemoryStateStore struct {
	mu     sync.Mutex
	states map[string]memoryState
	now    func() time.Time
}

type memoryState struct {
	data      identityapp.SSOState
	expiresAt time.Time
}

// NewMemoryStateStore creates an in-memory state store
func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{states: make(map[string]memoryState), now: time.Now}
}

// Put stores data under state for ttl. Expired states are dropped on the way.
func (s *MemoryStateStore) Put(_ context.Context, state string, data identityapp.SSOState, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, st := range s.states {
		if now.After(st.expiresAt) {
			delete(s.states, key)
		}
	}
	s.states[state] = memoryState{data: data, expiresAt: now.Add(ttl)}
	return nil
}

// Take returns and removes state
func (s *MemoryStateStore) Take(_ context.Context, state string) (*identityapp.SSOState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.states[state]
	if !ok {
		return nil, nil
	}
	delete(s.states, state)
	if s.now().After(st.expiresAt) {
		return nil, nil
	}
	return &st.data, nil
}

var (
	_ identityapp.StateStore = (*RedisStateStore)(nil)
	_ identityapp.StateStore = (*MemoryStateStore)(nil)
)
