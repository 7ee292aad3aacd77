package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/angelmondragon/storefront-core/pkg/redis"
)

type kvStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartSessionKey(sessionID string) string
}

// RedisSessionStore keeps cart snapshots under sf:cart:<sessionID>.
type RedisSessionStore struct {
	kv  kvStore
	ttl time.Duration
}

// NewRedisSessionStore builds a store that refreshes the TTL on every save.
func NewRedisSessionStore(kv kvStore, ttl time.Duration) (*RedisSessionStore, error) {
	if kv == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &RedisSessionStore{kv: kv, ttl: ttl}, nil
}

func (s *RedisSessionStore) Load(ctx context.Context, sessionID string) (*Snapshot, error) {
	raw, err := s.kv.Get(ctx, s.kv.CartSessionKey(sessionID))
	if err != nil {
		if redis.IsNil(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("load cart session: %w", err)
	}
	snap, err := UnmarshalSnapshot([]byte(raw))
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, sessionID string, snapshot Snapshot) error {
	payload, err := MarshalSnapshot(snapshot)
	if err != nil {
		return fmt.Errorf("encode cart session: %w", err)
	}
	if err := s.kv.Set(ctx, s.kv.CartSessionKey(sessionID), payload, s.ttl); err != nil {
		return fmt.Errorf("save cart session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.kv.Del(ctx, s.kv.CartSessionKey(sessionID)); err != nil {
		return fmt.Errorf("delete cart session: %w", err)
	}
	return nil
}

// MemorySessionStore keeps snapshots in process. Used when Redis is not configured.
type MemorySessionStore struct {
	mu    sync.RWMutex
	carts map[string]Snapshot
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{carts: make(map[string]Snapshot)}
}

func (s *MemorySessionStore) Load(_ context.Context, sessionID string) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.carts[sessionID]
	if !ok {
		return nil, nil
	}
	snap.Items = append([]LineItem(nil), snap.Items...)
	return &snap, nil
}

func (s *MemorySessionStore) Save(_ context.Context, sessionID string, snapshot Snapshot) error {
	snapshot.Items = append([]LineItem(nil), snapshot.Items...)
	s.mu.Lock()
	s.carts[sessionID] = snapshot
	s.mu.Unlock()
	return nil
}

func (s *MemorySessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.carts, sessionID)
	s.mu.Unlock()
	return nil
}
