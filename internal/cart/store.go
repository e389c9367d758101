package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	pkgerrors "github.com/brightcart/storefront-backend/pkg/errors"
	redisclient "github.com/brightcart/storefront-backend/pkg/redis"
)

// Store persists whole cart snapshots keyed by session id. Load returns
// (nil, nil) when the session has no cart yet.
type Store interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// RedisStore keeps carts in Redis as JSON blobs with a sliding TTL.
type RedisStore struct {
	client *redisclient.Client
	ttl    time.Duration
}

// NewRedisStore builds a redis-backed cart store. ttl bounds how long an
// untouched cart survives.
func NewRedisStore(client *redisclient.Client, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cart ttl must be positive")
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (*Cart, error) {
	raw, err := s.client.Get(ctx, redisclient.CartKey(sessionID))
	if err != nil {
		if errors.Is(err, redisclient.Nil) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load cart")
	}

	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "stored cart is corrupt")
	}
	return &cart, nil
}

func (s *RedisStore) Save(ctx context.Context, cart *Cart) error {
	if cart == nil || cart.SessionID == "" {
		return pkgerrors.New(pkgerrors.CodeInternal, "cart session id is required")
	}
	payload, err := json.Marshal(cart)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to encode cart")
	}
	if err := s.client.Set(ctx, redisclient.CartKey(cart.SessionID), payload, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to save cart")
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, redisclient.CartKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to delete cart")
	}
	return nil
}

// MemoryStore keeps carts in process memory. Used by tests and local
// development without Redis.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

// NewMemoryStore builds an empty in-memory cart store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: map[string][]byte{}}
}

func (s *MemoryStore) Load(_ context.Context, sessionID string) (*Cart, error) {
	s.mu.RLock()
	raw, ok := s.carts[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	var cart Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "stored cart is corrupt")
	}
	return &cart, nil
}

func (s *MemoryStore) Save(_ context.Context, cart *Cart) error {
	if cart == nil || cart.SessionID == "" {
		return pkgerrors.New(pkgerrors.CodeInternal, "cart session id is required")
	}
	payload, err := json.Marshal(cart)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to encode cart")
	}
	s.mu.Lock()
	s.carts[cart.SessionID] = payload
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.carts, sessionID)
	s.mu.Unlock()
	return nil
}
