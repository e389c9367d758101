package history

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	pkgerrors "github.com/brightcart/storefront-backend/pkg/errors"
	redisclient "github.com/brightcart/storefront-backend/pkg/redis"
)

type historyStore interface {
	LPush(ctx context.Context, key string, values ...any) error
	LRem(ctx context.Context, key string, count int64, value any) error
	LTrim(ctx context.Context, key string, start, stop int64) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	Del(ctx context.Context, keys ...string) error
}

// Service tracks recently viewed products per session: newest first,
// deduplicated, capped at maxEntries.
type Service struct {
	store      historyStore
	maxEntries int
}

// NewService builds a browsing history service.
func NewService(client *redisclient.Client, maxEntries int) (*Service, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if maxEntries <= 0 {
		return nil, fmt.Errorf("max entries must be positive")
	}
	return &Service{store: client, maxEntries: maxEntries}, nil
}

// Record marks a product as viewed. Re-viewing moves the product to the
// front instead of duplicating it.
func (s *Service) Record(ctx context.Context, sessionID string, productID uuid.UUID) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	key := redisclient.HistoryKey(sessionID)
	value := productID.String()

	if err := s.store.LRem(ctx, key, 0, value); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to dedupe history")
	}
	if err := s.store.LPush(ctx, key, value); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to record history")
	}
	if err := s.store.LTrim(ctx, key, 0, int64(s.maxEntries-1)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to cap history")
	}
	return nil
}

// List returns viewed product ids, most recent first. Entries that do not
// parse as ids are skipped.
func (s *Service) List(ctx context.Context, sessionID string) ([]uuid.UUID, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	raw, err := s.store.LRange(ctx, redisclient.HistoryKey(sessionID), 0, int64(s.maxEntries-1))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load history")
	}

	ids := make([]uuid.UUID, 0, len(raw))
	for _, entry := range raw {
		id, err := uuid.Parse(entry)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Clear drops the session's history.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if err := s.store.Del(ctx, redisclient.HistoryKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to clear history")
	}
	return nil
}
