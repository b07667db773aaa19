package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	pkgerrors "github.com/poundtowntx/storefront-backend/pkg/errors"
	"github.com/poundtowntx/storefront-backend/pkg/logger"
	"github.com/poundtowntx/storefront-backend/pkg/redis"
)

// Store persists a session's cart as a serialized line-item list.
type Store interface {
	// Load rehydrates the session's cart. A missing or unparseable value
	// yields an empty cart, never an error surfaced to the caller.
	Load(ctx context.Context, sessionID string) (*Cart, error)
	// Save writes the full current item list for the session.
	Save(ctx context.Context, sessionID string, cart *Cart) error
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
	logg   *logger.Logger
}

// NewRedisStore builds the Redis-backed cart store.
func NewRedisStore(client *redis.Client, ttl time.Duration, logg *logger.Logger) (Store, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &redisStore{client: client, ttl: ttl, logg: logg}, nil
}

func (s *redisStore) Load(ctx context.Context, sessionID string) (*Cart, error) {
	raw, err := s.client.Get(ctx, redis.CartKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return New(), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	items, err := UnmarshalItems([]byte(raw))
	if err != nil {
		// Corrupt state is discarded and the session starts over empty.
		if s.logg != nil {
			s.logg.Warn(s.logg.WithCartSession(ctx, sessionID), "discarding unparseable cart state")
		}
		return New(), nil
	}
	return FromItems(items), nil
}

func (s *redisStore) Save(ctx context.Context, sessionID string, cart *Cart) error {
	payload, err := cart.MarshalItems()
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.client.Set(ctx, redis.CartKey(sessionID), payload, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return nil
}
