package cart

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/poundtowntx/storefront-backend/pkg/errors"
)

// Service exposes the per-session cart operations. Every mutation persists
// the full updated item list before returning.
type Service interface {
	Get(ctx context.Context, sessionID string) (*Cart, error)
	Add(ctx context.Context, sessionID string, item LineItem) (*Cart, error)
	SetQuantity(ctx context.Context, sessionID string, variantID int64, quantity int) (*Cart, error)
	Remove(ctx context.Context, sessionID string, variantID int64) (*Cart, error)
	Clear(ctx context.Context, sessionID string) (*Cart, error)
}

type service struct {
	store Store
}

// NewService builds a cart service backed by the provided store.
func NewService(store Store) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	return &service{store: store}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*Cart, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}
	return s.store.Load(ctx, sessionID)
}

func (s *service) Add(ctx context.Context, sessionID string, item LineItem) (*Cart, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}
	if item.VariantID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant id is required")
	}
	if strings.TrimSpace(item.ProductID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if item.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}

	return s.mutate(ctx, sessionID, func(c *Cart) {
		c.Add(item)
	})
}

func (s *service) SetQuantity(ctx context.Context, sessionID string, variantID int64, quantity int) (*Cart, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}
	return s.mutate(ctx, sessionID, func(c *Cart) {
		c.SetQuantity(variantID, quantity)
	})
}

func (s *service) Remove(ctx context.Context, sessionID string, variantID int64) (*Cart, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}
	return s.mutate(ctx, sessionID, func(c *Cart) {
		c.Remove(variantID)
	})
}

func (s *service) Clear(ctx context.Context, sessionID string) (*Cart, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}
	return s.mutate(ctx, sessionID, func(c *Cart) {
		c.Clear()
	})
}

func (s *service) mutate(ctx context.Context, sessionID string, fn func(*Cart)) (*Cart, error) {
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	fn(cart)
	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func validateSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart session is required")
	}
	return nil
}
