package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/poundtowntx/storefront-backend/pkg/printful"

	pkgerrors "github.com/poundtowntx/storefront-backend/pkg/errors"
	"github.com/poundtowntx/storefront-backend/pkg/logger"
	"github.com/poundtowntx/storefront-backend/pkg/redis"
)

// ProductView is the catalog detail handed to the storefront: variants plus
// the derived option axes, default selection, and price range, so the client
// renders without re-deriving.
type ProductView struct {
	Product          printful.SyncProduct   `json:"product"`
	Variants         []printful.SyncVariant `json:"variants"`
	Options          OptionAxes             `json:"options"`
	DefaultSelection Selection              `json:"defaultSelection"`
	PriceRange       PriceRange             `json:"priceRange"`
	PriceDisplay     string                 `json:"priceDisplay"`
}

type providerClient interface {
	GetStoreProducts(ctx context.Context) ([]printful.SyncProduct, error)
	GetProduct(ctx context.Context, id string) (*printful.ProductDetail, error)
}

type cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// ResolvedVariant is the single addressable variant for a complete
// selection, with the effective selection after auto-select defaults.
type ResolvedVariant struct {
	Variant   printful.SyncVariant
	Selection Selection
	View      *ProductView
}

// Service reads the fulfillment provider's catalog, caching responses.
type Service interface {
	ListProducts(ctx context.Context) ([]printful.SyncProduct, error)
	GetProduct(ctx context.Context, id string) (*ProductView, error)
	ResolveVariant(ctx context.Context, id string, sel Selection) (*ResolvedVariant, error)
}

type service struct {
	provider providerClient
	cache    cache
	cacheTTL time.Duration
	logg     *logger.Logger
}

// NewService builds the catalog service. A nil cache or zero TTL disables
// caching.
func NewService(provider providerClient, cache cache, cacheTTL time.Duration, logg *logger.Logger) (Service, error) {
	if provider == nil {
		return nil, fmt.Errorf("provider client required")
	}
	return &service{
		provider: provider,
		cache:    cache,
		cacheTTL: cacheTTL,
		logg:     logg,
	}, nil
}

func (s *service) ListProducts(ctx context.Context) ([]printful.SyncProduct, error) {
	key := redis.CatalogKey("products")

	var cached []printful.SyncProduct
	if s.readCache(ctx, key, &cached) {
		return cached, nil
	}

	products, err := s.provider.GetStoreProducts(ctx)
	if err != nil {
		return nil, err
	}

	s.writeCache(ctx, key, products)
	return products, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*ProductView, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	key := redis.CatalogKey("product", id)

	var detail printful.ProductDetail
	if !s.readCache(ctx, key, &detail) {
		fetched, err := s.provider.GetProduct(ctx, id)
		if err != nil {
			return nil, err
		}
		detail = *fetched
		s.writeCache(ctx, key, detail)
	}

	return newProductView(detail), nil
}

// ResolveVariant maps the user's selection onto a single variant, applying
// the auto-select policy for single-value axes first.
func (s *service) ResolveVariant(ctx context.Context, id string, sel Selection) (*ResolvedVariant, error) {
	view, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := mergeSelection(view.DefaultSelection, sel)

	if missing := MissingOptions(view.Options, merged); len(missing) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "please select "+strings.Join(missing, " and ")).
			WithDetails(map[string]any{"missing": missing})
	}

	variant := Resolve(view.Variants, view.Options, merged)
	if variant == nil {
		// A complete selection with no match means the upstream catalog does
		// not cover its own declared options.
		return nil, pkgerrors.New(pkgerrors.CodeInconsistency, "selected options are not available")
	}
	return &ResolvedVariant{Variant: *variant, Selection: merged, View: view}, nil
}

func newProductView(detail printful.ProductDetail) *ProductView {
	axes := Options(detail.SyncVariants)
	priceRange := Range(detail.SyncVariants)
	return &ProductView{
		Product:          detail.SyncProduct,
		Variants:         detail.SyncVariants,
		Options:          axes,
		DefaultSelection: DefaultSelection(axes),
		PriceRange:       priceRange,
		PriceDisplay:     priceRange.Display(),
	}
}

func mergeSelection(defaults, sel Selection) Selection {
	if sel.Size == "" {
		sel.Size = defaults.Size
	}
	if sel.Color == "" {
		sel.Color = defaults.Color
	}
	return sel
}

// readCache returns true when the key was present and parseable. Cache
// failures are never fatal; the caller falls through to a live fetch.
func (s *service) readCache(ctx context.Context, key string, out any) bool {
	if s.cache == nil || s.cacheTTL <= 0 {
		return false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, redis.Nil) && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "cache_key", key), "catalog cache read failed")
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "cache_key", key), "discarding unparseable catalog cache entry")
		}
		return false
	}
	return true
}

func (s *service) writeCache(ctx context.Context, key string, value any) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.cacheTTL); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "cache_key", key), "catalog cache write failed")
	}
}
