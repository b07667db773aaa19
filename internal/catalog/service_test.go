package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	pkgerrors "github.com/poundtowntx/storefront-backend/pkg/errors"
	"github.com/poundtowntx/storefront-backend/pkg/printful"
	"github.com/poundtowntx/storefront-backend/pkg/redis"
)

func TestGetProductDerivesView(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{detail: &printful.ProductDetail{
		SyncProduct: printful.SyncProduct{ID: 390664, Name: "Pound Town Classic Tee"},
		SyncVariants: []printful.SyncVariant{
			variant(1, "19.99", size("S"), color("Black")),
			variant(2, "24.99", size("M"), color("Black")),
		},
	}}
	svc := newTestCatalog(t, provider, nil, 0)

	view, err := svc.GetProduct(context.Background(), "390664")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.PriceDisplay != "19.99-24.99" {
		t.Fatalf("expected spread display, got %q", view.PriceDisplay)
	}
	if len(view.Options.Sizes) != 2 {
		t.Fatalf("expected two sizes, got %v", view.Options.Sizes)
	}
	if view.DefaultSelection.Color != "Black" {
		t.Fatalf("expected single color auto-selected, got %+v", view.DefaultSelection)
	}
}

func TestGetProductRequiresID(t *testing.T) {
	t.Parallel()

	svc := newTestCatalog(t, &stubProvider{}, nil, 0)

	_, err := svc.GetProduct(context.Background(), " ")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func TestListProductsCacheHitSkipsProvider(t *testing.T) {
	t.Parallel()

	cached, _ := json.Marshal([]printful.SyncProduct{{ID: 390664, Name: "Pound Town Classic Tee"}})
	cache := newStubCache()
	cache.values[redis.CatalogKey("products")] = string(cached)

	provider := &stubProvider{listErr: errors.New("should not be called")}
	svc := newTestCatalog(t, provider, cache, time.Hour)

	products, err := svc.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 1 || products[0].ID != 390664 {
		t.Fatalf("expected cached product, got %+v", products)
	}
	if provider.listCalls != 0 {
		t.Fatalf("expected provider untouched, got %d calls", provider.listCalls)
	}
}

func TestListProductsCacheMissFillsCache(t *testing.T) {
	t.Parallel()

	cache := newStubCache()
	provider := &stubProvider{products: []printful.SyncProduct{{ID: 390664}}}
	svc := newTestCatalog(t, provider, cache, time.Hour)

	if _, err := svc.ListProducts(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.listCalls != 1 {
		t.Fatalf("expected one provider call, got %d", provider.listCalls)
	}
	if _, ok := cache.values[redis.CatalogKey("products")]; !ok {
		t.Fatal("expected listing written to cache")
	}
}

func TestListProductsCorruptCacheFallsThrough(t *testing.T) {
	t.Parallel()

	cache := newStubCache()
	cache.values[redis.CatalogKey("products")] = "{corrupt"
	provider := &stubProvider{products: []printful.SyncProduct{{ID: 390664}}}
	svc := newTestCatalog(t, provider, cache, time.Hour)

	products, err := svc.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected live fetch, got %+v", products)
	}
	if provider.listCalls != 1 {
		t.Fatalf("expected one provider call, got %d", provider.listCalls)
	}
}

func TestResolveVariantMergesDefaults(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{detail: &printful.ProductDetail{
		SyncProduct: printful.SyncProduct{ID: 390664, Name: "Pound Town Classic Tee"},
		SyncVariants: []printful.SyncVariant{
			variant(1, "19.99", size("S"), color("Red")),
			variant(2, "19.99", size("M"), color("Red")),
		},
	}}
	svc := newTestCatalog(t, provider, nil, 0)

	resolved, err := svc.ResolveVariant(context.Background(), "390664", Selection{Size: "M"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.Variant.ID != 2 {
		t.Fatalf("expected variant 2, got %+v", resolved.Variant)
	}
	if resolved.Selection.Color != "Red" {
		t.Fatalf("expected color default applied, got %+v", resolved.Selection)
	}
}

func TestResolveVariantMissingSelection(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{detail: &printful.ProductDetail{
		SyncVariants: []printful.SyncVariant{
			variant(1, "19.99", size("S"), color("Red")),
			variant(2, "19.99", size("M"), color("Black")),
		},
	}}
	svc := newTestCatalog(t, provider, nil, 0)

	_, err := svc.ResolveVariant(context.Background(), "390664", Selection{})
	if err == nil {
		t.Fatal("expected validation error for incomplete selection")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error code: %v", err)
	}
	if typed.Message() != "please select size and color" {
		t.Fatalf("unexpected message: %q", typed.Message())
	}
}

func TestResolveVariantNoMatchIsInconsistency(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{detail: &printful.ProductDetail{
		SyncVariants: []printful.SyncVariant{
			variant(1, "19.99", size("S")),
			variant(2, "19.99", size("M")),
		},
	}}
	svc := newTestCatalog(t, provider, nil, 0)

	_, err := svc.ResolveVariant(context.Background(), "390664", Selection{Size: "XL"})
	if err == nil {
		t.Fatal("expected error for unmatchable selection")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeInconsistency {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func newTestCatalog(t *testing.T, provider providerClient, cache cache, ttl time.Duration) Service {
	t.Helper()
	svc, err := NewService(provider, cache, ttl, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

type stubProvider struct {
	products  []printful.SyncProduct
	detail    *printful.ProductDetail
	listErr   error
	detailErr error
	listCalls int
}

func (s *stubProvider) GetStoreProducts(ctx context.Context) ([]printful.SyncProduct, error) {
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.products, nil
}

func (s *stubProvider) GetProduct(ctx context.Context, id string) (*printful.ProductDetail, error) {
	if s.detailErr != nil {
		return nil, s.detailErr
	}
	if s.detail == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return s.detail, nil
}

type stubCache struct {
	values map[string]string
}

func newStubCache() *stubCache {
	return &stubCache{values: map[string]string{}}
}

func (s *stubCache) Get(ctx context.Context, key string) (string, error) {
	val, ok := s.values[key]
	if !ok {
		return "", redis.Nil
	}
	return val, nil
}

func (s *stubCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	switch v := value.(type) {
	case []byte:
		s.values[key] = string(v)
	case string:
		s.values[key] = v
	}
	return nil
}
