package printful

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/poundtowntx/storefront-backend/pkg/config"
	pkgerrors "github.com/poundtowntx/storefront-backend/pkg/errors"
	"github.com/poundtowntx/storefront-backend/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(context.Background(), config.PrintfulConfig{
		APIToken: "test-token",
		BaseURL:  server.URL,
	}, testLogger())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestNewClientRequiresToken(t *testing.T) {
	t.Parallel()

	_, err := NewClient(context.Background(), config.PrintfulConfig{}, testLogger())
	if err == nil {
		t.Fatal("expected error for missing token")
	}
}

func TestGetStoreProductsDecodesEnvelope(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/store/products" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("unexpected auth header %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code": 200,
			"result": []map[string]any{
				{"id": 390664, "name": "Pound Town Classic Tee", "variants": 4},
			},
		})
	})

	products, err := client.GetStoreProducts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 1 || products[0].ID != 390664 {
		t.Fatalf("unexpected products: %+v", products)
	}
}

func TestGetProductNumericOptionValues(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code": 200,
			"result": map[string]any{
				"sync_product": map[string]any{"id": 390664, "name": "Poster"},
				"sync_variants": []map[string]any{
					{
						"id":           101,
						"retail_price": "12.00",
						"options": []map[string]any{
							{"id": "size", "value": 18},
						},
					},
				},
			},
		})
	})

	detail, err := client.GetProduct(context.Background(), "390664")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := detail.SyncVariants[0].Options[0].Value.String(); got != "18" {
		t.Fatalf("expected numeric option normalized to %q, got %q", "18", got)
	}
}

func TestGetProductNotFound(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code":   404,
			"result": "Product not found",
		})
	})

	_, err := client.GetProduct(context.Background(), "999")
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error code: %v", err)
	}
	if typed.Message() != "Product not found" {
		t.Fatalf("unexpected message: %q", typed.Message())
	}
}

func TestServerErrorMapsToDependency(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code":  500,
			"error": map[string]any{"message": "something broke"},
		})
	})

	_, err := client.GetStoreProducts(context.Background())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("unexpected error code: %v", err)
	}
	if typed.Message() != "something broke" {
		t.Fatalf("unexpected message: %q", typed.Message())
	}
}

func TestNonEnvelopeErrorBody(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})

	_, err := client.GetStoreProducts(context.Background())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func TestCreateOrderSendsPayload(t *testing.T) {
	t.Parallel()

	var received OrderRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/orders" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code":   200,
			"result": map[string]any{"id": 555, "status": "draft"},
		})
	})

	order, err := client.CreateOrder(context.Background(), OrderRequest{
		Recipient: Recipient{Name: "Dolly Pardner", CountryCode: "US"},
		Items:     []OrderItem{{SyncVariantID: 101, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID != 555 || order.Status != "draft" {
		t.Fatalf("unexpected order: %+v", order)
	}
	if len(received.Items) != 1 || received.Items[0].SyncVariantID != 101 {
		t.Fatalf("unexpected payload: %+v", received)
	}
}

func TestConfirmOrderPath(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders/555/confirm" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code":   200,
			"result": map[string]any{"id": 555, "status": "pending"},
		})
	})

	order, err := client.ConfirmOrder(context.Background(), 555)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != "pending" {
		t.Fatalf("unexpected status %q", order.Status)
	}
}

func TestCalculateShipping(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code": 200,
			"result": []map[string]any{
				{"id": "STANDARD", "name": "Flat Rate", "rate": "4.99", "currency": "USD"},
			},
		})
	})

	rates, err := client.CalculateShipping(context.Background(), ShippingRateRequest{
		Recipient: Recipient{CountryCode: "US", StateCode: "TX"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rates) != 1 || rates[0].Rate != "4.99" {
		t.Fatalf("unexpected rates: %+v", rates)
	}
}
