package printful

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/poundtowntx/storefront-backend/pkg/config"
	pkgerrors "github.com/poundtowntx/storefront-backend/pkg/errors"
	"github.com/poundtowntx/storefront-backend/pkg/logger"
)

var (
	errAPITokenRequired = errors.New("printful api token is required")
	errLoggerRequired   = errors.New("printful logger is required")
)

// Client talks to the Printful REST API with centralized auth, logging, and
// error mapping. Calls are not retried; callers see a dependency error once.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiToken   string
	logger     *logger.Logger
}

// NewClient initializes the Printful wrapper and validates the credentials.
func NewClient(ctx context.Context, cfg config.PrintfulConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	token := strings.TrimSpace(cfg.APIToken)
	if token == "" {
		return nil, errAPITokenRequired
	}

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiToken:   token,
		logger:     logg,
	}

	logg.Info(ctx, "printful client initialized")
	return c, nil
}

// GetStoreProducts lists all sync products in the store.
func (c *Client) GetStoreProducts(ctx context.Context) ([]SyncProduct, error) {
	c.log(ctx, "request", "get_store_products", nil)

	var products []SyncProduct
	if err := c.do(ctx, http.MethodGet, "/store/products", nil, &products); err != nil {
		return nil, err
	}

	c.log(ctx, "response", "get_store_products", map[string]any{"count": len(products)})
	return products, nil
}

// GetProduct fetches one sync product with its variants.
func (c *Client) GetProduct(ctx context.Context, id string) (*ProductDetail, error) {
	c.log(ctx, "request", "get_product", map[string]any{"product_id": id})

	var detail ProductDetail
	if err := c.do(ctx, http.MethodGet, "/store/products/"+id, nil, &detail); err != nil {
		return nil, err
	}

	c.log(ctx, "response", "get_product", map[string]any{
		"product_id":    id,
		"variant_count": len(detail.SyncVariants),
	})
	return &detail, nil
}

// CalculateShipping estimates rates for the given destination.
func (c *Client) CalculateShipping(ctx context.Context, req ShippingRateRequest) ([]ShippingRate, error) {
	c.log(ctx, "request", "calculate_shipping", map[string]any{
		"country_code": req.Recipient.CountryCode,
		"state_code":   req.Recipient.StateCode,
	})

	var rates []ShippingRate
	if err := c.do(ctx, http.MethodPost, "/shipping/rates", req, &rates); err != nil {
		return nil, err
	}

	c.log(ctx, "response", "calculate_shipping", map[string]any{"count": len(rates)})
	return rates, nil
}

// CreateOrder submits a draft order for the given recipient and items.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	c.log(ctx, "request", "create_order", map[string]any{"item_count": len(req.Items)})

	var order Order
	if err := c.do(ctx, http.MethodPost, "/orders", req, &order); err != nil {
		return nil, err
	}

	c.log(ctx, "response", "create_order", map[string]any{
		"order_id": order.ID,
		"status":   order.Status,
	})
	return &order, nil
}

// ConfirmOrder submits a draft order for fulfillment.
func (c *Client) ConfirmOrder(ctx context.Context, orderID int64) (*Order, error) {
	c.log(ctx, "request", "confirm_order", map[string]any{"order_id": orderID})

	var order Order
	path := "/orders/" + strconv.FormatInt(orderID, 10) + "/confirm"
	if err := c.do(ctx, http.MethodPost, path, nil, &order); err != nil {
		return nil, err
	}

	c.log(ctx, "response", "confirm_order", map[string]any{
		"order_id": order.ID,
		"status":   order.Status,
	})
	return &order, nil
}

// GetOrder fetches an order by provider id.
func (c *Client) GetOrder(ctx context.Context, orderID int64) (*Order, error) {
	c.log(ctx, "request", "get_order", map[string]any{"order_id": orderID})

	var order Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+strconv.FormatInt(orderID, 10), nil, &order); err != nil {
		return nil, err
	}

	c.log(ctx, "response", "get_order", map[string]any{
		"order_id": order.ID,
		"status":   order.Status,
	})
	return &order, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode printful request")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build printful request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "printful request failed")
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read printful response")
	}

	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return c.statusError(resp.StatusCode, "")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode printful response")
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return c.statusError(resp.StatusCode, env.message())
	}

	if out != nil && len(env.Result) > 0 {
		if err := json.Unmarshal(env.Result, out); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode printful result")
		}
	}
	return nil
}

func (c *Client) statusError(status int, message string) error {
	if message == "" {
		message = fmt.Sprintf("printful api error: %d %s", status, http.StatusText(status))
	}
	if status == http.StatusNotFound {
		return pkgerrors.New(pkgerrors.CodeNotFound, message)
	}
	return pkgerrors.New(pkgerrors.CodeDependency, message).WithDetails(map[string]any{"status": status})
}

// message extracts the provider's human-readable error, falling back to a
// plain-string result body which Printful uses for some failures.
func (e envelope) message() string {
	if e.Error != nil && e.Error.Message != "" {
		return e.Error.Message
	}
	var s string
	if err := json.Unmarshal(e.Result, &s); err == nil {
		return s
	}
	return ""
}

func (c *Client) log(ctx context.Context, direction, operation string, fields map[string]any) {
	if c.logger == nil {
		return
	}
	merged := map[string]any{
		"provider":  "printful",
		"direction": direction,
		"operation": operation,
	}
	for k, v := range fields {
		merged[k] = v
	}
	c.logger.Debug(c.logger.WithFields(ctx, merged), "printful.call")
}
