package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/marishandmade/storefront/internal/admin"
	"github.com/marishandmade/storefront/internal/catalog"
)

// SupabaseClient talks to a Supabase project's auto-generated REST API
// (PostgREST). It implements admin.Mirror.
type SupabaseClient struct {
	baseURL string
	anonKey string
	http    *http.Client
}

// NewSupabaseClient builds a client from the project URL and anon key. The
// caller is expected to have checked IsConfigured first; an unconfigured
// client fails every call.
func NewSupabaseClient(baseURL, anonKey string) *SupabaseClient {
	return &SupabaseClient{
		baseURL: baseURL,
		anonKey: anonKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// IsConfigured is the capability check: both credential strings must be
// present for remote sync to be enabled.
func IsConfigured(baseURL, anonKey string) bool {
	return baseURL != "" && anonKey != ""
}

func (c *SupabaseClient) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	u := c.baseURL + "/rest/v1/" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("supabase: encode %s %s: %w", method, path, err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		return fmt.Errorf("supabase: build %s %s: %w", method, path, err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.anonKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=minimal")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("supabase: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("supabase: %s %s: unexpected status %d: %s", method, path, resp.StatusCode, snippet)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("supabase: decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}

// FetchProducts returns all in-stock products, newest first.
func (c *SupabaseClient) FetchProducts(ctx context.Context) ([]catalog.Product, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("in_stock", "eq.true")
	query.Set("order", "created_at.desc")

	var records []ProductRecord
	if err := c.do(ctx, http.MethodGet, "products", query, nil, &records); err != nil {
		return nil, err
	}

	products := make([]catalog.Product, len(records))
	for i, r := range records {
		products[i] = productFromRecord(r)
	}
	return products, nil
}

func (c *SupabaseClient) CreateProduct(ctx context.Context, p catalog.Product) error {
	return c.do(ctx, http.MethodPost, "products", nil, productToRecord(p), nil)
}

func (c *SupabaseClient) UpdateProduct(ctx context.Context, p catalog.Product) error {
	query := url.Values{}
	query.Set("id", "eq."+p.ID)
	rec := productToRecord(p)
	now := time.Now().UTC()
	rec.UpdatedAt = &now
	return c.do(ctx, http.MethodPatch, "products", query, rec, nil)
}

func (c *SupabaseClient) DeleteProduct(ctx context.Context, id string) error {
	query := url.Values{}
	query.Set("id", "eq."+id)
	return c.do(ctx, http.MethodDelete, "products", query, nil, nil)
}

func (c *SupabaseClient) CreateOrder(ctx context.Context, o admin.Order) error {
	return c.do(ctx, http.MethodPost, "orders", nil, orderToRecord(o), nil)
}

// FetchOrders returns all orders, newest first.
func (c *SupabaseClient) FetchOrders(ctx context.Context) ([]admin.Order, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", "created_at.desc")

	var records []OrderRecord
	if err := c.do(ctx, http.MethodGet, "orders", query, nil, &records); err != nil {
		return nil, err
	}

	orders := make([]admin.Order, len(records))
	for i, r := range records {
		orders[i] = orderFromRecord(r)
	}
	return orders, nil
}

func (c *SupabaseClient) UpdateOrderStatus(ctx context.Context, id string, status admin.OrderStatus) error {
	query := url.Values{}
	query.Set("id", "eq."+id)
	body := map[string]string{"status": status.String()}
	return c.do(ctx, http.MethodPatch, "orders", query, body, nil)
}
