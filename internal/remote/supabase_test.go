package remote_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marishandmade/storefront/internal/admin"
	"github.com/marishandmade/storefront/internal/catalog"
	"github.com/marishandmade/storefront/internal/remote"
)

const testAnonKey = "test-anon-key"

// recordedRequest captures what the client sent so assertions can run after
// the handler returns.
type recordedRequest struct {
	method string
	path   string
	query  string
	header http.Header
	body   []byte
}

func newTestServer(t *testing.T, status int, response string) (*httptest.Server, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.RawQuery
		rec.header = r.Header.Clone()
		rec.body, _ = io.ReadAll(r.Body)

		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestIsConfigured(t *testing.T) {
	assert.True(t, remote.IsConfigured("https://proj.supabase.co", "key"))
	assert.False(t, remote.IsConfigured("", "key"))
	assert.False(t, remote.IsConfigured("https://proj.supabase.co", ""))
	assert.False(t, remote.IsConfigured("", ""))
}

func TestSupabaseClient_FetchProducts(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `[
		{"id": "r1", "name": "Remote Candle", "price": 30, "category": "pillars", "in_stock": true},
		{"id": "r2", "name": "Other Candle", "price": 12.5, "category": "hearts", "in_stock": true}
	]`)
	client := remote.NewSupabaseClient(srv.URL, testAnonKey)

	products, err := client.FetchProducts(context.Background())
	require.NoError(t, err)

	require.Len(t, products, 2)
	assert.Equal(t, "r1", products[0].ID)
	assert.True(t, products[0].Price.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, "hearts", products[1].Category)

	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/rest/v1/products", rec.path)
	assert.Contains(t, rec.query, "in_stock=eq.true")
	assert.Contains(t, rec.query, "order=created_at.desc")
	assert.Equal(t, testAnonKey, rec.header.Get("apikey"))
	assert.Equal(t, "Bearer "+testAnonKey, rec.header.Get("Authorization"))
}

func TestSupabaseClient_CreateProduct(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusCreated, "")
	client := remote.NewSupabaseClient(srv.URL, testAnonKey)

	p := catalog.Product{
		ID:       "abc",
		Name:     "Blossom Box",
		Price:    decimal.RequireFromString("48.00"),
		Category: "gift-sets",
	}
	require.NoError(t, client.CreateProduct(context.Background(), p))

	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/rest/v1/products", rec.path)
	assert.Equal(t, "application/json", rec.header.Get("Content-Type"))
	assert.Equal(t, "return=minimal", rec.header.Get("Prefer"))

	var sent map[string]any
	require.NoError(t, json.Unmarshal(rec.body, &sent))
	assert.Equal(t, "Blossom Box", sent["name"])
	assert.Equal(t, 48.0, sent["price"])
	assert.Equal(t, true, sent["in_stock"])
}

func TestSupabaseClient_UpdateProduct_FiltersByID(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusNoContent, "")
	client := remote.NewSupabaseClient(srv.URL, testAnonKey)

	p := catalog.Product{ID: "abc", Name: "Blossom Box", Price: decimal.RequireFromString("52.00")}
	require.NoError(t, client.UpdateProduct(context.Background(), p))

	assert.Equal(t, http.MethodPatch, rec.method)
	assert.Equal(t, "/rest/v1/products", rec.path)
	assert.Contains(t, rec.query, "id=eq.abc")

	var sent map[string]any
	require.NoError(t, json.Unmarshal(rec.body, &sent))
	assert.NotEmpty(t, sent["updated_at"], "updates must stamp updated_at")
}

func TestSupabaseClient_DeleteProduct(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusNoContent, "")
	client := remote.NewSupabaseClient(srv.URL, testAnonKey)

	require.NoError(t, client.DeleteProduct(context.Background(), "abc"))

	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "/rest/v1/products", rec.path)
	assert.Contains(t, rec.query, "id=eq.abc")
}

func TestSupabaseClient_CreateOrder(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusCreated, "")
	client := remote.NewSupabaseClient(srv.URL, testAnonKey)

	o := admin.Order{
		ID:           "order-1",
		CustomerName: "Ana Lopez",
		Email:        "ana@example.com",
		Total:        decimal.RequireFromString("52.99"),
		Status:       admin.StatusPending,
	}
	require.NoError(t, client.CreateOrder(context.Background(), o))

	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/rest/v1/orders", rec.path)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(rec.body, &sent))
	assert.Equal(t, "Ana Lopez", sent["customer_name"])
	assert.Equal(t, "ana@example.com", sent["customer_email"])
	assert.Equal(t, "pending", sent["status"])
}

func TestSupabaseClient_UpdateOrderStatus(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusNoContent, "")
	client := remote.NewSupabaseClient(srv.URL, testAnonKey)

	require.NoError(t, client.UpdateOrderStatus(context.Background(), "order-1", admin.StatusShipped))

	assert.Equal(t, http.MethodPatch, rec.method)
	assert.Equal(t, "/rest/v1/orders", rec.path)
	assert.Contains(t, rec.query, "id=eq.order-1")
	assert.JSONEq(t, `{"status": "shipped"}`, string(rec.body))
}

func TestSupabaseClient_ErrorStatus(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusUnauthorized, `{"message": "JWT expired"}`)
	client := remote.NewSupabaseClient(srv.URL, testAnonKey)

	_, err := client.FetchProducts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestSupabaseClient_ContextCancellation(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, "[]")
	client := remote.NewSupabaseClient(srv.URL, testAnonKey)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchProducts(ctx)
	assert.Error(t, err)
}
