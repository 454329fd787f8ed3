package payment_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marishandmade/storefront/internal/payment"
)

func TestSimulator_ConfirmSucceedsAfterDelay(t *testing.T) {
	sim := payment.NewSimulator(10 * time.Millisecond)

	intent, err := sim.CreateIntent(context.Background(), decimal.RequireFromString("52.99"), "gbp", payment.Metadata{})
	require.NoError(t, err)
	assert.NotEmpty(t, intent.ID)

	result, err := sim.Confirm(context.Background(), intent, payment.Card{Number: "4242424242424242"})
	require.NoError(t, err)
	assert.Equal(t, intent.ID, result.Reference)
}

func TestSimulator_ConfirmHonorsContext(t *testing.T) {
	sim := payment.NewSimulator(time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := sim.Confirm(ctx, payment.Intent{ID: "sim_1"}, payment.Card{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAPIClient_CreateIntent_AmountInMinorUnits(t *testing.T) {
	var sent map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/create-payment-intent", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		_ = json.NewEncoder(w).Encode(map[string]string{
			"clientSecret":    "cs_test",
			"paymentIntentId": "pi_test",
		})
	}))
	defer srv.Close()

	client := payment.NewAPIClient(srv.URL)
	intent, err := client.CreateIntent(context.Background(), decimal.RequireFromString("52.99"), "gbp", payment.Metadata{
		CustomerName:  "Ana Lopez",
		CustomerEmail: "ana@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "pi_test", intent.ID)
	assert.Equal(t, "cs_test", intent.ClientSecret)
	assert.Equal(t, 5299.0, sent["amount"], "amount must be sent in pence")
	assert.Equal(t, "gbp", sent["currency"])
	assert.Equal(t, "Ana Lopez", sent["customerName"])
}

func TestAPIClient_Confirm(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		response     string
		wantRef      string
		wantDeclined bool
		wantMessage  string
	}{
		{
			name:     "succeeded",
			status:   http.StatusOK,
			response: `{"status": "succeeded", "paymentId": "pi_test"}`,
			wantRef:  "pi_test",
		},
		{
			name:         "declined_with_message",
			status:       http.StatusOK,
			response:     `{"status": "failed", "message": "Your card was declined."}`,
			wantDeclined: true,
			wantMessage:  "Your card was declined.",
		},
		{
			name:         "declined_without_message",
			status:       http.StatusOK,
			response:     `{"status": "failed"}`,
			wantDeclined: true,
			wantMessage:  "payment was not confirmed",
		},
		{
			name:         "http_error_with_message",
			status:       http.StatusPaymentRequired,
			response:     `{"message": "Insufficient funds"}`,
			wantDeclined: true,
			wantMessage:  "Insufficient funds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/confirm-payment", r.URL.Path)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.response))
			}))
			defer srv.Close()

			client := payment.NewAPIClient(srv.URL)
			result, err := client.Confirm(context.Background(), payment.Intent{ID: "pi_test", ClientSecret: "cs_test"}, payment.Card{
				Number: "4242424242424242", ExpMonth: 12, ExpYear: 2030, CVC: "123",
			})

			if tt.wantDeclined {
				require.Error(t, err)
				assert.True(t, payment.IsDeclined(err))
				assert.Equal(t, tt.wantMessage, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRef, result.Reference)
		})
	}
}

func TestAPIClient_ServerErrorIsNotDecline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := payment.NewAPIClient(srv.URL)
	_, err := client.Confirm(context.Background(), payment.Intent{ID: "pi_test"}, payment.Card{})

	require.Error(t, err)
	assert.False(t, payment.IsDeclined(err), "transport failures are not declines")
}

func TestIsDeclined(t *testing.T) {
	assert.False(t, payment.IsDeclined(nil))
	assert.False(t, payment.IsDeclined(context.Canceled))
	assert.True(t, payment.IsDeclined(&payment.DeclinedError{Message: "declined"}))
}
