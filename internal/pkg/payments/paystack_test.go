package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newTestPaystack(url string) *PaystackClient {
	return &PaystackClient{
		SecretKey:  "sk_test_abc",
		APIBaseURL: url,
		HTTPClient: &http.Client{Timeout: 2 * time.Second},
	}
}

func TestPaystackInitialize(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_abc", r.Header.Get("Authorization"))
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": true,
			"data": map[string]string{
				"authorization_url": "https://checkout.paystack.com/abc123",
				"access_code":       "abc123",
				"reference":         gotBody["reference"].(string),
			},
		})
	}))
	defer srv.Close()

	client := newTestPaystack(srv.URL)
	session, err := client.Initialize(context.Background(), CheckoutRequest{
		Reference: "FESTHIVE_GENERAL_1_abc123",
		Total:     decimal.NewFromInt(25475),
		Currency:  "NGN",
		Customer:  Customer{FullName: "Ngozi Adewale", Email: "ngozi@example.com"},
		Channels:  []string{"card", "bank_transfer", "ussd"},
	})
	assert.NoError(t, err)
	assert.Equal(t, "https://checkout.paystack.com/abc123", session.PaymentURL)

	// Amount must be converted to kobo.
	assert.Equal(t, float64(2547500), gotBody["amount"])
	assert.Equal(t, "NGN", gotBody["currency"])
}

func TestPaystackInitializeWithoutKey(t *testing.T) {
	client := &PaystackClient{HTTPClient: http.DefaultClient}
	_, err := client.Initialize(context.Background(), CheckoutRequest{Reference: "x"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestPaystackVerifySuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/verify/FESTHIVE_GENERAL_1_abc123", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": true,
			"data": map[string]interface{}{
				"id":       991122,
				"status":   "success",
				"amount":   2547500,
				"fees":     47500,
				"currency": "NGN",
				"channel":  "card",
				"paid_at":  "2026-02-01T10:00:00Z",
			},
		})
	}))
	defer srv.Close()

	client := newTestPaystack(srv.URL)
	txn, err := client.Verify(context.Background(), "FESTHIVE_GENERAL_1_abc123")
	assert.NoError(t, err)
	assert.True(t, txn.Succeeded())
	assert.Equal(t, "991122", txn.GatewayTxnID)
	assert.True(t, txn.Amount.Equal(decimal.NewFromInt(25475)), "amount %s", txn.Amount)
	assert.True(t, txn.Fee.Equal(decimal.NewFromInt(475)), "fee %s", txn.Fee)
	assert.Equal(t, "card", txn.Channel)
}

func TestPaystackVerifyAbandoned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": true,
			"data":   map[string]interface{}{"status": "abandoned"},
		})
	}))
	defer srv.Close()

	txn, err := newTestPaystack(srv.URL).Verify(context.Background(), "ref")
	assert.NoError(t, err)
	assert.True(t, txn.Cancelled())
}

func TestPaystackVerifyHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status":false,"message":"Transaction reference not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestPaystack(srv.URL).Verify(context.Background(), "missing")
	assert.Error(t, err)
}

func TestFlutterwaveVerifySuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transactions/verify_by_reference", r.URL.Path)
		assert.Equal(t, "FESTHIVE_TOUR_BOOKING_1_xyz789", r.URL.Query().Get("tx_ref"))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "success",
			"data": map[string]interface{}{
				"id":           5566,
				"tx_ref":       "FESTHIVE_TOUR_BOOKING_1_xyz789",
				"status":       "successful",
				"amount":       519350.0,
				"app_fee":      19350.0,
				"currency":     "NGN",
				"payment_type": "card",
			},
		})
	}))
	defer srv.Close()

	client := &FlutterwaveClient{
		SecretKey:  "FLWSECK_TEST-abc",
		APIBaseURL: srv.URL,
		HTTPClient: &http.Client{Timeout: 2 * time.Second},
	}
	txn, err := client.Verify(context.Background(), "FESTHIVE_TOUR_BOOKING_1_xyz789")
	assert.NoError(t, err)
	assert.True(t, txn.Succeeded())
	assert.Equal(t, "5566", txn.GatewayTxnID)
	assert.True(t, txn.Amount.Equal(decimal.NewFromInt(519350)), "amount %s", txn.Amount)
}

func TestMinorUnitRoundTrip(t *testing.T) {
	amount := decimal.RequireFromString("25475.50")
	assert.Equal(t, int64(2547550), toMinorUnits(amount))
	assert.True(t, fromMinorUnits(2547550).Equal(amount))
}
