package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/EberechiLabs/FestHive/app/models"
	"github.com/EberechiLabs/FestHive/internal/pkg/env"
	"github.com/shopspring/decimal"
)

const defaultPaystackAPIBaseURL = "https://api.paystack.co"

// PaystackClient talks to the Paystack REST API with the secret key. The
// public key belongs to the embedded checkout on the client side and is
// never used here.
type PaystackClient struct {
	SecretKey  string
	APIBaseURL string

	HTTPClient *http.Client
}

func NewPaystackClientFromEnv() *PaystackClient {
	return &PaystackClient{
		SecretKey:  strings.TrimSpace(env.GetEnv("PAYSTACK_SECRET_KEY", "")),
		APIBaseURL: strings.TrimSpace(env.GetEnv("PAYSTACK_API_BASE_URL", defaultPaystackAPIBaseURL)),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *PaystackClient) Name() string {
	return models.PaymentProviderPaystack
}

// Initialize creates a Paystack hosted-checkout transaction and returns the
// authorization URL the customer is redirected to. Amounts are sent in kobo.
func (c *PaystackClient) Initialize(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	if strings.TrimSpace(c.SecretKey) == "" {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(req.Reference) == "" {
		return nil, errors.New("reference is required")
	}

	payload := map[string]interface{}{
		"email":     req.Customer.Email,
		"amount":    toMinorUnits(req.Total),
		"currency":  req.Currency,
		"reference": req.Reference,
		"channels":  req.Channels,
	}
	if req.CallbackURL != "" {
		payload["callback_url"] = req.CallbackURL
	}
	if len(req.Metadata) > 0 || req.Customer.FullName != "" {
		meta := map[string]interface{}{}
		for k, v := range req.Metadata {
			meta[k] = v
		}
		meta["customer_name"] = req.Customer.FullName
		if req.Customer.Phone != "" {
			meta["customer_phone"] = req.Customer.Phone
		}
		payload["metadata"] = meta
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(c.APIBaseURL, "/")+"/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.SecretKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("paystack initialize failed: status=%d body=%s", resp.StatusCode, string(raw))
	}

	var out struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Data    struct {
			AuthorizationURL string `json:"authorization_url"`
			AccessCode       string `json:"access_code"`
			Reference        string `json:"reference"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if !out.Status || strings.TrimSpace(out.Data.AuthorizationURL) == "" {
		return nil, fmt.Errorf("paystack initialize rejected: %s", out.Message)
	}

	return &CheckoutSession{
		Reference:  req.Reference,
		Provider:   c.Name(),
		PaymentURL: out.Data.AuthorizationURL,
		AccessCode: out.Data.AccessCode,
		Total:      req.Total,
	}, nil
}

// Verify re-checks a transaction server-to-server and returns the canonical
// status, amount and fees as Paystack reports them.
func (c *PaystackClient) Verify(ctx context.Context, reference string) (*VerifiedTransaction, error) {
	if strings.TrimSpace(c.SecretKey) == "" {
		return nil, ErrNotConfigured
	}
	ref := strings.TrimSpace(reference)
	if ref == "" {
		return nil, errors.New("reference is required")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		strings.TrimRight(c.APIBaseURL, "/")+"/transaction/verify/"+ref, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.SecretKey)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("paystack verify failed: status=%d body=%s", resp.StatusCode, string(raw))
	}

	var out struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Data    struct {
			ID       int64           `json:"id"`
			Status   string          `json:"status"`
			Amount   int64           `json:"amount"`
			Fees     int64           `json:"fees"`
			Currency string          `json:"currency"`
			Channel  string          `json:"channel"`
			PaidAt   string          `json:"paid_at"`
			Metadata json.RawMessage `json:"metadata"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if !out.Status {
		return nil, fmt.Errorf("paystack verify rejected: %s", out.Message)
	}

	return &VerifiedTransaction{
		Reference:    ref,
		GatewayTxnID: fmt.Sprintf("%d", out.Data.ID),
		Status:       normalizePaystackStatus(out.Data.Status),
		Amount:       fromMinorUnits(out.Data.Amount),
		Fee:          fromMinorUnits(out.Data.Fees),
		Currency:     out.Data.Currency,
		Channel:      out.Data.Channel,
		PaidAt:       out.Data.PaidAt,
		RawMetadata:  string(out.Data.Metadata),
	}, nil
}

func normalizePaystackStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "success":
		return "success"
	case "abandoned":
		return "abandoned"
	case "failed":
		return "failed"
	default:
		return "pending"
	}
}

// toMinorUnits converts an NGN amount to kobo.
func toMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// fromMinorUnits converts kobo back to NGN.
func fromMinorUnits(minor int64) decimal.Decimal {
	return decimal.NewFromInt(minor).Div(decimal.NewFromInt(100))
}
