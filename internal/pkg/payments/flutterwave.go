package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/EberechiLabs/FestHive/app/models"
	"github.com/EberechiLabs/FestHive/internal/pkg/env"
	"github.com/shopspring/decimal"
)

const defaultFlutterwaveAPIBaseURL = "https://api.flutterwave.com/v3"

// FlutterwaveClient is the secondary gateway, used mainly for diaspora
// payments where international card acceptance matters.
type FlutterwaveClient struct {
	SecretKey  string
	APIBaseURL string

	HTTPClient *http.Client
}

func NewFlutterwaveClientFromEnv() *FlutterwaveClient {
	return &FlutterwaveClient{
		SecretKey:  strings.TrimSpace(env.GetEnv("FLUTTERWAVE_SECRET_KEY", "")),
		APIBaseURL: strings.TrimSpace(env.GetEnv("FLUTTERWAVE_API_BASE_URL", defaultFlutterwaveAPIBaseURL)),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *FlutterwaveClient) Name() string {
	return models.PaymentProviderFlutterwave
}

// Initialize creates a Flutterwave standard-checkout payment and returns the
// hosted payment link. Flutterwave takes major-unit amounts directly.
func (c *FlutterwaveClient) Initialize(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	if strings.TrimSpace(c.SecretKey) == "" {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(req.Reference) == "" {
		return nil, errors.New("reference is required")
	}

	payload := map[string]interface{}{
		"tx_ref":          req.Reference,
		"amount":          req.Total.StringFixed(2),
		"currency":        req.Currency,
		"redirect_url":    req.CallbackURL,
		"payment_options": strings.Join(flutterwaveOptions(req.Channels), ","),
		"customer": map[string]string{
			"email":       req.Customer.Email,
			"name":        req.Customer.FullName,
			"phonenumber": req.Customer.Phone,
		},
	}
	if len(req.Metadata) > 0 {
		payload["meta"] = req.Metadata
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(c.APIBaseURL, "/")+"/payments", bytes.NewReader(body))
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
		return nil, fmt.Errorf("flutterwave initialize failed: status=%d body=%s", resp.StatusCode, string(raw))
	}

	var out struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Data    struct {
			Link string `json:"link"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if out.Status != "success" || strings.TrimSpace(out.Data.Link) == "" {
		return nil, fmt.Errorf("flutterwave initialize rejected: %s", out.Message)
	}

	return &CheckoutSession{
		Reference:  req.Reference,
		Provider:   c.Name(),
		PaymentURL: out.Data.Link,
		Total:      req.Total,
	}, nil
}

// Verify looks a transaction up by its tx_ref and returns the canonical
// charge state.
func (c *FlutterwaveClient) Verify(ctx context.Context, reference string) (*VerifiedTransaction, error) {
	if strings.TrimSpace(c.SecretKey) == "" {
		return nil, ErrNotConfigured
	}
	ref := strings.TrimSpace(reference)
	if ref == "" {
		return nil, errors.New("reference is required")
	}

	u := strings.TrimRight(c.APIBaseURL, "/") + "/transactions/verify_by_reference?tx_ref=" + url.QueryEscape(ref)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
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
		return nil, fmt.Errorf("flutterwave verify failed: status=%d body=%s", resp.StatusCode, string(raw))
	}

	var out struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Data    struct {
			ID            int64           `json:"id"`
			TxRef         string          `json:"tx_ref"`
			Status        string          `json:"status"`
			Amount        json.Number     `json:"amount"`
			AppFee        json.Number     `json:"app_fee"`
			Currency      string          `json:"currency"`
			PaymentType   string          `json:"payment_type"`
			CreatedAt     string          `json:"created_at"`
			Meta          json.RawMessage `json:"meta"`
			AmountSettled json.Number     `json:"amount_settled"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if out.Status != "success" {
		return nil, fmt.Errorf("flutterwave verify rejected: %s", out.Message)
	}

	amount, err := decimalFromNumber(out.Data.Amount)
	if err != nil {
		return nil, fmt.Errorf("flutterwave verify returned bad amount: %w", err)
	}
	fee, _ := decimalFromNumber(out.Data.AppFee)

	return &VerifiedTransaction{
		Reference:    ref,
		GatewayTxnID: fmt.Sprintf("%d", out.Data.ID),
		Status:       normalizeFlutterwaveStatus(out.Data.Status),
		Amount:       amount,
		Fee:          fee,
		Currency:     out.Data.Currency,
		Channel:      out.Data.PaymentType,
		PaidAt:       out.Data.CreatedAt,
		RawMetadata:  string(out.Data.Meta),
	}, nil
}

func normalizeFlutterwaveStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "successful":
		return "success"
	case "cancelled":
		return "cancelled"
	case "failed":
		return "failed"
	default:
		return "pending"
	}
}

func decimalFromNumber(n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(n.String())
}

// flutterwaveOptions maps the shared channel names onto Flutterwave's
// payment_options vocabulary.
func flutterwaveOptions(channels []string) []string {
	out := make([]string, 0, len(channels))
	for _, ch := range channels {
		switch ch {
		case "bank_transfer":
			out = append(out, "banktransfer")
		case "ussd":
			out = append(out, "ussd")
		default:
			out = append(out, "card")
		}
	}
	return out
}
