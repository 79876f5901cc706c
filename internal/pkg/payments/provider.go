package payments

import (
	"context"
	"strings"

	"github.com/EberechiLabs/FestHive/app/models"
	"github.com/EberechiLabs/FestHive/internal/pkg/env"
	"github.com/shopspring/decimal"
)

// CheckoutRequest is the provider-native initialization input, already
// priced (Total includes the gateway fee) and carrying the generated
// reference.
type CheckoutRequest struct {
	Reference   string
	Total       decimal.Decimal
	Currency    string
	Customer    Customer
	Channels    []string
	CallbackURL string
	Metadata    map[string]string
}

// Provider abstracts a hosted-checkout gateway. Initialize hands control to
// the gateway's own UI via the returned payment URL; Verify is the trusted
// server-to-server re-check required before a payment counts as real.
type Provider interface {
	Name() string
	Initialize(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	Verify(ctx context.Context, reference string) (*VerifiedTransaction, error)
}

// NewProviderFromEnv selects the configured gateway. PAYMENT_PROVIDER picks
// flutterwave explicitly; anything else falls back to Paystack.
func NewProviderFromEnv() Provider {
	switch strings.ToLower(strings.TrimSpace(env.GetEnv("PAYMENT_PROVIDER", models.PaymentProviderPaystack))) {
	case models.PaymentProviderFlutterwave:
		return NewFlutterwaveClientFromEnv()
	default:
		return NewPaystackClientFromEnv()
	}
}
