package payments

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Checkout/verification outcome states surfaced to controllers. Every
// payment-path error is folded into one of these; nothing escapes to the
// UI layer as a raw error.
const (
	StateSuccess        = "success"
	StatePaidUnrecorded = "paid_unrecorded"
	StateCancelled      = "cancelled"
	StateFailed         = "failed"
	StatePending        = "pending"
)

var (
	// ErrNotConfigured indicates gateway credentials are not provisioned.
	// Controllers translate this into the degraded contact-us message.
	ErrNotConfigured = errors.New("payment gateway is not configured")

	// ErrVerificationFailed indicates the gateway did not confirm the
	// transaction as successful, or the confirmed amount did not match.
	ErrVerificationFailed = errors.New("payment verification failed")

	// ErrUnknownReference indicates no pending record exists for a reference.
	ErrUnknownReference = errors.New("unknown payment reference")
)

// Customer identifies the paying person across gateway and ledger.
type Customer struct {
	FullName string `json:"full_name" validate:"required,min=3,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"max=30"`
}

// CheckoutConfig is the domain-level description of one payment attempt,
// built by a controller from a submitted form. Amount is the base amount;
// the gateway fee is computed on top of it.
type CheckoutConfig struct {
	PaymentType   string            `json:"payment_type" validate:"required,oneof=event_registration vendor_booth pageant_application tour_booking general"`
	SubjectID     string            `json:"subject_id"`
	SubjectName   string            `json:"subject_name"`
	Amount        decimal.Decimal   `json:"amount"`
	International bool              `json:"international"`
	Customer      Customer          `json:"customer"`
	Description   string            `json:"description"`
	Metadata      map[string]string `json:"metadata"`
}

// CheckoutSession is what a provider returns from Initialize: the hosted
// checkout URL the user is redirected to, plus the gateway's access code.
type CheckoutSession struct {
	Reference  string          `json:"reference"`
	Provider   string          `json:"provider"`
	PaymentURL string          `json:"payment_url"`
	AccessCode string          `json:"access_code,omitempty"`
	Total      decimal.Decimal `json:"total"`
	Fee        decimal.Decimal `json:"fee"`
}

// VerifiedTransaction is the canonical server-to-server view of a
// transaction as reported by the gateway's verify endpoint. Client-side
// completion signals are never trusted without one of these.
type VerifiedTransaction struct {
	Reference    string
	GatewayTxnID string
	Status       string // gateway-native status, normalized by the provider
	Amount       decimal.Decimal
	Fee          decimal.Decimal
	Currency     string
	Channel      string
	PaidAt       string
	RawMetadata  string
}

// Succeeded reports whether the gateway confirmed the charge.
func (t *VerifiedTransaction) Succeeded() bool {
	return t.Status == "success"
}

// Cancelled reports whether the user abandoned the hosted checkout.
func (t *VerifiedTransaction) Cancelled() bool {
	return t.Status == "abandoned" || t.Status == "cancelled"
}

// Outcome is the resolved result of a verification, consumed by the
// result-presenting layer.
type Outcome struct {
	State     string          `json:"state"`
	Reference string          `json:"reference"`
	Message   string          `json:"message"`
	Amount    decimal.Decimal `json:"amount"`
}
