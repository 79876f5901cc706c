package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	PaymentProviderPaystack    = "paystack"
	PaymentProviderFlutterwave = "flutterwave"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusPaid      = "paid"
	PaymentStatusFailed    = "failed"
	PaymentStatusCancelled = "cancelled"
)

const (
	PaymentTypeEventRegistration  = "event_registration"
	PaymentTypeVendorBooth        = "vendor_booth"
	PaymentTypePageantApplication = "pageant_application"
	PaymentTypeTourBooking        = "tour_booking"
	PaymentTypeGeneral            = "general"
)

// PaymentRecord is the durable ledger row for one payment attempt. It is
// written in status "pending" before the gateway checkout opens and flipped
// to its terminal status after server-side verification, keyed by the unique
// reference so a retried write is an upsert, never a duplicate.
type PaymentRecord struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Reference       string          `gorm:"type:varchar(100);uniqueIndex" json:"reference" validate:"required,max=100"`
	Provider        string          `gorm:"type:varchar(20);index" json:"provider" validate:"oneof=paystack flutterwave"`
	GatewayTxnID    string          `gorm:"type:varchar(100);default:null;index" json:"gateway_txn_id"`
	PaymentType     string          `gorm:"type:varchar(30);index" json:"payment_type" validate:"oneof=event_registration vendor_booth pageant_application tour_booking general"`
	SubjectID       string          `gorm:"type:varchar(50);default:null" json:"subject_id"`
	SubjectName     string          `gorm:"type:varchar(200);default:null" json:"subject_name"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	AmountPaid      decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"amount_paid"`
	GatewayFee      decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"gateway_fee"`
	Currency        string          `gorm:"type:varchar(3);default:'NGN'" json:"currency"`
	Channel         string          `gorm:"type:varchar(30);default:null" json:"channel"`
	Status          string          `gorm:"type:varchar(20);default:'pending';index" json:"status" validate:"oneof=pending paid failed cancelled"`
	CustomerName    string          `gorm:"type:varchar(150)" json:"customer_name" validate:"required,max=150"`
	CustomerEmail   string          `gorm:"type:varchar(200);index" json:"customer_email" validate:"required,email"`
	CustomerPhone   string          `gorm:"type:varchar(30);default:null" json:"customer_phone"`
	GatewayMetadata string          `gorm:"type:longtext" json:"gateway_metadata"`
	CompletedAt     *time.Time      `gorm:"type:timestamp;default:null" json:"completed_at,omitempty"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *PaymentRecord) Validate() error {
	v := validator.New()

	return v.Struct(p)
}

// IsTerminal reports whether the record has left the pending state.
func (p *PaymentRecord) IsTerminal() bool {
	return p.Status != PaymentStatusPending
}
