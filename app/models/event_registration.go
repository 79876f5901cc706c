package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Registration/booking/application statuses shared across domain records.
// A priced record must not reach "confirmed" without a matching paid
// PaymentRecord; free records are confirmed directly.
const (
	RegistrationStatusPending   = "pending"
	RegistrationStatusConfirmed = "confirmed"
	RegistrationStatusCancelled = "cancelled"
)

// EventRegistration is an attendee signup for one event.
type EventRegistration struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	EventID          uint            `gorm:"not null;index" json:"event_id"`
	Event            *Event          `gorm:"foreignKey:EventID" json:"event,omitempty"`
	FullName         string          `gorm:"type:varchar(150)" json:"full_name" validate:"required,min=3,max=150"`
	Email            string          `gorm:"type:varchar(200);index" json:"email" validate:"required,email"`
	Phone            string          `gorm:"type:varchar(30);default:null" json:"phone" validate:"max=30"`
	TicketCount      int             `gorm:"default:1" json:"ticket_count" validate:"min=1,max=20"`
	AmountDue        decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"amount_due"`
	PaymentReference string          `gorm:"type:varchar(100);default:null;index" json:"payment_reference"`
	Status           string          `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (r *EventRegistration) Validate() error {
	v := validator.New()

	return v.Struct(r)
}
