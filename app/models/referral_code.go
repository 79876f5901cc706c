package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ReferralStatusActive  = "active"
	ReferralStatusPending = "pending"
	ReferralStatusExpired = "expired"
)

// ReferralCode is a diaspora-tour ambassador code. Codes start out pending
// and only apply a discount once an admin activates them. Totals are only
// ever changed through the referral service's atomic increment.
type ReferralCode struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Code           string          `gorm:"type:varchar(30);uniqueIndex" json:"code" validate:"required,min=6,max=30"`
	OwnerName      string          `gorm:"type:varchar(150)" json:"owner_name" validate:"required,min=3,max=150"`
	OwnerEmail     string          `gorm:"type:varchar(200);index" json:"owner_email" validate:"required,email"`
	TotalReferrals int             `gorm:"default:0" json:"total_referrals"`
	Earnings       decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"earnings"`
	Status         string          `gorm:"type:varchar(20);default:'pending';index" json:"status" validate:"oneof=active pending expired"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (r *ReferralCode) Validate() error {
	v := validator.New()

	return v.Struct(r)
}

// IsActive reports whether the code currently grants a discount.
func (r *ReferralCode) IsActive() bool {
	return r.Status == ReferralStatusActive
}
