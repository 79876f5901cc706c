package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	BoothCategoryFood     = "food"
	BoothCategoryFashion  = "fashion"
	BoothCategoryArt      = "art"
	BoothCategoryServices = "services"
)

// VendorApplication is a request for a vendor booth at the festival.
type VendorApplication struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	BusinessName     string          `gorm:"type:varchar(200)" json:"business_name" validate:"required,min=2,max=200"`
	ContactName      string          `gorm:"type:varchar(150)" json:"contact_name" validate:"required,min=3,max=150"`
	Email            string          `gorm:"type:varchar(200);index" json:"email" validate:"required,email"`
	Phone            string          `gorm:"type:varchar(30)" json:"phone" validate:"required,max=30"`
	BoothCategory    string          `gorm:"type:varchar(50);index" json:"booth_category" validate:"oneof=food fashion art services"`
	Description      string          `gorm:"type:text" json:"description" validate:"max=2000"`
	BoothFee         decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"booth_fee"`
	LogoObjectKey    string          `gorm:"type:varchar(255);default:null" json:"-"`
	PaymentReference string          `gorm:"type:varchar(100);default:null;index" json:"payment_reference"`
	Status           string          `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (a *VendorApplication) Validate() error {
	v := validator.New()

	return v.Struct(a)
}
