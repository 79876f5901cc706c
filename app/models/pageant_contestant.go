package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PageantContestant is an entry application for the festival pageant.
type PageantContestant struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	FullName         string          `gorm:"type:varchar(150)" json:"full_name" validate:"required,min=3,max=150"`
	StageName        string          `gorm:"type:varchar(100);default:null" json:"stage_name" validate:"max=100"`
	Email            string          `gorm:"type:varchar(200);index" json:"email" validate:"required,email"`
	Phone            string          `gorm:"type:varchar(30)" json:"phone" validate:"required,max=30"`
	Age              int             `json:"age" validate:"min=18,max=35"`
	City             string          `gorm:"type:varchar(100)" json:"city" validate:"required,max=100"`
	Bio              string          `gorm:"type:text" json:"bio" validate:"max=2000"`
	PhotoObjectKey   string          `gorm:"type:varchar(255);default:null" json:"-"`
	EntryFee         decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"entry_fee"`
	PaymentReference string          `gorm:"type:varchar(100);default:null;index" json:"payment_reference"`
	Status           string          `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (c *PageantContestant) Validate() error {
	v := validator.New()

	return v.Struct(c)
}
