package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	SponsorTierHeadline = "headline"
	SponsorTierGold     = "gold"
	SponsorTierSilver   = "silver"
	SponsorTierPartner  = "partner"
)

// Sponsor is marketing-page content managed from the back-office.
type Sponsor struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"type:varchar(200)" json:"name" validate:"required,min=2,max=200"`
	Tier          string         `gorm:"type:varchar(20);index" json:"tier" validate:"oneof=headline gold silver partner"`
	WebsiteURL    string         `gorm:"type:varchar(255);default:null" json:"website_url" validate:"omitempty,url"`
	LogoObjectKey string         `gorm:"type:varchar(255);default:null" json:"-"`
	Published     bool           `gorm:"default:true;index" json:"published"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *Sponsor) Validate() error {
	v := validator.New()

	return v.Struct(s)
}
