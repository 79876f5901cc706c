package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TourPackage is a diaspora tour offering (homecoming trips sold alongside
// the festival). International packages are billed on the international
// gateway fee schedule.
type TourPackage struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Slug          string          `gorm:"type:varchar(191);uniqueIndex" json:"slug" validate:"required,max=191"`
	Title         string          `gorm:"type:varchar(200)" json:"title" validate:"required,min=3,max=200"`
	Itinerary     string          `gorm:"type:text" json:"itinerary"`
	DurationDays  int             `gorm:"default:1" json:"duration_days" validate:"min=1,max=60"`
	PricePerHead  decimal.Decimal `gorm:"type:decimal(12,2)" json:"price_per_head"`
	International bool            `gorm:"default:true" json:"international"`
	Published     bool            `gorm:"default:false;index" json:"published"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (p *TourPackage) Validate() error {
	v := validator.New()

	return v.Struct(p)
}

// TourBooking is a reservation against a tour package. When a referral code
// was cited at booking time the applied discount is frozen onto the row so
// later code changes never alter historical bookings.
type TourBooking struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	TourPackageID    uint            `gorm:"not null;index" json:"tour_package_id"`
	TourPackage      *TourPackage    `gorm:"foreignKey:TourPackageID" json:"tour_package,omitempty"`
	FullName         string          `gorm:"type:varchar(150)" json:"full_name" validate:"required,min=3,max=150"`
	Email            string          `gorm:"type:varchar(200);index" json:"email" validate:"required,email"`
	Phone            string          `gorm:"type:varchar(30);default:null" json:"phone" validate:"max=30"`
	CountryOfOrigin  string          `gorm:"type:varchar(100)" json:"country_of_origin" validate:"required,max=100"`
	PartySize        int             `gorm:"default:1" json:"party_size" validate:"min=1,max=30"`
	ReferralCode     string          `gorm:"type:varchar(30);default:null;index" json:"referral_code"`
	DiscountPercent  int             `gorm:"default:0" json:"discount_percent"`
	Amount           decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	PaymentReference string          `gorm:"type:varchar(100);default:null;index" json:"payment_reference"`
	Status           string          `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (b *TourBooking) Validate() error {
	v := validator.New()

	return v.Struct(b)
}
