package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	EventCategoryMusic    = "music"
	EventCategoryCultural = "cultural"
	EventCategoryPageant  = "pageant"
	EventCategoryFood     = "food"
	EventCategoryBusiness = "business"
)

// Event is a festival programme entry shown on the public events page.
// TicketPrice of zero means the event is free to attend.
type Event struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Slug        string          `gorm:"type:varchar(191);uniqueIndex" json:"slug" validate:"required,max=191"`
	Title       string          `gorm:"type:varchar(200)" json:"title" validate:"required,min=3,max=200"`
	Description string          `gorm:"type:text" json:"description"`
	Category    string          `gorm:"type:varchar(50);index" json:"category" validate:"oneof=music cultural pageant food business"`
	Venue       string          `gorm:"type:varchar(200)" json:"venue" validate:"required,max=200"`
	StartsAt    time.Time       `gorm:"type:datetime;index" json:"starts_at"`
	EndsAt      *time.Time      `gorm:"type:datetime;default:null" json:"ends_at,omitempty"`
	TicketPrice decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"ticket_price"`
	Capacity    int             `gorm:"default:0" json:"capacity"`
	ImageURL    string          `gorm:"type:varchar(255);default:null" json:"image_url"`
	Published   bool            `gorm:"default:false;index" json:"published"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (e *Event) Validate() error {
	v := validator.New()

	return v.Struct(e)
}

// IsFree reports whether the event requires no payment.
func (e *Event) IsFree() bool {
	return e.TicketPrice.LessThanOrEqual(decimal.Zero)
}
