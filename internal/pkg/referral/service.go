package referral

import (
	"errors"
	"fmt"
	"strings"

	"github.com/EberechiLabs/FestHive/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DiscountPercent is the fixed discount an active ambassador code grants on
// diaspora tour bookings.
const DiscountPercent = 15

// CommissionRate is the share of a referred booking credited to the code
// owner's earnings.
var CommissionRate = decimal.RequireFromString("0.05")

// Service manages diaspora tour ambassador codes.
type Service struct {
	repo Repository
}

// NewService creates a referral service from an injected repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NewServiceFromDB creates a referral service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// Signup registers a new ambassador. The code is generated with a retry
// loop on the unique index, so a rare collision just draws again. New codes
// start pending until an admin activates them.
func (s *Service) Signup(ownerName, ownerEmail string) (*models.ReferralCode, error) {
	name := strings.TrimSpace(ownerName)
	email := strings.TrimSpace(ownerEmail)
	if name == "" || email == "" {
		return nil, errors.New("owner name and email are required")
	}

	for attempt := 0; attempt < 5; attempt++ {
		code, err := GenerateCode()
		if err != nil {
			return nil, err
		}

		rc := &models.ReferralCode{
			Code:       code,
			OwnerName:  name,
			OwnerEmail: email,
			Status:     models.ReferralStatusPending,
		}
		if err := rc.Validate(); err != nil {
			return nil, err
		}

		err = s.repo.Create(rc)
		if err == nil {
			return rc, nil
		}
		if !s.repo.IsDuplicate(err) {
			return nil, err
		}
	}
	return nil, errors.New("could not allocate a unique referral code")
}

// Validate resolves a cited code to a discount percentage. Pending, expired
// and unknown codes silently yield zero; citing a bad code is not an error,
// the booking just gets no discount.
func (s *Service) Validate(code string) int {
	c := normalizeCode(code)
	if c == "" {
		return 0
	}
	rc, err := s.repo.GetByCode(c)
	if err != nil || !rc.IsActive() {
		return 0
	}
	return DiscountPercent
}

// ApplyDiscount returns the discounted amount for a cited code along with
// the percentage actually applied.
func (s *Service) ApplyDiscount(code string, amount decimal.Decimal) (decimal.Decimal, int) {
	pct := s.Validate(code)
	if pct == 0 {
		return amount, 0
	}
	factor := decimal.NewFromInt(int64(100 - pct)).Div(decimal.NewFromInt(100))
	return amount.Mul(factor).Round(2), pct
}

// CreditBooking atomically bumps the code's referral counter and earnings
// after a confirmed booking. The increment happens inside one UPDATE so two
// simultaneous bookings citing the same code never lose a count.
func (s *Service) CreditBooking(code string, bookingAmount decimal.Decimal) error {
	c := normalizeCode(code)
	if c == "" {
		return nil
	}
	earning := bookingAmount.Mul(CommissionRate).Round(2)
	if err := s.repo.IncrementStats(c, earning); err != nil {
		return fmt.Errorf("failed to credit referral code %s: %w", c, err)
	}
	return nil
}

// Activate flips a pending code active (admin action).
func (s *Service) Activate(code string) error {
	return s.repo.SetStatus(normalizeCode(code), models.ReferralStatusActive)
}

// Expire retires a code; historical bookings keep their frozen discount.
func (s *Service) Expire(code string) error {
	return s.repo.SetStatus(normalizeCode(code), models.ReferralStatusExpired)
}

// List returns ambassador codes for the back office.
func (s *Service) List(offset, limit int) ([]models.ReferralCode, error) {
	return s.repo.List(offset, limit)
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
