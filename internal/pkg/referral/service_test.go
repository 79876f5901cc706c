package referral

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/EberechiLabs/FestHive/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// memRepo mimics the SQL semantics the service relies on: unique codes and
// a single atomic increment per IncrementStats call.
type memRepo struct {
	mu    sync.Mutex
	codes map[string]*models.ReferralCode
}

func newMemRepo() *memRepo {
	return &memRepo{codes: make(map[string]*models.ReferralCode)}
}

func (r *memRepo) Create(code *models.ReferralCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.codes[code.Code]; exists {
		return errors.New("Error 1062: Duplicate entry")
	}
	cp := *code
	r.codes[code.Code] = &cp
	return nil
}

func (r *memRepo) GetByCode(code string) (*models.ReferralCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rc, ok := r.codes[code]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *rc
	return &cp, nil
}

func (r *memRepo) IncrementStats(code string, earning decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rc, ok := r.codes[code]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	rc.TotalReferrals++
	rc.Earnings = rc.Earnings.Add(earning)
	return nil
}

func (r *memRepo) SetStatus(code, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rc, ok := r.codes[code]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	rc.Status = status
	return nil
}

func (r *memRepo) List(offset, limit int) ([]models.ReferralCode, error) {
	return nil, nil
}

func (r *memRepo) IsDuplicate(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "duplicate")
}

func seedCode(t *testing.T, repo *memRepo, code, status string) {
	t.Helper()
	err := repo.Create(&models.ReferralCode{
		Code:       code,
		OwnerName:  "Chidinma Eze",
		OwnerEmail: "chidinma@example.com",
		Status:     status,
	})
	assert.NoError(t, err)
}

func TestValidateActiveCode(t *testing.T) {
	repo := newMemRepo()
	seedCode(t, repo, "FESTAMB1", models.ReferralStatusActive)
	svc := NewService(repo)

	assert.Equal(t, 15, svc.Validate("FESTAMB1"))
	// Lookup is case-insensitive on the caller side.
	assert.Equal(t, 15, svc.Validate("  festamb1 "))
}

func TestValidateInertCodes(t *testing.T) {
	repo := newMemRepo()
	seedCode(t, repo, "PENDING1", models.ReferralStatusPending)
	seedCode(t, repo, "EXPIRED1", models.ReferralStatusExpired)
	svc := NewService(repo)

	// Pending, expired and unknown codes all silently yield no discount.
	assert.Equal(t, 0, svc.Validate("PENDING1"))
	assert.Equal(t, 0, svc.Validate("EXPIRED1"))
	assert.Equal(t, 0, svc.Validate("NOSUCHCODE"))
	assert.Equal(t, 0, svc.Validate(""))
}

func TestApplyDiscount(t *testing.T) {
	repo := newMemRepo()
	seedCode(t, repo, "FESTAMB1", models.ReferralStatusActive)
	svc := NewService(repo)

	amount, pct := svc.ApplyDiscount("FESTAMB1", decimal.NewFromInt(100000))
	assert.Equal(t, 15, pct)
	assert.True(t, amount.Equal(decimal.NewFromInt(85000)), "got %s", amount)

	amount, pct = svc.ApplyDiscount("NOSUCHCODE", decimal.NewFromInt(100000))
	assert.Equal(t, 0, pct)
	assert.True(t, amount.Equal(decimal.NewFromInt(100000)))
}

func TestCreditBookingConcurrent(t *testing.T) {
	repo := newMemRepo()
	seedCode(t, repo, "FESTAMB1", models.ReferralStatusActive)
	svc := NewService(repo)

	// Two simultaneous bookings citing the same code must both land.
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.CreditBooking("FESTAMB1", decimal.NewFromInt(200000)))
		}()
	}
	wg.Wait()

	rc, err := repo.GetByCode("FESTAMB1")
	assert.NoError(t, err)
	assert.Equal(t, 2, rc.TotalReferrals)
	assert.True(t, rc.Earnings.Equal(decimal.NewFromInt(20000)), "earnings %s", rc.Earnings)
}

func TestSignupRetriesOnCollision(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)

	rc, err := svc.Signup("Chidinma Eze", "chidinma@example.com")
	assert.NoError(t, err)
	assert.Len(t, rc.Code, codeLength)
	assert.Equal(t, models.ReferralStatusPending, rc.Status)
}

func TestGenerateCodeAlphabet(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := GenerateCode()
		assert.NoError(t, err)
		assert.Len(t, code, codeLength)
		for _, r := range code {
			assert.Contains(t, codeAlphabet, string(r))
		}
	}
}
