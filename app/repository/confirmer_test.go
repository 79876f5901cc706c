package repository

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/EberechiLabs/FestHive/app/models"
)

// The stubs embed their interface so only the methods the confirmer touches
// need implementing; anything else panics and fails the test loudly.

type stubRegistrationRepo struct {
	RegistrationRepository
	byReference map[string]*models.EventRegistration
	statuses    map[uint]string
}

func (r *stubRegistrationRepo) GetByPaymentReference(reference string) (*models.EventRegistration, error) {
	if reg, ok := r.byReference[reference]; ok {
		return reg, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRegistrationRepo) UpdateStatus(id uint, status string) error {
	r.statuses[id] = status
	return nil
}

type stubVendorRepo struct {
	VendorRepository
	byReference map[string]*models.VendorApplication
	statuses    map[uint]string
}

func (r *stubVendorRepo) GetByPaymentReference(reference string) (*models.VendorApplication, error) {
	if app, ok := r.byReference[reference]; ok {
		return app, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubVendorRepo) UpdateStatus(id uint, status string) error {
	r.statuses[id] = status
	return nil
}

type stubPageantRepo struct {
	PageantRepository
}

func (r *stubPageantRepo) GetByPaymentReference(reference string) (*models.PageantContestant, error) {
	return nil, gorm.ErrRecordNotFound
}

type stubTourRepo struct {
	TourRepository
	byReference map[string]*models.TourBooking
	statuses    map[uint]string
	updateErr   error
}

func (r *stubTourRepo) GetBookingByPaymentReference(reference string) (*models.TourBooking, error) {
	if booking, ok := r.byReference[reference]; ok {
		return booking, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubTourRepo) UpdateBookingStatus(id uint, status string) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.statuses[id] = status
	return nil
}

type recordingCreditor struct {
	credited []string
	err      error
}

func (c *recordingCreditor) CreditBooking(code string, amount decimal.Decimal) error {
	if c.err != nil {
		return c.err
	}
	c.credited = append(c.credited, code)
	return nil
}

func confirmerFixture() (*Repositories, *stubRegistrationRepo, *stubVendorRepo, *stubTourRepo) {
	reg := &stubRegistrationRepo{
		byReference: map[string]*models.EventRegistration{},
		statuses:    map[uint]string{},
	}
	vendor := &stubVendorRepo{
		byReference: map[string]*models.VendorApplication{},
		statuses:    map[uint]string{},
	}
	tour := &stubTourRepo{
		byReference: map[string]*models.TourBooking{},
		statuses:    map[uint]string{},
	}
	repos := &Repositories{
		Registration: reg,
		Vendor:       vendor,
		Pageant:      &stubPageantRepo{},
		Tour:         tour,
	}
	return repos, reg, vendor, tour
}

func TestConfirmRegistrationByReference(t *testing.T) {
	repos, reg, _, _ := confirmerFixture()
	reg.byReference["REF-REG"] = &models.EventRegistration{ID: 7}

	confirmer := NewDomainConfirmer(repos, nil)
	err := confirmer.ConfirmByReference("REF-REG")
	assert.NoError(t, err)
	assert.Equal(t, models.RegistrationStatusConfirmed, reg.statuses[7])
}

func TestCancelVendorApplicationByReference(t *testing.T) {
	repos, _, vendor, _ := confirmerFixture()
	vendor.byReference["REF-VND"] = &models.VendorApplication{ID: 3}

	confirmer := NewDomainConfirmer(repos, nil)
	err := confirmer.CancelByReference("REF-VND")
	assert.NoError(t, err)
	assert.Equal(t, models.RegistrationStatusCancelled, vendor.statuses[3])
}

func TestConfirmTourBookingCreditsReferral(t *testing.T) {
	repos, _, _, tour := confirmerFixture()
	tour.byReference["REF-TOUR"] = &models.TourBooking{
		ID:           9,
		ReferralCode: "NG26ABCDEF",
		Amount:       decimal.NewFromInt(425000),
	}
	creditor := &recordingCreditor{}

	confirmer := NewDomainConfirmer(repos, creditor)
	err := confirmer.ConfirmByReference("REF-TOUR")
	assert.NoError(t, err)
	assert.Equal(t, models.RegistrationStatusConfirmed, tour.statuses[9])
	assert.Equal(t, []string{"NG26ABCDEF"}, creditor.credited)
}

// A broken referral credit must never roll back the confirmed booking.
func TestConfirmTourBookingSurvivesCreditFailure(t *testing.T) {
	repos, _, _, tour := confirmerFixture()
	tour.byReference["REF-TOUR"] = &models.TourBooking{
		ID:           9,
		ReferralCode: "NG26ABCDEF",
		Amount:       decimal.NewFromInt(425000),
	}
	creditor := &recordingCreditor{err: errors.New("code vanished")}

	confirmer := NewDomainConfirmer(repos, creditor)
	err := confirmer.ConfirmByReference("REF-TOUR")
	assert.NoError(t, err)
	assert.Equal(t, models.RegistrationStatusConfirmed, tour.statuses[9])
}

func TestCancelTourBookingSkipsReferral(t *testing.T) {
	repos, _, _, tour := confirmerFixture()
	tour.byReference["REF-TOUR"] = &models.TourBooking{ID: 9, ReferralCode: "NG26ABCDEF"}
	creditor := &recordingCreditor{}

	confirmer := NewDomainConfirmer(repos, creditor)
	err := confirmer.CancelByReference("REF-TOUR")
	assert.NoError(t, err)
	assert.Empty(t, creditor.credited)
}

func TestConfirmUnknownReference(t *testing.T) {
	repos, _, _, _ := confirmerFixture()

	confirmer := NewDomainConfirmer(repos, nil)
	err := confirmer.ConfirmByReference("REF-NOPE")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "REF-NOPE")
}

func TestConfirmTourBookingUpdateFailureBubbles(t *testing.T) {
	repos, _, _, tour := confirmerFixture()
	tour.byReference["REF-TOUR"] = &models.TourBooking{ID: 9}
	tour.updateErr = errors.New("deadlock")

	confirmer := NewDomainConfirmer(repos, nil)
	err := confirmer.ConfirmByReference("REF-TOUR")
	assert.Error(t, err)
}
