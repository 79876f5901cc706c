package repository

import (
	"errors"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/EberechiLabs/FestHive/app/models"
)

// ReferralCreditor credits a referral code owner after a paid tour booking.
// Satisfied by the referral service.
type ReferralCreditor interface {
	CreditBooking(code string, bookingAmount decimal.Decimal) error
}

// DomainConfirmer flips the domain record behind a payment reference to its
// confirmed or cancelled status. It satisfies the payment service's Confirmer
// contract: the payment ledger row is already terminal when these run, so a
// failure here leaves a paid-but-unrecorded payment that the caller surfaces
// to support.
type DomainConfirmer struct {
	repos    *Repositories
	referral ReferralCreditor
}

// NewDomainConfirmer wires the confirmer against the repository set
func NewDomainConfirmer(repos *Repositories, referral ReferralCreditor) *DomainConfirmer {
	return &DomainConfirmer{repos: repos, referral: referral}
}

// ConfirmByReference confirms the registration, application or booking that
// carries the given payment reference.
func (c *DomainConfirmer) ConfirmByReference(reference string) error {
	return c.transition(reference, models.RegistrationStatusConfirmed)
}

// CancelByReference cancels the domain record behind an abandoned payment.
func (c *DomainConfirmer) CancelByReference(reference string) error {
	return c.transition(reference, models.RegistrationStatusCancelled)
}

func (c *DomainConfirmer) transition(reference, status string) error {
	if reg, err := c.repos.Registration.GetByPaymentReference(reference); err == nil {
		return c.repos.Registration.UpdateStatus(reg.ID, status)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if app, err := c.repos.Vendor.GetByPaymentReference(reference); err == nil {
		return c.repos.Vendor.UpdateStatus(app.ID, status)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if contestant, err := c.repos.Pageant.GetByPaymentReference(reference); err == nil {
		return c.repos.Pageant.UpdateStatus(contestant.ID, status)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if booking, err := c.repos.Tour.GetBookingByPaymentReference(reference); err == nil {
		if uerr := c.repos.Tour.UpdateBookingStatus(booking.ID, status); uerr != nil {
			return uerr
		}
		if status == models.RegistrationStatusConfirmed && booking.ReferralCode != "" && c.referral != nil {
			// Ambassador credit is best-effort; the booking itself is confirmed
			if cerr := c.referral.CreditBooking(booking.ReferralCode, booking.Amount); cerr != nil {
				log.Printf("referral credit for booking %d (code %s) failed: %v", booking.ID, booking.ReferralCode, cerr)
			}
		}
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return fmt.Errorf("no record found for payment reference %s", reference)
}
