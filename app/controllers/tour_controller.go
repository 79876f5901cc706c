package controllers

import (
	"fmt"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/EberechiLabs/FestHive/app/models"
	"github.com/EberechiLabs/FestHive/app/repository"
	"github.com/EberechiLabs/FestHive/internal/pkg/env"
	"github.com/EberechiLabs/FestHive/internal/pkg/hcaptcha"
	"github.com/EberechiLabs/FestHive/internal/pkg/payments"
	"github.com/EberechiLabs/FestHive/internal/pkg/referral"
)

// TourController serves the diaspora tour packages and booking flow
type TourController struct {
	repos    *repository.Repositories
	payments *payments.Service
	referral *referral.Service
}

// NewTourController creates the tour controller
func NewTourController(repos *repository.Repositories, paySvc *payments.Service, refSvc *referral.Service) *TourController {
	return &TourController{repos: repos, payments: paySvc, referral: refSvc}
}

// HandleToursIndex lists published tour packages
func (tc *TourController) HandleToursIndex(c *fiber.Ctx) error {
	pkgs, err := tc.repos.Tour.GetPublishedPackages()
	if err != nil {
		log.Printf("loading tour packages: %v", err)
	}

	return c.Render("tours/index", fiber.Map{
		"Title":      "Homecoming Tours",
		"Flash":      flash.Get(c),
		"IsLoggedIn": isLoggedIn(c),
		"Packages":   pkgs,
	}, "layouts/main")
}

// HandleTourDetail renders one package with its booking form
func (tc *TourController) HandleTourDetail(c *fiber.Ctx) error {
	pkg, err := tc.repos.Tour.GetPackageBySlug(c.Params("slug"))
	if err != nil || !pkg.Published {
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{
			"Title": "Tour not found",
		}, "layouts/main")
	}

	return c.Render("tours/detail", fiber.Map{
		"Title":           pkg.Title,
		"Flash":           flash.Get(c),
		"IsLoggedIn":      isLoggedIn(c),
		"Package":         pkg,
		"DiscountPercent": referral.DiscountPercent,
		"HCaptchaSitekey": env.GetEnv("HCAPTCHA_SITEKEY", ""),
	}, "layouts/main")
}

// HandleTourBook processes a booking. A valid active referral code applies
// the ambassador discount; an invalid code is ignored silently so the genuine
// booking never fails over a mistyped code.
func (tc *TourController) HandleTourBook(c *fiber.Ctx) error {
	pkg, err := tc.repos.Tour.GetPackageBySlug(c.Params("slug"))
	if err != nil || !pkg.Published {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "This tour is not open for booking.",
		}).Redirect("/tours")
	}
	detailPath := "/tours/" + pkg.Slug

	if hcaptcha.Enabled() {
		valid, herr := hcaptcha.Verify(c.FormValue("h-captcha-response"))
		if herr != nil || !valid {
			return flash.WithError(c, fiber.Map{
				"type":    "error",
				"message": "Captcha validation failed. Please try again.",
			}).Redirect(detailPath)
		}
	}

	partySize, err := strconv.Atoi(c.FormValue("party_size", "1"))
	if err != nil || partySize < 1 {
		partySize = 1
	}

	base := pkg.PricePerHead.Mul(decimalFromInt(partySize))
	code := formTrimmed(c, "referral_code")
	amount, percent := tc.referral.ApplyDiscount(code, base)
	if percent == 0 {
		code = ""
	}

	booking := &models.TourBooking{
		TourPackageID:   pkg.ID,
		FullName:        formTrimmed(c, "full_name"),
		Email:           formTrimmed(c, "email"),
		Phone:           formTrimmed(c, "phone"),
		CountryOfOrigin: formTrimmed(c, "country_of_origin"),
		PartySize:       partySize,
		ReferralCode:    code,
		DiscountPercent: percent,
		Amount:          amount,
		Status:          models.RegistrationStatusPending,
	}
	if err := booking.Validate(); err != nil {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Please check your details and try again.",
		}).Redirect(detailPath)
	}

	if err := tc.repos.Tour.CreateBooking(booking); err != nil {
		log.Printf("creating tour booking: %v", err)
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Something went wrong. Please try again.",
		}).Redirect(detailPath)
	}

	session, err := tc.payments.BeginCheckout(c.Context(), payments.CheckoutConfig{
		PaymentType:   models.PaymentTypeTourBooking,
		SubjectID:     fmt.Sprintf("%d", booking.ID),
		SubjectName:   pkg.Title,
		Amount:        booking.Amount,
		International: pkg.International,
		Customer: payments.Customer{
			FullName: booking.FullName,
			Email:    booking.Email,
			Phone:    booking.Phone,
		},
		Description: fmt.Sprintf("%s for %d traveller(s)", pkg.Title, partySize),
		Metadata: map[string]string{
			"tour_slug":     pkg.Slug,
			"referral_code": code,
		},
	})
	if err != nil {
		return handleCheckoutError(c, err, detailPath)
	}

	if err := tc.repos.Tour.UpdateBookingPaymentReference(booking.ID, session.Reference); err != nil {
		log.Printf("attaching reference %s to booking %d: %v", session.Reference, booking.ID, err)
	}

	return c.Redirect(session.PaymentURL, fiber.StatusSeeOther)
}
