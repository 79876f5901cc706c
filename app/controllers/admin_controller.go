package controllers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/EberechiLabs/FestHive/app/models"
	"github.com/EberechiLabs/FestHive/app/repository"
	"github.com/EberechiLabs/FestHive/internal/pkg/payments"
	"github.com/EberechiLabs/FestHive/internal/pkg/referral"
	"github.com/EberechiLabs/FestHive/internal/pkg/reporting"
	"github.com/EberechiLabs/FestHive/internal/pkg/statistics"
)

// reportWindow caps how far back the admin listings reach in one request
const reportWindow = 365 * 24 * time.Hour

// AdminController serves the back office: dashboard, listings, reports and
// the moderation actions.
type AdminController struct {
	repos    *repository.Repositories
	referral *referral.Service
	payments *payments.Service
}

// NewAdminController creates the admin controller
func NewAdminController(repos *repository.Repositories, refSvc *referral.Service, paySvc *payments.Service) *AdminController {
	return &AdminController{repos: repos, referral: refSvc, payments: paySvc}
}

// HandleDashboard renders the headline numbers
func (adm *AdminController) HandleDashboard(c *fiber.Ctx) error {
	data := statistics.GetDashboardData()

	return c.Render("admin/dashboard", fiber.Map{
		"Title":      "Dashboard",
		"Flash":      flash.Get(c),
		"IsLoggedIn": isLoggedIn(c),
		"Username":   ExtractUsername(c),
		"Stats":      data,
	}, "layouts/admin")
}

// HandleRegistrations lists event registrations with filters
func (adm *AdminController) HandleRegistrations(c *fiber.Ctx) error {
	from, to := reportRange(c)
	regs, err := adm.repos.Registration.ListBetween(from, to)
	if err != nil {
		log.Printf("loading registrations: %v", err)
	}

	filtered := reporting.FilterRegistrations(regs, reporting.RegistrationFilter{
		EventID: uint(c.QueryInt("event_id", 0)),
		Status:  c.Query("status"),
		Query:   c.Query("q"),
	})

	return c.Render("admin/registrations", fiber.Map{
		"Title":         "Event Registrations",
		"Flash":         flash.Get(c),
		"IsLoggedIn":    isLoggedIn(c),
		"Username":      ExtractUsername(c),
		"Registrations": filtered,
		"Status":        c.Query("status"),
		"Query":         c.Query("q"),
	}, "layouts/admin")
}

// HandlePayments lists payment ledger rows with filters
func (adm *AdminController) HandlePayments(c *fiber.Ctx) error {
	from, to := reportRange(c)
	records, err := adm.repos.PaymentQuery.ListBetween(from, to)
	if err != nil {
		log.Printf("loading payments: %v", err)
	}

	filtered := reporting.FilterPayments(records, reporting.PaymentFilter{
		Status:      c.Query("status"),
		PaymentType: c.Query("type"),
		Provider:    c.Query("provider"),
		Query:       c.Query("q"),
	})

	return c.Render("admin/payments", fiber.Map{
		"Title":      "Payments",
		"Flash":      flash.Get(c),
		"IsLoggedIn": isLoggedIn(c),
		"Username":   ExtractUsername(c),
		"Payments":   filtered,
		"Status":     c.Query("status"),
		"Type":       c.Query("type"),
		"Provider":   c.Query("provider"),
		"Query":      c.Query("q"),
	}, "layouts/admin")
}

// HandlePaymentReconcile re-runs gateway verification for a single reference,
// for payments the callback never confirmed.
func (adm *AdminController) HandlePaymentReconcile(c *fiber.Ctx) error {
	reference := c.FormValue("reference")
	if reference == "" {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "A payment reference is required.",
		}).Redirect("/admin/payments")
	}

	outcome, err := adm.payments.VerifyAndRecord(c.Context(), reference)
	if err != nil {
		log.Printf("reconciling payment %s: %v", reference, err)
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Could not reconcile " + reference + ".",
		}).Redirect("/admin/payments")
	}

	switch outcome.State {
	case payments.StateSuccess:
		statistics.ResetCacheUpdateTimer()
		return flash.WithSuccess(c, fiber.Map{
			"type":    "success",
			"message": "Payment " + reference + " is verified and recorded.",
		}).Redirect("/admin/payments")
	case payments.StatePaidUnrecorded:
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Payment " + reference + " is paid but the booking update failed. Retry the reconcile.",
		}).Redirect("/admin/payments")
	default:
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Payment " + reference + " is " + outcome.State + " at the gateway.",
		}).Redirect("/admin/payments")
	}
}

// HandleRevenueReport renders revenue totals by type and over time
func (adm *AdminController) HandleRevenueReport(c *fiber.Ctx) error {
	from, to := reportRange(c)
	records, err := adm.repos.PaymentQuery.ListBetween(from, to)
	if err != nil {
		log.Printf("loading payments for report: %v", err)
	}

	granularity := reporting.Granularity(c.Query("granularity", string(reporting.Daily)))
	switch granularity {
	case reporting.Daily, reporting.Weekly, reporting.Monthly:
	default:
		granularity = reporting.Daily
	}

	return c.Render("admin/revenue", fiber.Map{
		"Title":       "Revenue Report",
		"Flash":       flash.Get(c),
		"IsLoggedIn":  isLoggedIn(c),
		"Username":    ExtractUsername(c),
		"ByType":      reporting.RevenueByType(records),
		"Buckets":     reporting.RevenueBuckets(records, granularity),
		"Granularity": string(granularity),
	}, "layouts/admin")
}

// HandleVendors lists vendor applications for moderation
func (adm *AdminController) HandleVendors(c *fiber.Ctx) error {
	offset, limit := pageOffset(c)
	status := c.Query("status")

	var (
		apps []models.VendorApplication
		err  error
	)
	if status != "" {
		apps, err = adm.repos.Vendor.ListByStatus(status, offset, limit)
	} else {
		apps, err = adm.repos.Vendor.List(offset, limit)
	}
	if err != nil {
		log.Printf("loading vendor applications: %v", err)
	}

	return c.Render("admin/vendors", fiber.Map{
		"Title":        "Vendor Applications",
		"Flash":        flash.Get(c),
		"IsLoggedIn":   isLoggedIn(c),
		"Username":     ExtractUsername(c),
		"Applications": apps,
		"Status":       status,
	}, "layouts/admin")
}

// HandleVendorApprove marks a booth application approved ahead of payment
func (adm *AdminController) HandleVendorApprove(c *fiber.Ctx) error {
	id := paramUint(c, "id")
	if err := adm.repos.Vendor.UpdateStatus(id, models.RegistrationStatusConfirmed); err != nil {
		log.Printf("approving vendor application %d: %v", id, err)
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Could not approve the application.",
		}).Redirect("/admin/vendors")
	}

	statistics.ResetCacheUpdateTimer()

	return flash.WithSuccess(c, fiber.Map{
		"type":    "success",
		"message": "Application approved.",
	}).Redirect("/admin/vendors")
}

// HandleVendorReject cancels a booth application
func (adm *AdminController) HandleVendorReject(c *fiber.Ctx) error {
	id := paramUint(c, "id")
	if err := adm.repos.Vendor.UpdateStatus(id, models.RegistrationStatusCancelled); err != nil {
		log.Printf("rejecting vendor application %d: %v", id, err)
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Could not reject the application.",
		}).Redirect("/admin/vendors")
	}

	statistics.ResetCacheUpdateTimer()

	return flash.WithSuccess(c, fiber.Map{
		"type":    "success",
		"message": "Application rejected.",
	}).Redirect("/admin/vendors")
}

// HandleBookings lists tour bookings with filters
func (adm *AdminController) HandleBookings(c *fiber.Ctx) error {
	offset, limit := pageOffset(c)
	bookings, err := adm.repos.Tour.ListBookings(offset, limit)
	if err != nil {
		log.Printf("loading tour bookings: %v", err)
	}

	filtered := reporting.FilterBookings(bookings, reporting.BookingFilter{
		Status: c.Query("status"),
		Query:  c.Query("q"),
	})

	return c.Render("admin/bookings", fiber.Map{
		"Title":      "Tour Bookings",
		"Flash":      flash.Get(c),
		"IsLoggedIn": isLoggedIn(c),
		"Username":   ExtractUsername(c),
		"Bookings":   filtered,
		"Status":     c.Query("status"),
		"Query":      c.Query("q"),
	}, "layouts/admin")
}

// HandleReferrals lists ambassador codes
func (adm *AdminController) HandleReferrals(c *fiber.Ctx) error {
	offset, limit := pageOffset(c)
	codes, err := adm.referral.List(offset, limit)
	if err != nil {
		log.Printf("loading referral codes: %v", err)
	}

	return c.Render("admin/referrals", fiber.Map{
		"Title":      "Ambassador Codes",
		"Flash":      flash.Get(c),
		"IsLoggedIn": isLoggedIn(c),
		"Username":   ExtractUsername(c),
		"Codes":      codes,
	}, "layouts/admin")
}

// HandleReferralActivate flips a pending code active
func (adm *AdminController) HandleReferralActivate(c *fiber.Ctx) error {
	code := c.Params("code")
	if err := adm.referral.Activate(code); err != nil {
		log.Printf("activating code %s: %v", code, err)
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Could not activate code " + code + ".",
		}).Redirect("/admin/referrals")
	}

	return flash.WithSuccess(c, fiber.Map{
		"type":    "success",
		"message": "Code " + code + " is now active.",
	}).Redirect("/admin/referrals")
}

// HandleReferralExpire retires a code
func (adm *AdminController) HandleReferralExpire(c *fiber.Ctx) error {
	code := c.Params("code")
	if err := adm.referral.Expire(code); err != nil {
		log.Printf("expiring code %s: %v", code, err)
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Could not expire code " + code + ".",
		}).Redirect("/admin/referrals")
	}

	return flash.WithSuccess(c, fiber.Map{
		"type":    "success",
		"message": "Code " + code + " is expired.",
	}).Redirect("/admin/referrals")
}

// reportRange derives the from/to window from query parameters, defaulting
// to the last year
func reportRange(c *fiber.Ctx) (time.Time, time.Time) {
	to := time.Now()
	from := to.Add(-reportWindow)

	if v := c.Query("from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			from = t
		}
	}
	if v := c.Query("to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			// include the whole end day
			to = t.Add(24*time.Hour - time.Nanosecond)
		}
	}
	return from, to
}
