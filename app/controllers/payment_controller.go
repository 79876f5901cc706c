package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/sujit-baniya/flash"

	"github.com/EberechiLabs/FestHive/internal/pkg/payments"
)

// PaymentController handles the gateway return leg and the status page
type PaymentController struct {
	payments *payments.Service
}

// NewPaymentController creates the payment controller
func NewPaymentController(paySvc *payments.Service) *PaymentController {
	return &PaymentController{payments: paySvc}
}

// HandleCallback is where the hosted checkout redirects back to. The query
// reference is never trusted on its own; the service re-verifies with the
// gateway before anything is shown or recorded.
func (pc *PaymentController) HandleCallback(c *fiber.Ctx) error {
	reference := c.Query("reference")
	if reference == "" {
		// Flutterwave sends tx_ref instead
		reference = c.Query("tx_ref")
	}
	if reference == "" {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Missing payment reference.",
		}).Redirect("/")
	}

	outcome, err := pc.payments.VerifyAndRecord(c.Context(), reference)
	if err != nil {
		log.Printf("verification for %s: %v", reference, err)
	}
	if outcome == nil {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Something went wrong while confirming your payment. Please contact support with reference " + reference + ".",
		}).Redirect("/")
	}

	return pc.renderOutcome(c, outcome)
}

// HandleCancel is the gateway's close/cancel return path
func (pc *PaymentController) HandleCancel(c *fiber.Ctx) error {
	reference := c.Query("reference")
	if reference == "" {
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	outcome, err := pc.payments.Cancel(reference)
	if err != nil {
		log.Printf("cancelling %s: %v", reference, err)
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "We could not find this payment.",
		}).Redirect("/")
	}

	return pc.renderOutcome(c, outcome)
}

// HandleStatus re-verifies a reference on demand, for the "view status" link
// in confirmation emails.
func (pc *PaymentController) HandleStatus(c *fiber.Ctx) error {
	reference := c.Query("reference")
	if reference == "" {
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	outcome, err := pc.payments.VerifyAndRecord(c.Context(), reference)
	if err != nil {
		log.Printf("status check for %s: %v", reference, err)
	}
	if outcome == nil {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "We could not find this payment.",
		}).Redirect("/")
	}

	return pc.renderOutcome(c, outcome)
}

// renderOutcome maps a payment outcome to the result page
func (pc *PaymentController) renderOutcome(c *fiber.Ctx, outcome *payments.Outcome) error {
	return c.Render("payments/result", fiber.Map{
		"Title":      "Payment status",
		"Flash":      flash.Get(c),
		"IsLoggedIn": isLoggedIn(c),
		"Outcome":    outcome,
		"IsSuccess":  outcome.State == payments.StateSuccess,
		"IsPaidOnly": outcome.State == payments.StatePaidUnrecorded,
	}, "layouts/main")
}

// handleCheckoutError folds checkout failures into a flash redirect. The
// unconfigured gateway gets the degraded contact-us message instead of an
// error page.
func handleCheckoutError(c *fiber.Ctx, err error, backPath string) error {
	if errors.Is(err, payments.ErrNotConfigured) {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Online payment is currently unavailable. Your details were saved; please contact us to complete your booking.",
		}).Redirect(backPath)
	}

	log.Printf("opening checkout: %v", err)
	return flash.WithError(c, fiber.Map{
		"type":    "error",
		"message": "We could not start your payment. Please try again.",
	}).Redirect(backPath)
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
