package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/EberechiLabs/FestHive/internal/pkg/env"
	"github.com/EberechiLabs/FestHive/internal/pkg/hcaptcha"
	"github.com/EberechiLabs/FestHive/internal/pkg/referral"
)

// ReferralController serves the tour ambassador signup
type ReferralController struct {
	referral *referral.Service
}

// NewReferralController creates the referral controller
func NewReferralController(refSvc *referral.Service) *ReferralController {
	return &ReferralController{referral: refSvc}
}

// HandleReferralForm renders the ambassador signup form
func (rc *ReferralController) HandleReferralForm(c *fiber.Ctx) error {
	return c.Render("referrals/signup", fiber.Map{
		"Title":           "Become a Tour Ambassador",
		"Flash":           flash.Get(c),
		"IsLoggedIn":      isLoggedIn(c),
		"DiscountPercent": referral.DiscountPercent,
		"HCaptchaSitekey": env.GetEnv("HCAPTCHA_SITEKEY", ""),
	}, "layouts/main")
}

// HandleReferralSignup issues a new ambassador code. The code starts out
// pending and must be activated by an admin before it grants discounts.
func (rc *ReferralController) HandleReferralSignup(c *fiber.Ctx) error {
	if hcaptcha.Enabled() {
		valid, herr := hcaptcha.Verify(c.FormValue("h-captcha-response"))
		if herr != nil || !valid {
			return flash.WithError(c, fiber.Map{
				"type":    "error",
				"message": "Captcha validation failed. Please try again.",
			}).Redirect("/referrals/signup")
		}
	}

	code, err := rc.referral.Signup(formTrimmed(c, "owner_name"), formTrimmed(c, "owner_email"))
	if err != nil {
		log.Printf("referral signup: %v", err)
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "We could not create your code. Please check your details and try again.",
		}).Redirect("/referrals/signup")
	}

	return c.Render("referrals/created", fiber.Map{
		"Title":      "Your Ambassador Code",
		"Flash":      flash.Get(c),
		"IsLoggedIn": isLoggedIn(c),
		"Code":       code,
	}, "layouts/main")
}
