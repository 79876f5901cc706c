package controllers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/sujit-baniya/flash"

	"github.com/EberechiLabs/FestHive/app/models"
	"github.com/EberechiLabs/FestHive/app/repository"
	"github.com/EberechiLabs/FestHive/internal/pkg/env"
	"github.com/EberechiLabs/FestHive/internal/pkg/hcaptcha"
	"github.com/EberechiLabs/FestHive/internal/pkg/payments"
	"github.com/EberechiLabs/FestHive/internal/pkg/storage"
)

// Booth fees in NGN by category
var boothFees = map[string]decimal.Decimal{
	models.BoothCategoryFood:     decimal.NewFromInt(50000),
	models.BoothCategoryFashion:  decimal.NewFromInt(40000),
	models.BoothCategoryArt:      decimal.NewFromInt(30000),
	models.BoothCategoryServices: decimal.NewFromInt(35000),
}

// VendorController serves the vendor booth application flow
type VendorController struct {
	repos    *repository.Repositories
	payments *payments.Service
	media    *storage.Client
}

// NewVendorController creates the vendor controller. media may be nil when
// S3 storage is not configured; logo uploads are skipped then.
func NewVendorController(repos *repository.Repositories, paySvc *payments.Service, media *storage.Client) *VendorController {
	return &VendorController{repos: repos, payments: paySvc, media: media}
}

// HandleVendorForm renders the booth application form
func (vc *VendorController) HandleVendorForm(c *fiber.Ctx) error {
	return c.Render("vendors/apply", fiber.Map{
		"Title":           "Vendor Booth Application",
		"Flash":           flash.Get(c),
		"IsLoggedIn":      isLoggedIn(c),
		"BoothFees":       boothFees,
		"HCaptchaSitekey": env.GetEnv("HCAPTCHA_SITEKEY", ""),
	}, "layouts/main")
}

// HandleVendorApply processes the booth application and opens the checkout
func (vc *VendorController) HandleVendorApply(c *fiber.Ctx) error {
	if hcaptcha.Enabled() {
		valid, herr := hcaptcha.Verify(c.FormValue("h-captcha-response"))
		if herr != nil || !valid {
			return flash.WithError(c, fiber.Map{
				"type":    "error",
				"message": "Captcha validation failed. Please try again.",
			}).Redirect("/vendors/apply")
		}
	}

	category := formTrimmed(c, "booth_category")
	fee, ok := boothFees[category]
	if !ok {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Please pick a booth category.",
		}).Redirect("/vendors/apply")
	}

	app := &models.VendorApplication{
		BusinessName:  formTrimmed(c, "business_name"),
		ContactName:   formTrimmed(c, "contact_name"),
		Email:         formTrimmed(c, "email"),
		Phone:         formTrimmed(c, "phone"),
		BoothCategory: category,
		Description:   formTrimmed(c, "description"),
		BoothFee:      fee,
		Status:        models.RegistrationStatusPending,
	}
	if err := app.Validate(); err != nil {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Please check your details and try again.",
		}).Redirect("/vendors/apply")
	}

	// Logo upload is optional and never blocks the application
	if vc.media != nil {
		if fileHeader, ferr := c.FormFile("logo"); ferr == nil && fileHeader != nil {
			f, oerr := fileHeader.Open()
			if oerr == nil {
				if result, uerr := vc.media.UploadImage(c.Context(), "vendors", fileHeader.Filename, f); uerr != nil {
					log.Printf("vendor logo upload: %v", uerr)
				} else {
					app.LogoObjectKey = result.ObjectKey
				}
				f.Close()
			}
		}
	}

	if err := vc.repos.Vendor.Create(app); err != nil {
		log.Printf("creating vendor application: %v", err)
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Something went wrong. Please try again.",
		}).Redirect("/vendors/apply")
	}

	session, err := vc.payments.BeginCheckout(c.Context(), payments.CheckoutConfig{
		PaymentType: models.PaymentTypeVendorBooth,
		SubjectID:   fmt.Sprintf("%d", app.ID),
		SubjectName: app.BusinessName,
		Amount:      fee,
		Customer: payments.Customer{
			FullName: app.ContactName,
			Email:    app.Email,
			Phone:    app.Phone,
		},
		Description: fmt.Sprintf("%s booth for %s", category, app.BusinessName),
		Metadata: map[string]string{
			"booth_category": category,
		},
	})
	if err != nil {
		return handleCheckoutError(c, err, "/vendors/apply")
	}

	app.PaymentReference = session.Reference
	if err := vc.repos.Vendor.Update(app); err != nil {
		log.Printf("attaching reference %s to vendor application %d: %v", session.Reference, app.ID, err)
	}

	return c.Redirect(session.PaymentURL, fiber.StatusSeeOther)
}
