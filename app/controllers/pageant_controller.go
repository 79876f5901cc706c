package controllers

import (
	"fmt"
	"log"
	"strconv"

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

// PageantController serves the pageant entry flow and the contestant gallery
type PageantController struct {
	repos    *repository.Repositories
	payments *payments.Service
	media    *storage.Client
}

// NewPageantController creates the pageant controller
func NewPageantController(repos *repository.Repositories, paySvc *payments.Service, media *storage.Client) *PageantController {
	return &PageantController{repos: repos, payments: paySvc, media: media}
}

// entryFee reads the configured pageant entry fee, NGN
func entryFee() decimal.Decimal {
	raw := env.GetEnv("PAGEANT_ENTRY_FEE", "10000")
	fee, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NewFromInt(10000)
	}
	return fee
}

// HandlePageantGallery renders confirmed contestants
func (pc *PageantController) HandlePageantGallery(c *fiber.Ctx) error {
	contestants, err := pc.repos.Pageant.ListConfirmed()
	if err != nil {
		log.Printf("loading contestants: %v", err)
	}

	urls := make(map[uint]string, len(contestants))
	if pc.media != nil {
		for _, contestant := range contestants {
			if contestant.PhotoObjectKey != "" {
				urls[contestant.ID] = pc.media.PublicURL(contestant.PhotoObjectKey)
			}
		}
	}

	return c.Render("pageant/gallery", fiber.Map{
		"Title":       "Pageant Contestants",
		"Flash":       flash.Get(c),
		"IsLoggedIn":  isLoggedIn(c),
		"Contestants": contestants,
		"PhotoURLs":   urls,
	}, "layouts/main")
}

// HandlePageantForm renders the entry application form
func (pc *PageantController) HandlePageantForm(c *fiber.Ctx) error {
	return c.Render("pageant/apply", fiber.Map{
		"Title":           "Pageant Entry",
		"Flash":           flash.Get(c),
		"IsLoggedIn":      isLoggedIn(c),
		"EntryFee":        entryFee(),
		"HCaptchaSitekey": env.GetEnv("HCAPTCHA_SITEKEY", ""),
	}, "layouts/main")
}

// HandlePageantApply processes the entry application and opens the checkout
func (pc *PageantController) HandlePageantApply(c *fiber.Ctx) error {
	if hcaptcha.Enabled() {
		valid, herr := hcaptcha.Verify(c.FormValue("h-captcha-response"))
		if herr != nil || !valid {
			return flash.WithError(c, fiber.Map{
				"type":    "error",
				"message": "Captcha validation failed. Please try again.",
			}).Redirect("/pageant/apply")
		}
	}

	age, err := strconv.Atoi(c.FormValue("age", "0"))
	if err != nil {
		age = 0
	}

	contestant := &models.PageantContestant{
		FullName:  formTrimmed(c, "full_name"),
		StageName: formTrimmed(c, "stage_name"),
		Email:     formTrimmed(c, "email"),
		Phone:     formTrimmed(c, "phone"),
		Age:       age,
		City:      formTrimmed(c, "city"),
		Bio:       formTrimmed(c, "bio"),
		EntryFee:  entryFee(),
		Status:    models.RegistrationStatusPending,
	}
	if err := contestant.Validate(); err != nil {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Please check your details. Contestants must be between 18 and 35.",
		}).Redirect("/pageant/apply")
	}

	// Photo upload is optional and never blocks the application
	if pc.media != nil {
		if fileHeader, ferr := c.FormFile("photo"); ferr == nil && fileHeader != nil {
			f, oerr := fileHeader.Open()
			if oerr == nil {
				if result, uerr := pc.media.UploadImage(c.Context(), "contestants", fileHeader.Filename, f); uerr != nil {
					log.Printf("contestant photo upload: %v", uerr)
				} else {
					contestant.PhotoObjectKey = result.ObjectKey
				}
				f.Close()
			}
		}
	}

	if err := pc.repos.Pageant.Create(contestant); err != nil {
		log.Printf("creating contestant entry: %v", err)
		if pc.media != nil && contestant.PhotoObjectKey != "" {
			// the photo is orphaned without its database row
			if derr := pc.media.DeleteObject(c.Context(), contestant.PhotoObjectKey); derr != nil {
				log.Printf("cleaning up orphaned photo %s: %v", contestant.PhotoObjectKey, derr)
			}
		}
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Something went wrong. Please try again.",
		}).Redirect("/pageant/apply")
	}

	session, err := pc.payments.BeginCheckout(c.Context(), payments.CheckoutConfig{
		PaymentType: models.PaymentTypePageantApplication,
		SubjectID:   fmt.Sprintf("%d", contestant.ID),
		SubjectName: contestant.FullName,
		Amount:      contestant.EntryFee,
		Customer: payments.Customer{
			FullName: contestant.FullName,
			Email:    contestant.Email,
			Phone:    contestant.Phone,
		},
		Description: "Pageant entry fee",
	})
	if err != nil {
		return handleCheckoutError(c, err, "/pageant/apply")
	}

	contestant.PaymentReference = session.Reference
	if err := pc.repos.Pageant.Update(contestant); err != nil {
		log.Printf("attaching reference %s to contestant %d: %v", session.Reference, contestant.ID, err)
	}

	return c.Redirect(session.PaymentURL, fiber.StatusSeeOther)
}
