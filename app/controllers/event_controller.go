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
	"github.com/EberechiLabs/FestHive/internal/pkg/jobqueue"
	"github.com/EberechiLabs/FestHive/internal/pkg/metrics/counter"
	"github.com/EberechiLabs/FestHive/internal/pkg/payments"
)

// EventController serves the public events pages and the ticket flow
type EventController struct {
	repos    *repository.Repositories
	payments *payments.Service
	queue    *jobqueue.Queue
}

// NewEventController creates the event controller
func NewEventController(repos *repository.Repositories, paySvc *payments.Service, queue *jobqueue.Queue) *EventController {
	return &EventController{repos: repos, payments: paySvc, queue: queue}
}

// HandleEventsIndex lists published events, optionally by category
func (ec *EventController) HandleEventsIndex(c *fiber.Ctx) error {
	if err := counter.AddPageView("events"); err != nil {
		log.Printf("page view counter: %v", err)
	}

	offset, limit := pageOffset(c)
	category := c.Query("category")

	var (
		events []models.Event
		err    error
	)
	if category != "" {
		events, err = ec.repos.Event.GetPublishedByCategory(category, offset, limit)
	} else {
		events, err = ec.repos.Event.GetPublished(offset, limit)
	}
	if err != nil {
		log.Printf("loading events: %v", err)
	}

	return c.Render("events/index", fiber.Map{
		"Title":      "Events & Programme",
		"Flash":      flash.Get(c),
		"IsLoggedIn": isLoggedIn(c),
		"Events":     events,
		"Category":   category,
	}, "layouts/main")
}

// HandleEventDetail renders one event with its registration form
func (ec *EventController) HandleEventDetail(c *fiber.Ctx) error {
	event, err := ec.repos.Event.GetBySlug(c.Params("slug"))
	if err != nil || !event.Published {
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{
			"Title": "Event not found",
		}, "layouts/main")
	}

	if err := counter.AddEventView(event.ID); err != nil {
		log.Printf("event view counter: %v", err)
	}

	return c.Render("events/detail", fiber.Map{
		"Title":           event.Title,
		"Flash":           flash.Get(c),
		"IsLoggedIn":      isLoggedIn(c),
		"Event":           event,
		"HCaptchaSitekey": env.GetEnv("HCAPTCHA_SITEKEY", ""),
	}, "layouts/main")
}

// HandleEventRegister handles the registration form post. Free events are
// confirmed immediately; priced events go to the hosted checkout.
func (ec *EventController) HandleEventRegister(c *fiber.Ctx) error {
	event, err := ec.repos.Event.GetBySlug(c.Params("slug"))
	if err != nil || !event.Published {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "This event is not open for registration.",
		}).Redirect("/events")
	}
	detailPath := "/events/" + event.Slug

	if hcaptcha.Enabled() {
		valid, herr := hcaptcha.Verify(c.FormValue("h-captcha-response"))
		if herr != nil || !valid {
			return flash.WithError(c, fiber.Map{
				"type":    "error",
				"message": "Captcha validation failed. Please try again.",
			}).Redirect(detailPath)
		}
	}

	tickets, err := strconv.Atoi(c.FormValue("ticket_count", "1"))
	if err != nil || tickets < 1 {
		tickets = 1
	}

	reg := &models.EventRegistration{
		EventID:     event.ID,
		FullName:    formTrimmed(c, "full_name"),
		Email:       formTrimmed(c, "email"),
		Phone:       formTrimmed(c, "phone"),
		TicketCount: tickets,
		AmountDue:   event.TicketPrice.Mul(decimalFromInt(tickets)),
		Status:      models.RegistrationStatusPending,
	}
	if err := reg.Validate(); err != nil {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Please check your details and try again.",
		}).Redirect(detailPath)
	}

	if err := ec.repos.Registration.Create(reg); err != nil {
		log.Printf("creating registration: %v", err)
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Something went wrong. Please try again.",
		}).Redirect(detailPath)
	}

	// Free events skip the payment leg entirely
	if event.IsFree() {
		if err := ec.repos.Registration.UpdateStatus(reg.ID, models.RegistrationStatusConfirmed); err != nil {
			log.Printf("confirming free registration %d: %v", reg.ID, err)
		}
		if ec.queue != nil {
			if _, qerr := ec.queue.EnqueueRegistrationMail(jobqueue.RegistrationMailPayload{
				RecipientName:  reg.FullName,
				RecipientEmail: reg.Email,
				EventTitle:     event.Title,
			}); qerr != nil {
				log.Printf("queueing registration mail: %v", qerr)
			}
		}
		return flash.WithSuccess(c, fiber.Map{
			"type":    "success",
			"message": "You are registered for " + event.Title + ". See you there!",
		}).Redirect(detailPath)
	}

	if err := counter.AddTicketCheckout(event.ID); err != nil {
		log.Printf("checkout counter: %v", err)
	}

	session, err := ec.payments.BeginCheckout(c.Context(), payments.CheckoutConfig{
		PaymentType: models.PaymentTypeEventRegistration,
		SubjectID:   fmt.Sprintf("%d", reg.ID),
		SubjectName: event.Title,
		Amount:      reg.AmountDue,
		Customer: payments.Customer{
			FullName: reg.FullName,
			Email:    reg.Email,
			Phone:    reg.Phone,
		},
		Description: fmt.Sprintf("%d ticket(s) for %s", reg.TicketCount, event.Title),
		Metadata: map[string]string{
			"event_slug":   event.Slug,
			"ticket_count": strconv.Itoa(reg.TicketCount),
		},
	})
	if err != nil {
		return handleCheckoutError(c, err, detailPath)
	}

	if err := ec.repos.Registration.UpdatePaymentReference(reg.ID, session.Reference); err != nil {
		log.Printf("attaching reference %s to registration %d: %v", session.Reference, reg.ID, err)
	}

	return c.Redirect(session.PaymentURL, fiber.StatusSeeOther)
}
