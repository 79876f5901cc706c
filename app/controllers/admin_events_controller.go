package controllers

import (
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/sujit-baniya/flash"

	"github.com/EberechiLabs/FestHive/app/models"
	"github.com/EberechiLabs/FestHive/app/repository"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// slugify turns a title into a URL slug
func slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugPattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// AdminEventController manages the festival programme from the back office
type AdminEventController struct {
	repos *repository.Repositories
}

// NewAdminEventController creates the admin event controller
func NewAdminEventController(repos *repository.Repositories) *AdminEventController {
	return &AdminEventController{repos: repos}
}

// HandleEventsList lists all events including drafts
func (aec *AdminEventController) HandleEventsList(c *fiber.Ctx) error {
	offset, limit := pageOffset(c)
	events, err := aec.repos.Event.List(offset, limit)
	if err != nil {
		log.Printf("loading events: %v", err)
	}

	return c.Render("admin/events", fiber.Map{
		"Title":      "Events",
		"Flash":      flash.Get(c),
		"IsLoggedIn": isLoggedIn(c),
		"Username":   ExtractUsername(c),
		"Events":     events,
	}, "layouts/admin")
}

// HandleEventCreate creates a new draft event from the form post
func (aec *AdminEventController) HandleEventCreate(c *fiber.Ctx) error {
	price, err := decimal.NewFromString(c.FormValue("ticket_price", "0"))
	if err != nil {
		price = decimal.Zero
	}
	capacity, _ := strconv.Atoi(c.FormValue("capacity", "0"))

	startsAt, err := time.Parse("2006-01-02T15:04", c.FormValue("starts_at"))
	if err != nil {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Please provide a valid start time.",
		}).Redirect("/admin/events")
	}

	event := &models.Event{
		Slug:        slugify(c.FormValue("title")),
		Title:       formTrimmed(c, "title"),
		Description: formTrimmed(c, "description"),
		Category:    formTrimmed(c, "category"),
		Venue:       formTrimmed(c, "venue"),
		StartsAt:    startsAt,
		TicketPrice: price,
		Capacity:    capacity,
	}
	if err := event.Validate(); err != nil {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Please check the event details.",
		}).Redirect("/admin/events")
	}

	if err := aec.repos.Event.Create(event); err != nil {
		log.Printf("creating event: %v", err)
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Could not create the event.",
		}).Redirect("/admin/events")
	}

	return flash.WithSuccess(c, fiber.Map{
		"type":    "success",
		"message": "Event created as draft.",
	}).Redirect("/admin/events")
}

// HandleEventPublishToggle flips an event between draft and published
func (aec *AdminEventController) HandleEventPublishToggle(c *fiber.Ctx) error {
	event, err := aec.repos.Event.GetByID(paramUint(c, "id"))
	if err != nil {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Event not found.",
		}).Redirect("/admin/events")
	}

	event.Published = !event.Published
	if err := aec.repos.Event.Update(event); err != nil {
		log.Printf("toggling event %d: %v", event.ID, err)
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Could not update the event.",
		}).Redirect("/admin/events")
	}

	state := "unpublished"
	if event.Published {
		state = "published"
	}
	return flash.WithSuccess(c, fiber.Map{
		"type":    "success",
		"message": "Event " + state + ".",
	}).Redirect("/admin/events")
}
