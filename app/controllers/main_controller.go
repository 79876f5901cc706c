package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/EberechiLabs/FestHive/app/repository"
	"github.com/EberechiLabs/FestHive/internal/pkg/metrics/counter"
)

// MainController serves the marketing pages
type MainController struct {
	repos *repository.Repositories
}

// NewMainController creates the marketing page controller
func NewMainController(repos *repository.Repositories) *MainController {
	return &MainController{repos: repos}
}

// HandleHome renders the landing page with upcoming events and sponsors
func (mc *MainController) HandleHome(c *fiber.Ctx) error {
	if err := counter.AddPageView("home"); err != nil {
		log.Printf("page view counter: %v", err)
	}

	upcoming, err := mc.repos.Event.GetUpcoming(6)
	if err != nil {
		log.Printf("loading upcoming events: %v", err)
	}

	sponsors, err := mc.repos.Sponsor.GetPublished()
	if err != nil {
		log.Printf("loading sponsors: %v", err)
	}

	return c.Render("home", fiber.Map{
		"Title":      "Home",
		"Flash":      flash.Get(c),
		"IsLoggedIn": isLoggedIn(c),
		"Upcoming":   upcoming,
		"Sponsors":   sponsors,
	}, "layouts/main")
}

// HandleAbout renders the about page
func (mc *MainController) HandleAbout(c *fiber.Ctx) error {
	if err := counter.AddPageView("about"); err != nil {
		log.Printf("page view counter: %v", err)
	}

	return c.Render("about", fiber.Map{
		"Title":      "About the Festival",
		"Flash":      flash.Get(c),
		"IsLoggedIn": isLoggedIn(c),
	}, "layouts/main")
}

// HandleContact renders the contact page
func (mc *MainController) HandleContact(c *fiber.Ctx) error {
	return c.Render("contact", fiber.Map{
		"Title":      "Contact",
		"Flash":      flash.Get(c),
		"IsLoggedIn": isLoggedIn(c),
	}, "layouts/main")
}

// HandleSponsors renders the full sponsor listing
func (mc *MainController) HandleSponsors(c *fiber.Ctx) error {
	sponsors, err := mc.repos.Sponsor.GetPublished()
	if err != nil {
		log.Printf("loading sponsors: %v", err)
	}

	return c.Render("sponsors", fiber.Map{
		"Title":      "Our Sponsors",
		"Flash":      flash.Get(c),
		"IsLoggedIn": isLoggedIn(c),
		"Sponsors":   sponsors,
	}, "layouts/main")
}
