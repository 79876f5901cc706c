package router

import (
	"github.com/gofiber/fiber/v2"
)

// registerPublicRoutes wires the marketing pages, registration flows and the
// payment return legs.
func (h *HttpRouter) registerPublicRoutes(app *fiber.App) {
	app.Get("/", h.main.HandleHome)
	app.Get("/about", h.main.HandleAbout)
	app.Get("/contact", h.main.HandleContact)
	app.Get("/sponsors", h.main.HandleSponsors)

	// Events and tickets
	app.Get("/events", h.events.HandleEventsIndex)
	app.Get("/events/:slug", h.events.HandleEventDetail)
	app.Post("/events/:slug/register", h.events.HandleEventRegister)

	// Vendor booths
	app.Get("/vendors/apply", h.vendors.HandleVendorForm)
	app.Post("/vendors/apply", h.vendors.HandleVendorApply)

	// Pageant
	app.Get("/pageant", h.pageant.HandlePageantGallery)
	app.Get("/pageant/apply", h.pageant.HandlePageantForm)
	app.Post("/pageant/apply", h.pageant.HandlePageantApply)

	// Diaspora tours
	app.Get("/tours", h.tours.HandleToursIndex)
	app.Get("/tours/:slug", h.tours.HandleTourDetail)
	app.Post("/tours/:slug/book", h.tours.HandleTourBook)

	// Tour ambassadors
	app.Get("/referrals/signup", h.referral.HandleReferralForm)
	app.Post("/referrals/signup", h.referral.HandleReferralSignup)

	// Payment return legs. The callback never trusts the redirect alone;
	// every completion is re-verified server-side.
	app.Get("/payments/callback", h.payment.HandleCallback)
	app.Get("/payments/cancel", h.payment.HandleCancel)
	app.Get("/payments/status", h.payment.HandleStatus)

	// Staff auth
	app.Get("/login", h.auth.HandleLogin)
	app.Post("/login", h.auth.HandleLogin)
	app.Get("/logout", h.auth.HandleLogout)
	app.Get("/auth/:provider", h.auth.HandleOAuthBegin)
	app.Get("/auth/:provider/callback", h.auth.HandleOAuthCallback)
}
