package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/EberechiLabs/FestHive/app/controllers"
	"github.com/EberechiLabs/FestHive/internal/pkg/middleware"
	"github.com/EberechiLabs/FestHive/internal/pkg/oauth"
	"github.com/EberechiLabs/FestHive/internal/pkg/session"
)

// HttpRouter installs the public website and back-office routes
type HttpRouter struct {
	deps *Deps

	main     *controllers.MainController
	events   *controllers.EventController
	vendors  *controllers.VendorController
	pageant  *controllers.PageantController
	tours    *controllers.TourController
	referral *controllers.ReferralController
	payment  *controllers.PaymentController
	auth     *controllers.AuthController
	admin    *controllers.AdminController
	adminEvt *controllers.AdminEventController
}

// NewHttpRouter builds the controller set for the website routes
func NewHttpRouter(deps *Deps) *HttpRouter {
	return &HttpRouter{
		deps:     deps,
		main:     controllers.NewMainController(deps.Repos),
		events:   controllers.NewEventController(deps.Repos, deps.Payments, deps.Queue),
		vendors:  controllers.NewVendorController(deps.Repos, deps.Payments, deps.Media),
		pageant:  controllers.NewPageantController(deps.Repos, deps.Payments, deps.Media),
		tours:    controllers.NewTourController(deps.Repos, deps.Payments, deps.Referral),
		referral: controllers.NewReferralController(deps.Referral),
		payment:  controllers.NewPaymentController(deps.Payments),
		auth:     controllers.NewAuthController(deps.Repos),
		admin:    controllers.NewAdminController(deps.Repos, deps.Referral, deps.Payments),
		adminEvt: controllers.NewAdminEventController(deps.Repos),
	}
}

func (h *HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// init oauth providers
	oauth.Setup()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	h.registerPublicRoutes(app)
	h.registerAdminRoutes(app)
}
