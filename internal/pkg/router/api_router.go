package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	apiv1 "github.com/EberechiLabs/FestHive/internal/api/v1"
	"github.com/EberechiLabs/FestHive/internal/pkg/middleware"
)

// ApiRouter installs the JSON API for box-office tooling
type ApiRouter struct {
	deps *Deps
}

// NewApiRouter creates the API router
func NewApiRouter(deps *Deps) *ApiRouter {
	return &ApiRouter{deps: deps}
}

func (a *ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "FestHive API",
		})
	})

	// API v1 routes
	v1 := api.Group("/v1")
	apiServer := apiv1.NewAPIServer(a.deps.Repos, a.deps.Payments, a.deps.Queue)

	v1.Get("/ping", apiServer.GetPing)

	// Machine endpoints require the shared API key
	keyed := v1.Group("", middleware.APIKeyAuthMiddleware())
	keyed.Post("/payments/verify", apiServer.PostPaymentVerify)
	keyed.Post("/payments/record", apiServer.PostPaymentRecord)
	keyed.Post("/payments/confirmation", apiServer.PostPaymentConfirmation)
	keyed.Post("/events/register", apiServer.PostEventRegister)
	keyed.Get("/queue/stats", apiServer.GetQueueStats)
}
