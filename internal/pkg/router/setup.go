package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/EberechiLabs/FestHive/app/repository"
	"github.com/EberechiLabs/FestHive/internal/pkg/jobqueue"
	"github.com/EberechiLabs/FestHive/internal/pkg/payments"
	"github.com/EberechiLabs/FestHive/internal/pkg/referral"
	"github.com/EberechiLabs/FestHive/internal/pkg/storage"
)

// Router installs a route group on the app
type Router interface {
	InstallRouter(app *fiber.App)
}

// Deps bundles the service graph the routers hand to controllers. It is
// built once in main and passed down; nothing here is a package global.
type Deps struct {
	Repos    *repository.Repositories
	Payments *payments.Service
	Referral *referral.Service
	Queue    *jobqueue.Queue
	Media    *storage.Client
}

// InstallRouter wires all route groups onto the app
func InstallRouter(app *fiber.App, deps *Deps) {
	// The HTTP router goes first: it initializes the session store, OAuth
	// providers and the global user context middleware the API depends on.
	setup(app, NewHttpRouter(deps), NewApiRouter(deps))
}

func setup(app *fiber.App, routers ...Router) {
	for _, r := range routers {
		r.InstallRouter(app)
	}
}
