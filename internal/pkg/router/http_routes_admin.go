package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/EberechiLabs/FestHive/internal/pkg/middleware"
)

// registerAdminRoutes wires the back office behind the auth middlewares
func (h *HttpRouter) registerAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.RequireAuth)

	adminGroup.Get("/", h.admin.HandleDashboard)
	adminGroup.Get("/registrations", h.admin.HandleRegistrations)
	adminGroup.Get("/payments", h.admin.HandlePayments)
	adminGroup.Post("/payments/reconcile", middleware.RequireAdmin, h.admin.HandlePaymentReconcile)
	adminGroup.Get("/revenue", h.admin.HandleRevenueReport)
	adminGroup.Get("/bookings", h.admin.HandleBookings)

	adminGroup.Get("/vendors", h.admin.HandleVendors)
	adminGroup.Post("/vendors/:id/approve", middleware.RequireAdmin, h.admin.HandleVendorApprove)
	adminGroup.Post("/vendors/:id/reject", middleware.RequireAdmin, h.admin.HandleVendorReject)

	adminGroup.Get("/referrals", h.admin.HandleReferrals)
	adminGroup.Post("/referrals/:code/activate", middleware.RequireAdmin, h.admin.HandleReferralActivate)
	adminGroup.Post("/referrals/:code/expire", middleware.RequireAdmin, h.admin.HandleReferralExpire)

	adminGroup.Get("/events", h.adminEvt.HandleEventsList)
	adminGroup.Post("/events", middleware.RequireAdmin, h.adminEvt.HandleEventCreate)
	adminGroup.Post("/events/:id/toggle", middleware.RequireAdmin, h.adminEvt.HandleEventPublishToggle)
}
