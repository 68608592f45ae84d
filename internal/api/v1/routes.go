package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vetdeskhq/vetdesk/internal/pkg/middleware"
)

// RegisterHandlers wires the v1 endpoints onto the given router group. Ping
// stays public; everything else sits behind staff API key authentication.
func RegisterHandlers(router fiber.Router, s *APIServer) {
	router.Get("/ping", s.GetPing)

	protected := router.Group("", middleware.APIKeyAuthMiddleware())
	protected.Get("/subscription", s.GetSubscription)
	protected.Get("/usage", s.GetUsage)
	protected.Get("/notifications/preferences", s.GetNotificationPreferences)
	protected.Put("/notifications/preferences", s.PutNotificationPreference)
	protected.Post("/notifications/test-send", s.PostTestSend)
	protected.Get("/booking/availability", s.GetAvailability)
	protected.Get("/booking/customers/lookup", s.GetCustomerLookup)
}
