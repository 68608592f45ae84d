package middleware

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/vetdeskhq/vetdesk/app/models"
	"github.com/vetdeskhq/vetdesk/app/repository"
	"github.com/vetdeskhq/vetdesk/internal/pkg/clinicctx"
	"github.com/vetdeskhq/vetdesk/internal/pkg/database"
	"github.com/vetdeskhq/vetdesk/internal/pkg/entitlements"
)

// APIKeyAuthMiddleware authenticates requests carrying a staff API key header
// and installs the clinic tenant context for downstream handlers.
func APIKeyAuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		apiKey := extractAPIKeyFromHeader(c)
		if apiKey == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing API key"})
		}

		if database.GetDB() == nil {
			log.Print("api key middleware: database unavailable")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Database unavailable"})
		}

		hash := models.HashAPIKey(apiKey)
		factory := repository.GetGlobalFactory()
		user, err := factory.GetUserRepository().GetByAPIKeyHash(hash)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Invalid API key"})
			}
			log.Printf("api key lookup failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "API key verification failed"})
		}

		if !user.IsActive() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden", "message": "User inactive"})
		}

		plan := string(entitlements.PlanTrial)
		if sub, err := factory.GetSubscriptionRepository().GetByClinicID(user.ClinicID); err == nil {
			plan = string(entitlements.NormalizePlan(sub.PlanName))
		}

		// Refresh last-used timestamp best-effort.
		if err := factory.GetUserRepository().TouchAPIKeyUsage(user.ID, time.Now()); err != nil {
			log.Printf("failed to update api key usage timestamp for user %d: %v", user.ID, err)
		}

		clinicctx.Set(c, clinicctx.ClinicContext{
			ClinicID:        user.ClinicID,
			UserID:          user.ID,
			UserName:        user.Name,
			IsAuthenticated: true,
			IsAdmin:         user.Role == models.ROLE_ADMIN,
			Plan:            plan,
		})

		return c.Next()
	}
}

func extractAPIKeyFromHeader(c *fiber.Ctx) string {
	apiKey := strings.TrimSpace(c.Get("X-API-Key"))
	if apiKey != "" {
		return apiKey
	}
	auth := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
