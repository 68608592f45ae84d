package clinicctx

import "github.com/gofiber/fiber/v2"

// ClinicContext carries the authenticated tenant for a request: which clinic
// the caller acts for, which staff user authenticated, and the clinic's plan.
type ClinicContext struct {
	ClinicID        uint   `json:"clinic_id"`
	UserID          uint   `json:"user_id"`
	UserName        string `json:"user_name"`
	IsAuthenticated bool   `json:"is_authenticated"`
	IsAdmin         bool   `json:"is_admin"`
	Plan            string `json:"plan"`
}

// Get retrieves the clinic context from fiber context.
// Returns an unauthenticated context if none is set.
func Get(c *fiber.Ctx) ClinicContext {
	if ctx := c.Locals(KeyClinicContext); ctx != nil {
		return ctx.(ClinicContext)
	}
	return ClinicContext{IsAuthenticated: false, IsAdmin: false}
}

// Set stores the clinic context in fiber Locals.
func Set(c *fiber.Ctx, ctx ClinicContext) {
	c.Locals(KeyClinicContext, ctx)
	c.Locals(KeyClinicID, ctx.ClinicID)
	c.Locals(KeyUserID, ctx.UserID)
	c.Locals(KeyIsAdmin, ctx.IsAdmin)
}

// IsAuthenticated checks if the current request carries a verified staff user
func IsAuthenticated(c *fiber.Ctx) bool {
	return Get(c).IsAuthenticated
}

// IsAdmin checks if the current user is a clinic admin
func IsAdmin(c *fiber.Ctx) bool {
	return Get(c).IsAdmin
}

// GetClinicID returns the current tenant's clinic ID, or 0 if unauthenticated
func GetClinicID(c *fiber.Ctx) uint {
	return Get(c).ClinicID
}

// GetUserID returns the current staff user's ID, or 0 if unauthenticated
func GetUserID(c *fiber.Ctx) uint {
	return Get(c).UserID
}
