package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	apiv1 "github.com/vetdeskhq/vetdesk/internal/api/v1"
)

type ApiRouter struct {
	server *apiv1.APIServer
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	// API v1 routes
	v1 := api.Group("/v1")
	apiv1.RegisterHandlers(v1, h.server)
}

func NewApiRouter(server *apiv1.APIServer) *ApiRouter {
	return &ApiRouter{server: server}
}
