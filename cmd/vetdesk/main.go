package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/vetdeskhq/vetdesk/app/repository"
	apiv1 "github.com/vetdeskhq/vetdesk/internal/api/v1"
	"github.com/vetdeskhq/vetdesk/internal/pkg/billing"
	"github.com/vetdeskhq/vetdesk/internal/pkg/booking"
	"github.com/vetdeskhq/vetdesk/internal/pkg/cache"
	"github.com/vetdeskhq/vetdesk/internal/pkg/database"
	"github.com/vetdeskhq/vetdesk/internal/pkg/entitlements"
	"github.com/vetdeskhq/vetdesk/internal/pkg/env"
	"github.com/vetdeskhq/vetdesk/internal/pkg/jobqueue"
	"github.com/vetdeskhq/vetdesk/internal/pkg/mailer"
	"github.com/vetdeskhq/vetdesk/internal/pkg/notification"
	"github.com/vetdeskhq/vetdesk/internal/pkg/router"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	repository.InitializeFactory(database.GetDB())
	repos := repository.GetGlobalRepositories()

	stripeClient := billing.NewStripeClient(env.GetEnv("STRIPE_SECRET_KEY", ""))
	billingSvc := billing.NewService(repos.Subscription, stripeClient)

	postmark := mailer.NewPostmarkClient(env.GetEnv("POSTMARK_SERVER_TOKEN", ""))
	dryRun := env.GetEnv("MAIL_LIVE_SEND", "false") != "true"
	gateway := mailer.NewGateway(postmark, env.GetEnv("MAIL_FROM", "noreply@vetdesk.app"), dryRun)

	dispatcher := notification.NewDispatcher(
		notification.NewGormPreferenceStore(repos.Preference),
		gateway,
		notification.NewGormAuditLogger(repos.NotificationLog),
	)

	usageSvc := entitlements.NewUsageService(repos.Clinic, repos.NotificationLog)
	bookingSvc := booking.NewService(repos.Clinic, repos.Customer, repos.Appointment)

	manager := jobqueue.InitManager(jobqueue.NewProcessors(dispatcher, billingSvc), repos.Subscription)
	manager.Start()

	// init fiber app
	app := fiber.New(fiber.Config{
		AppName: "VetDesk",
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			env.GetEnv("METRICS_USER", "admin"): env.GetEnv("METRICS_PASSWORD", "test"),
		},
	}), monitor.New())

	// ROUTER
	server := apiv1.NewAPIServer(billingSvc, usageSvc, bookingSvc, dispatcher, repos)
	router.InstallRouter(app, server)

	return app
}
