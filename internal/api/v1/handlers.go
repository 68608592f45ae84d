package apiv1

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/vetdeskhq/vetdesk/app/repository"
	"github.com/vetdeskhq/vetdesk/internal/pkg/billing"
	"github.com/vetdeskhq/vetdesk/internal/pkg/booking"
	"github.com/vetdeskhq/vetdesk/internal/pkg/clinicctx"
	"github.com/vetdeskhq/vetdesk/internal/pkg/entitlements"
	"github.com/vetdeskhq/vetdesk/internal/pkg/notification"
)

var validate = validator.New()

// APIServer implements the v1 endpoints.
type APIServer struct {
	billing    *billing.Service
	usage      *entitlements.UsageService
	booking    *booking.Service
	dispatcher *notification.Dispatcher
	repos      *repository.Repositories
}

// NewAPIServer creates a new API server instance
func NewAPIServer(billingSvc *billing.Service, usageSvc *entitlements.UsageService, bookingSvc *booking.Service, dispatcher *notification.Dispatcher, repos *repository.Repositories) *APIServer {
	return &APIServer{
		billing:    billingSvc,
		usage:      usageSvc,
		booking:    bookingSvc,
		dispatcher: dispatcher,
		repos:      repos,
	}
}

// Pong is the ping response body.
type Pong struct {
	Ping string `json:"ping"`
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	response := Pong{
		Ping: "pong",
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// GetSubscription returns the resolved subscription view and dashboard banner
// for the authenticated clinic. The view is derived fresh on every call.
func (s *APIServer) GetSubscription(c *fiber.Ctx) error {
	clinicID := clinicctx.GetClinicID(c)

	view, banner, err := s.billing.CurrentView(c.Context(), clinicID, time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to resolve subscription"})
	}

	return c.JSON(fiber.Map{
		"subscription": view,
		"banner":       banner,
	})
}

// GetUsage returns the clinic's resource usage evaluated against its plan.
func (s *APIServer) GetUsage(c *fiber.Ctx) error {
	ctx := clinicctx.Get(c)
	plan := entitlements.NormalizePlan(ctx.Plan)

	reports, err := s.usage.Report(ctx.ClinicID, plan, time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to collect usage"})
	}

	return c.JSON(fiber.Map{
		"plan":   plan,
		"limits": entitlements.LimitsForPlan(plan),
		"usage":  reports,
	})
}

type preferenceEntry struct {
	Kind    string `json:"kind"`
	Enabled bool   `json:"enabled"`
}

// GetNotificationPreferences lists every notification kind with its stored
// toggle. Kinds without a stored row report their default (enabled).
func (s *APIServer) GetNotificationPreferences(c *fiber.Ctx) error {
	clinicID := clinicctx.GetClinicID(c)

	stored, err := s.repos.Preference.ListByClinic(clinicID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load preferences"})
	}

	byKind := make(map[string]bool, len(stored))
	for _, pref := range stored {
		byKind[pref.Kind] = pref.Enabled
	}

	entries := make([]preferenceEntry, 0, len(notification.Kinds()))
	for _, kind := range notification.Kinds() {
		enabled := true
		if v, ok := byKind[string(kind)]; ok {
			enabled = v
		}
		entries = append(entries, preferenceEntry{Kind: string(kind), Enabled: enabled})
	}

	return c.JSON(fiber.Map{"preferences": entries})
}

type setPreferenceRequest struct {
	Kind    string `json:"kind" validate:"required"`
	Enabled *bool  `json:"enabled" validate:"required"`
}

// PutNotificationPreference stores one clinic toggle.
func (s *APIServer) PutNotificationPreference(c *fiber.Ctx) error {
	var req setPreferenceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid JSON body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": err.Error()})
	}
	if !isKnownKind(req.Kind) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Unknown notification kind"})
	}

	clinicID := clinicctx.GetClinicID(c)
	if err := s.repos.Preference.Set(clinicID, req.Kind, *req.Enabled); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to store preference"})
	}

	return c.JSON(preferenceEntry{Kind: req.Kind, Enabled: *req.Enabled})
}

type testSendRequest struct {
	Kind           string          `json:"kind" validate:"required"`
	RecipientEmail string          `json:"recipient_email" validate:"required"`
	RecipientName  string          `json:"recipient_name"`
	Payload        json.RawMessage `json:"payload" validate:"required"`
}

// PostTestSend runs one notification through the full dispatch pipeline. With
// the gateway in dry-run mode no real mail leaves the system; the synthesized
// result comes back to the caller either way.
func (s *APIServer) PostTestSend(c *fiber.Ctx) error {
	var req testSendRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid JSON body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": err.Error()})
	}

	payload, err := notification.PayloadFromJSON(notification.Kind(req.Kind), req.Payload)
	if err != nil {
		if errors.Is(err, notification.ErrUnknownKind) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Unknown notification kind"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid payload for kind"})
	}

	clinicID := clinicctx.GetClinicID(c)
	result := s.dispatcher.Dispatch(clinicID, notification.Recipient{
		Email: req.RecipientEmail,
		Name:  req.RecipientName,
	}, payload)

	return c.JSON(result)
}

type availabilityRequest struct {
	Date        string `query:"date" validate:"required"`
	SlotMinutes int    `query:"slot_minutes"`
}

// GetAvailability returns the free booking slots for one clinic day.
func (s *APIServer) GetAvailability(c *fiber.Ctx) error {
	var req availabilityRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid query parameters"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": err.Error()})
	}

	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "date must be YYYY-MM-DD"})
	}

	clinicID := clinicctx.GetClinicID(c)
	slots, err := s.booking.Availability(clinicID, day, time.Duration(req.SlotMinutes)*time.Minute)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Clinic not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to compute availability"})
	}

	return c.JSON(fiber.Map{"date": req.Date, "slots": slots})
}

// GetCustomerLookup finds an existing owner record for the quick-booking form.
func (s *APIServer) GetCustomerLookup(c *fiber.Ctx) error {
	email := c.Query("email")
	phone := c.Query("phone")

	clinicID := clinicctx.GetClinicID(c)
	customer, err := s.booking.LookupCustomer(clinicID, email, phone)
	if err != nil {
		if errors.Is(err, booking.ErrNoLookupCriteria) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "email or phone required"})
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "No matching customer"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Customer lookup failed"})
	}

	return c.JSON(fiber.Map{"customer": customer})
}

func isKnownKind(kind string) bool {
	for _, k := range notification.Kinds() {
		if string(k) == kind {
			return true
		}
	}
	return false
}
