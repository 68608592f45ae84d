package notification

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderAppointmentConfirmation(t *testing.T) {
	rendered, err := Render(AppointmentConfirmationPayload{
		PetName:         "Bella",
		OwnerName:       "Jordan",
		AppointmentDate: "2026-09-02",
		AppointmentTime: "14:30",
		ServiceName:     "Annual checkup",
		ClinicName:      "Happy Paws",
		ClinicPhone:     "555-0100",
		VetName:         "Dr. Kim",
	})
	require.NoError(t, err)

	assert.Equal(t, "Appointment confirmed for Bella at Happy Paws", rendered.Subject)
	assert.Contains(t, rendered.TextBody, "Annual checkup on 2026-09-02 at 14:30")
	assert.Contains(t, rendered.TextBody, "Dr. Kim")
	assert.Contains(t, rendered.HTMLBody, "<strong>Bella</strong>")
	assert.Contains(t, rendered.HTMLBody, "555-0100")
}

func TestRenderAppointmentConfirmationOmitsEmptyOptionalLines(t *testing.T) {
	rendered, err := Render(AppointmentConfirmationPayload{
		PetName:         "Rex",
		OwnerName:       "Sam",
		AppointmentDate: "2026-09-02",
		AppointmentTime: "09:00",
		ServiceName:     "Vaccination",
		ClinicName:      "Happy Paws",
	})
	require.NoError(t, err)

	assert.NotContains(t, rendered.TextBody, "seen by")
	assert.NotContains(t, rendered.TextBody, "Notes:")
}

func TestRenderTrialEndingPluralizesDays(t *testing.T) {
	one, err := Render(TrialEndingPayload{
		ClinicName:    "Happy Paws",
		DaysRemaining: 1,
		TrialEndDate:  "2026-09-01",
		UpgradeURL:    "https://vetdesk.app/billing",
	})
	require.NoError(t, err)
	assert.Equal(t, "Your VetDesk trial ends in 1 day", one.Subject)

	three, err := Render(TrialEndingPayload{
		ClinicName:    "Happy Paws",
		DaysRemaining: 3,
		TrialEndDate:  "2026-09-03",
		UpgradeURL:    "https://vetdesk.app/billing",
	})
	require.NoError(t, err)
	assert.Equal(t, "Your VetDesk trial ends in 3 days", three.Subject)
}

func TestRenderCoversEveryKind(t *testing.T) {
	payloads := []Payload{
		AppointmentConfirmationPayload{PetName: "Bella", OwnerName: "Jo", ClinicName: "Happy Paws"},
		AppointmentReminderPayload{PetName: "Bella", OwnerName: "Jo", ClinicName: "Happy Paws"},
		WelcomePayload{RecipientName: "Jo", ClinicName: "Happy Paws", LoginURL: "https://vetdesk.app/login"},
		TrialEndingPayload{ClinicName: "Happy Paws", DaysRemaining: 2},
		TrialExpiredPayload{ClinicName: "Happy Paws"},
		PaymentFailedPayload{ClinicName: "Happy Paws", PlanName: "clinic"},
		SubscriptionCanceledPayload{ClinicName: "Happy Paws", PlanName: "clinic"},
	}

	seen := map[Kind]bool{}
	for _, p := range payloads {
		rendered, err := Render(p)
		require.NoError(t, err, "kind %s", p.Kind())
		assert.NotEmpty(t, rendered.Subject, "kind %s", p.Kind())
		assert.NotEmpty(t, rendered.HTMLBody, "kind %s", p.Kind())
		assert.NotEmpty(t, rendered.TextBody, "kind %s", p.Kind())
		seen[p.Kind()] = true
	}

	for _, kind := range Kinds() {
		assert.True(t, seen[kind], "no render coverage for %s", kind)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	payload := PaymentFailedPayload{
		ClinicName:       "Happy Paws",
		PlanName:         "clinic",
		BillingPortalURL: "https://vetdesk.app/billing",
	}

	first, err := Render(payload)
	require.NoError(t, err)
	second, err := Render(payload)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

type bogusPayload struct{}

func (bogusPayload) Kind() Kind { return Kind("bogus") }

func TestRenderUnknownPayloadFails(t *testing.T) {
	_, err := Render(bogusPayload{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestPayloadFromJSONRoundTrip(t *testing.T) {
	payload, err := PayloadFromJSON(KindWelcome, []byte(`{"recipient_name":"Jo","clinic_name":"Happy Paws","login_url":"https://vetdesk.app/login"}`))
	require.NoError(t, err)

	welcome, ok := payload.(WelcomePayload)
	require.True(t, ok, "got %T", payload)
	assert.Equal(t, "Jo", welcome.RecipientName)
	assert.Equal(t, KindWelcome, payload.Kind())
}

func TestPayloadFromJSONUnknownKind(t *testing.T) {
	_, err := PayloadFromJSON(Kind("carrier_pigeon"), []byte(`{}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.True(t, strings.Contains(err.Error(), "carrier_pigeon"))
}

func TestPayloadFromJSONBadData(t *testing.T) {
	_, err := PayloadFromJSON(KindWelcome, []byte(`{broken`))
	require.Error(t, err)
}
