package billing

import (
	"testing"
	"time"

	"github.com/vetdeskhq/vetdesk/app/models"
)

var resolveNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func daysFromNow(d int) *time.Time {
	t := resolveNow.Add(time.Duration(d) * 24 * time.Hour)
	return &t
}

func TestResolveActiveSubscription(t *testing.T) {
	view := Resolve(Facts{
		Status:                 models.SubscriptionStatusActive,
		SubscriptionEndsAt:     daysFromNow(20),
		PlanName:               "clinic",
		ProviderSubscriptionID: "sub_123",
	}, resolveNow)

	if !view.HasActiveSubscription {
		t.Fatalf("expected active subscription")
	}
	if view.NeedsPayment {
		t.Fatalf("active subscription must not need payment")
	}
	if view.IsInTrial || view.TrialExpired {
		t.Fatalf("active paid subscription must not carry trial flags")
	}
	if view.DaysRemaining == nil || *view.DaysRemaining != 20 {
		t.Fatalf("DaysRemaining = %v, want 20", view.DaysRemaining)
	}
	if got := SelectBanner(view); got != BannerNone {
		t.Fatalf("banner = %q, want %q", got, BannerNone)
	}
}

func TestResolveTrialExpiredOverride(t *testing.T) {
	// Stale TRIALING status after the trial ended, with no paid subscription
	// attached, must read as expired rather than active.
	view := Resolve(Facts{
		Status:        models.SubscriptionStatusTrialing,
		IsTrialPeriod: true,
		TrialEndsAt:   daysFromNow(-1),
	}, resolveNow)

	if !view.TrialExpired {
		t.Fatalf("expected trial to be expired")
	}
	if view.HasActiveSubscription || view.IsInTrial {
		t.Fatalf("expired trial must not count as active or in-trial")
	}
	if view.DaysRemaining == nil || *view.DaysRemaining != -1 {
		t.Fatalf("DaysRemaining = %v, want -1", view.DaysRemaining)
	}
	if got := SelectBanner(view); got != BannerTrialExpired {
		t.Fatalf("banner = %q, want %q", got, BannerTrialExpired)
	}
}

func TestResolveTrialExpiredNotAppliedWithPaidSubscription(t *testing.T) {
	// A paid subscription id means the provider already converted the trial;
	// the override must not fire.
	view := Resolve(Facts{
		Status:                 models.SubscriptionStatusTrialing,
		IsTrialPeriod:          true,
		TrialEndsAt:            daysFromNow(-1),
		ProviderSubscriptionID: "sub_456",
	}, resolveNow)

	if view.TrialExpired {
		t.Fatalf("override must not apply when a paid subscription is attached")
	}
	if !view.HasActiveSubscription {
		t.Fatalf("trialing status with paid subscription should remain active")
	}
}

func TestResolveTrialEnding(t *testing.T) {
	view := Resolve(Facts{
		Status:        models.SubscriptionStatusTrialing,
		IsTrialPeriod: true,
		TrialEndsAt:   daysFromNow(2),
	}, resolveNow)

	if !view.IsInTrial {
		t.Fatalf("expected in-trial view")
	}
	if view.DaysRemaining == nil || *view.DaysRemaining != 2 {
		t.Fatalf("DaysRemaining = %v, want 2", view.DaysRemaining)
	}
	if got := SelectBanner(view); got != BannerTrialEnding {
		t.Fatalf("banner = %q, want %q", got, BannerTrialEnding)
	}
}

func TestResolveTrialActive(t *testing.T) {
	view := Resolve(Facts{
		Status:        models.SubscriptionStatusTrialing,
		IsTrialPeriod: true,
		TrialEndsAt:   daysFromNow(10),
	}, resolveNow)

	if view.DaysRemaining == nil || *view.DaysRemaining != 10 {
		t.Fatalf("DaysRemaining = %v, want 10", view.DaysRemaining)
	}
	if got := SelectBanner(view); got != BannerTrialActive {
		t.Fatalf("banner = %q, want %q", got, BannerTrialActive)
	}
}

func TestResolvePastDuePrecedence(t *testing.T) {
	// Past-due status wins over any trial fields that are still set.
	view := Resolve(Facts{
		Status:        models.SubscriptionStatusPastDue,
		IsTrialPeriod: true,
		TrialEndsAt:   daysFromNow(-5),
	}, resolveNow)

	if view.HasActiveSubscription {
		t.Fatalf("past_due must not count as active")
	}
	if !view.NeedsPayment {
		t.Fatalf("past_due must need payment")
	}
	if view.IsInTrial || view.TrialExpired {
		t.Fatalf("past_due must not produce trial flags")
	}
	if got := SelectBanner(view); got != BannerPastDue {
		t.Fatalf("banner = %q, want %q", got, BannerPastDue)
	}
}

func TestResolveCanceled(t *testing.T) {
	view := Resolve(Facts{
		Status:             models.SubscriptionStatusCanceled,
		SubscriptionEndsAt: daysFromNow(-3),
	}, resolveNow)

	if !view.NeedsPayment {
		t.Fatalf("canceled must need payment")
	}
	if view.DaysRemaining == nil || *view.DaysRemaining != -3 {
		t.Fatalf("DaysRemaining = %v, want -3", view.DaysRemaining)
	}
	if got := SelectBanner(view); got != BannerCanceled {
		t.Fatalf("banner = %q, want %q", got, BannerCanceled)
	}
}

func TestResolveMissingDatesFailOpen(t *testing.T) {
	tests := []struct {
		name  string
		facts Facts
		want  Banner
	}{
		{
			name:  "trial without trial end date",
			facts: Facts{Status: models.SubscriptionStatusTrialing, IsTrialPeriod: true},
			want:  BannerNone,
		},
		{
			name:  "active without renewal date",
			facts: Facts{Status: models.SubscriptionStatusActive},
			want:  BannerNone,
		},
		{
			name:  "no subscription at all",
			facts: Facts{},
			want:  BannerNoSubscription,
		},
		{
			name:  "unknown provider status",
			facts: Facts{Status: "paused"},
			want:  BannerNoSubscription,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := Resolve(tt.facts, resolveNow)
			if view.DaysRemaining != nil {
				t.Fatalf("DaysRemaining = %v, want nil (suppressed)", *view.DaysRemaining)
			}
			if got := SelectBanner(view); got != tt.want {
				t.Fatalf("banner = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "active", want: models.SubscriptionStatusActive},
		{in: "TRIALING", want: models.SubscriptionStatusTrialing},
		{in: "past_due", want: models.SubscriptionStatusPastDue},
		{in: "unpaid", want: models.SubscriptionStatusPastDue},
		{in: "canceled", want: models.SubscriptionStatusCanceled},
		{in: "cancelled", want: models.SubscriptionStatusCanceled},
		{in: "expired", want: models.SubscriptionStatusCanceled},
		{in: "incomplete", want: models.SubscriptionStatusInactive},
		{in: "", want: models.SubscriptionStatusInactive},
	}

	for _, tt := range tests {
		if got := NormalizeStatus(tt.in); got != tt.want {
			t.Fatalf("NormalizeStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWholeDaysUntil(t *testing.T) {
	tests := []struct {
		name string
		end  time.Time
		want int
	}{
		{name: "ends in an hour", end: resolveNow.Add(time.Hour), want: 1},
		{name: "ended an hour ago", end: resolveNow.Add(-time.Hour), want: 0},
		{name: "ended yesterday", end: resolveNow.Add(-25 * time.Hour), want: -1},
		{name: "exactly now", end: resolveNow, want: 0},
		{name: "ten days out", end: resolveNow.Add(240 * time.Hour), want: 10},
	}

	for _, tt := range tests {
		if got := wholeDaysUntil(tt.end, resolveNow); got != tt.want {
			t.Fatalf("%s: wholeDaysUntil = %d, want %d", tt.name, got, tt.want)
		}
	}
}
