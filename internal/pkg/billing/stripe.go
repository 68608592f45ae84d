package billing

import (
	"context"
	"errors"
	"time"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"

	"github.com/vetdeskhq/vetdesk/app/models"
)

// ErrNoProviderCustomer is returned when a clinic has no billing customer
// linked at the provider yet.
var ErrNoProviderCustomer = errors.New("billing: clinic has no provider customer id")

// ProviderClient reads the provider's current subscription snapshot for a
// customer. The core never mutates provider state; checkout and portal flows
// live outside this service.
type ProviderClient interface {
	SubscriptionFacts(ctx context.Context, providerCustomerID string) (Facts, error)
}

// StripeClient wraps the Stripe SDK behind ProviderClient. The API client is
// injected explicitly instead of configuring the SDK's global key, so tests
// can substitute the whole client.
type StripeClient struct {
	api *client.API
}

// NewStripeClient builds a StripeClient for the given secret key.
func NewStripeClient(secretKey string) *StripeClient {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeClient{api: api}
}

// SubscriptionFacts fetches the customer's subscriptions and condenses the
// most relevant one into resolver facts. A customer without subscriptions
// yields inactive facts, not an error.
func (c *StripeClient) SubscriptionFacts(ctx context.Context, providerCustomerID string) (Facts, error) {
	if providerCustomerID == "" {
		return Facts{}, ErrNoProviderCustomer
	}

	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(providerCustomerID),
		Status:   stripe.String("all"),
	}
	params.Context = ctx

	var best *stripe.Subscription
	iter := c.api.Subscriptions.List(params)
	for iter.Next() {
		sub := iter.Subscription()
		if best == nil || statusRank(string(sub.Status)) > statusRank(string(best.Status)) {
			best = sub
		}
	}
	if err := iter.Err(); err != nil {
		return Facts{}, err
	}
	if best == nil {
		return Facts{Status: models.SubscriptionStatusInactive}, nil
	}

	return factsFromStripeSubscription(best), nil
}

func factsFromStripeSubscription(sub *stripe.Subscription) Facts {
	status := NormalizeStatus(string(sub.Status))

	facts := Facts{
		Status:                 status,
		IsTrialPeriod:          sub.Status == stripe.SubscriptionStatusTrialing,
		ProviderSubscriptionID: sub.ID,
		PlanName:               planNameFromItems(sub),
	}

	if sub.TrialEnd > 0 {
		t := time.Unix(sub.TrialEnd, 0).UTC()
		facts.TrialEndsAt = &t
	}

	// Cancellation effective date wins over the plain renewal date.
	if sub.CancelAt > 0 {
		t := time.Unix(sub.CancelAt, 0).UTC()
		facts.SubscriptionEndsAt = &t
	} else if end := currentPeriodEnd(sub); end > 0 {
		t := time.Unix(end, 0).UTC()
		facts.SubscriptionEndsAt = &t
	}

	return facts
}

// currentPeriodEnd reads the renewal date from the first subscription item;
// Stripe keeps period fields on items in current API versions.
func currentPeriodEnd(sub *stripe.Subscription) int64 {
	if sub.Items == nil || len(sub.Items.Data) == 0 {
		return 0
	}
	return sub.Items.Data[0].CurrentPeriodEnd
}

func planNameFromItems(sub *stripe.Subscription) string {
	if sub.Items == nil || len(sub.Items.Data) == 0 {
		return ""
	}
	price := sub.Items.Data[0].Price
	if price == nil {
		return ""
	}
	if price.Nickname != "" {
		return price.Nickname
	}
	if price.LookupKey != "" {
		return price.LookupKey
	}
	return price.ID
}

// statusRank orders provider statuses by how strongly they should represent
// the clinic when the customer carries several subscriptions.
func statusRank(status string) int {
	switch NormalizeStatus(status) {
	case models.SubscriptionStatusActive:
		return 4
	case models.SubscriptionStatusTrialing:
		return 3
	case models.SubscriptionStatusPastDue:
		return 2
	case models.SubscriptionStatusCanceled:
		return 1
	default:
		return 0
	}
}
