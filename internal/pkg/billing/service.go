package billing

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/vetdeskhq/vetdesk/app/models"
	"github.com/vetdeskhq/vetdesk/app/repository"
)

// Service resolves subscription state for clinics and mirrors provider
// snapshots into the local subscription table.
type Service struct {
	repo     repository.SubscriptionRepository
	provider ProviderClient
}

// NewService creates a billing service from injected collaborators.
func NewService(repo repository.SubscriptionRepository, provider ProviderClient) *Service {
	return &Service{repo: repo, provider: provider}
}

// CurrentView loads the mirrored facts for a clinic and resolves them at now.
// A clinic without any subscription row resolves to the inactive view rather
// than an error; the dashboard renders a "no subscription" notice for it.
func (s *Service) CurrentView(ctx context.Context, clinicID uint, now time.Time) (DerivedView, Banner, error) {
	_ = ctx
	sub, err := s.repo.GetByClinicID(clinicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			view := Resolve(Facts{Status: models.SubscriptionStatusInactive}, now)
			return view, SelectBanner(view), nil
		}
		return DerivedView{}, BannerNone, err
	}

	view := Resolve(FactsFromModel(sub), now)
	return view, SelectBanner(view), nil
}

// SyncFromProvider fetches the provider's current snapshot for the clinic's
// billing customer and upserts the local mirror. The webhook handler and the
// background sync job both funnel through here.
func (s *Service) SyncFromProvider(ctx context.Context, clinicID uint) (*models.ClinicSubscription, error) {
	existing, err := s.repo.GetByClinicID(clinicID)
	if err != nil {
		return nil, err
	}
	if existing.ProviderCustomerID == "" {
		return nil, ErrNoProviderCustomer
	}

	facts, err := s.provider.SubscriptionFacts(ctx, existing.ProviderCustomerID)
	if err != nil {
		return nil, err
	}

	sub := &models.ClinicSubscription{
		ClinicID:               clinicID,
		Status:                 NormalizeStatus(facts.Status),
		IsTrialPeriod:          facts.IsTrialPeriod,
		TrialEndsAt:            facts.TrialEndsAt,
		SubscriptionEndsAt:     facts.SubscriptionEndsAt,
		PlanName:               facts.PlanName,
		ProviderCustomerID:     existing.ProviderCustomerID,
		ProviderSubscriptionID: facts.ProviderSubscriptionID,
	}
	if sub.PlanName == "" {
		sub.PlanName = existing.PlanName
	}

	if err := s.repo.Upsert(sub); err != nil {
		return nil, err
	}
	return sub, nil
}
