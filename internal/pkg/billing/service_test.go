package billing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vetdeskhq/vetdesk/app/models"
)

type fakeSubscriptionRepo struct {
	subs    map[uint]*models.ClinicSubscription
	upserts int
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: make(map[uint]*models.ClinicSubscription)}
}

func (f *fakeSubscriptionRepo) GetByClinicID(clinicID uint) (*models.ClinicSubscription, error) {
	sub, ok := f.subs[clinicID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *sub
	return &copied, nil
}

func (f *fakeSubscriptionRepo) Upsert(sub *models.ClinicSubscription) error {
	f.upserts++
	copied := *sub
	f.subs[sub.ClinicID] = &copied
	return nil
}

func (f *fakeSubscriptionRepo) ListClinicIDsWithProviderCustomer() ([]uint, error) {
	var ids []uint
	for id, sub := range f.subs {
		if sub.ProviderCustomerID != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type fakeProvider struct {
	facts Facts
	err   error
	calls int
}

func (f *fakeProvider) SubscriptionFacts(ctx context.Context, providerCustomerID string) (Facts, error) {
	f.calls++
	return f.facts, f.err
}

func TestServiceCurrentViewNoSubscriptionRow(t *testing.T) {
	svc := NewService(newFakeSubscriptionRepo(), &fakeProvider{})

	view, banner, err := svc.CurrentView(context.Background(), 42, time.Now())
	require.NoError(t, err)

	assert.False(t, view.HasActiveSubscription)
	assert.Equal(t, BannerNoSubscription, banner)
}

func TestServiceCurrentViewResolvesStoredFacts(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	trialEnd := now.Add(48 * time.Hour)
	repo.subs[7] = &models.ClinicSubscription{
		ClinicID:      7,
		Status:        models.SubscriptionStatusTrialing,
		IsTrialPeriod: true,
		TrialEndsAt:   &trialEnd,
		PlanName:      "starter",
	}
	svc := NewService(repo, &fakeProvider{})

	view, banner, err := svc.CurrentView(context.Background(), 7, now)
	require.NoError(t, err)

	assert.True(t, view.IsInTrial)
	require.NotNil(t, view.DaysRemaining)
	assert.Equal(t, 2, *view.DaysRemaining)
	assert.Equal(t, BannerTrialEnding, banner)
}

func TestServiceSyncFromProvider(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	repo.subs[3] = &models.ClinicSubscription{
		ClinicID:           3,
		Status:             models.SubscriptionStatusTrialing,
		IsTrialPeriod:      true,
		PlanName:           "trial",
		ProviderCustomerID: "cus_abc",
	}
	ends := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	provider := &fakeProvider{facts: Facts{
		Status:                 models.SubscriptionStatusActive,
		SubscriptionEndsAt:     &ends,
		PlanName:               "clinic",
		ProviderSubscriptionID: "sub_live",
	}}
	svc := NewService(repo, provider)

	sub, err := svc.SyncFromProvider(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, 1, repo.upserts)
	assert.Equal(t, models.SubscriptionStatusActive, sub.Status)
	assert.Equal(t, "clinic", sub.PlanName)
	assert.Equal(t, "cus_abc", sub.ProviderCustomerID)
	assert.Equal(t, "sub_live", sub.ProviderSubscriptionID)
	assert.False(t, sub.IsTrialPeriod)
}

func TestServiceSyncFromProviderWithoutCustomerID(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	repo.subs[5] = &models.ClinicSubscription{ClinicID: 5, Status: models.SubscriptionStatusTrialing}
	provider := &fakeProvider{}
	svc := NewService(repo, provider)

	_, err := svc.SyncFromProvider(context.Background(), 5)
	require.ErrorIs(t, err, ErrNoProviderCustomer)
	assert.Zero(t, provider.calls)
}

func TestServiceSyncKeepsPlanNameWhenProviderOmitsIt(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	repo.subs[9] = &models.ClinicSubscription{
		ClinicID:           9,
		Status:             models.SubscriptionStatusActive,
		PlanName:           "hospital",
		ProviderCustomerID: "cus_x",
	}
	provider := &fakeProvider{facts: Facts{Status: models.SubscriptionStatusActive}}
	svc := NewService(repo, provider)

	sub, err := svc.SyncFromProvider(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "hospital", sub.PlanName)
}
