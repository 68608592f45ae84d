package entitlements

import (
	"time"

	"github.com/vetdeskhq/vetdesk/app/repository"
)

// UsageService collects a clinic's current resource counts and evaluates
// them against its plan limits. Counts are point-in-time snapshots with no
// isolation guarantee against concurrent writers.
type UsageService struct {
	clinics repository.ClinicRepository
	logs    repository.NotificationLogRepository
}

// NewUsageService creates a usage service from injected repositories.
func NewUsageService(clinics repository.ClinicRepository, logs repository.NotificationLogRepository) *UsageService {
	return &UsageService{clinics: clinics, logs: logs}
}

// Snapshot reads the clinic's current counts.
func (s *UsageService) Snapshot(clinicID uint, now time.Time) (Usage, error) {
	pets, err := s.clinics.CountPets(clinicID)
	if err != nil {
		return Usage{}, err
	}
	users, err := s.clinics.CountUsers(clinicID)
	if err != nil {
		return Usage{}, err
	}
	messages, err := s.logs.CountSentSince(clinicID, MonthStart(now))
	if err != nil {
		return Usage{}, err
	}
	clinic, err := s.clinics.GetByID(clinicID)
	if err != nil {
		return Usage{}, err
	}

	return Usage{
		Pets:            pets,
		Users:           users,
		MonthlyMessages: messages,
		StorageBytes:    clinic.StorageUsedBytes,
	}, nil
}

// Report snapshots usage and evaluates it for the given plan.
func (s *UsageService) Report(clinicID uint, plan Plan, now time.Time) ([]UsageReport, error) {
	usage, err := s.Snapshot(clinicID, now)
	if err != nil {
		return nil, err
	}
	return Evaluate(usage, LimitsForPlan(plan)), nil
}
