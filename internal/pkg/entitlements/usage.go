package entitlements

import "time"

// Resource names the tracked quantities, in the order reports are emitted.
type Resource string

const (
	ResourcePets            Resource = "pets"
	ResourceUsers           Resource = "users"
	ResourceMonthlyMessages Resource = "monthly_messages"
	ResourceStorageBytes    Resource = "storage_bytes"
)

// Level classifies how close usage is to its cap.
type Level string

const (
	LevelOK       Level = "ok"
	LevelWarning  Level = "warning"
	LevelCritical Level = "critical"
)

// Warning thresholds in percent. Business constants.
const (
	warningThreshold  = 75
	criticalThreshold = 90
)

// Usage is a read-only snapshot of a clinic's current resource counts.
type Usage struct {
	Pets            int64
	Users           int64
	MonthlyMessages int64
	StorageBytes    int64
}

// UsageReport is the evaluated state of one resource against its plan limit.
type UsageReport struct {
	Resource Resource `json:"resource"`
	Current  int64    `json:"current"`
	Limit    int64    `json:"limit"`
	Percent  int      `json:"percent"`
	Level    Level    `json:"level"`
}

// Evaluate compares a usage snapshot against plan limits. Output order is
// fixed so equal inputs always produce identical reports.
func Evaluate(usage Usage, limits Limits) []UsageReport {
	return []UsageReport{
		evaluateResource(ResourcePets, usage.Pets, limits.MaxPets),
		evaluateResource(ResourceUsers, usage.Users, limits.MaxUsers),
		evaluateResource(ResourceMonthlyMessages, usage.MonthlyMessages, limits.MaxMonthlyMessages),
		evaluateResource(ResourceStorageBytes, usage.StorageBytes, limits.MaxStorageBytes),
	}
}

func evaluateResource(resource Resource, current, limit int64) UsageReport {
	report := UsageReport{
		Resource: resource,
		Current:  current,
		Limit:    limit,
		Level:    LevelOK,
	}

	// Unlimited (or malformed zero) caps never warn.
	if limit <= 0 {
		report.Limit = Unlimited
		return report
	}

	report.Percent = int(current * 100 / limit)
	switch {
	case report.Percent >= criticalThreshold:
		report.Level = LevelCritical
	case report.Percent >= warningThreshold:
		report.Level = LevelWarning
	}
	return report
}

// MonthStart returns the beginning of the current calendar month, the window
// used for the monthly message quota.
func MonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
