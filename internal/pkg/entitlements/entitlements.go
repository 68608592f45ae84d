package entitlements

import "strings"

type Plan string

const (
	PlanTrial    Plan = "trial"
	PlanStarter  Plan = "starter"
	PlanClinic   Plan = "clinic"
	PlanHospital Plan = "hospital"
)

// Unlimited marks a limit with no cap; percentage checks skip it entirely.
const Unlimited int64 = -1

// Limits are the per-plan resource caps enforced by the usage tracker.
type Limits struct {
	MaxPets            int64
	MaxUsers           int64
	MaxMonthlyMessages int64
	MaxStorageBytes    int64
}

// planLimits maps plans to their caps. These are business constants, not
// derived values.
var planLimits = map[Plan]Limits{
	PlanTrial: {
		MaxPets:            50,
		MaxUsers:           2,
		MaxMonthlyMessages: 100,
		MaxStorageBytes:    1 << 30, // 1 GiB
	},
	PlanStarter: {
		MaxPets:            500,
		MaxUsers:           5,
		MaxMonthlyMessages: 1000,
		MaxStorageBytes:    10 << 30,
	},
	PlanClinic: {
		MaxPets:            5000,
		MaxUsers:           20,
		MaxMonthlyMessages: 10000,
		MaxStorageBytes:    100 << 30,
	},
	PlanHospital: {
		MaxPets:            Unlimited,
		MaxUsers:           Unlimited,
		MaxMonthlyMessages: Unlimited,
		MaxStorageBytes:    Unlimited,
	},
}

// NormalizePlan maps arbitrary plan strings onto the closed plan set,
// defaulting to trial.
func NormalizePlan(plan string) Plan {
	switch Plan(strings.ToLower(strings.TrimSpace(plan))) {
	case PlanStarter:
		return PlanStarter
	case PlanClinic:
		return PlanClinic
	case PlanHospital:
		return PlanHospital
	default:
		return PlanTrial
	}
}

// LimitsForPlan returns the caps for a plan, falling back to trial limits for
// unknown plan names.
func LimitsForPlan(plan Plan) Limits {
	if limits, ok := planLimits[plan]; ok {
		return limits
	}
	return planLimits[PlanTrial]
}
