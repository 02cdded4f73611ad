package quota

import (
	"strings"
	"time"
)

// Plans sold through checkout. All duration arithmetic uses a fixed 30-day
// month.
const (
	PlanSupporter = "supporter"
	PlanPro3Mo    = "pro-3mo"
	PlanPro6Mo    = "pro-6mo"
)

const month = 30 * 24 * time.Hour

func normalizePlan(plan string) string {
	switch strings.ToLower(strings.TrimSpace(plan)) {
	case PlanPro3Mo:
		return PlanPro3Mo
	case PlanPro6Mo:
		return PlanPro6Mo
	default:
		return PlanSupporter
	}
}

func planDuration(plan string) time.Duration {
	switch normalizePlan(plan) {
	case PlanPro6Mo:
		return 6 * month
	case PlanPro3Mo:
		return 3 * month
	default:
		return month
	}
}
