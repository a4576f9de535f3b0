// Package metrics derives dashboard figures from already-loaded plans,
// reflections and activity events. Nothing here performs I/O.
package metrics

import "github.com/yungbote/regula-backend/internal/domain/regula"

// WeeklyStudyLoad sums hoursPerDay times the number of selected days over the
// active sub-plans.
func WeeklyStudyLoad(subPlans []*regula.SubPlan) int {
	total := 0
	for _, sp := range subPlans {
		if !sp.IsActive() {
			continue
		}
		total += sp.HoursPerDay * len(sp.SelectedDays)
	}
	return total
}

// AverageMastery is the mean mastery of the active sub-plans, 0 when none are
// active.
func AverageMastery(subPlans []*regula.SubPlan) float64 {
	sum, n := 0, 0
	for _, sp := range subPlans {
		if !sp.IsActive() {
			continue
		}
		sum += sp.Mastery
		n++
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// MasteryDelta is the signed change in mastery across an edit.
func MasteryDelta(before, after int) int {
	return after - before
}

// StatusCounts tallies sub-plans by status. Statuses other than Active and
// Completed are counted under Other.
type StatusCounts struct {
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Other     int `json:"other"`
}

func CountByStatus(subPlans []*regula.SubPlan) StatusCounts {
	var c StatusCounts
	for _, sp := range subPlans {
		if sp == nil {
			continue
		}
		switch sp.Status {
		case regula.StatusActive:
			c.Active++
		case regula.StatusCompleted:
			c.Completed++
		default:
			c.Other++
		}
	}
	return c
}
