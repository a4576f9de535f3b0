package metrics

import "math"

// PeriodComparison reports the percentage change between two period counts.
// A zero or one on either side is treated as a full swing of 100, except when
// both sides are equal at one or both are zero.
//
// The ratio is taken against current, not previous. Callers depend on that
// base; change percentChange alone if the base is ever corrected.
func PeriodComparison(current, previous int) int {
	switch {
	case current == 0 && previous == 0:
		return 0
	case previous == 0, previous == 1 && current != 1:
		return 100
	case current == 0, current == 1 && previous != 1:
		return 100
	}
	return percentChange(current, previous)
}

func percentChange(current, previous int) int {
	ratio := float64(previous-current) / float64(current) * 100
	return int(math.Floor(ratio + 0.5))
}
