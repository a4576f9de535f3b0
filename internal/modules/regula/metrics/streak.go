package metrics

import "time"

// CurrentStreak counts consecutive calendar days, in loc, that hold at least
// one date. Counting starts at the most recent such day and walks backwards;
// several dates on one day count once and any skipped day ends the run.
func CurrentStreak(dates []time.Time, loc *time.Location) int {
	days := calendarDays(dates, loc)
	if len(days) == 0 {
		return 0
	}
	streak := 1
	for i := 1; i < len(days); i++ {
		if days[i-1].Sub(days[i]) != 24*time.Hour {
			break
		}
		streak++
	}
	return streak
}
