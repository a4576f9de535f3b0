package metrics

import (
	"sort"
	"time"
)

const dayLayout = "2006-01-02"

// ActivityEvent is one completed activity as reported by the analytics
// service.
type ActivityEvent struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	CompletedAt *time.Time `json:"completedAt"`
}

type HistoryGroup struct {
	Date   string          `json:"date"`
	Events []ActivityEvent `json:"events"`
}

// DayKey formats t as YYYY-MM-DD in loc. A nil loc means UTC.
func DayKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(dayLayout)
}

// GroupHistoryByDay buckets events by the calendar date of CompletedAt in loc.
// Groups appear in the order their first event appears in events; events
// without a completion time are skipped.
func GroupHistoryByDay(events []ActivityEvent, loc *time.Location) []HistoryGroup {
	groups := []HistoryGroup{}
	index := map[string]int{}
	for _, ev := range events {
		if ev.CompletedAt == nil {
			continue
		}
		key := DayKey(*ev.CompletedAt, loc)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, HistoryGroup{Date: key})
		}
		groups[i].Events = append(groups[i].Events, ev)
	}
	return groups
}

// CompletionTimes returns the non-nil completion times of events.
func CompletionTimes(events []ActivityEvent) []time.Time {
	out := make([]time.Time, 0, len(events))
	for _, ev := range events {
		if ev.CompletedAt != nil {
			out = append(out, *ev.CompletedAt)
		}
	}
	return out
}

// CountBetween counts events completed in [from, to).
func CountBetween(events []ActivityEvent, from, to time.Time) int {
	n := 0
	for _, ev := range events {
		if ev.CompletedAt == nil {
			continue
		}
		at := *ev.CompletedAt
		if !at.Before(from) && at.Before(to) {
			n++
		}
	}
	return n
}

// calendarDays returns the distinct calendar days of dates in loc as UTC
// midnights, newest first.
func calendarDays(dates []time.Time, loc *time.Location) []time.Time {
	if loc == nil {
		loc = time.UTC
	}
	seen := map[time.Time]struct{}{}
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		y, m, dd := d.In(loc).Date()
		day := time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	return days
}
