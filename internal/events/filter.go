package events

import (
	"fmt"
	"time"
)

// Filter selects a subset of events by date.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterToday    Filter = "today"
	FilterWeekend  Filter = "weekend"
	FilterUpcoming Filter = "upcoming"
)

// ParseFilter validates a filter token from the API. Empty means all.
func ParseFilter(s string) (Filter, error) {
	switch Filter(s) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterToday, FilterWeekend, FilterUpcoming:
		return Filter(s), nil
	default:
		return "", fmt.Errorf("unknown filter %q", s)
	}
}

// Apply returns the events whose date satisfies the filter, evaluated against
// now. Input order is preserved; events with unparsable dates only pass "all".
func Apply(list []CleanupEvent, f Filter, now time.Time) []CleanupEvent {
	if f == FilterAll {
		out := make([]CleanupEvent, len(list))
		copy(out, list)
		return out
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	out := make([]CleanupEvent, 0, len(list))
	for _, ev := range list {
		d, err := time.ParseInLocation("2006-01-02", ev.Date, now.Location())
		if err != nil {
			continue
		}
		switch f {
		case FilterToday:
			if d.Equal(today) {
				out = append(out, ev)
			}
		case FilterWeekend:
			if (d.Weekday() == time.Saturday || d.Weekday() == time.Sunday) && !d.Before(today) {
				out = append(out, ev)
			}
		case FilterUpcoming:
			if d.After(today) {
				out = append(out, ev)
			}
		}
	}
	return out
}
