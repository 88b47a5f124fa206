package availability

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
)

// HourRange is a half-open [Start,End) range of whole hours within a day.
// A range 16-20 covers the bookable hours 16, 17, 18 and 19.
type HourRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// WeekCalendar is the recurring weekly template of open ranges for one
// psychologist.
type WeekCalendar map[time.Weekday][]HourRange

// Calendar maps psychologist names to their weekly templates. It is built
// once at startup and never mutated, so concurrent reads need no locking.
type Calendar struct {
	weeks map[string]WeekCalendar
}

// New validates the templates and returns an immutable calendar. Ranges for
// a weekday must be within the day, start before they end, and not overlap.
func New(weeks map[string]WeekCalendar) (*Calendar, error) {
	for name, week := range weeks {
		for wd, ranges := range week {
			sorted := make([]HourRange, len(ranges))
			copy(sorted, ranges)
			sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })
			for i, r := range sorted {
				if r.Start < 0 || r.End > 24 || r.Start >= r.End {
					return nil, fmt.Errorf("calendar for %q: invalid range %d-%d on %s", name, r.Start, r.End, wd)
				}
				if i > 0 && r.Start < sorted[i-1].End {
					return nil, fmt.Errorf("calendar for %q: overlapping ranges on %s", name, wd)
				}
			}
			week[wd] = sorted
		}
	}
	return &Calendar{weeks: weeks}, nil
}

// RangesFor returns the open ranges for a psychologist on a weekday, in
// ascending order. An unknown name or a day off yields nil, not an error.
func (c *Calendar) RangesFor(name string, wd time.Weekday) []HourRange {
	week, ok := c.weeks[name]
	if !ok {
		return nil
	}
	return week[wd]
}

// Default returns the calendar of the current deployment.
func Default() *Calendar {
	cal, err := New(map[string]WeekCalendar{
		"Клепов Дмитрий Олегович": {
			time.Tuesday:  {{Start: 16, End: 20}},
			time.Thursday: {{Start: 16, End: 20}},
			time.Saturday: {{Start: 11, End: 16}},
		},
		"Кашкина Лариса Владимировна": {
			time.Monday:    {{Start: 10, End: 14}},
			time.Wednesday: {{Start: 10, End: 14}},
			time.Friday:    {{Start: 10, End: 14}},
		},
	})
	if err != nil {
		panic(err)
	}
	return cal
}

var weekdayNames = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

// Load reads a calendar from a JSON file shaped as
// {"Name": {"Tuesday": [{"start": 16, "end": 20}]}}.
func Load(path string) (*Calendar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]map[string][]HourRange
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing calendar %s: %w", path, err)
	}

	weeks := make(map[string]WeekCalendar, len(raw))
	for name, days := range raw {
		week := WeekCalendar{}
		for dayName, ranges := range days {
			wd, ok := weekdayNames[dayName]
			if !ok {
				return nil, fmt.Errorf("parsing calendar %s: unknown weekday %q", path, dayName)
			}
			week[wd] = ranges
		}
		weeks[name] = week
	}
	return New(weeks)
}
