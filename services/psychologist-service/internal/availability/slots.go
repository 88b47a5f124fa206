package availability

import (
	"time"

	"github.com/kiryshahaha/MAX/services/psychologist-service/internal/model"
)

// Slot is one bookable hour of a day, tagged with whether it is taken.
type Slot struct {
	Time     time.Time
	Occupied bool
}

// OccupiedHours derives the booked hours of a calendar date from a
// psychologist's appointments. The date filter happens here rather than in
// the storage query; at the current scale one unfiltered fetch per request
// is cheaper than maintaining an extra index.
func OccupiedHours(appts []model.Appointment, date time.Time) map[int]bool {
	y, m, d := date.UTC().Date()
	occupied := make(map[int]bool)
	for _, a := range appts {
		at := a.AppointmentTime.UTC()
		ay, am, ad := at.Date()
		if ay == y && am == m && ad == d {
			occupied[at.Hour()] = true
		}
	}
	return occupied
}

// DaySlots enumerates every bookable hour of the date for a psychologist,
// ranges in calendar order and hours ascending within each range. The end
// hour of a range is excluded: 16-20 yields 16, 17, 18, 19. A day the
// psychologist does not work yields no slots.
func DaySlots(cal *Calendar, name string, date time.Time, occupied map[int]bool) []Slot {
	var slots []Slot
	for _, r := range cal.RangesFor(name, date.UTC().Weekday()) {
		for hour := r.Start; hour < r.End; hour++ {
			slots = append(slots, Slot{
				Time:     atHour(date, hour),
				Occupied: occupied[hour],
			})
		}
	}
	return slots
}

// OpenSlots returns the start times of the unoccupied slots, in the same
// order DaySlots emits them.
func OpenSlots(cal *Calendar, name string, date time.Time, occupied map[int]bool) []time.Time {
	var open []time.Time
	for _, s := range DaySlots(cal, name, date, occupied) {
		if !s.Occupied {
			open = append(open, s.Time)
		}
	}
	return open
}

func atHour(date time.Time, hour int) time.Time {
	y, m, d := date.UTC().Date()
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}
