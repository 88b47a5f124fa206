package availability

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kiryshahaha/MAX/services/psychologist-service/internal/model"
)

var (
	// ErrNotHourAligned rejects times with non-zero minutes, seconds or
	// sub-second components.
	ErrNotHourAligned = errors.New("appointment time must be on the hour (e.g. 09:00, 14:00)")

	// ErrSlotTaken rejects a time that already has an appointment.
	ErrSlotTaken = errors.New("this time is already booked")
)

// NotAvailableError rejects a time outside the psychologist's calendar. It
// carries the weekday and the valid ranges for it so the client sees when
// booking would succeed.
type NotAvailableError struct {
	Name    string
	Weekday time.Weekday
	Ranges  []HourRange
}

func (e *NotAvailableError) Error() string {
	if len(e.Ranges) == 0 {
		return fmt.Sprintf("%s does not work on %s", e.Name, e.Weekday)
	}
	parts := make([]string, 0, len(e.Ranges))
	for _, r := range e.Ranges {
		parts = append(parts, fmt.Sprintf("%02d:00-%02d:00", r.Start, r.End))
	}
	return fmt.Sprintf("%s works on %s only within %s", e.Name, e.Weekday, strings.Join(parts, ", "))
}

// IsValidationError reports whether err is a client fault rather than an
// infrastructure one.
func IsValidationError(err error) bool {
	var na *NotAvailableError
	return errors.Is(err, ErrNotHourAligned) || errors.Is(err, ErrSlotTaken) || errors.As(err, &na)
}

// Validate gatekeeps appointment creation: the time must be hour-aligned,
// fall inside one of the calendar ranges for its weekday, and not collide
// with an existing appointment. Checks run in that order and the first
// failure wins. Pure over its inputs; existing is the unfiltered list of the
// psychologist's appointments.
func Validate(cal *Calendar, name string, t time.Time, existing []model.Appointment) error {
	t = t.UTC()
	if t.Minute() != 0 || t.Second() != 0 || t.Nanosecond() != 0 {
		return ErrNotHourAligned
	}

	ranges := cal.RangesFor(name, t.Weekday())
	inRange := false
	for _, r := range ranges {
		if t.Hour() >= r.Start && t.Hour() < r.End {
			inRange = true
			break
		}
	}
	if !inRange {
		return &NotAvailableError{Name: name, Weekday: t.Weekday(), Ranges: ranges}
	}

	for _, a := range existing {
		if a.AppointmentTime.Equal(t) {
			return ErrSlotTaken
		}
	}
	return nil
}
