package model

import "time"

// Appointment is one booked hour for a user/psychologist pair. Times are
// stored in UTC, aligned to the top of an hour.
type Appointment struct {
	ID               string
	UserID           string
	PsychologistName string
	AppointmentTime  time.Time
	Notes            string
	CreatedAt        time.Time
}
