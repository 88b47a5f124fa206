package booking

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kiryshahaha/MAX/services/psychologist-service/internal/availability"
	"github.com/kiryshahaha/MAX/services/psychologist-service/internal/model"
	"github.com/kiryshahaha/MAX/services/psychologist-service/internal/storage"
)

// Store is the slice of the appointment repository the service needs.
type Store interface {
	Insert(ctx context.Context, appt model.Appointment) (model.Appointment, error)
	ListByUser(ctx context.Context, userID string) ([]model.Appointment, error)
	ListByPsychologist(ctx context.Context, name string) ([]model.Appointment, error)
}

// Service orchestrates booking: fetch existing appointments, validate the
// requested slot against the calendar and occupancy, then persist.
type Service struct {
	cal    *availability.Calendar
	store  Store
	logger *slog.Logger
}

func NewService(cal *availability.Calendar, store Store, logger *slog.Logger) *Service {
	return &Service{cal: cal, store: store, logger: logger}
}

// Book validates and persists one appointment. Validation errors pass
// through unchanged for the handler to map to a client error; anything from
// storage is wrapped generically. The requested time is normalized to UTC
// before validation and storage.
func (s *Service) Book(ctx context.Context, userID, name string, t time.Time, notes string) (model.Appointment, error) {
	t = t.UTC()

	existing, err := s.store.ListByPsychologist(ctx, name)
	if err != nil {
		return model.Appointment{}, fmt.Errorf("loading appointments for %q: %w", name, err)
	}
	if err := availability.Validate(s.cal, name, t, existing); err != nil {
		return model.Appointment{}, err
	}

	stored, err := s.store.Insert(ctx, model.Appointment{
		UserID:           userID,
		PsychologistName: name,
		AppointmentTime:  t,
		Notes:            notes,
	})
	if err != nil {
		if storage.IsConflict(err) {
			// A concurrent request won the race between our fetch and our
			// insert; report it the same way validation would have.
			return model.Appointment{}, availability.ErrSlotTaken
		}
		return model.Appointment{}, fmt.Errorf("inserting appointment: %w", err)
	}
	return stored, nil
}

// AvailableSlots returns the open hours of the date for a psychologist. A
// day off or an unknown name yields an empty list.
func (s *Service) AvailableSlots(ctx context.Context, name string, date time.Time) ([]time.Time, error) {
	appts, err := s.store.ListByPsychologist(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("loading appointments for %q: %w", name, err)
	}
	return availability.OpenSlots(s.cal, name, date, availability.OccupiedHours(appts, date)), nil
}

// ScheduleFor returns the full day view, every bookable hour tagged with its
// occupancy.
func (s *Service) ScheduleFor(ctx context.Context, name string, date time.Time) ([]availability.Slot, error) {
	appts, err := s.store.ListByPsychologist(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("loading appointments for %q: %w", name, err)
	}
	return availability.DaySlots(s.cal, name, date, availability.OccupiedHours(appts, date)), nil
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]model.Appointment, error) {
	return s.store.ListByUser(ctx, userID)
}

func (s *Service) ListForPsychologist(ctx context.Context, name string) ([]model.Appointment, error) {
	return s.store.ListByPsychologist(ctx, name)
}
