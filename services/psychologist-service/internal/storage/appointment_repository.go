package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kiryshahaha/MAX/libs/db"
	"github.com/kiryshahaha/MAX/services/psychologist-service/internal/model"
	"github.com/kiryshahaha/MAX/services/psychologist-service/internal/outbox"
)

const apptColumns = `id, user_id, psychologist_name, appointment_time, COALESCE(notes, ''), created_at`

type AppointmentRepository struct {
	pool       *db.Pool
	outboxRepo *outbox.Repository
}

func NewAppointmentRepository(pool *db.Pool, outboxRepo *outbox.Repository) *AppointmentRepository {
	return &AppointmentRepository{pool: pool, outboxRepo: outboxRepo}
}

// Insert persists an appointment and its booked event in one transaction.
// The unique index on (psychologist_name, appointment_time) is the backstop
// against two requests racing past validation for the same hour; losing the
// race surfaces as a conflict (see IsConflict).
func (r *AppointmentRepository) Insert(ctx context.Context, appt model.Appointment) (model.Appointment, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return model.Appointment{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var stored model.Appointment
	err = tx.QueryRow(ctx, `
		INSERT INTO appointments (id, user_id, psychologist_name, appointment_time, notes)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		RETURNING `+apptColumns+`
	`, uuid.NewString(), appt.UserID, appt.PsychologistName, appt.AppointmentTime, appt.Notes).Scan(
		&stored.ID,
		&stored.UserID,
		&stored.PsychologistName,
		&stored.AppointmentTime,
		&stored.Notes,
		&stored.CreatedAt,
	)
	if err != nil {
		return model.Appointment{}, err
	}

	payload, err := json.Marshal(map[string]any{
		"appointment_id":    stored.ID,
		"user_id":           stored.UserID,
		"psychologist_name": stored.PsychologistName,
		"appointment_time":  stored.AppointmentTime.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return model.Appointment{}, err
	}
	if err := r.outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "appointment",
		AggregateID:   stored.ID,
		EventType:     "psych.appointment.booked.v1",
		Payload:       payload,
	}); err != nil {
		return model.Appointment{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Appointment{}, err
	}
	return stored, nil
}

func (r *AppointmentRepository) ListByUser(ctx context.Context, userID string) ([]model.Appointment, error) {
	return r.list(ctx, `
		SELECT `+apptColumns+`
		FROM appointments
		WHERE user_id = $1
		ORDER BY appointment_time ASC
	`, userID)
}

func (r *AppointmentRepository) ListByPsychologist(ctx context.Context, name string) ([]model.Appointment, error) {
	return r.list(ctx, `
		SELECT `+apptColumns+`
		FROM appointments
		WHERE psychologist_name = $1
		ORDER BY appointment_time ASC
	`, name)
}

func (r *AppointmentRepository) list(ctx context.Context, query string, arg string) ([]model.Appointment, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appts []model.Appointment
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.PsychologistName,
			&a.AppointmentTime,
			&a.Notes,
			&a.CreatedAt,
		); err != nil {
			return nil, err
		}
		appts = append(appts, a)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return appts, nil
}

// IsConflict reports a unique-violation insert, i.e. the slot was booked by
// a concurrent request between our fetch and our insert.
func IsConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
