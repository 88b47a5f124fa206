package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kiryshahaha/MAX/libs/db"
)

// UserDataRepository stores the per-student blobs the LMS scraper produces:
// the week schedule and the task list. One row per user, updated in place.
type UserDataRepository struct {
	pool *db.Pool
}

func NewUserDataRepository(pool *db.Pool) *UserDataRepository {
	return &UserDataRepository{pool: pool}
}

type ScheduleRecord struct {
	UserID    string
	Schedule  json.RawMessage
	Year      int
	Week      int
	UpdatedAt time.Time
}

func (r *UserDataRepository) GetSchedule(ctx context.Context, userID string) (ScheduleRecord, bool, error) {
	var rec ScheduleRecord
	err := r.pool.QueryRow(ctx, `
		SELECT user_id, COALESCE(schedule, 'null'::jsonb), COALESCE(schedule_year, 0), COALESCE(schedule_week, 0), updated_at
		FROM user_data
		WHERE user_id = $1
	`, userID).Scan(&rec.UserID, &rec.Schedule, &rec.Year, &rec.Week, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ScheduleRecord{}, false, nil
	}
	if err != nil {
		return ScheduleRecord{}, false, err
	}
	return rec, true, nil
}

func (r *UserDataRepository) SaveSchedule(ctx context.Context, userID string, schedule json.RawMessage, year, week int) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_data (user_id, schedule, schedule_year, schedule_week)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET schedule = EXCLUDED.schedule,
			schedule_year = EXCLUDED.schedule_year,
			schedule_week = EXCLUDED.schedule_week,
			updated_at = now()
	`, userID, schedule, year, week)
	return err
}

func (r *UserDataRepository) GetTasks(ctx context.Context, userID string) (json.RawMessage, bool, error) {
	var tasks json.RawMessage
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(tasks, 'null'::jsonb)
		FROM user_data
		WHERE user_id = $1
	`, userID).Scan(&tasks)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return tasks, true, nil
}

func (r *UserDataRepository) SaveTasks(ctx context.Context, userID string, tasks json.RawMessage) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_data (user_id, tasks, tasks_updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE
		SET tasks = EXCLUDED.tasks,
			tasks_updated_at = now(),
			updated_at = now()
	`, userID, tasks)
	return err
}
