package storage

import (
	"context"
	"time"

	"github.com/kiryshahaha/MAX/libs/db"
)

type Announcement struct {
	ID        string
	Title     string
	Body      string
	CreatedAt time.Time
}

type AnnouncementsRepository struct {
	pool *db.Pool
}

func NewAnnouncementsRepository(pool *db.Pool) *AnnouncementsRepository {
	return &AnnouncementsRepository{pool: pool}
}

func (r *AnnouncementsRepository) List(ctx context.Context, limit int) ([]Announcement, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, title, COALESCE(body, ''), created_at
		FROM announcements
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Announcement
	for rows.Next() {
		var a Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}
