package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/ucrs/court-reservation/internal/model"
)

// SpecialEventRepo provides access to the special_events table: new-ball
// stock announcements and generic club events shown on the calendar
// alongside reservations.  Special events never enter the overlap rules,
// so no Tx variants are needed here.
type SpecialEventRepo struct {
	db *sql.DB
}

// NewSpecialEventRepo returns a new SpecialEventRepo bound to the provided database.
func NewSpecialEventRepo(db *sql.DB) *SpecialEventRepo { return &SpecialEventRepo{db: db} }

// List returns all special events ordered by date.
func (r *SpecialEventRepo) List(ctx context.Context) ([]model.SpecialEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, type, date, event_name, memo FROM special_events ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.SpecialEvent{}
	for rows.Next() {
		var (
			ev   model.SpecialEvent
			date time.Time
			name sql.NullString
			memo sql.NullString
		)
		if err := rows.Scan(&ev.ID, &ev.Type, &date, &name, &memo); err != nil {
			return nil, err
		}
		ev.Date = date.Format("2006-01-02")
		if name.Valid {
			n := name.String
			ev.EventName = &n
		}
		if memo.Valid {
			m := memo.String
			ev.Memo = &m
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// Create inserts a special event and populates the generated ID.
func (r *SpecialEventRepo) Create(ctx context.Context, ev *model.SpecialEvent) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO special_events (type, date, event_name, memo) VALUES (?, ?, ?, ?)`,
		ev.Type, ev.Date, nullableString(ev.EventName), nullableString(ev.Memo))
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	ev.ID = uint64(id)
	return nil
}

// Delete removes a special event.  Returns ErrSpecialEventNotFound when the
// id matched no row.
func (r *SpecialEventRepo) Delete(ctx context.Context, id uint64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM special_events WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSpecialEventNotFound
	}
	return nil
}
