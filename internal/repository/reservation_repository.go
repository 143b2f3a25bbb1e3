package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/ucrs/court-reservation/internal/model"
)

// ReservationRepo provides CRUD operations for the reservations table.
// Dates are stored in a DATE column and surfaced as "2006-01-02" strings;
// start_time/end_time are CHAR(5) "HH:MM" values compared as time-of-day
// only.  The roster is a JSON array in member_names.
//
// The Tx variants exist so that the overlap check and the subsequent write
// can share one transaction: callers lock the same-date rows with
// ListByDateForUpdateTx, validate, then insert or update before committing.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

const reservationColumns = `id, date, start_time, end_time, max_members, member_names, purpose, comment`

// rowScanner abstracts *sql.Row and *sql.Rows for the shared scan helper.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanReservation decodes one reservations row, unpacking the JSON roster
// and nullable columns.
func scanReservation(s rowScanner) (*model.Reservation, error) {
	var (
		res     model.Reservation
		date    time.Time
		maxMem  sql.NullInt64
		roster  []byte
		comment sql.NullString
	)
	if err := s.Scan(&res.ID, &date, &res.StartTime, &res.EndTime, &maxMem, &roster, &res.Purpose, &comment); err != nil {
		return nil, err
	}
	res.Date = date.Format("2006-01-02")
	if maxMem.Valid {
		n := int(maxMem.Int64)
		res.MaxMembers = &n
	}
	if comment.Valid {
		c := comment.String
		res.Comment = &c
	}
	if len(roster) > 0 {
		if err := json.Unmarshal(roster, &res.MemberNames); err != nil {
			return nil, err
		}
	}
	if res.MemberNames == nil {
		res.MemberNames = []string{}
	}
	return &res, nil
}

func collectReservations(rows *sql.Rows) ([]model.Reservation, error) {
	defer rows.Close()
	out := []model.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

// List returns every reservation ordered by date and start time.  The
// calendar view loads all of them at once; the dataset is a club's worth of
// bookings, not something that needs pagination.
func (r *ReservationRepo) List(ctx context.Context) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations ORDER BY date, start_time`)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

// ListByDate returns the reservations sharing one calendar date, ordered by
// start time.
func (r *ReservationRepo) ListByDate(ctx context.Context, date string) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE date = ? ORDER BY start_time`, date)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

// ListByDateForUpdateTx loads the same-date reservations inside tx while
// taking row locks, so that two concurrent admissibility checks for the
// same date serialize instead of both passing and double-booking.  Pass
// excludeID = 0 on creation; on update it removes the edited reservation
// from the overlap universe.
func (r *ReservationRepo) ListByDateForUpdateTx(ctx context.Context, tx *sql.Tx, date string, excludeID uint64) ([]model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations WHERE date = ?`
	args := []interface{}{date}
	if excludeID != 0 {
		q += ` AND id <> ?`
		args = append(args, excludeID)
	}
	q += ` ORDER BY start_time FOR UPDATE`
	rows, err := tx.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

// GetByID returns a single reservation or ErrReservationNotFound.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	res, err := scanReservation(r.db.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	return res, err
}

// GetByIDForUpdateTx loads one reservation inside tx with a row lock.  Used
// by the join path so that concurrent roster appends serialize.
func (r *ReservationRepo) GetByIDForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Reservation, error) {
	res, err := scanReservation(tx.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = ? FOR UPDATE`, id))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	return res, err
}

// CreateTx inserts a new reservation within the provided transaction and
// populates the generated ID on the model.  The caller commits or rolls
// back.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	roster, err := json.Marshal(res.MemberNames)
	if err != nil {
		return err
	}
	result, err := tx.ExecContext(ctx,
		`INSERT INTO reservations (date, start_time, end_time, max_members, member_names, purpose, comment)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		res.Date, res.StartTime, res.EndTime, nullableInt(res.MaxMembers), roster, res.Purpose, nullableString(res.Comment))
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	return nil
}

// UpdateTx overwrites the editable fields (times, capacity, roster,
// purpose) of a reservation within the provided transaction.  The date and
// comment are not editable after creation.  Returns
// ErrReservationNotFound when no row matched.
func (r *ReservationRepo) UpdateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	roster, err := json.Marshal(res.MemberNames)
	if err != nil {
		return err
	}
	result, err := tx.ExecContext(ctx,
		`UPDATE reservations SET start_time = ?, end_time = ?, max_members = ?, member_names = ?, purpose = ? WHERE id = ?`,
		res.StartTime, res.EndTime, nullableInt(res.MaxMembers), roster, res.Purpose, res.ID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// MySQL also reports 0 when the row exists but nothing changed;
		// verify existence before declaring not-found.
		var id uint64
		if err := tx.QueryRowContext(ctx, `SELECT id FROM reservations WHERE id = ?`, res.ID).Scan(&id); err == sql.ErrNoRows {
			return ErrReservationNotFound
		} else if err != nil {
			return err
		}
	}
	return nil
}

// UpdateMembersTx replaces only the roster of a reservation within the
// provided transaction.  Used by the join path.
func (r *ReservationRepo) UpdateMembersTx(ctx context.Context, tx *sql.Tx, id uint64, names []string) error {
	roster, err := json.Marshal(names)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `UPDATE reservations SET member_names = ? WHERE id = ?`, roster, id)
	return err
}

// Delete removes a reservation outright; there is no soft delete.  Returns
// ErrReservationNotFound when the id matched no row.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

func nullableInt(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func nullableString(p *string) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
