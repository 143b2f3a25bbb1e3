package repository

import (
	"context"
	"database/sql"
	"strings"
)

// MemberRepo provides access to the members table.  Members exist purely so
// roster names can be resolved to LINE user ids for notifications; rows are
// upserted whenever a name is seen.  Member writes are intentionally
// decoupled from reservation writes: a failed upsert is logged by the
// caller and never rolls back a reservation.
type MemberRepo struct {
	db *sql.DB
}

// NewMemberRepo returns a new MemberRepo bound to the provided database.
func NewMemberRepo(db *sql.DB) *MemberRepo { return &MemberRepo{db: db} }

// ListNames returns every member display name in ascending order, the shape
// the roster autocomplete consumes.
func (r *MemberRepo) ListNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM members ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	names := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// UpsertNames registers any new names from a roster, ignoring blanks and
// leaving existing rows untouched.  The unique key on name makes this
// idempotent.
func (r *MemberRepo) UpsertNames(ctx context.Context, names []string) error {
	cleaned := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			cleaned = append(cleaned, n)
		}
	}
	if len(cleaned) == 0 {
		return nil
	}
	query := `INSERT INTO members (name) VALUES `
	args := make([]interface{}, 0, len(cleaned))
	for i, n := range cleaned {
		if i > 0 {
			query += ","
		}
		query += "(?)"
		args = append(args, n)
	}
	query += ` ON DUPLICATE KEY UPDATE name = name`
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// UpsertWithLineID registers a name together with its LINE user id, filling
// in the id on an existing row when the name is already known.
func (r *MemberRepo) UpsertWithLineID(ctx context.Context, name, lineUserID string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO members (name, line_user_id) VALUES (?, ?)
		 ON DUPLICATE KEY UPDATE line_user_id = COALESCE(members.line_user_id, ?)`,
		name, lineUserID, lineUserID)
	return err
}

// NameByLineID resolves a LINE user id to the stored display name.  Returns
// ErrMemberNotFound when the platform user has never joined before; callers
// then fall back to a profile lookup against the Messaging API.
func (r *MemberRepo) NameByLineID(ctx context.Context, lineUserID string) (string, error) {
	var name string
	err := r.db.QueryRowContext(ctx,
		`SELECT name FROM members WHERE line_user_id = ?`, lineUserID).Scan(&name)
	if err == sql.ErrNoRows {
		return "", ErrMemberNotFound
	}
	return name, err
}
