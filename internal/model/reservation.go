package model

// Reservation is a booked court slot on a calendar date.  Unlike entities
// keyed by full timestamps, a reservation carries a date plus two
// time-of-day strings; overlap rules only ever compare reservations that
// share the same date.  MemberNames is an ordered roster persisted as a
// JSON column — position 0 is by convention the organizer.  These structs
// are serialized directly by the handlers, hence the json tags.
//
// Fields:
//
//	ID          – primary key identifier.
//	Date        – calendar date in "2006-01-02" form.
//	StartTime   – slot start as "HH:MM", quarter-hour aligned.
//	EndTime     – slot end as "HH:MM", exclusive.
//	MaxMembers  – roster capacity; nil means unlimited.
//	MemberNames – ordered participant display names.
//	Purpose     – label such as "practice", "match" or "balls-only".
//	Comment     – optional free text.
type Reservation struct {
	ID          uint64   `json:"id"`           // reservations.id
	Date        string   `json:"date"`         // reservations.date
	StartTime   string   `json:"start_time"`   // reservations.start_time
	EndTime     string   `json:"end_time"`     // reservations.end_time
	MaxMembers  *int     `json:"max_members"`  // reservations.max_members (nullable)
	MemberNames []string `json:"member_names"` // reservations.member_names (JSON)
	Purpose     string   `json:"purpose"`      // reservations.purpose
	Comment     *string  `json:"comment"`      // reservations.comment (nullable)
}
