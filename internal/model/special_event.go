package model

// Special-event types.  A new-ball-stock announcement carries no name;
// a generic event must have one.
const (
	SpecialEventNewBalls = "new_balls"
	SpecialEventGeneric  = "event"
)

// SpecialEvent is a non-reservation calendar entry: a new-ball-stock
// announcement or a club event.  Special events never participate in the
// overlap rules and can only be deleted in admin mode.
//
// Fields:
//
//	ID        – primary key identifier.
//	Type      – SpecialEventNewBalls or SpecialEventGeneric.
//	Date      – calendar date in "2006-01-02" form.
//	EventName – display name; nil for new-ball announcements.
//	Memo      – optional free text.
type SpecialEvent struct {
	ID        uint64  `json:"id"`         // special_events.id
	Type      string  `json:"type"`       // special_events.type
	Date      string  `json:"date"`       // special_events.date
	EventName *string `json:"event_name"` // special_events.event_name (nullable)
	Memo      *string `json:"memo"`       // special_events.memo (nullable)
}
