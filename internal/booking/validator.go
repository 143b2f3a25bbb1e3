package booking

import "time"

// PurposeBallsOnly marks a reservation that only books the ball machine.
// Such reservations have an implicit capacity of one, so max_members is not
// required on input; the handler layer pins it to 1 before persisting.
const PurposeBallsOnly = "balls-only"

// Candidate is a proposed reservation as received from the API boundary,
// before any persistence.  MaxMembers is nil when the client omitted it;
// nil also means "unlimited" for roster purposes.
type Candidate struct {
	Date        string
	StartTime   string
	EndTime     string
	MaxMembers  *int
	MemberNames []string
	Purpose     string
}

// ValidateCreate decides whether a new reservation may be persisted.
// existing must hold the time windows of every reservation already stored
// for the candidate's date.  today is "now" in the application timezone and
// is only consulted for the past-date check.  Checks run in a fixed order
// and the first failure wins.
func ValidateCreate(c Candidate, existing []Window, today time.Time) error {
	if err := validateCommon(c, existing); err != nil {
		return err
	}
	// Creation must not target a day that has already passed.  ISO date
	// strings order lexicographically, so no timezone math is needed here.
	if c.Date < today.Format(DateLayout) {
		return &ValidationError{Reason: ReasonDateInPast}
	}
	return validateOverlap(c, existing)
}

// ValidateUpdate decides whether an edit to an existing reservation may be
// persisted.  existing must exclude the reservation being edited.  Unlike
// creation, past dates are allowed (the date of a reservation cannot be
// edited at all) and the supplied roster must fit within max_members.
func ValidateUpdate(c Candidate, existing []Window) error {
	if err := validateCommon(c, existing); err != nil {
		return err
	}
	if err := validateOverlap(c, existing); err != nil {
		return err
	}
	if c.MaxMembers != nil && len(c.MemberNames) > *c.MaxMembers {
		return &ValidationError{Reason: ReasonOverCapacity}
	}
	return nil
}

// validateCommon runs the field-presence, granularity and ordering checks
// shared by creation and update.
func validateCommon(c Candidate, _ []Window) error {
	switch {
	case c.Date == "":
		return &ValidationError{Reason: ReasonMissingField, Field: "date"}
	case c.StartTime == "":
		return &ValidationError{Reason: ReasonMissingField, Field: "start_time"}
	case c.EndTime == "":
		return &ValidationError{Reason: ReasonMissingField, Field: "end_time"}
	case c.Purpose == "":
		return &ValidationError{Reason: ReasonMissingField, Field: "purpose"}
	case len(c.MemberNames) == 0:
		return &ValidationError{Reason: ReasonMissingField, Field: "member_names"}
	}
	// Roster reservations need an explicit capacity; balls-only bookings are
	// implicitly capacity 1.
	if c.MaxMembers == nil && c.Purpose != PurposeBallsOnly {
		return &ValidationError{Reason: ReasonMissingField, Field: "max_members"}
	}
	if _, err := time.Parse(DateLayout, c.Date); err != nil {
		return &ValidationError{Reason: ReasonMissingField, Field: "date"}
	}
	start, err := ParseTimeOfDay(c.StartTime)
	if err != nil || !start.OnQuarterHour() {
		return &ValidationError{Reason: ReasonInvalidTimeGranularity}
	}
	end, err := ParseTimeOfDay(c.EndTime)
	if err != nil || !end.OnQuarterHour() {
		return &ValidationError{Reason: ReasonInvalidTimeGranularity}
	}
	if start >= end {
		return &ValidationError{Reason: ReasonEndBeforeStart}
	}
	return nil
}

// validateOverlap scans the same-day windows for any intersection with the
// candidate.  The caller guarantees the candidate times parse (checked by
// validateCommon).
func validateOverlap(c Candidate, existing []Window) error {
	start, _ := ParseTimeOfDay(c.StartTime)
	end, _ := ParseTimeOfDay(c.EndTime)
	w := Window{Start: start, End: end}
	for _, e := range existing {
		if w.Overlaps(e) {
			return &ValidationError{Reason: ReasonTimeConflict}
		}
	}
	return nil
}
