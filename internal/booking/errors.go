// Package booking implements the admissibility rules for court
// reservations: field presence, 15-minute time granularity, ordering,
// past-date rejection, same-day overlap detection and roster capacity.
// The functions here are pure; persistence and locking live in the
// repository and handler layers.
package booking

import (
	"errors"
	"fmt"
)

// Reasons carried by ValidationError.  Handlers map all of them to HTTP 400
// except ReasonTimeConflict, which maps to 409.
const (
	ReasonMissingField           = "missing_field"
	ReasonInvalidTimeGranularity = "invalid_time_granularity"
	ReasonEndBeforeStart         = "end_before_start"
	ReasonDateInPast             = "date_in_past"
	ReasonTimeConflict           = "time_conflict"
	ReasonOverCapacity           = "over_capacity"
)

// ValidationError reports why a candidate reservation was rejected.  Field
// names the offending input when the reason is ReasonMissingField.
type ValidationError struct {
	Reason string
	Field  string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed: %s (%s)", e.Reason, e.Field)
	}
	return "validation failed: " + e.Reason
}

// ErrRosterFull is returned by Join when the roster already holds
// max_members participants.  Handlers translate it into HTTP 409.
var ErrRosterFull = errors.New("roster full")
