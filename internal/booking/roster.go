package booking

// Join decides whether participant may be appended to a reservation's
// roster and returns the next roster state.  The returned bool reports
// whether the roster actually grew: a participant who is already present is
// a successful no-op (joined=false, nil error) so that retried join
// requests stay idempotent.  When the roster is full, ErrRosterFull is
// returned and the roster is unchanged.  A nil maxMembers means unlimited
// capacity.  Order is preserved; position 0 remains the organizer.
func Join(names []string, maxMembers *int, participant string) ([]string, bool, error) {
	for _, n := range names {
		if n == participant {
			return names, false, nil
		}
	}
	if maxMembers != nil && len(names) >= *maxMembers {
		return names, false, ErrRosterFull
	}
	next := make([]string, len(names), len(names)+1)
	copy(next, names)
	next = append(next, participant)
	return next, true, nil
}
