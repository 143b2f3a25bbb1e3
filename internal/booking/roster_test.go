package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinAppendsToRoster(t *testing.T) {
	// Scenario C: capacity 2, Alice organizing.
	names, joined, err := Join([]string{"Alice"}, intPtr(2), "Bob")
	assert.NoError(t, err)
	assert.True(t, joined)
	assert.Equal(t, []string{"Alice", "Bob"}, names)

	_, _, err = Join(names, intPtr(2), "Carol")
	assert.ErrorIs(t, err, ErrRosterFull)
}

func TestJoinIsIdempotent(t *testing.T) {
	// Scenario D: rejoining is a no-op success, never an error.
	roster := []string{"Alice", "Bob"}
	names, joined, err := Join(roster, intPtr(2), "Alice")
	assert.NoError(t, err)
	assert.False(t, joined)
	assert.Equal(t, []string{"Alice", "Bob"}, names)

	// Even on a full roster, a present participant is not an error.
	names, joined, err = Join(roster, intPtr(1), "Bob")
	assert.NoError(t, err)
	assert.False(t, joined)
	assert.Equal(t, roster, names)
}

func TestJoinUnlimitedCapacity(t *testing.T) {
	roster := []string{"Alice"}
	for _, name := range []string{"Bob", "Carol", "Dave", "Eve", "Frank"} {
		next, joined, err := Join(roster, nil, name)
		assert.NoError(t, err)
		assert.True(t, joined)
		roster = next
	}
	assert.Len(t, roster, 6)
	assert.Equal(t, "Alice", roster[0], "organizer stays at position 0")
}

func TestJoinDoesNotMutateInput(t *testing.T) {
	orig := []string{"Alice"}
	next, joined, err := Join(orig, intPtr(3), "Bob")
	assert.NoError(t, err)
	assert.True(t, joined)
	assert.Equal(t, []string{"Alice"}, orig)
	assert.Equal(t, []string{"Alice", "Bob"}, next)
}
