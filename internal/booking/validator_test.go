package booking

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

// candidate returns a well-formed roster reservation that individual tests
// then break on purpose.
func candidate() Candidate {
	return Candidate{
		Date:        "2025-07-01",
		StartTime:   "10:00",
		EndTime:     "12:00",
		MaxMembers:  intPtr(4),
		MemberNames: []string{"Alice"},
		Purpose:     "practice",
	}
}

func today() time.Time {
	return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
}

func mustWindow(t *testing.T, start, end string) Window {
	t.Helper()
	s, err := ParseTimeOfDay(start)
	require.NoError(t, err)
	e, err := ParseTimeOfDay(end)
	require.NoError(t, err)
	return Window{Start: s, End: e}
}

func reason(t *testing.T, err error) string {
	t.Helper()
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
	return ve.Reason
}

func TestValidateCreateAcceptsWellFormedCandidate(t *testing.T) {
	assert.NoError(t, ValidateCreate(candidate(), nil, today()))
}

func TestValidateCreateMissingFields(t *testing.T) {
	cases := map[string]func(*Candidate){
		"date":         func(c *Candidate) { c.Date = "" },
		"start_time":   func(c *Candidate) { c.StartTime = "" },
		"end_time":     func(c *Candidate) { c.EndTime = "" },
		"purpose":      func(c *Candidate) { c.Purpose = "" },
		"member_names": func(c *Candidate) { c.MemberNames = nil },
		"max_members":  func(c *Candidate) { c.MaxMembers = nil },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			c := candidate()
			mutate(&c)
			err := ValidateCreate(c, nil, today())
			assert.Equal(t, ReasonMissingField, reason(t, err))
		})
	}
}

func TestValidateCreateBallsOnlyNeedsNoCapacity(t *testing.T) {
	c := candidate()
	c.Purpose = PurposeBallsOnly
	c.MaxMembers = nil
	assert.NoError(t, ValidateCreate(c, nil, today()))
}

func TestValidateCreateGranularity(t *testing.T) {
	// Scenario E: 09:05 is not on a quarter-hour boundary.
	c := candidate()
	c.StartTime = "09:05"
	err := ValidateCreate(c, nil, today())
	assert.Equal(t, ReasonInvalidTimeGranularity, reason(t, err))

	c = candidate()
	c.EndTime = "12:10"
	err = ValidateCreate(c, nil, today())
	assert.Equal(t, ReasonInvalidTimeGranularity, reason(t, err))

	// Unparseable times fail the same check, matching the form behaviour.
	c = candidate()
	c.StartTime = "banana"
	err = ValidateCreate(c, nil, today())
	assert.Equal(t, ReasonInvalidTimeGranularity, reason(t, err))
}

func TestValidateCreateOrdering(t *testing.T) {
	c := candidate()
	c.StartTime, c.EndTime = "12:00", "10:00"
	err := ValidateCreate(c, nil, today())
	assert.Equal(t, ReasonEndBeforeStart, reason(t, err))

	// Zero-length windows are rejected too.
	c = candidate()
	c.StartTime, c.EndTime = "10:00", "10:00"
	err = ValidateCreate(c, nil, today())
	assert.Equal(t, ReasonEndBeforeStart, reason(t, err))
}

func TestValidateCreatePastDate(t *testing.T) {
	c := candidate()
	c.Date = "2025-05-31"
	err := ValidateCreate(c, nil, today())
	assert.Equal(t, ReasonDateInPast, reason(t, err))

	// Today itself is allowed.
	c.Date = "2025-06-01"
	assert.NoError(t, ValidateCreate(c, nil, today()))
}

func TestValidateCreateOverlap(t *testing.T) {
	existing := []Window{mustWindow(t, "10:00", "12:00")}

	// Scenario A: back-to-back slots do not conflict.
	c := candidate()
	c.StartTime, c.EndTime = "12:00", "13:00"
	assert.NoError(t, ValidateCreate(c, existing, today()))

	// Scenario B: fully contained range conflicts.
	c = candidate()
	c.StartTime, c.EndTime = "11:00", "11:30"
	err := ValidateCreate(c, existing, today())
	assert.Equal(t, ReasonTimeConflict, reason(t, err))

	// Partial overlap at the front.
	c = candidate()
	c.StartTime, c.EndTime = "09:00", "10:15"
	err = ValidateCreate(c, existing, today())
	assert.Equal(t, ReasonTimeConflict, reason(t, err))

	// Candidate ending exactly at the existing start is fine.
	c = candidate()
	c.StartTime, c.EndTime = "09:00", "10:00"
	assert.NoError(t, ValidateCreate(c, existing, today()))
}

// TestOverlapMatchesReferencePredicate cross-checks the validator against a
// brute-force intersection over discrete minutes for random quarter-hour
// windows.
func TestOverlapMatchesReferencePredicate(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	randWindow := func() Window {
		start := TimeOfDay(rng.Intn(95) * 15)
		end := start + TimeOfDay((rng.Intn(8)+1)*15)
		return Window{Start: start, End: end}
	}
	intersects := func(a, b Window) bool {
		for m := a.Start; m < a.End; m++ {
			if m >= b.Start && m < b.End {
				return true
			}
		}
		return false
	}
	for i := 0; i < 500; i++ {
		a, b := randWindow(), randWindow()
		want := intersects(a, b)
		assert.Equal(t, want, a.Overlaps(b), "windows %v vs %v", a, b)
		assert.Equal(t, want, b.Overlaps(a), "overlap must be symmetric")

		c := candidate()
		c.StartTime, c.EndTime = a.Start.String(), a.End.String()
		err := ValidateCreate(c, []Window{b}, today())
		if want {
			assert.Equal(t, ReasonTimeConflict, reason(t, err))
		} else {
			assert.NoError(t, err)
		}
	}
}

func TestValidateUpdateCapacity(t *testing.T) {
	c := candidate()
	c.MaxMembers = intPtr(2)
	c.MemberNames = []string{"Alice", "Bob", "Carol"}
	err := ValidateUpdate(c, nil)
	assert.Equal(t, ReasonOverCapacity, reason(t, err))

	c.MemberNames = []string{"Alice", "Bob"}
	assert.NoError(t, ValidateUpdate(c, nil))
}

func TestValidateUpdateAllowsPastDate(t *testing.T) {
	// The date of a reservation cannot be edited, so updates to old
	// reservations must not trip a past-date check.
	c := candidate()
	c.Date = "2020-01-01"
	assert.NoError(t, ValidateUpdate(c, nil))
}

func TestValidateUpdateOverlapExcludesSelf(t *testing.T) {
	// The caller excludes the edited reservation from existing; an update
	// that keeps its own window must therefore pass.
	c := candidate()
	assert.NoError(t, ValidateUpdate(c, []Window{mustWindow(t, "13:00", "14:00")}))

	err := ValidateUpdate(c, []Window{mustWindow(t, "11:00", "14:00")})
	assert.Equal(t, ReasonTimeConflict, reason(t, err))
}

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("09:45")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(9*60+45), got)
	assert.Equal(t, "09:45", got.String())
	assert.True(t, got.OnQuarterHour())

	for _, bad := range []string{"", "9", "24:00", "10:60", "aa:bb", "10:00:00"} {
		_, err := ParseTimeOfDay(bad)
		assert.Error(t, err, "input %q", bad)
	}
}
