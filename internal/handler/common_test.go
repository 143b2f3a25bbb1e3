package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ucrs/court-reservation/internal/booking"
	"github.com/ucrs/court-reservation/internal/model"
)

func ctxWithID(id string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func TestParseID(t *testing.T) {
	id, err := parseID(ctxWithID("42"))
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)

	for _, bad := range []string{"0", "-1", "abc", ""} {
		_, err := parseID(ctxWithID(bad))
		assert.Error(t, err, "id %q should be rejected", bad)
	}
}

func TestWindowsOfSkipsCorruptRows(t *testing.T) {
	rows := []model.Reservation{
		{StartTime: "10:00", EndTime: "12:00"},
		{StartTime: "garbage", EndTime: "12:00"},
		{StartTime: "13:00", EndTime: "14:30"},
	}
	ws := windowsOf(rows)
	require.Len(t, ws, 2)
	assert.Equal(t, booking.Window{Start: 600, End: 720}, ws[0])
	assert.Equal(t, booking.Window{Start: 780, End: 870}, ws[1])
}

func TestValidationResponseStatusMapping(t *testing.T) {
	cases := []struct {
		reason string
		field  string
		status int
	}{
		{booking.ReasonTimeConflict, "", http.StatusConflict},
		{booking.ReasonMissingField, "date", http.StatusBadRequest},
		{booking.ReasonInvalidTimeGranularity, "start_time", http.StatusBadRequest},
	}
	for _, tc := range cases {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

		handled, err := validationResponse(c, &booking.ValidationError{Reason: tc.reason, Field: tc.field})
		require.True(t, handled)
		require.NoError(t, err)
		assert.Equal(t, tc.status, rec.Code, tc.reason)
		assert.Contains(t, rec.Body.String(), tc.reason)
		if tc.field != "" {
			assert.Contains(t, rec.Body.String(), tc.field)
		}
	}

	// Non-validation errors pass through unhandled.
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), httptest.NewRecorder())
	handled, _ := validationResponse(c, assert.AnError)
	assert.False(t, handled)
}

func TestJoinGuardKey(t *testing.T) {
	assert.Equal(t, "join:U123:42", joinGuardKey("U123", 42))
	assert.Equal(t, "join:Alice:7", joinGuardKey("Alice", 7))
	assert.True(t, strings.HasPrefix(joinGuardKey("x", 0), "join:x:0"))
}
