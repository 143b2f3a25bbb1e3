package handler // handler defines http handlers

import (
	"errors"  // errors provides As/Is matching for booking failures
	"net/http"
	"strconv" // strconv converts path parameters to numeric types

	"github.com/labstack/echo/v4"

	"github.com/ucrs/court-reservation/internal/booking"
	"github.com/ucrs/court-reservation/internal/model"
)

// parseID extracts the numeric :id path parameter.
func parseID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// windowsOf converts same-day reservations into overlap-check windows.
// Rows with unparseable times (which the validator would never have let in)
// are skipped rather than failing the whole request.
func windowsOf(reservations []model.Reservation) []booking.Window {
	out := make([]booking.Window, 0, len(reservations))
	for _, r := range reservations {
		start, err := booking.ParseTimeOfDay(r.StartTime)
		if err != nil {
			continue
		}
		end, err := booking.ParseTimeOfDay(r.EndTime)
		if err != nil {
			continue
		}
		out = append(out, booking.Window{Start: start, End: end})
	}
	return out
}

// validationResponse maps a booking.ValidationError onto the HTTP error
// contract: time conflicts are 409, everything else 400.  Returns false
// when err is not a validation error.
func validationResponse(c echo.Context, err error) (bool, error) {
	var ve *booking.ValidationError
	if !errors.As(err, &ve) {
		return false, nil
	}
	status := http.StatusBadRequest
	if ve.Reason == booking.ReasonTimeConflict {
		status = http.StatusConflict
	}
	body := echo.Map{"error": ve.Reason}
	if ve.Field != "" {
		body["field"] = ve.Field
	}
	return true, c.JSON(status, body)
}
