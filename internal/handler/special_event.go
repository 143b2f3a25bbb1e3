package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ucrs/court-reservation/internal/booking"
	"github.com/ucrs/court-reservation/internal/model"
	"github.com/ucrs/court-reservation/internal/repository"
)

// SpecialEventHandler serves the calendar's special-event markers.  Anyone
// can list and create markers; removal is an admin operation because a
// marker deletion is not visible on the calendar until a reload and was
// abused in the past.
type SpecialEventHandler struct {
	EventRepo *repository.SpecialEventRepo
}

// NewSpecialEventHandler constructs a SpecialEventHandler.
func NewSpecialEventHandler(repo *repository.SpecialEventRepo) *SpecialEventHandler {
	return &SpecialEventHandler{EventRepo: repo}
}

type specialEventRequest struct {
	Type      string  `json:"type"`
	Date      string  `json:"date"`
	EventName *string `json:"event_name"`
	Memo      *string `json:"memo"`
}

// List handles GET /v1/special-events.
func (h *SpecialEventHandler) List(c echo.Context) error {
	events, err := h.EventRepo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load special events"})
	}
	return c.JSON(http.StatusOK, events)
}

// Create handles POST /v1/special-events.  Generic events must carry a
// name; ball-replacement markers need only a date.
func (h *SpecialEventHandler) Create(c echo.Context) error {
	var body specialEventRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Type != model.SpecialEventNewBalls && body.Type != model.SpecialEventGeneric {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event type"})
	}
	if body.Date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date is required"})
	}
	if _, err := time.Parse(booking.DateLayout, body.Date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}
	if body.Type == model.SpecialEventGeneric && (body.EventName == nil || *body.EventName == "") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_name is required"})
	}

	ev := &model.SpecialEvent{
		Type:      body.Type,
		Date:      body.Date,
		EventName: body.EventName,
		Memo:      body.Memo,
	}
	if err := h.EventRepo.Create(c.Request().Context(), ev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create special event"})
	}
	return c.JSON(http.StatusCreated, ev)
}

// Delete handles DELETE /v1/special-events/:id.  The route is behind the
// admin token middleware.
func (h *SpecialEventHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	if err := h.EventRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrSpecialEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "special event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete special event"})
	}
	return c.NoContent(http.StatusNoContent)
}
