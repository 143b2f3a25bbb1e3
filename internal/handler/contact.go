package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ucrs/court-reservation/internal/line"
)

// ContactHandler forwards free-form messages from the calendar's contact
// form to the maintainer's private LINE chat.
type ContactHandler struct {
	Line        *line.Client
	AdminUserID string
}

// NewContactHandler constructs a ContactHandler.
func NewContactHandler(client *line.Client, adminUserID string) *ContactHandler {
	return &ContactHandler{Line: client, AdminUserID: adminUserID}
}

type contactRequest struct {
	Message string `json:"message"`
}

// Send handles POST /v1/contact.
func (h *ContactHandler) Send(c echo.Context) error {
	var body contactRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "message is required"})
	}
	if h.Line == nil || h.AdminUserID == "" {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "contact channel not configured"})
	}
	msg := line.Text("[Contact]\n\n" + body.Message)
	if err := h.Line.Push(c.Request().Context(), h.AdminUserID, msg); err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "failed to deliver message"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
