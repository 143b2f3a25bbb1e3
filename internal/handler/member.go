package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ucrs/court-reservation/internal/repository"
)

// MemberHandler serves the known-member directory used by the front end's
// name autocomplete.
type MemberHandler struct {
	MemberRepo *repository.MemberRepo
}

// NewMemberHandler constructs a MemberHandler.
func NewMemberHandler(repo *repository.MemberRepo) *MemberHandler {
	return &MemberHandler{MemberRepo: repo}
}

// List handles GET /v1/members and returns the sorted display names as a
// bare JSON array.
func (h *MemberHandler) List(c echo.Context) error {
	names, err := h.MemberRepo.ListNames(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load members"})
	}
	return c.JSON(http.StatusOK, names)
}
