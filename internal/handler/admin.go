package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ucrs/court-reservation/internal/utils"
)

// AdminHandler exchanges the shared admin password for a short-lived token
// that unlocks the destructive calendar operations.  There are no user
// accounts, only this single admin credential.
type AdminHandler struct {
	PasswordHash string // bcrypt hash of the admin password
	JWTSecret    string
	TokenTTLMin  int
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(passwordHash, jwtSecret string, ttlMin int) *AdminHandler {
	return &AdminHandler{PasswordHash: passwordHash, JWTSecret: jwtSecret, TokenTTLMin: ttlMin}
}

type adminLoginRequest struct {
	Password string `json:"password"`
}

// Login handles POST /v1/admin/login.
func (h *AdminHandler) Login(c echo.Context) error {
	var body adminLoginRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password is required"})
	}
	if !utils.VerifyPassword(h.PasswordHash, body.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "wrong password"})
	}
	tok, err := utils.NewAdminToken(h.JWTSecret, h.TokenTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue token"})
	}
	return c.JSON(http.StatusOK, echo.Map{"token": tok.Token, "expires_at": tok.Exp})
}
