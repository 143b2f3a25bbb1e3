package utils // package utils provides helper functions for token creation and hashing

import (
	"time" // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// AdminToken represents a signed JWT admin session token along with its
// expiry.  There are no per-user accounts in this application; admin mode
// is a single shared role unlocked by password, so the token carries only a
// role claim.  Admin tokens are short-lived and sent in the Authorization
// header when calling admin-gated endpoints (special-event deletion,
// reservation deletion in admin mode).
type AdminToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAdminToken builds and signs an HS256 JWT granting the ADMIN role for
// ttlMin minutes.  The JWT includes the role, expiration (exp) and issued
// at (iat) claims.
func NewAdminToken(secret string, ttlMin int) (AdminToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"role": "ADMIN",
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AdminToken{}, err
	}
	return AdminToken{Token: signed, Exp: exp}, nil
}
