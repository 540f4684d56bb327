package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpired inspects the upstream-issued JWT without verifying its
// signature (the academy API owns the secret) and reports whether its exp
// claim has passed. Tokens that cannot be parsed, or carry no exp claim, are
// treated as live; the upstream API remains the authority and will reject
// them if they are not.
func TokenExpired(token string, now time.Time) bool {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return now.After(exp.Time)
}
