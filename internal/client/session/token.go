package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what can be read from a token without the signing key.
type TokenInfo struct {
	Opaque    bool
	Subject   string
	ExpiresAt time.Time
	Expired   bool
}

// DescribeToken reads the claims of a JWT without verifying it. The result is
// for display only; the server stays the judge of validity. Tokens that are
// not JWTs are reported as opaque.
func DescribeToken(token string, now time.Time) TokenInfo {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{Opaque: true}
	}

	info := TokenInfo{}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
		info.Expired = !now.Before(exp.Time)
	}
	return info
}
