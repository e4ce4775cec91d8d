package utils // package utils provides token inspection and random-token helpers

import (
	"crypto/rand"  // secure random data for CSRF tokens
	"encoding/hex" // hex encoding of random bytes
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library, used here only to read claims
)

// TokenInfo is what the gateway can read out of an upstream access
// token without holding the signing secret: the subject, the role
// claim and the expiry. The upstream API is the only party that
// verifies signatures; the gateway treats the token as opaque for
// authorization and uses these claims for display and for deciding
// when a manual refresh is worth suggesting.
type TokenInfo struct {
	Subject   string
	Role      string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// ErrMalformedToken is returned when the bearer token cannot be
// parsed as a JWT at all.
var ErrMalformedToken = errors.New("malformed access token")

// InspectToken parses a JWT without verifying its signature and
// returns the claims the gateway cares about. Missing claims are
// left zero-valued rather than treated as errors.
func InspectToken(raw string) (TokenInfo, error) {
	var info TokenInfo
	tok, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return info, ErrMalformedToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return info, ErrMalformedToken
	}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if role, ok := claims["role"].(string); ok {
		info.Role = role
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	return info, nil
}

// ExpiresWithin reports whether the token expires inside d. Tokens
// without an exp claim never report as expiring.
func (t TokenInfo) ExpiresWithin(d time.Duration) bool {
	if t.ExpiresAt.IsZero() {
		return false
	}
	return time.Until(t.ExpiresAt) <= d
}

// RandomHex returns a hex string of n random bytes. Used for CSRF
// tokens. crypto/rand.Read never fails, so no error is returned.
func RandomHex(n int) string {
	buf := make([]byte, n)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
