package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoToken = errors.New("no token")

// TokenInfo is what the token says about itself. The signature is not
// verified, so the values are for display only; staleness is still only
// discovered by a failed request.
type TokenInfo struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Claims    jwt.MapClaims
}

// Expired reports whether the token claims to have expired before now.
// Tokens without an exp claim never report expired.
func (i TokenInfo) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

// Inspect decodes the claims of a JWT bearer token without verifying it.
func Inspect(token string) (TokenInfo, error) {
	if token == "" {
		return TokenInfo{}, ErrNoToken
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{}, fmt.Errorf("decode token: %w", err)
	}

	info := TokenInfo{Claims: claims}
	info.Subject, _ = claims.GetSubject()
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	if info.Subject == "" {
		// the finance API puts the user id in "id" or "userId"
		for _, k := range []string{"id", "userId"} {
			if v, ok := claims[k].(string); ok && v != "" {
				info.Subject = v
				break
			}
		}
	}
	return info, nil
}
