// Package token decodes session tokens issued by the remote API. Signatures
// are verified by the server on every request, so the client only reads the
// claims it needs to bind the session to a key pair.
package token

import (
	"fmt"
	"strings"

	"github.com/bnema/keystamp/internal/domain"
	"github.com/golang-jwt/jwt/v4"
)

// Claims is the payload carried by a session token.
type Claims struct {
	PublicKey      string `json:"public_key"`
	SessionType    string `json:"session_type"`
	UserID         string `json:"user_id"`
	OrganizationID string `json:"organization_id"`
	jwt.RegisteredClaims
}

var parser = jwt.NewParser()

// ParseSession builds a session from token. ExpirationSeconds comes from
// exp - iat when the token has iat, and from fallbackExpiration otherwise.
func ParseSession(raw string, fallbackExpiration int64) (domain.Session, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.Session{}, fmt.Errorf("%w: token is empty", domain.ErrInvalidSessionToken)
	}

	var claims Claims
	if _, _, err := parser.ParseUnverified(raw, &claims); err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", domain.ErrInvalidSessionToken, err)
	}

	if missing := claims.missing(); len(missing) > 0 {
		return domain.Session{}, fmt.Errorf("%w: missing %s", domain.ErrInvalidSessionToken, strings.Join(missing, ", "))
	}

	expiry := claims.ExpiresAt.Unix()
	expirationSeconds := fallbackExpiration
	if claims.IssuedAt != nil {
		expirationSeconds = expiry - claims.IssuedAt.Unix()
	}
	if expirationSeconds <= 0 {
		expirationSeconds = domain.DefaultExpirationSeconds
	}

	return domain.Session{
		PublicKey:         claims.PublicKey,
		OrganizationID:    claims.OrganizationID,
		UserID:            claims.UserID,
		SessionType:       domain.SessionType(claims.SessionType),
		Expiry:            expiry,
		ExpirationSeconds: expirationSeconds,
		Token:             raw,
	}, nil
}

func (c Claims) missing() []string {
	var missing []string
	if c.ExpiresAt == nil {
		missing = append(missing, "exp")
	}
	if c.PublicKey == "" {
		missing = append(missing, "public_key")
	}
	if c.SessionType == "" {
		missing = append(missing, "session_type")
	}
	if c.UserID == "" {
		missing = append(missing, "user_id")
	}
	if c.OrganizationID == "" {
		missing = append(missing, "organization_id")
	}
	return missing
}
