package domain

import "time"

type SessionType string

const (
	SessionTypeReadOnly  SessionType = "SESSION_TYPE_READ_ONLY"
	SessionTypeReadWrite SessionType = "SESSION_TYPE_READ_WRITE"
)

// DefaultSessionKey is used when a caller stores a session without naming it.
const DefaultSessionKey = "@keystamp/session"

// DefaultExpirationSeconds mirrors the remote default session lifetime.
const DefaultExpirationSeconds int64 = 900

// Session is derived from a signed session token. The token is the source of
// truth: PublicKey and Expiry are never set independently of it.
type Session struct {
	PublicKey         string
	OrganizationID    string
	UserID            string
	SessionType       SessionType
	Expiry            int64
	ExpirationSeconds int64
	Token             string
}

func (s Session) ExpiresAt() time.Time {
	return time.Unix(s.Expiry, 0).UTC()
}

func (s Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt())
}

func (s Session) TTL(now time.Time) time.Duration {
	remaining := s.ExpiresAt().Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}
