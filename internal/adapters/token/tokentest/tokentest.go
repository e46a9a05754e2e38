// Package tokentest mints session tokens for tests.
package tokentest

import (
	"testing"
	"time"

	"github.com/bnema/keystamp/internal/adapters/token"
	"github.com/bnema/keystamp/internal/domain"
	"github.com/golang-jwt/jwt/v4"
)

var signingKey = []byte("keystamp-test-signing-key")

// Mint returns a read-write session token bound to publicKey that expires
// after ttl.
func Mint(t testing.TB, publicKey string, ttl time.Duration) string {
	t.Helper()

	now := time.Now()
	return MintClaims(t, token.Claims{
		PublicKey:      publicKey,
		SessionType:    string(domain.SessionTypeReadWrite),
		UserID:         "user-1",
		OrganizationID: "org-1",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
}

func MintClaims(t testing.TB, claims token.Claims) string {
	t.Helper()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}
	return signed
}
