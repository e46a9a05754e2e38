package passkey

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

const challengeSize = 32

// NewChallenge returns 32 random bytes, base64url encoded without padding.
func NewChallenge() (string, error) {
	challengeBytes := make([]byte, challengeSize)
	if _, err := rand.Read(challengeBytes); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(challengeBytes), nil
}

// payloadChallenge binds an assertion to a request body: the challenge is the
// hex SHA-256 of the payload, base64url encoded.
func payloadChallenge(payload []byte) string {
	digest := sha256.Sum256(payload)
	return base64.RawURLEncoding.EncodeToString([]byte(hex.EncodeToString(digest[:])))
}
