package status

import (
	"strings"
	"testing"
	"time"

	"github.com/bnema/keystamp/internal/application"
	"github.com/bnema/keystamp/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPublicKey = "02f8a3c1d0e9b7a6f5e4d3c2b1a09f8e7d6c5b4a3928170f6e5d4c3b2a1908f7e6"

func TestRenderActiveSession(t *testing.T) {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)

	output, err := Render(Report{
		Sessions: []application.SessionView{{
			Key:    "work",
			Active: true,
			Session: domain.Session{
				PublicKey:         testPublicKey,
				OrganizationID:    "org-1",
				UserID:            "user-1",
				SessionType:       domain.SessionTypeReadWrite,
				Expiry:            now.Add(225 * time.Second).Unix(),
				ExpirationSeconds: 900,
			},
		}},
		KeyPairs: []application.KeyPairView{{PublicKey: testPublicKey, SessionKeys: []string{"work"}}},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "sessions: 1  key pairs: 1")
	assert.Contains(t, output, "work")
	assert.Contains(t, output, "(active)")
	assert.Contains(t, output, "organization: org-1")
	assert.Contains(t, output, "read-write")
	assert.Contains(t, output, domain.ShortKey(testPublicKey))
	assert.Contains(t, output, "25% left")
	assert.Contains(t, output, "expires in 4 minutes (11:03)")
	assert.Contains(t, output, "-> work")
	assert.NotContains(t, output, "[expired]")
	assert.NotContains(t, output, "[unbound]")
}

func TestRenderExpiredSessionAndUnboundKey(t *testing.T) {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)

	output, err := Render(Report{
		Sessions: []application.SessionView{{
			Key: "old",
			Session: domain.Session{
				PublicKey:         testPublicKey,
				Expiry:            now.Add(-time.Minute).Unix(),
				ExpirationSeconds: 900,
			},
		}},
		KeyPairs: []application.KeyPairView{{PublicKey: "03abcdef"}},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "[expired]")
	assert.Contains(t, output, "03abcdef")
	assert.Contains(t, output, "[unbound]")
	assert.NotContains(t, output, "(active)")
}

func TestRenderEmptyReport(t *testing.T) {
	output, err := Render(Report{}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "sessions: 0  key pairs: 0")
	assert.Contains(t, output, "No stored sessions.")
	assert.False(t, strings.Contains(output, "Key pairs"))
}

func TestFormatExpiresRelative(t *testing.T) {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)

	assert.Equal(t, "expires in 30s (11:00:30)", formatExpiresRelative(now.Add(30*time.Second), now))
	assert.Equal(t, "expires in 1 minute (11:01)", formatExpiresRelative(now.Add(time.Minute), now))
	assert.Equal(t, "expires in 2 hours (12:30)", formatExpiresRelative(now.Add(90*time.Minute), now))
	assert.Equal(t, "expires in 2 days (11:00 on 16 Feb)", formatExpiresRelative(now.Add(48*time.Hour), now))
}
