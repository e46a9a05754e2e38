package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/bnema/keystamp/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBrowser plays the ceremony page: it fetches the options and posts body
// back to the callback.
func fakeBrowser(t *testing.T, seen *ceremonyRequest, body func(ceremonyRequest) any) func(string) error {
	t.Helper()

	return func(pageURL string) error {
		page, err := url.Parse(pageURL)
		if err != nil {
			return err
		}

		go func() {
			optionsURL := *page
			optionsURL.Path = optionsPath
			resp, err := http.Get(optionsURL.String())
			if err != nil {
				t.Errorf("fetch options: %v", err)
				return
			}
			defer func() { _ = resp.Body.Close() }()

			var request struct {
				Kind    ceremonyKind    `json:"kind"`
				Options json.RawMessage `json:"options"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&request); err != nil {
				t.Errorf("decode options: %v", err)
				return
			}
			*seen = ceremonyRequest{Kind: request.Kind, Options: request.Options}

			payload, _ := json.Marshal(body(*seen))
			callbackURL := *page
			callbackURL.Path = callbackPath
			// The server may close before the reply lands.
			if post, err := http.Post(callbackURL.String(), "application/json", bytes.NewReader(payload)); err == nil {
				_ = post.Body.Close()
			}
		}()
		return nil
	}
}

func TestBrowserCeremonyGetReturnsAssertion(t *testing.T) {
	t.Parallel()

	var seen ceremonyRequest
	ceremony := NewBrowserCeremony(Config{
		Timeout: 5 * time.Second,
		Open: fakeBrowser(t, &seen, func(ceremonyRequest) any {
			return map[string]any{"response": ports.AssertionResponse{
				CredentialID:      "cred-1",
				AuthenticatorData: "YXV0aA",
				ClientDataJSON:    "Y2xpZW50",
				Signature:         "c2ln",
			}}
		}),
	})

	assertion, err := ceremony.Get(context.Background(), ports.CredentialRequestOptions{Challenge: "abc", RPID: "localhost"})
	require.NoError(t, err)
	assert.Equal(t, "cred-1", assertion.CredentialID)
	assert.Equal(t, "c2ln", assertion.Signature)

	assert.Equal(t, kindGet, seen.Kind)
	var options ports.CredentialRequestOptions
	require.NoError(t, json.Unmarshal(seen.Options.(json.RawMessage), &options))
	assert.Equal(t, "abc", options.Challenge)
	assert.Equal(t, "localhost", options.RPID)
}

func TestBrowserCeremonyCreateReturnsAttestation(t *testing.T) {
	t.Parallel()

	var seen ceremonyRequest
	ceremony := NewBrowserCeremony(Config{
		Timeout: 5 * time.Second,
		Open: fakeBrowser(t, &seen, func(ceremonyRequest) any {
			return map[string]any{"response": ports.AttestationResponse{
				CredentialID:      "cred-2",
				ClientDataJSON:    "Y2xpZW50",
				AttestationObject: "b2Jq",
				Transports:        []string{"internal"},
			}}
		}),
	})

	attestation, err := ceremony.Create(context.Background(), ports.CredentialCreationOptions{
		Challenge: "abc",
		RP:        ports.RelyingParty{ID: "localhost", Name: "keystamp"},
		User:      ports.CredentialUser{ID: "dXNlcg", Name: "me", DisplayName: "me"},
	})
	require.NoError(t, err)
	assert.Equal(t, "cred-2", attestation.CredentialID)
	assert.Equal(t, []string{"internal"}, attestation.Transports)
	assert.Equal(t, kindCreate, seen.Kind)
}

func TestBrowserCeremonyReportsBrowserError(t *testing.T) {
	t.Parallel()

	var seen ceremonyRequest
	ceremony := NewBrowserCeremony(Config{
		Timeout: 5 * time.Second,
		Open: fakeBrowser(t, &seen, func(ceremonyRequest) any {
			return map[string]any{"error": "NotAllowedError: The operation either timed out or was not allowed."}
		}),
	})

	_, err := ceremony.Get(context.Background(), ports.CredentialRequestOptions{Challenge: "abc"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NotAllowedError")
}

func TestBrowserCeremonyStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	ceremony := NewBrowserCeremony(Config{
		Timeout: time.Minute,
		Open: func(string) error {
			cancel()
			return nil
		},
	})

	_, err := ceremony.Get(ctx, ports.CredentialRequestOptions{Challenge: "abc"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestCallbackServerRejectsStateMismatch(t *testing.T) {
	t.Parallel()

	server, err := StartCallbackServer("127.0.0.1:0", "expected-state", ceremonyRequest{Kind: kindGet})
	require.NoError(t, err)
	defer func() { _ = server.Close() }()

	callback := strings.Replace(server.endpoint(callbackPath), "expected-state", "wrong-state", 1)
	resp, err := http.Post(callback, "application/json", strings.NewReader(`{"response":{}}`))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, err = server.WaitForResponse(context.Background(), time.Second)
	require.ErrorIs(t, err, ErrStateMismatch)
}

func TestCallbackServerServesPageOnlyWithState(t *testing.T) {
	t.Parallel()

	server, err := StartCallbackServer("127.0.0.1:0", "expected-state", ceremonyRequest{Kind: kindGet})
	require.NoError(t, err)
	defer func() { _ = server.Close() }()

	resp, err := http.Get(server.URL())
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "navigator.credentials")

	bare := strings.Replace(server.URL(), "state=expected-state", "", 1)
	resp, err = http.Get(bare)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCallbackServerTimesOut(t *testing.T) {
	t.Parallel()

	server, err := StartCallbackServer("127.0.0.1:0", "expected-state", ceremonyRequest{Kind: kindGet})
	require.NoError(t, err)

	_, err = server.WaitForResponse(context.Background(), 10*time.Millisecond)
	require.ErrorIs(t, err, ErrCallbackTimeout)
}

func TestStartCallbackServerRequiresState(t *testing.T) {
	t.Parallel()

	_, err := StartCallbackServer("127.0.0.1:0", "", ceremonyRequest{})
	require.ErrorIs(t, err, ErrMissingState)
}
