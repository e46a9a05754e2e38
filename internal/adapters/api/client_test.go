package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bnema/keystamp/internal/domain"
	"github.com/bnema/keystamp/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().Return(time.UnixMilli(1700000000123)).Maybe()

	return Client{
		API:        API{BaseURL: server.URL},
		HTTPClient: server.Client(),
		Clock:      clock,
	}
}

func TestStampLoginSendsStampedBody(t *testing.T) {
	t.Parallel()

	var stamped []byte
	stamper := mocks.NewMockStamper(t)
	stamper.EXPECT().Stamp(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, payload []byte) (domain.Stamp, error) {
			stamped = payload
			return domain.Stamp{HeaderName: domain.StampHeaderName, HeaderValue: "stamp-value"}, nil
		})

	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, DefaultStampLoginPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "stamp-value", r.Header.Get(domain.StampHeaderName))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Equal(t, string(stamped), string(body))

		_, _ = w.Write([]byte(`{"session":"token-abc"}`))
	})

	session, err := client.StampLogin(context.Background(), domain.LoginRequest{
		OrganizationID:    "org-1",
		PublicKey:         "02abcdef",
		ExpirationSeconds: "900",
	}, stamper)
	require.NoError(t, err)
	assert.Equal(t, "token-abc", session)

	var body map[string]any
	require.NoError(t, json.Unmarshal(stamped, &body))
	assert.Equal(t, "ACTIVITY_TYPE_STAMP_LOGIN", body["type"])
	assert.Equal(t, "1700000000123", body["timestampMs"])
	assert.Equal(t, "org-1", body["organizationId"])
	assert.Equal(t, map[string]any{"publicKey": "02abcdef", "expirationSeconds": "900"}, body["parameters"])
}

func TestStampLoginRemoteRejection(t *testing.T) {
	t.Parallel()

	stamper := mocks.NewMockStamper(t)
	stamper.EXPECT().Stamp(mock.Anything, mock.Anything).Return(domain.Stamp{HeaderName: domain.StampHeaderName, HeaderValue: "x"}, nil)

	client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":16,"message":"public key not found"}}`))
	})

	_, err := client.StampLogin(context.Background(), domain.LoginRequest{PublicKey: "02ab"}, stamper)
	require.ErrorIs(t, err, domain.ErrRemoteRejected)

	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusUnauthorized, remote.Status)
	assert.Equal(t, "16", remote.Code)
	assert.Equal(t, "public key not found", remote.Message)
}

func TestStampLoginErrorBodyOnSuccessStatus(t *testing.T) {
	t.Parallel()

	stamper := mocks.NewMockStamper(t)
	stamper.EXPECT().Stamp(mock.Anything, mock.Anything).Return(domain.Stamp{HeaderName: domain.StampHeaderName, HeaderValue: "x"}, nil)

	client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"code":"INVALID_ARGUMENT","message":"expired"}}`))
	})

	_, err := client.StampLogin(context.Background(), domain.LoginRequest{PublicKey: "02ab"}, stamper)
	require.ErrorIs(t, err, domain.ErrRemoteRejected)
	assert.Contains(t, err.Error(), "INVALID_ARGUMENT: expired")
}

func TestStampLoginStatusWithoutBody(t *testing.T) {
	t.Parallel()

	stamper := mocks.NewMockStamper(t)
	stamper.EXPECT().Stamp(mock.Anything, mock.Anything).Return(domain.Stamp{HeaderName: domain.StampHeaderName, HeaderValue: "x"}, nil)

	client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.StampLogin(context.Background(), domain.LoginRequest{PublicKey: "02ab"}, stamper)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrRemoteRejected)
	assert.Contains(t, err.Error(), "status 502")
}

func TestStampLoginStamperFailureSkipsRequest(t *testing.T) {
	t.Parallel()

	stamper := mocks.NewMockStamper(t)
	stamper.EXPECT().Stamp(mock.Anything, mock.Anything).
		Return(domain.Stamp{}, domain.Wrap(domain.ErrUserCancelled, "passkey", assert.AnError))

	client := newClient(t, func(http.ResponseWriter, *http.Request) {
		t.Error("request must not be sent")
	})

	_, err := client.StampLogin(context.Background(), domain.LoginRequest{PublicKey: "02ab"}, stamper)
	require.Error(t, err)
	assert.True(t, domain.IsUserCancelled(err))
}

func TestStampLoginTimesOutWithoutCallerDeadline(t *testing.T) {
	t.Parallel()

	stamper := mocks.NewMockStamper(t)
	stamper.EXPECT().Stamp(mock.Anything, mock.Anything).Return(domain.Stamp{HeaderName: domain.StampHeaderName, HeaderValue: "x"}, nil)

	client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(`{"session":"late"}`))
	})
	client.RequestTimeout = 20 * time.Millisecond

	_, err := client.StampLogin(context.Background(), domain.LoginRequest{PublicKey: "02ab"}, stamper)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stamp login")
}

func TestSignUpIsUnstamped(t *testing.T) {
	t.Parallel()

	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultSignUpPath, r.URL.Path)
		assert.Empty(t, r.Header.Get(domain.StampHeaderName))

		var req domain.SignUpRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req.UserName)
		if assert.Len(t, req.APIKeys, 1) {
			assert.Equal(t, domain.CurveTypeSecp256k1, req.APIKeys[0].CurveType)
		}

		_, _ = w.Write([]byte(`{"organizationId":"org-9","userId":"user-9"}`))
	})

	result, err := client.SignUp(context.Background(), domain.SignUpRequest{
		UserName: "alice",
		APIKeys:  []domain.APIKeyCredential{{Name: "wallet", PublicKey: "02ab", CurveType: domain.CurveTypeSecp256k1}},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SignUpResult{OrganizationID: "org-9", UserID: "user-9"}, result)
}

func TestSignUpRequiresCredential(t *testing.T) {
	t.Parallel()

	_, err := Client{API: API{BaseURL: "https://api.example"}}.SignUp(context.Background(), domain.SignUpRequest{UserName: "bob"})
	require.Error(t, err)
}

func TestBuildAPIURLValidation(t *testing.T) {
	t.Parallel()

	_, err := buildAPIURL("", DefaultSignUpPath)
	require.Error(t, err)
	_, err = buildAPIURL("ftp://api.example", DefaultSignUpPath)
	require.Error(t, err)

	endpoint, err := buildAPIURL("https://api.example/base/", DefaultSignUpPath)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example/public/v1/submit/signup", endpoint)
}
