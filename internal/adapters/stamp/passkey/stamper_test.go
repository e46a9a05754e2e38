package passkey

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"math/big"
	"testing"

	filestore "github.com/bnema/keystamp/internal/adapters/secrets/file"
	"github.com/bnema/keystamp/internal/domain"
	"github.com/bnema/keystamp/internal/ports"
	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCeremony struct {
	err error
}

func (f fakeCeremony) Get(context.Context, ports.CredentialRequestOptions) (ports.AssertionResponse, error) {
	return ports.AssertionResponse{}, f.err
}

func (f fakeCeremony) Create(context.Context, ports.CredentialCreationOptions) (ports.AttestationResponse, error) {
	return ports.AttestationResponse{}, f.err
}

type fakeNativePasskeys struct {
	gotRequest string
	response   string
}

func (f *fakeNativePasskeys) Get(_ context.Context, requestJSON string) (string, error) {
	f.gotRequest = requestJSON
	return f.response, nil
}

func (f *fakeNativePasskeys) Create(_ context.Context, requestJSON string) (string, error) {
	f.gotRequest = requestJSON
	return f.response, nil
}

func decodeB64(t *testing.T, value string) []byte {
	t.Helper()

	decoded, err := base64.RawURLEncoding.DecodeString(value)
	require.NoError(t, err)
	return decoded
}

func publicKeyFromAttestation(t *testing.T, attestationObject string) *ecdsa.PublicKey {
	t.Helper()

	var object struct {
		AuthData []byte `cbor:"authData"`
	}
	require.NoError(t, cbor.Unmarshal(decodeB64(t, attestationObject), &object))

	// rpIdHash(32) flags(1) counter(4) aaguid(16) idLen(2) id cose
	idLen := int(binary.BigEndian.Uint16(object.AuthData[53:55]))
	var coseKey map[int]any
	require.NoError(t, cbor.Unmarshal(object.AuthData[55+idLen:], &coseKey))

	return &ecdsa.PublicKey{
		Curve: elliptic.P256(),
		X:     new(big.Int).SetBytes(coseKey[-2].([]byte)),
		Y:     new(big.Int).SetBytes(coseKey[-3].([]byte)),
	}
}

func TestSoftwareAuthenticatorStampVerifiesAgainstRegisteredKey(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	software := NewSoftware(filestore.NewStore(t.TempDir()), "")
	stamper := NewStamper(software, Config{RPID: "keystamp.test"})

	created, err := stamper.CreateCredential(ctx, "laptop", "")
	require.NoError(t, err)
	assert.Len(t, created.EncodedChallenge, 43)
	publicKey := publicKeyFromAttestation(t, created.Attestation.AttestationObject)

	payload := []byte(`{"organizationId":"org-1"}`)
	stamp, err := stamper.Stamp(ctx, payload)
	require.NoError(t, err)
	assert.Equal(t, domain.WebauthnStampHeaderName, stamp.HeaderName)

	var webauthn domain.WebauthnStamp
	require.NoError(t, json.Unmarshal([]byte(stamp.HeaderValue), &webauthn))
	assert.Equal(t, created.Attestation.CredentialID, webauthn.CredentialID)

	clientDataJSON := decodeB64(t, webauthn.ClientDataJSON)
	var client clientData
	require.NoError(t, json.Unmarshal(clientDataJSON, &client))
	assert.Equal(t, "webauthn.get", client.Type)
	assert.Equal(t, payloadChallenge(payload), client.Challenge)

	clientDataHash := sha256.Sum256(clientDataJSON)
	signed := append(decodeB64(t, webauthn.AuthenticatorData), clientDataHash[:]...)
	digest := sha256.Sum256(signed)
	assert.True(t, ecdsa.VerifyASN1(publicKey, digest[:], decodeB64(t, webauthn.Signature)))
}

func TestSoftwareAuthenticatorWithoutCredentialHasNoCredential(t *testing.T) {
	t.Parallel()

	stamper := NewStamper(NewSoftware(filestore.NewStore(t.TempDir()), ""), Config{RPID: "keystamp.test"})

	_, err := stamper.Stamp(context.Background(), []byte("payload"))
	require.ErrorIs(t, err, domain.ErrNoCredentialAvailable)
	assert.False(t, domain.IsUserCancelled(err))
}

func TestStamperMapsPlatformCancellation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		err  error
	}{
		{name: "web not allowed", err: errors.New("NotAllowedError: The operation either timed out or was not allowed.")},
		{name: "native cancelled", err: errors.New("UserCancelled")},
		{name: "lowercase", err: errors.New("request cancelled by user")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stamper := NewStamper(fakeCeremony{err: tc.err}, Config{RPID: "keystamp.test"})

			_, err := stamper.Stamp(context.Background(), []byte("payload"))
			require.True(t, domain.IsUserCancelled(err))

			_, err = stamper.CreateCredential(context.Background(), "laptop", "")
			require.True(t, domain.IsUserCancelled(err))
		})
	}
}

func TestStamperKeepsOtherFailuresUnclassified(t *testing.T) {
	t.Parallel()

	stamper := NewStamper(fakeCeremony{err: errors.New("SecurityError: rp id mismatch")}, Config{RPID: "keystamp.test"})

	_, err := stamper.Stamp(context.Background(), []byte("payload"))
	require.Error(t, err)
	assert.False(t, domain.IsUserCancelled(err))
	assert.ErrorContains(t, err, "rp id mismatch")
}

func TestStamperWithoutCeremonyIsNotInitialized(t *testing.T) {
	t.Parallel()

	_, err := NewStamper(nil, Config{}).Stamp(context.Background(), []byte("payload"))
	require.ErrorIs(t, err, domain.ErrCredentialNotInitialized)
}

func TestNativeCeremonyTranslatesJSON(t *testing.T) {
	t.Parallel()

	native := &fakeNativePasskeys{
		response: `{"id":"cred-1","response":{"authenticatorData":"YXV0aA","clientDataJSON":"Y2xpZW50","signature":"c2ln"}}`,
	}
	stamper := NewStamper(NewNativeCeremony(native), Config{RPID: "keystamp.test"})

	stamp, err := stamper.Stamp(context.Background(), []byte("payload"))
	require.NoError(t, err)

	var request ports.CredentialRequestOptions
	require.NoError(t, json.Unmarshal([]byte(native.gotRequest), &request))
	assert.Equal(t, "keystamp.test", request.RPID)
	assert.Equal(t, payloadChallenge([]byte("payload")), request.Challenge)
	assert.Equal(t, DefaultUserVerification, request.UserVerification)

	assert.JSONEq(t, `{"credentialId":"cred-1","authenticatorData":"YXV0aA","clientDataJson":"Y2xpZW50","signature":"c2ln"}`, stamp.HeaderValue)
}

func TestNativeCeremonyRejectsIncompleteAttestation(t *testing.T) {
	t.Parallel()

	native := &fakeNativePasskeys{response: `{"id":"cred-1","response":{}}`}
	stamper := NewStamper(NewNativeCeremony(native), Config{RPID: "keystamp.test"})

	_, err := stamper.CreateCredential(context.Background(), "phone", "challenge")
	require.ErrorContains(t, err, "incomplete")
}
