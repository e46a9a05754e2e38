package passkey

import (
	"context"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/keystamp/internal/crypto/p256"
	"github.com/bnema/keystamp/internal/domain"
	"github.com/bnema/keystamp/internal/ports"
	"github.com/fxamacker/cbor/v2"
)

const (
	softwareNamespace = "keystamp/passkeys"
	credentialIDSize  = 16

	flagUserPresent  = 0x01
	flagUserVerified = 0x04
	flagAttested     = 0x40
)

// Software is a WebCredentials implementation backed by P-256 keys in a
// secret store. It lets the CLI act as its own authenticator.
type Software struct {
	secrets ports.ListableSecretStore
	origin  string
}

var _ ports.WebCredentials = (*Software)(nil)

func NewSoftware(secrets ports.ListableSecretStore, origin string) *Software {
	return &Software{secrets: secrets, origin: origin}
}

type clientData struct {
	Type      string `json:"type"`
	Challenge string `json:"challenge"`
	Origin    string `json:"origin"`
}

func (s *Software) Get(ctx context.Context, opts ports.CredentialRequestOptions) (ports.AssertionResponse, error) {
	credentialID, err := s.pickCredential(ctx, opts)
	if err != nil {
		return ports.AssertionResponse{}, err
	}

	value, err := s.secrets.Get(ctx, s.entryKey(opts.RPID, credentialID))
	if err != nil {
		return ports.AssertionResponse{}, fmt.Errorf("load software passkey: %w", err)
	}
	privateKey, err := p256.ParsePrivateKeyHex(value)
	if err != nil {
		return ports.AssertionResponse{}, fmt.Errorf("load software passkey: %w", err)
	}

	clientDataJSON, err := json.Marshal(clientData{Type: "webauthn.get", Challenge: opts.Challenge, Origin: s.originFor(opts.RPID)})
	if err != nil {
		return ports.AssertionResponse{}, fmt.Errorf("encode client data: %w", err)
	}

	authData := authenticatorData(opts.RPID, flagUserPresent|flagUserVerified, nil)
	clientDataHash := sha256.Sum256(clientDataJSON)
	signed := append(append([]byte{}, authData...), clientDataHash[:]...)
	signature, err := p256.SignDER(privateKey, signed)
	if err != nil {
		return ports.AssertionResponse{}, fmt.Errorf("sign assertion: %w", err)
	}

	return ports.AssertionResponse{
		CredentialID:      credentialID,
		AuthenticatorData: base64.RawURLEncoding.EncodeToString(authData),
		ClientDataJSON:    base64.RawURLEncoding.EncodeToString(clientDataJSON),
		Signature:         base64.RawURLEncoding.EncodeToString(signature),
	}, nil
}

func (s *Software) Create(ctx context.Context, opts ports.CredentialCreationOptions) (ports.AttestationResponse, error) {
	if !supportsES256(opts.PubKeyCredParams) {
		return ports.AttestationResponse{}, errors.New("software passkey only supports ES256")
	}

	privateKey, err := p256.GenerateKey()
	if err != nil {
		return ports.AttestationResponse{}, fmt.Errorf("generate software passkey: %w", err)
	}

	rawID := make([]byte, credentialIDSize)
	if _, err := rand.Read(rawID); err != nil {
		return ports.AttestationResponse{}, fmt.Errorf("generate credential id: %w", err)
	}
	credentialID := base64.RawURLEncoding.EncodeToString(rawID)

	coseKey, err := encodeCOSEKey(&privateKey.PublicKey)
	if err != nil {
		return ports.AttestationResponse{}, err
	}

	attested := make([]byte, 0, 16+2+len(rawID)+len(coseKey))
	attested = append(attested, make([]byte, 16)...)
	attested = binary.BigEndian.AppendUint16(attested, uint16(len(rawID)))
	attested = append(attested, rawID...)
	attested = append(attested, coseKey...)

	attestationObject, err := cbor.Marshal(map[string]any{
		"fmt":      "none",
		"attStmt":  map[string]any{},
		"authData": authenticatorData(opts.RP.ID, flagUserPresent|flagUserVerified|flagAttested, attested),
	})
	if err != nil {
		return ports.AttestationResponse{}, fmt.Errorf("encode attestation object: %w", err)
	}

	clientDataJSON, err := json.Marshal(clientData{Type: "webauthn.create", Challenge: opts.Challenge, Origin: s.originFor(opts.RP.ID)})
	if err != nil {
		return ports.AttestationResponse{}, fmt.Errorf("encode client data: %w", err)
	}

	if err := s.secrets.Put(ctx, s.entryKey(opts.RP.ID, credentialID), p256.PrivateKeyHex(privateKey)); err != nil {
		return ports.AttestationResponse{}, fmt.Errorf("store software passkey: %w", err)
	}

	return ports.AttestationResponse{
		CredentialID:      credentialID,
		ClientDataJSON:    base64.RawURLEncoding.EncodeToString(clientDataJSON),
		AttestationObject: base64.RawURLEncoding.EncodeToString(attestationObject),
		Transports:        []string{"internal"},
	}, nil
}

func (s *Software) pickCredential(ctx context.Context, opts ports.CredentialRequestOptions) (string, error) {
	prefix := s.entryKey(opts.RPID, "")
	stored, err := s.secrets.List(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("list software passkeys: %w", err)
	}

	available := make(map[string]struct{}, len(stored))
	for _, key := range stored {
		available[strings.TrimPrefix(key, prefix)] = struct{}{}
	}

	for _, allowed := range opts.AllowCredentials {
		if _, ok := available[allowed.ID]; ok {
			return allowed.ID, nil
		}
	}
	if len(opts.AllowCredentials) == 0 && len(stored) > 0 {
		return strings.TrimPrefix(stored[0], prefix), nil
	}

	return "", domain.Wrap(domain.ErrNoCredentialAvailable, "software passkey", fmt.Errorf("no credential registered for %q", opts.RPID))
}

func (s *Software) entryKey(rpID string, credentialID string) string {
	return softwareNamespace + "/" + rpID + "/" + credentialID
}

func (s *Software) originFor(rpID string) string {
	if s.origin != "" {
		return s.origin
	}
	return "https://" + rpID
}

func authenticatorData(rpID string, flags byte, attested []byte) []byte {
	rpIDHash := sha256.Sum256([]byte(rpID))
	data := make([]byte, 0, 37+len(attested))
	data = append(data, rpIDHash[:]...)
	data = append(data, flags)
	data = binary.BigEndian.AppendUint32(data, 0)
	return append(data, attested...)
}

// encodeCOSEKey renders an EC2 P-256 public key as a COSE_Key map.
func encodeCOSEKey(pub *ecdsa.PublicKey) ([]byte, error) {
	encoded, err := cbor.Marshal(map[int]any{
		1:  2,
		3:  algES256,
		-1: 1,
		-2: pub.X.FillBytes(make([]byte, 32)),
		-3: pub.Y.FillBytes(make([]byte, 32)),
	})
	if err != nil {
		return nil, fmt.Errorf("encode cose key: %w", err)
	}
	return encoded, nil
}

func supportsES256(params []ports.CredentialParameter) bool {
	if len(params) == 0 {
		return true
	}
	for _, param := range params {
		if param.Alg == algES256 {
			return true
		}
	}
	return false
}
