package domain

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

const (
	StampHeaderName         = "X-Stamp"
	WebauthnStampHeaderName = "X-Stamp-Webauthn"
)

// SignatureScheme tells the remote verifier which curve and message scheme to
// apply to the stamped payload.
type SignatureScheme string

const (
	SchemeP256            SignatureScheme = "SIGNATURE_SCHEME_API_P256"
	SchemeSecp256k1EIP191 SignatureScheme = "SIGNATURE_SCHEME_API_SECP256K1_EIP191"
	SchemeEd25519         SignatureScheme = "SIGNATURE_SCHEME_API_ED25519"
)

type Stamp struct {
	HeaderName  string
	HeaderValue string
}

type StampEnvelope struct {
	PublicKey string          `json:"publicKey"`
	Scheme    SignatureScheme `json:"scheme"`
	Signature string          `json:"signature"`
}

func NewStamp(envelope StampEnvelope) (Stamp, error) {
	raw, err := json.Marshal(envelope)
	if err != nil {
		return Stamp{}, fmt.Errorf("encode stamp envelope: %w", err)
	}

	return Stamp{
		HeaderName:  StampHeaderName,
		HeaderValue: base64.RawURLEncoding.EncodeToString(raw),
	}, nil
}

func DecodeStamp(stamp Stamp) (StampEnvelope, error) {
	raw, err := base64.RawURLEncoding.DecodeString(stamp.HeaderValue)
	if err != nil {
		return StampEnvelope{}, fmt.Errorf("decode stamp header: %w", err)
	}

	var envelope StampEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return StampEnvelope{}, fmt.Errorf("decode stamp envelope: %w", err)
	}

	return envelope, nil
}

// WebauthnStamp is the assertion envelope carried by X-Stamp-Webauthn.
type WebauthnStamp struct {
	CredentialID      string `json:"credentialId"`
	AuthenticatorData string `json:"authenticatorData"`
	ClientDataJSON    string `json:"clientDataJson"`
	Signature         string `json:"signature"`
}

func NewWebauthnStamp(assertion WebauthnStamp) (Stamp, error) {
	raw, err := json.Marshal(assertion)
	if err != nil {
		return Stamp{}, fmt.Errorf("encode webauthn stamp: %w", err)
	}

	return Stamp{HeaderName: WebauthnStampHeaderName, HeaderValue: string(raw)}, nil
}
