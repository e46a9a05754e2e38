package passkey

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bnema/keystamp/internal/ports"
)

// NativeCeremony adapts the mobile passkey module, which speaks JSON strings.
type NativeCeremony struct {
	passkeys ports.NativePasskeys
}

var _ Ceremony = NativeCeremony{}

func NewNativeCeremony(passkeys ports.NativePasskeys) NativeCeremony {
	return NativeCeremony{passkeys: passkeys}
}

type nativeAssertion struct {
	ID       string `json:"id"`
	RawID    string `json:"rawId"`
	Response struct {
		AuthenticatorData string `json:"authenticatorData"`
		ClientDataJSON    string `json:"clientDataJSON"`
		Signature         string `json:"signature"`
		UserHandle        string `json:"userHandle"`
	} `json:"response"`
}

type nativeAttestation struct {
	ID       string `json:"id"`
	RawID    string `json:"rawId"`
	Response struct {
		ClientDataJSON    string   `json:"clientDataJSON"`
		AttestationObject string   `json:"attestationObject"`
		Transports        []string `json:"transports"`
	} `json:"response"`
}

func (c NativeCeremony) Get(ctx context.Context, opts ports.CredentialRequestOptions) (ports.AssertionResponse, error) {
	request, err := json.Marshal(opts)
	if err != nil {
		return ports.AssertionResponse{}, fmt.Errorf("encode native passkey request: %w", err)
	}

	raw, err := c.passkeys.Get(ctx, string(request))
	if err != nil {
		return ports.AssertionResponse{}, err
	}

	var decoded nativeAssertion
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return ports.AssertionResponse{}, fmt.Errorf("decode native passkey assertion: %w", err)
	}

	credentialID := decoded.ID
	if credentialID == "" {
		credentialID = decoded.RawID
	}
	if credentialID == "" || decoded.Response.Signature == "" {
		return ports.AssertionResponse{}, errors.New("native passkey assertion is incomplete")
	}

	return ports.AssertionResponse{
		CredentialID:      credentialID,
		AuthenticatorData: decoded.Response.AuthenticatorData,
		ClientDataJSON:    decoded.Response.ClientDataJSON,
		Signature:         decoded.Response.Signature,
		UserHandle:        decoded.Response.UserHandle,
	}, nil
}

func (c NativeCeremony) Create(ctx context.Context, opts ports.CredentialCreationOptions) (ports.AttestationResponse, error) {
	request, err := json.Marshal(opts)
	if err != nil {
		return ports.AttestationResponse{}, fmt.Errorf("encode native passkey request: %w", err)
	}

	raw, err := c.passkeys.Create(ctx, string(request))
	if err != nil {
		return ports.AttestationResponse{}, err
	}

	var decoded nativeAttestation
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return ports.AttestationResponse{}, fmt.Errorf("decode native passkey attestation: %w", err)
	}

	credentialID := decoded.ID
	if credentialID == "" {
		credentialID = decoded.RawID
	}
	if credentialID == "" || decoded.Response.AttestationObject == "" {
		return ports.AttestationResponse{}, errors.New("native passkey attestation is incomplete")
	}

	return ports.AttestationResponse{
		CredentialID:      credentialID,
		ClientDataJSON:    decoded.Response.ClientDataJSON,
		AttestationObject: decoded.Response.AttestationObject,
		Transports:        decoded.Response.Transports,
	}, nil
}
