package ports

import "context"

type CredentialDescriptor struct {
	Type       string   `json:"type"`
	ID         string   `json:"id"`
	Transports []string `json:"transports,omitempty"`
}

type CredentialRequestOptions struct {
	Challenge        string                 `json:"challenge"`
	RPID             string                 `json:"rpId"`
	TimeoutMillis    int64                  `json:"timeout,omitempty"`
	UserVerification string                 `json:"userVerification,omitempty"`
	AllowCredentials []CredentialDescriptor `json:"allowCredentials,omitempty"`
}

type RelyingParty struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CredentialUser struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

type CredentialParameter struct {
	Type string `json:"type"`
	Alg  int    `json:"alg"`
}

type CredentialCreationOptions struct {
	Challenge        string                `json:"challenge"`
	RP               RelyingParty          `json:"rp"`
	User             CredentialUser        `json:"user"`
	PubKeyCredParams []CredentialParameter `json:"pubKeyCredParams"`
	TimeoutMillis    int64                 `json:"timeout,omitempty"`
	UserVerification string                `json:"userVerification,omitempty"`
}

// AssertionResponse fields are base64url encoded.
type AssertionResponse struct {
	CredentialID      string `json:"id"`
	AuthenticatorData string `json:"authenticatorData"`
	ClientDataJSON    string `json:"clientDataJSON"`
	Signature         string `json:"signature"`
	UserHandle        string `json:"userHandle,omitempty"`
}

type AttestationResponse struct {
	CredentialID      string   `json:"id"`
	ClientDataJSON    string   `json:"clientDataJSON"`
	AttestationObject string   `json:"attestationObject"`
	Transports        []string `json:"transports,omitempty"`
}

// WebCredentials is the browser credentials container.
type WebCredentials interface {
	Get(ctx context.Context, opts CredentialRequestOptions) (AssertionResponse, error)
	Create(ctx context.Context, opts CredentialCreationOptions) (AttestationResponse, error)
}

// NativePasskeys is the mobile passkey module: JSON request in, JSON response out.
type NativePasskeys interface {
	Get(ctx context.Context, requestJSON string) (string, error)
	Create(ctx context.Context, requestJSON string) (string, error)
}
