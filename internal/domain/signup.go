package domain

// Attestation is the result of a passkey registration ceremony.
type Attestation struct {
	CredentialID      string   `json:"credentialId"`
	ClientDataJSON    string   `json:"clientDataJson"`
	AttestationObject string   `json:"attestationObject"`
	Transports        []string `json:"transports,omitempty"`
}

type CreatedCredential struct {
	EncodedChallenge string
	Attestation      Attestation
}

// Authenticator is the passkey credential attached to a sub-organization root user.
type Authenticator struct {
	Name        string      `json:"authenticatorName"`
	Challenge   string      `json:"challenge"`
	Attestation Attestation `json:"attestation"`
}

type APIKeyCredential struct {
	Name              string `json:"apiKeyName"`
	PublicKey         string `json:"publicKey"`
	CurveType         string `json:"curveType"`
	ExpirationSeconds string `json:"expirationSeconds,omitempty"`
}

const (
	CurveTypeP256      = "API_KEY_CURVE_P256"
	CurveTypeSecp256k1 = "API_KEY_CURVE_SECP256K1"
	CurveTypeEd25519   = "API_KEY_CURVE_ED25519"
)

// SignUpRequest is the unstamped proxy payload creating a sub-organization
// with one root user owning the given credentials.
type SignUpRequest struct {
	UserName         string             `json:"userName,omitempty"`
	UserEmail        string             `json:"userEmail,omitempty"`
	OrganizationName string             `json:"organizationName,omitempty"`
	Authenticators   []Authenticator    `json:"authenticators,omitempty"`
	APIKeys          []APIKeyCredential `json:"apiKeys,omitempty"`
}

type SignUpResult struct {
	OrganizationID string `json:"organizationId"`
	UserID         string `json:"userId"`
}

// LoginRequest is the body stamped by the credential being used. PublicKey is
// the ephemeral key that the issued session will be bound to.
type LoginRequest struct {
	OrganizationID     string `json:"organizationId,omitempty"`
	PublicKey          string `json:"publicKey"`
	ExpirationSeconds  string `json:"expirationSeconds,omitempty"`
	InvalidateExisting bool   `json:"invalidateExisting,omitempty"`
}
