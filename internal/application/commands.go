package application

import "github.com/bnema/keystamp/internal/domain"

// LoginCommand describes the session to obtain. The session is bound to
// PublicKey when set, to External once imported, or to a freshly generated
// key pair otherwise.
type LoginCommand struct {
	SessionKey         string
	OrganizationID     string
	PublicKey          string
	External           *domain.ExternalKeyPair
	ExpirationSeconds  int64
	InvalidateExisting bool
}

type LoginWithKeyPairCommand struct {
	LoginCommand
	// StampingPublicKey is the credential. Empty means the active session's key.
	StampingPublicKey string
}

type LoginWithWalletCommand struct {
	LoginCommand
	Provider domain.WalletProvider
}

type SignUpCommand struct {
	LoginCommand
	UserName         string
	UserEmail        string
	OrganizationName string
}

type SignUpWithPasskeyCommand struct {
	SignUpCommand
	PasskeyName string
	Challenge   string
}

type SignUpWithWalletCommand struct {
	SignUpCommand
	Provider domain.WalletProvider
}

type RefreshSessionCommand struct {
	SessionKey         string
	ExpirationSeconds  int64
	InvalidateExisting bool
}

type StampSource string

const (
	StampWithKeyPair StampSource = "keypair"
	StampWithPasskey StampSource = "passkey"
	StampWithWallet  StampSource = "wallet"
)

type StampCommand struct {
	Source  StampSource
	Payload []byte
	// PublicKey overrides the active session key for StampWithKeyPair.
	PublicKey string
	// Provider overrides the active wallet for StampWithWallet.
	Provider *domain.WalletProvider
}
