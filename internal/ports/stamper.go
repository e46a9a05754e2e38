package ports

import (
	"context"

	"github.com/bnema/keystamp/internal/domain"
)

// Stamper authenticates a request payload with one credential source.
type Stamper interface {
	Stamp(ctx context.Context, payload []byte) (domain.Stamp, error)
}

// KeyStamper stamps with a KeyPairStore key. By default that is the active
// session's key; a temporary public key overrides it until cleared.
type KeyStamper interface {
	Stamper
	SetTemporaryPublicKey(publicKey string)
	ClearTemporaryPublicKey()
}

type PasskeyStamper interface {
	Stamper
	// CreateCredential registers a new passkey. An empty challenge is
	// replaced by a random one.
	CreateCredential(ctx context.Context, name string, challenge string) (domain.CreatedCredential, error)
}

// WalletStamper stamps with the active wallet provider and resolves the
// WalletInterface answering for a provider.
type WalletStamper interface {
	Stamper
	SetActiveProvider(provider domain.WalletProvider)
	ActiveProvider() (domain.WalletProvider, bool)
	ClearActiveProvider()
	// PublicKey returns the provider's public key and its API key curve type.
	PublicKey(ctx context.Context, provider domain.WalletProvider) (string, string, error)
	Interface(t domain.InterfaceType) (WalletInterface, error)
	Interfaces() []WalletInterface
}
