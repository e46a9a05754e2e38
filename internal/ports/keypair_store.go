package ports

import (
	"context"

	"github.com/bnema/keystamp/internal/domain"
)

// KeyPairStore owns P-256 key material, keyed by compressed public key hex.
// Private halves never leave the store.
type KeyPairStore interface {
	List(ctx context.Context) ([]string, error)
	Create(ctx context.Context, external *domain.ExternalKeyPair) (string, error)
	Delete(ctx context.Context, publicKey string) error
	Stamp(ctx context.Context, payload []byte, publicKey string) (domain.Stamp, error)
}
