package ports

import "context"

type SecretStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

// SecretLister is implemented by secret stores that can enumerate the keys
// stored below a prefix.
type SecretLister interface {
	List(ctx context.Context, prefix string) ([]string, error)
}

type ListableSecretStore interface {
	SecretStore
	SecretLister
}
