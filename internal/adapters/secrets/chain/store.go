package chain

import (
	"context"
	"errors"
	"fmt"
	"sort"

	filestore "github.com/bnema/keystamp/internal/adapters/secrets/file"
	passstore "github.com/bnema/keystamp/internal/adapters/secrets/pass"
	"github.com/bnema/keystamp/internal/domain"
	"github.com/bnema/keystamp/internal/ports"
)

type Store struct {
	primary  ports.SecretStore
	fallback ports.SecretStore
}

var _ ports.ListableSecretStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary secret store is nil")
	errNilFallbackStore = errors.New("fallback secret store is nil")
)

func NewStore(primary ports.SecretStore, fallback ports.SecretStore) *Store {
	store, err := NewStoreChecked(primary, fallback)
	if err != nil {
		panic(err)
	}

	return store
}

func NewStoreChecked(primary ports.SecretStore, fallback ports.SecretStore) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	return &Store{primary: primary, fallback: fallback}, nil
}

func NewPassFirstWithFileFallback(fileRoot string) (*Store, error) {
	return NewStoreChecked(passstore.NewStore(), filestore.NewStore(fileRoot))
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	err := s.primary.Put(ctx, key, value)
	if err == nil {
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Put(ctx, key, value)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary backend put failed: %w; fallback backend put failed: %w", err, fallbackErr)
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if shouldSkipFallback(err) {
		return "", err
	}

	fallbackValue, fallbackErr := s.fallback.Get(ctx, key)
	if fallbackErr == nil {
		return fallbackValue, nil
	}

	return "", fmt.Errorf("primary backend get failed: %w; fallback backend get failed: %w", err, fallbackErr)
}

// Delete removes key from both backends. An entry written while the primary
// was unusable lives only in the fallback, so a clean primary delete does not
// end the search. A backend that never held the key counts as success.
func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.primary.Delete(ctx, key)
	if err != nil && shouldSkipFallback(err) {
		return err
	}
	if errors.Is(err, domain.ErrSecretNotFound) {
		err = nil
	}

	fallbackErr := s.fallback.Delete(ctx, key)
	if errors.Is(fallbackErr, domain.ErrSecretNotFound) {
		fallbackErr = nil
	}

	switch {
	case fallbackErr == nil:
		return nil
	case err == nil:
		return fmt.Errorf("fallback backend delete failed: %w", fallbackErr)
	default:
		return fmt.Errorf("primary backend delete failed: %w; fallback backend delete failed: %w", err, fallbackErr)
	}
}

// List merges the listings of both backends. A backend that cannot list is
// skipped as long as the other one succeeds.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	primaryKeys, err := listBackend(ctx, s.primary, prefix)
	if err != nil && shouldSkipFallback(err) {
		return nil, err
	}

	fallbackKeys, fallbackErr := listBackend(ctx, s.fallback, prefix)
	if err != nil && fallbackErr != nil {
		return nil, fmt.Errorf("primary backend list failed: %w; fallback backend list failed: %w", err, fallbackErr)
	}

	seen := make(map[string]struct{}, len(primaryKeys)+len(fallbackKeys))
	keys := make([]string, 0, len(primaryKeys)+len(fallbackKeys))
	for _, key := range append(primaryKeys, fallbackKeys...) {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return keys, nil
}

func listBackend(ctx context.Context, store ports.SecretStore, prefix string) ([]string, error) {
	lister, ok := store.(ports.SecretLister)
	if !ok {
		return nil, errors.New("secret backend cannot list entries")
	}
	return lister.List(ctx, prefix)
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
