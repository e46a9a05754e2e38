// Package keychain keeps P-256 key pairs in a secret store, one entry per
// key, the way a mobile keychain does.
package keychain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/keystamp/internal/crypto/p256"
	"github.com/bnema/keystamp/internal/domain"
	"github.com/bnema/keystamp/internal/ports"
	"github.com/sirupsen/logrus"
)

const DefaultNamespace = "keystamp/api-keys"

var log = logrus.WithField("prefix", "keychain")

type Store struct {
	secrets   ports.SecretStore
	namespace string
}

var _ ports.KeyPairStore = (*Store)(nil)

func NewStore(secrets ports.SecretStore, namespace string) *Store {
	namespace = strings.Trim(strings.TrimSpace(namespace), "/")
	if namespace == "" {
		namespace = DefaultNamespace
	}

	return &Store{secrets: secrets, namespace: namespace}
}

// List returns the public keys stored under the namespace. Legacy entries are
// not listed until a lookup has migrated them.
func (s *Store) List(ctx context.Context) ([]string, error) {
	lister, ok := s.secrets.(ports.SecretLister)
	if !ok {
		return nil, errors.New("list key pairs: secret store cannot list entries")
	}

	prefix := s.namespace + "/"
	entries, err := lister.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list key pairs: %w", err)
	}

	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		publicKey := strings.TrimPrefix(entry, prefix)
		if publicKey == "" || strings.Contains(publicKey, "/") {
			continue
		}
		keys = append(keys, publicKey)
	}

	return keys, nil
}

func (s *Store) Create(ctx context.Context, external *domain.ExternalKeyPair) (string, error) {
	var (
		privateKey *ecdsa.PrivateKey
		publicKey  string
		err        error
	)
	if external != nil {
		privateKey, publicKey, err = p256.ImportKeyPair(*external)
	} else {
		privateKey, err = p256.GenerateKey()
		if err == nil {
			publicKey = p256.PublicKeyHex(&privateKey.PublicKey)
		}
	}
	if err != nil {
		return "", fmt.Errorf("create key pair: %w", err)
	}

	if err := s.secrets.Put(ctx, s.entryKey(publicKey), p256.PrivateKeyHex(privateKey)); err != nil {
		return "", fmt.Errorf("store key pair: %w", err)
	}

	log.WithField("publicKey", domain.ShortKey(publicKey)).Debug("Created key pair")
	return publicKey, nil
}

// Delete removes both the namespaced and the legacy entry.
func (s *Store) Delete(ctx context.Context, publicKey string) error {
	if strings.TrimSpace(publicKey) == "" {
		return fmt.Errorf("delete key pair: %w", domain.ErrInvalidPublicKey)
	}

	if err := s.secrets.Delete(ctx, s.entryKey(publicKey)); err != nil {
		return fmt.Errorf("delete key pair %s: %w", domain.ShortKey(publicKey), err)
	}
	if err := s.secrets.Delete(ctx, publicKey); err != nil {
		return fmt.Errorf("delete legacy key pair %s: %w", domain.ShortKey(publicKey), err)
	}

	return nil
}

func (s *Store) Stamp(ctx context.Context, payload []byte, publicKey string) (domain.Stamp, error) {
	privateKey, err := s.load(ctx, publicKey)
	if err != nil {
		return domain.Stamp{}, err
	}

	stamp, err := p256.Stamp(privateKey, payload)
	if err != nil {
		return domain.Stamp{}, fmt.Errorf("stamp with key pair %s: %w", domain.ShortKey(publicKey), err)
	}

	return stamp, nil
}

func (s *Store) load(ctx context.Context, publicKey string) (*ecdsa.PrivateKey, error) {
	if strings.TrimSpace(publicKey) == "" {
		return nil, fmt.Errorf("load key pair: %w", domain.ErrInvalidPublicKey)
	}

	value, err := s.secrets.Get(ctx, s.entryKey(publicKey))
	if errors.Is(err, domain.ErrSecretNotFound) {
		value, err = s.migrateLegacy(ctx, publicKey)
	}
	if err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			return nil, fmt.Errorf("load key pair %s: %w", domain.ShortKey(publicKey), errors.Join(domain.ErrKeyPairNotFound, err))
		}
		return nil, fmt.Errorf("load key pair %s: %w", domain.ShortKey(publicKey), err)
	}

	privateKey, err := p256.ParsePrivateKeyHex(value)
	if err != nil {
		return nil, fmt.Errorf("load key pair %s: %w", domain.ShortKey(publicKey), err)
	}
	if p256.PublicKeyHex(&privateKey.PublicKey) != publicKey {
		return nil, fmt.Errorf("load key pair %s: stored key does not match public key", domain.ShortKey(publicKey))
	}

	return privateKey, nil
}

// migrateLegacy moves an entry written before namespacing into the namespace.
func (s *Store) migrateLegacy(ctx context.Context, publicKey string) (string, error) {
	value, err := s.secrets.Get(ctx, publicKey)
	if err != nil {
		return "", err
	}

	if err := s.secrets.Put(ctx, s.entryKey(publicKey), value); err != nil {
		return "", fmt.Errorf("migrate legacy key pair: %w", err)
	}
	if err := s.secrets.Delete(ctx, publicKey); err != nil {
		return "", fmt.Errorf("remove legacy key pair: %w", err)
	}

	log.WithField("publicKey", domain.ShortKey(publicKey)).Info("Migrated legacy key pair into namespace")
	return value, nil
}

func (s *Store) entryKey(publicKey string) string {
	return s.namespace + "/" + publicKey
}
