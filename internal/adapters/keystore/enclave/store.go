// Package enclave is the browser-model key pair store. Keys only exist in
// memory as crypto.Signer handles and are persisted sealed with a device
// secret, so nothing outside this package can read private bytes.
package enclave

import (
	"context"
	"crypto"
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bnema/keystamp/internal/crypto/p256"
	"github.com/bnema/keystamp/internal/domain"
	"github.com/bnema/keystamp/internal/ports"
	"github.com/sirupsen/logrus"
)

const (
	keysFileName    = "enclave.keys"
	keysFileMode    = 0o600
	keysDirMode     = 0o700
	tempFilePattern = ".enclave-*.keys.tmp"
)

var log = logrus.WithField("prefix", "enclave")

var errMissingSecret = errors.New("enclave device secret is empty")

type Store struct {
	path   string
	secret string
	kdf    kdfParams

	mu     sync.Mutex
	loaded bool
	keys   map[string]crypto.Signer
}

var _ ports.KeyPairStore = (*Store)(nil)

type sealedKeys struct {
	Keys []sealedKey `json:"keys"`
}

type sealedKey struct {
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
}

func NewStore(dir string, secret string) (*Store, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errMissingSecret
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve enclave directory: %w", err)
	}

	return &Store{
		path:   filepath.Join(absDir, keysFileName),
		secret: secret,
		kdf:    defaultKDF,
		keys:   map[string]crypto.Signer{},
	}, nil
}

func (s *Store) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(s.keys))
	for publicKey := range s.keys {
		keys = append(keys, publicKey)
	}
	sort.Strings(keys)

	return keys, nil
}

// Create generates a key, or imports external material. Imported keys become
// non-extractable like generated ones.
func (s *Store) Create(ctx context.Context, external *domain.ExternalKeyPair) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

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

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		return "", err
	}

	previous, existed := s.keys[publicKey]
	s.keys[publicKey] = privateKey
	if err := s.persistLocked(); err != nil {
		if existed {
			s.keys[publicKey] = previous
		} else {
			delete(s.keys, publicKey)
		}
		return "", err
	}

	log.WithField("publicKey", domain.ShortKey(publicKey)).Debug("Created enclave key pair")
	return publicKey, nil
}

func (s *Store) Delete(ctx context.Context, publicKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		return err
	}

	signer, ok := s.keys[publicKey]
	if !ok {
		return nil
	}

	delete(s.keys, publicKey)
	if err := s.persistLocked(); err != nil {
		s.keys[publicKey] = signer
		return err
	}

	return nil
}

func (s *Store) Stamp(ctx context.Context, payload []byte, publicKey string) (domain.Stamp, error) {
	if err := ctx.Err(); err != nil {
		return domain.Stamp{}, err
	}

	s.mu.Lock()
	if err := s.loadLocked(); err != nil {
		s.mu.Unlock()
		return domain.Stamp{}, err
	}
	signer, ok := s.keys[publicKey]
	s.mu.Unlock()

	if !ok {
		return domain.Stamp{}, fmt.Errorf("stamp with key pair %s: %w", domain.ShortKey(publicKey), domain.ErrKeyPairNotFound)
	}

	stamp, err := p256.Stamp(signer, payload)
	if err != nil {
		return domain.Stamp{}, fmt.Errorf("stamp with key pair %s: %w", domain.ShortKey(publicKey), err)
	}

	return stamp, nil
}

func (s *Store) loadLocked() error {
	if s.loaded {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.loaded = true
			return nil
		}
		return fmt.Errorf("read enclave file: %w", err)
	}

	plaintext, err := open(s.secret, data)
	if err != nil {
		return fmt.Errorf("open enclave file: %w", err)
	}
	defer zeroBytes(plaintext)

	var sealed sealedKeys
	if err := json.Unmarshal(plaintext, &sealed); err != nil {
		return fmt.Errorf("decode enclave keys: %w", err)
	}

	for _, entry := range sealed.Keys {
		privateKey, publicKey, err := p256.ImportKeyPair(domain.ExternalKeyPair{
			PublicKey:  entry.PublicKey,
			PrivateKey: entry.PrivateKey,
		})
		if err != nil {
			return fmt.Errorf("decode enclave key %s: %w", domain.ShortKey(entry.PublicKey), err)
		}
		s.keys[publicKey] = privateKey
	}

	s.loaded = true
	return nil
}

func (s *Store) persistLocked() error {
	sealed := sealedKeys{Keys: make([]sealedKey, 0, len(s.keys))}
	for publicKey, signer := range s.keys {
		privateKey, ok := signer.(*ecdsa.PrivateKey)
		if !ok {
			return fmt.Errorf("persist enclave key %s: unexpected signer type %T", domain.ShortKey(publicKey), signer)
		}
		sealed.Keys = append(sealed.Keys, sealedKey{PublicKey: publicKey, PrivateKey: p256.PrivateKeyHex(privateKey)})
	}
	sort.Slice(sealed.Keys, func(i, j int) bool { return sealed.Keys[i].PublicKey < sealed.Keys[j].PublicKey })

	plaintext, err := json.Marshal(sealed)
	if err != nil {
		return fmt.Errorf("encode enclave keys: %w", err)
	}
	defer zeroBytes(plaintext)

	data, err := seal(s.secret, s.kdf, plaintext)
	if err != nil {
		return fmt.Errorf("seal enclave keys: %w", err)
	}

	return writeFileAtomic(s.path, data)
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), keysDirMode); err != nil {
		return fmt.Errorf("create enclave directory: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp enclave file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp enclave file: %w", err)
	}

	if err := tempFile.Chmod(keysFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp enclave file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp enclave file: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace enclave file: %w", err)
	}

	cleanup = false
	return nil
}
