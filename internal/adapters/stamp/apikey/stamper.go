// Package apikey stamps requests with a key pair held by a KeyPairStore.
package apikey

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/keystamp/internal/domain"
	"github.com/bnema/keystamp/internal/ports"
)

// Stamper resolves the signing key as: temporary override, then the public
// key of the active session.
type Stamper struct {
	keys     ports.KeyPairStore
	sessions ports.SessionStore

	mu       sync.RWMutex
	override string
}

var _ ports.KeyStamper = (*Stamper)(nil)

func NewStamper(keys ports.KeyPairStore, sessions ports.SessionStore) *Stamper {
	return &Stamper{keys: keys, sessions: sessions}
}

// SetTemporaryPublicKey makes the next stamps use publicKey until cleared.
func (s *Stamper) SetTemporaryPublicKey(publicKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.override = publicKey
}

func (s *Stamper) ClearTemporaryPublicKey() {
	s.SetTemporaryPublicKey("")
}

func (s *Stamper) Stamp(ctx context.Context, payload []byte) (domain.Stamp, error) {
	if s == nil || s.keys == nil {
		return domain.Stamp{}, domain.Wrap(domain.ErrCredentialNotInitialized, "stamp with key pair", errors.New("key pair store is not configured"))
	}

	publicKey, err := s.resolvePublicKey(ctx)
	if err != nil {
		return domain.Stamp{}, err
	}

	stamp, err := s.keys.Stamp(ctx, payload, publicKey)
	if err != nil {
		return domain.Stamp{}, fmt.Errorf("stamp with key pair %s: %w", domain.ShortKey(publicKey), err)
	}

	return stamp, nil
}

func (s *Stamper) resolvePublicKey(ctx context.Context) (string, error) {
	s.mu.RLock()
	override := s.override
	s.mu.RUnlock()
	if override != "" {
		return override, nil
	}

	if s.sessions == nil {
		return "", domain.Wrap(domain.ErrNoCredentialAvailable, "resolve signing key", errors.New("no override and no session store"))
	}

	session, err := s.sessions.Active(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return "", domain.Wrap(domain.ErrNoCredentialAvailable, "resolve signing key", err)
		}
		return "", fmt.Errorf("resolve signing key: %w", err)
	}
	if session.PublicKey == "" {
		return "", domain.Wrap(domain.ErrNoCredentialAvailable, "resolve signing key", errors.New("active session has no public key"))
	}

	return session.PublicKey, nil
}
