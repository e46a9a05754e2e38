// Package wallet stamps requests with a connected external wallet.
package wallet

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/bnema/keystamp/internal/adapters/wallet/ethereum"
	"github.com/bnema/keystamp/internal/domain"
	"github.com/bnema/keystamp/internal/metrics"
	"github.com/bnema/keystamp/internal/ports"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

var log = logrus.WithField("prefix", "wallet-stamper")

// FallbackOrder resolves the interface when none was activated yet.
var FallbackOrder = []domain.InterfaceType{
	domain.InterfaceEthereum,
	domain.InterfaceSolana,
	domain.InterfaceWalletConnect,
}

// Stamper holds one WalletInterface per type and the provider that signs
// stamps.
type Stamper struct {
	interfaces map[domain.InterfaceType]ports.WalletInterface
	metrics    *metrics.Recorder

	mu            sync.RWMutex
	active        *domain.WalletProvider
	lastActivated domain.InterfaceType
}

var _ ports.WalletStamper = (*Stamper)(nil)

func NewStamper(recorder *metrics.Recorder, interfaces ...ports.WalletInterface) *Stamper {
	s := &Stamper{
		interfaces: make(map[domain.InterfaceType]ports.WalletInterface, len(interfaces)),
		metrics:    recorder,
	}
	for _, iface := range interfaces {
		if iface == nil {
			continue
		}
		s.interfaces[iface.Type()] = iface
	}
	return s
}

// SetActiveProvider selects the wallet used by Stamp and marks its interface
// as the most recently activated one.
func (s *Stamper) SetActiveProvider(provider domain.WalletProvider) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = &provider
	s.lastActivated = provider.InterfaceType
}

func (s *Stamper) ActiveProvider() (domain.WalletProvider, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.active == nil {
		return domain.WalletProvider{}, false
	}
	return *s.active, true
}

func (s *Stamper) ClearActiveProvider() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = nil
}

// Interface returns the interface of the given type, or the default one when
// t is empty.
func (s *Stamper) Interface(t domain.InterfaceType) (ports.WalletInterface, error) {
	if t == "" {
		return s.DefaultInterface()
	}

	iface, ok := s.interfaces[t]
	if !ok {
		return nil, domain.Wrap(domain.ErrCredentialNotInitialized, "resolve wallet interface", fmt.Errorf("%s interface is not configured", t))
	}
	return iface, nil
}

// DefaultInterface prefers the most recently activated interface, then the
// first configured one in FallbackOrder.
func (s *Stamper) DefaultInterface() (ports.WalletInterface, error) {
	s.mu.RLock()
	last := s.lastActivated
	s.mu.RUnlock()

	if iface, ok := s.interfaces[last]; ok {
		return iface, nil
	}
	for _, t := range FallbackOrder {
		if iface, ok := s.interfaces[t]; ok {
			return iface, nil
		}
	}
	return nil, domain.Wrap(domain.ErrCredentialNotInitialized, "resolve wallet interface", errors.New("no wallet interface configured"))
}

// Interfaces lists the configured interfaces in FallbackOrder.
func (s *Stamper) Interfaces() []ports.WalletInterface {
	out := make([]ports.WalletInterface, 0, len(s.interfaces))
	for _, t := range FallbackOrder {
		if iface, ok := s.interfaces[t]; ok {
			out = append(out, iface)
		}
	}
	return out
}

// Stamp signs payload with the active provider. For Ethereum wallets the
// public key is recovered from that same signature, so the user is prompted
// once.
func (s *Stamper) Stamp(ctx context.Context, payload []byte) (domain.Stamp, error) {
	provider, ok := s.ActiveProvider()
	if !ok {
		return domain.Stamp{}, domain.Wrap(domain.ErrNoCredentialAvailable, "wallet stamp", errors.New("no active wallet provider"))
	}

	iface, err := s.Interface(provider.InterfaceType)
	if err != nil {
		return domain.Stamp{}, err
	}

	signature, err := iface.Sign(ctx, payload, provider, domain.IntentSignMessage)
	if err != nil {
		return domain.Stamp{}, fmt.Errorf("wallet stamp: %w", err)
	}

	var envelope domain.StampEnvelope
	switch provider.ChainInfo.Namespace {
	case domain.NamespaceEIP155:
		publicKey, err := ethereum.RecoverPublicKey(payload, signature)
		if err != nil {
			return domain.Stamp{}, fmt.Errorf("wallet stamp: %w", err)
		}
		der, err := SignatureToDER(signature)
		if err != nil {
			return domain.Stamp{}, fmt.Errorf("wallet stamp: %w", err)
		}
		envelope = domain.StampEnvelope{PublicKey: publicKey, Scheme: domain.SchemeSecp256k1EIP191, Signature: der}

	case domain.NamespaceSolana:
		publicKey, err := iface.PublicKey(ctx, provider)
		if err != nil {
			return domain.Stamp{}, fmt.Errorf("wallet stamp: %w", err)
		}
		envelope = domain.StampEnvelope{PublicKey: publicKey, Scheme: domain.SchemeEd25519, Signature: signature}

	default:
		return domain.Stamp{}, domain.Wrap(domain.ErrUnsupportedOperation, "wallet stamp", fmt.Errorf("namespace %q", provider.ChainInfo.Namespace))
	}

	stamp, err := domain.NewStamp(envelope)
	if err != nil {
		return domain.Stamp{}, err
	}

	s.metrics.Stamp(string(envelope.Scheme))
	log.WithFields(logrus.Fields{
		"wallet":    provider.Info.Name,
		"publicKey": domain.ShortKey(envelope.PublicKey),
	}).Debug("Stamped with wallet")

	return stamp, nil
}

// PublicKey returns the key the remote side will see for provider, with the
// curve it is on.
func (s *Stamper) PublicKey(ctx context.Context, provider domain.WalletProvider) (string, string, error) {
	iface, err := s.Interface(provider.InterfaceType)
	if err != nil {
		return "", "", err
	}

	publicKey, err := iface.PublicKey(ctx, provider)
	if err != nil {
		return "", "", fmt.Errorf("wallet public key: %w", err)
	}

	switch provider.ChainInfo.Namespace {
	case domain.NamespaceEIP155:
		return publicKey, domain.CurveTypeSecp256k1, nil
	case domain.NamespaceSolana:
		return publicKey, domain.CurveTypeEd25519, nil
	default:
		return "", "", domain.Wrap(domain.ErrUnsupportedOperation, "wallet public key", fmt.Errorf("namespace %q", provider.ChainInfo.Namespace))
	}
}

// SignatureToDER re-encodes a 65 byte r||s||v signature as hex ASN.1 DER.
func SignatureToDER(signature string) (string, error) {
	raw, err := hexutil.Decode(signature)
	if err != nil {
		return "", fmt.Errorf("decode signature: %w", err)
	}
	if len(raw) != 65 {
		return "", fmt.Errorf("decode signature: expected 65 bytes, got %d", len(raw))
	}

	r := new(big.Int).SetBytes(raw[:32])
	sig := new(big.Int).SetBytes(raw[32:64])

	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1BigInt(r)
		b.AddASN1BigInt(sig)
	})
	der, err := b.Bytes()
	if err != nil {
		return "", fmt.Errorf("encode der signature: %w", err)
	}
	return hex.EncodeToString(der), nil
}
