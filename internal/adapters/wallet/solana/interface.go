// Package solana signs through injected Solana wallet providers.
package solana

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/keystamp/internal/adapters/wallet/discovery"
	"github.com/bnema/keystamp/internal/domain"
	"github.com/bnema/keystamp/internal/ports"
	"github.com/mr-tron/base58"
)

// MainnetGenesis is the CAIP-2 reference of Solana mainnet-beta.
const MainnetGenesis = "5eykt4UsFv8P8NJdTREpY1vzqKqZKvdp"

const (
	publicKeySize = 32
	signatureSize = 64
)

type Interface struct {
	bus    *discovery.Bus
	window time.Duration

	mu        sync.RWMutex
	providers map[string]ports.SolanaProvider
}

var _ ports.WalletInterface = (*Interface)(nil)

func NewInterface(bus *discovery.Bus, window time.Duration) *Interface {
	return &Interface{bus: bus, window: window, providers: map[string]ports.SolanaProvider{}}
}

func (i *Interface) Type() domain.InterfaceType {
	return domain.InterfaceSolana
}

func (i *Interface) Providers(ctx context.Context) ([]domain.WalletProvider, error) {
	announcements := i.bus.Discover(ctx, domain.InterfaceSolana, i.window)

	providers := make([]domain.WalletProvider, 0, len(announcements))
	for _, a := range announcements {
		if a.Solana == nil {
			continue
		}

		i.mu.Lock()
		i.providers[a.Info.UUID] = a.Solana
		i.mu.Unlock()

		provider := domain.WalletProvider{
			InterfaceType: domain.InterfaceSolana,
			ChainInfo:     domain.ChainInfo{Namespace: domain.NamespaceSolana, ChainID: MainnetGenesis},
			Info:          a.Info,
		}
		if address := a.Solana.Address(); address != "" {
			provider.ConnectedAddresses = []string{address}
		}

		providers = append(providers, provider)
	}

	return providers, nil
}

func (i *Interface) Connect(ctx context.Context, provider domain.WalletProvider) (string, error) {
	sol, err := i.lookup(provider)
	if err != nil {
		return "", err
	}

	address, err := sol.Connect(ctx)
	if err != nil {
		return "", classify("connect solana wallet", err)
	}
	return address, nil
}

func (i *Interface) Disconnect(ctx context.Context, provider domain.WalletProvider) error {
	sol, err := i.lookup(provider)
	if err != nil {
		return err
	}

	if err := sol.Disconnect(ctx); err != nil {
		return classify("disconnect solana wallet", err)
	}
	return nil
}

// Sign returns the hex ed25519 signature for messages, the hex signed
// transaction for sign_transaction and the wallet's signature string for
// sign-and-send.
func (i *Interface) Sign(ctx context.Context, payload []byte, provider domain.WalletProvider, intent domain.SignIntent) (string, error) {
	sol, err := i.lookup(provider)
	if err != nil {
		return "", err
	}

	switch intent {
	case domain.IntentSignMessage:
		signature, err := sol.SignMessage(ctx, payload)
		if err != nil {
			return "", classify("sign solana message", err)
		}
		if len(signature) != signatureSize {
			return "", fmt.Errorf("sign solana message: expected %d byte signature, got %d", signatureSize, len(signature))
		}
		return hex.EncodeToString(signature), nil

	case domain.IntentSignTransaction:
		signed, err := sol.SignTransaction(ctx, payload)
		if err != nil {
			return "", classify("sign solana transaction", err)
		}
		return hex.EncodeToString(signed), nil

	case domain.IntentSignAndSendTransaction:
		signature, err := sol.SignAndSendTransaction(ctx, payload)
		if err != nil {
			return "", classify("send solana transaction", err)
		}
		return signature, nil

	default:
		return "", fmt.Errorf("sign solana payload: unknown intent %q", intent)
	}
}

// PublicKey decodes the connected address. No signature is requested.
func (i *Interface) PublicKey(_ context.Context, provider domain.WalletProvider) (string, error) {
	address, ok := provider.PrimaryAddress()
	if !ok {
		return "", domain.Wrap(domain.ErrNoCredentialAvailable, "solana public key", errors.New("wallet has no connected address"))
	}
	return PublicKeyFromAddress(address)
}

func PublicKeyFromAddress(address string) (string, error) {
	decoded, err := base58.Decode(address)
	if err != nil {
		return "", fmt.Errorf("decode solana address: %w", err)
	}
	if len(decoded) != publicKeySize {
		return "", fmt.Errorf("decode solana address: %w: expected %d bytes, got %d", domain.ErrInvalidPublicKey, publicKeySize, len(decoded))
	}
	return hex.EncodeToString(decoded), nil
}

func (i *Interface) lookup(provider domain.WalletProvider) (ports.SolanaProvider, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	sol, ok := i.providers[provider.Info.UUID]
	if !ok {
		return nil, domain.Wrap(domain.ErrNoCredentialAvailable, "resolve solana wallet", fmt.Errorf("wallet %q was not discovered", provider.Info.Name))
	}
	return sol, nil
}

func classify(op string, err error) error {
	var rpcErr *ports.RPCError
	if errors.As(err, &rpcErr) && rpcErr.Code == ports.RPCCodeUserRejected {
		return domain.Wrap(domain.ErrUserCancelled, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
