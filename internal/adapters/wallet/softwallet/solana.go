package softwallet

import (
	"context"
	"crypto/ed25519"
	"errors"
	"sync"

	"github.com/bnema/keystamp/internal/domain"
	"github.com/bnema/keystamp/internal/ports"
)

type SolanaProvider struct {
	key ed25519.PrivateKey

	mu        sync.Mutex
	connected bool
}

var _ ports.SolanaProvider = (*SolanaProvider)(nil)

func newSolanaProvider(key ed25519.PrivateKey) *SolanaProvider {
	return &SolanaProvider{key: key}
}

func (p *SolanaProvider) Connect(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.connected = true

	return solanaAddress(p.key.Public().(ed25519.PublicKey)), nil
}

func (p *SolanaProvider) Disconnect(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.connected = false
	return nil
}

// Address is empty until the wallet is connected.
func (p *SolanaProvider) Address() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.connected {
		return ""
	}
	return solanaAddress(p.key.Public().(ed25519.PublicKey))
}

func (p *SolanaProvider) SignMessage(ctx context.Context, message []byte) ([]byte, error) {
	if err := p.ready(ctx); err != nil {
		return nil, err
	}
	return ed25519.Sign(p.key, message), nil
}

// SignTransaction signs the serialized message and returns signature||message.
func (p *SolanaProvider) SignTransaction(ctx context.Context, tx []byte) ([]byte, error) {
	if err := p.ready(ctx); err != nil {
		return nil, err
	}

	signed := make([]byte, 0, ed25519.SignatureSize+len(tx))
	signed = append(signed, ed25519.Sign(p.key, tx)...)
	return append(signed, tx...), nil
}

func (p *SolanaProvider) SignAndSendTransaction(ctx context.Context, tx []byte) (string, error) {
	return "", domain.Wrap(domain.ErrUnsupportedOperation, "send solana transaction", errors.New("software wallet has no rpc endpoint"))
}

func (p *SolanaProvider) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.connected {
		return &ports.RPCError{Code: ports.RPCCodeUnauthorized, Message: "wallet is not connected"}
	}
	return nil
}
