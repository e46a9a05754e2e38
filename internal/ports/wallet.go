package ports

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bnema/keystamp/internal/domain"
)

// WalletInterface normalizes one chain family (or the remote-paired wallet)
// into intent based signing.
type WalletInterface interface {
	Type() domain.InterfaceType
	Sign(ctx context.Context, payload []byte, provider domain.WalletProvider, intent domain.SignIntent) (string, error)
	PublicKey(ctx context.Context, provider domain.WalletProvider) (string, error)
	Providers(ctx context.Context) ([]domain.WalletProvider, error)
	Connect(ctx context.Context, provider domain.WalletProvider) (string, error)
	Disconnect(ctx context.Context, provider domain.WalletProvider) error
}

type ChainSwitcher interface {
	SwitchChain(ctx context.Context, provider domain.WalletProvider, target domain.SwitchTarget) error
}

// EthereumProvider is an EIP-1193 style request function.
type EthereumProvider interface {
	Request(ctx context.Context, method string, params ...any) (json.RawMessage, error)
}

type SolanaProvider interface {
	Connect(ctx context.Context) (string, error)
	Disconnect(ctx context.Context) error
	Address() string
	SignMessage(ctx context.Context, message []byte) ([]byte, error)
	SignTransaction(ctx context.Context, tx []byte) ([]byte, error)
	SignAndSendTransaction(ctx context.Context, tx []byte) (string, error)
}

// Provider error codes from EIP-1193 and EIP-3326.
const (
	RPCCodeUserRejected      = 4001
	RPCCodeUnauthorized      = 4100
	RPCCodeUnsupported       = 4200
	RPCCodeDisconnected      = 4900
	RPCCodeUnrecognizedChain = 4902
)

type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}
