package softwallet

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/bnema/keystamp/internal/ports"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// EthereumProvider answers the EIP-1193 methods the ethereum interface uses.
type EthereumProvider struct {
	key     *ecdsa.PrivateKey
	address string

	mu        sync.Mutex
	connected bool
	chainID   *big.Int
	known     map[string]bool
}

var _ ports.EthereumProvider = (*EthereumProvider)(nil)

func newEthereumProvider(key *ecdsa.PrivateKey) *EthereumProvider {
	return &EthereumProvider{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey).Hex(),
		chainID: big.NewInt(1),
		known:   map[string]bool{"1": true, "11155111": true},
	}
}

func (p *EthereumProvider) Address() string {
	return p.address
}

func (p *EthereumProvider) Request(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	args, err := rawParams(params)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	switch method {
	case "eth_requestAccounts":
		p.connected = true
		return json.Marshal([]string{p.address})

	case "eth_accounts":
		if !p.connected {
			return json.Marshal([]string{})
		}
		return json.Marshal([]string{p.address})

	case "eth_chainId":
		return json.Marshal(hexutil.EncodeBig(p.chainID))

	case "wallet_revokePermissions":
		p.connected = false
		return json.Marshal(nil)

	case "personal_sign":
		return p.personalSign(args)

	case "wallet_switchEthereumChain":
		chainID, err := chainIDParam(args)
		if err != nil {
			return nil, err
		}
		if !p.known[chainID.String()] {
			return nil, &ports.RPCError{Code: ports.RPCCodeUnrecognizedChain, Message: "Unrecognized chain ID " + hexutil.EncodeBig(chainID)}
		}
		p.chainID = chainID
		return json.Marshal(nil)

	case "wallet_addEthereumChain":
		chainID, err := chainIDParam(args)
		if err != nil {
			return nil, err
		}
		p.known[chainID.String()] = true
		return json.Marshal(nil)

	default:
		return nil, &ports.RPCError{Code: ports.RPCCodeUnsupported, Message: "method " + method + " is not supported"}
	}
}

func (p *EthereumProvider) personalSign(args []json.RawMessage) (json.RawMessage, error) {
	if !p.connected {
		return nil, &ports.RPCError{Code: ports.RPCCodeUnauthorized, Message: "wallet is not connected"}
	}
	if len(args) < 2 {
		return nil, &ports.RPCError{Code: -32602, Message: "personal_sign expects message and address"}
	}

	var message, address string
	if err := json.Unmarshal(args[0], &message); err != nil {
		return nil, &ports.RPCError{Code: -32602, Message: "invalid message"}
	}
	if err := json.Unmarshal(args[1], &address); err != nil || !strings.EqualFold(address, p.address) {
		return nil, &ports.RPCError{Code: ports.RPCCodeUnauthorized, Message: "unknown address"}
	}

	data, err := hexutil.Decode(message)
	if err != nil {
		data = []byte(message)
	}

	signature, err := crypto.Sign(accounts.TextHash(data), p.key)
	if err != nil {
		return nil, fmt.Errorf("sign message: %w", err)
	}
	signature[64] += 27

	return json.Marshal(hexutil.Encode(signature))
}

func chainIDParam(args []json.RawMessage) (*big.Int, error) {
	if len(args) == 0 {
		return nil, &ports.RPCError{Code: -32602, Message: "missing chain parameter"}
	}

	var param struct {
		ChainID string `json:"chainId"`
	}
	if err := json.Unmarshal(args[0], &param); err != nil {
		return nil, &ports.RPCError{Code: -32602, Message: "invalid chain parameter"}
	}

	chainID, err := hexutil.DecodeBig(param.ChainID)
	if err != nil {
		return nil, &ports.RPCError{Code: -32602, Message: "invalid chain id"}
	}
	return chainID, nil
}

func rawParams(params []any) ([]json.RawMessage, error) {
	encoded, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("encode params: %w", err)
	}

	var args []json.RawMessage
	if err := json.Unmarshal(encoded, &args); err != nil {
		return nil, fmt.Errorf("decode params: %w", err)
	}
	return args, nil
}
