// Package ethereum signs through EIP-1193 style wallet providers.
package ethereum

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/bnema/keystamp/internal/adapters/wallet/discovery"
	"github.com/bnema/keystamp/internal/domain"
	"github.com/bnema/keystamp/internal/ports"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "ethereum")

// Interface is the WalletInterface for injected Ethereum providers.
type Interface struct {
	bus    *discovery.Bus
	window time.Duration

	mu        sync.RWMutex
	providers map[string]ports.EthereumProvider
}

var (
	_ ports.WalletInterface = (*Interface)(nil)
	_ ports.ChainSwitcher   = (*Interface)(nil)
)

func NewInterface(bus *discovery.Bus, window time.Duration) *Interface {
	return &Interface{bus: bus, window: window, providers: map[string]ports.EthereumProvider{}}
}

func (i *Interface) Type() domain.InterfaceType {
	return domain.InterfaceEthereum
}

func (i *Interface) Providers(ctx context.Context) ([]domain.WalletProvider, error) {
	announcements := i.bus.Discover(ctx, domain.InterfaceEthereum, i.window)

	providers := make([]domain.WalletProvider, 0, len(announcements))
	for _, a := range announcements {
		if a.Ethereum == nil {
			continue
		}

		i.mu.Lock()
		i.providers[a.Info.UUID] = a.Ethereum
		i.mu.Unlock()

		provider := domain.WalletProvider{
			InterfaceType: domain.InterfaceEthereum,
			ChainInfo:     domain.ChainInfo{Namespace: domain.NamespaceEIP155},
			Info:          a.Info,
		}

		var accounts []string
		if err := call(ctx, a.Ethereum, &accounts, "eth_accounts"); err != nil {
			log.WithError(err).WithField("wallet", a.Info.Name).Debug("Could not read connected accounts")
		}
		for idx, account := range accounts {
			accounts[idx] = ChecksumAddress(account)
		}
		provider.ConnectedAddresses = accounts

		var chainID string
		if err := call(ctx, a.Ethereum, &chainID, "eth_chainId"); err == nil {
			if parsed, err := hexutil.DecodeBig(chainID); err == nil {
				provider.ChainInfo.ChainID = parsed.String()
			}
		}

		providers = append(providers, provider)
	}

	return providers, nil
}

func (i *Interface) Connect(ctx context.Context, provider domain.WalletProvider) (string, error) {
	eth, err := i.lookup(provider)
	if err != nil {
		return "", err
	}

	var accounts []string
	if err := call(ctx, eth, &accounts, "eth_requestAccounts"); err != nil {
		return "", classify("connect ethereum wallet", err)
	}
	if len(accounts) == 0 {
		return "", domain.Wrap(domain.ErrNoCredentialAvailable, "connect ethereum wallet", errors.New("wallet returned no accounts"))
	}

	return ChecksumAddress(accounts[0]), nil
}

func (i *Interface) Disconnect(ctx context.Context, provider domain.WalletProvider) error {
	eth, err := i.lookup(provider)
	if err != nil {
		return err
	}

	if _, err := eth.Request(ctx, "wallet_revokePermissions", map[string]any{"eth_accounts": map[string]any{}}); err != nil {
		return classify("disconnect ethereum wallet", err)
	}

	return nil
}

// Sign returns the wallet's raw result: the 65 byte r||s||v hex for
// messages and the transaction hash for sign-and-send.
func (i *Interface) Sign(ctx context.Context, payload []byte, provider domain.WalletProvider, intent domain.SignIntent) (string, error) {
	eth, err := i.lookup(provider)
	if err != nil {
		return "", err
	}

	switch intent {
	case domain.IntentSignMessage:
		address, ok := provider.PrimaryAddress()
		if !ok {
			return "", domain.Wrap(domain.ErrNoCredentialAvailable, "sign ethereum message", errors.New("wallet has no connected address"))
		}

		var signature string
		if err := call(ctx, eth, &signature, "personal_sign", hexutil.Encode(payload), address); err != nil {
			return "", classify("sign ethereum message", err)
		}
		raw, err := DecodeSignature(signature)
		if err != nil {
			return "", err
		}
		return hexutil.Encode(raw), nil

	case domain.IntentSignAndSendTransaction:
		if !json.Valid(payload) {
			return "", errors.New("send ethereum transaction: payload is not a JSON transaction object")
		}

		var hash string
		if err := call(ctx, eth, &hash, "eth_sendTransaction", json.RawMessage(payload)); err != nil {
			return "", classify("send ethereum transaction", err)
		}
		return hash, nil

	case domain.IntentSignTransaction:
		return "", domain.Wrap(domain.ErrUnsupportedOperation, "sign ethereum transaction", errors.New("injected ethereum wallets only sign and send"))

	default:
		return "", fmt.Errorf("sign ethereum payload: unknown intent %q", intent)
	}
}

// PublicKey signs PublicKeyMessage and recovers the signer. The result is the
// compressed key as hex without 0x.
func (i *Interface) PublicKey(ctx context.Context, provider domain.WalletProvider) (string, error) {
	signature, err := i.Sign(ctx, []byte(PublicKeyMessage), provider, domain.IntentSignMessage)
	if err != nil {
		return "", err
	}

	return RecoverPublicKey([]byte(PublicKeyMessage), signature)
}

// SwitchChain asks the wallet to switch and, when the chain is unknown to it
// and metadata is available, adds the chain before retrying once.
func (i *Interface) SwitchChain(ctx context.Context, provider domain.WalletProvider, target domain.SwitchTarget) error {
	if target.Chain.Namespace != domain.NamespaceEIP155 {
		return domain.Wrap(domain.ErrUnsupportedOperation, "switch ethereum chain", fmt.Errorf("namespace %q is not eip155", target.Chain.Namespace))
	}

	eth, err := i.lookup(provider)
	if err != nil {
		return err
	}

	chainID, ok := new(big.Int).SetString(target.Chain.ChainID, 10)
	if !ok {
		return fmt.Errorf("switch ethereum chain: invalid chain id %q", target.Chain.ChainID)
	}
	hexChainID := hexutil.EncodeBig(chainID)

	_, err = eth.Request(ctx, "wallet_switchEthereumChain", map[string]string{"chainId": hexChainID})
	if err == nil {
		return nil
	}

	var rpcErr *ports.RPCError
	if !errors.As(err, &rpcErr) || rpcErr.Code != ports.RPCCodeUnrecognizedChain || target.Metadata == nil {
		return classify("switch ethereum chain", err)
	}

	if _, err := eth.Request(ctx, "wallet_addEthereumChain", addChainParams(hexChainID, *target.Metadata)); err != nil {
		return classify("add ethereum chain", err)
	}
	if _, err := eth.Request(ctx, "wallet_switchEthereumChain", map[string]string{"chainId": hexChainID}); err != nil {
		return classify("switch ethereum chain", err)
	}

	return nil
}

// Provider returns the announced provider behind a discovered wallet.
func (i *Interface) Provider(provider domain.WalletProvider) (ports.EthereumProvider, error) {
	return i.lookup(provider)
}

func (i *Interface) lookup(provider domain.WalletProvider) (ports.EthereumProvider, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	eth, ok := i.providers[provider.Info.UUID]
	if !ok {
		return nil, domain.Wrap(domain.ErrNoCredentialAvailable, "resolve ethereum wallet", fmt.Errorf("wallet %q was not discovered", provider.Info.Name))
	}
	return eth, nil
}

func addChainParams(hexChainID string, metadata domain.ChainMetadata) map[string]any {
	params := map[string]any{
		"chainId":   hexChainID,
		"chainName": metadata.Name,
		"rpcUrls":   metadata.RPCURLs,
		"nativeCurrency": map[string]any{
			"name":     metadata.Currency.Name,
			"symbol":   metadata.Currency.Symbol,
			"decimals": metadata.Currency.Decimals,
		},
	}
	if metadata.ExplorerURL != "" {
		params["blockExplorerUrls"] = []string{metadata.ExplorerURL}
	}
	return params
}

func call(ctx context.Context, eth ports.EthereumProvider, out any, method string, params ...any) error {
	raw, err := eth.Request(ctx, method, params...)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}
	return nil
}

func classify(op string, err error) error {
	var rpcErr *ports.RPCError
	if errors.As(err, &rpcErr) && rpcErr.Code == ports.RPCCodeUserRejected {
		return domain.Wrap(domain.ErrUserCancelled, op, err)
	}
	if errors.As(err, &rpcErr) && rpcErr.Code == ports.RPCCodeUnsupported {
		return domain.Wrap(domain.ErrUnsupportedOperation, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ChecksumAddress returns the EIP-55 form of address. Anything that is not
// a hex address comes back trimmed.
func ChecksumAddress(address string) string {
	if !common.IsHexAddress(address) {
		return strings.TrimSpace(address)
	}
	return common.HexToAddress(address).Hex()
}
