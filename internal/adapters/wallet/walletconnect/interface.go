package walletconnect

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/keystamp/internal/adapters/wallet/ethereum"
	"github.com/bnema/keystamp/internal/adapters/wallet/solana"
	"github.com/bnema/keystamp/internal/domain"
	"github.com/bnema/keystamp/internal/ports"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/mr-tron/base58"
)

// Interface is the WalletInterface of a remote-paired wallet. Each negotiated
// namespace shows up as its own provider.
type Interface struct {
	client *Client
}

var (
	_ ports.WalletInterface = (*Interface)(nil)
	_ ports.ChainSwitcher   = (*Interface)(nil)
)

func NewInterface(client *Client) *Interface {
	return &Interface{client: client}
}

func (i *Interface) Type() domain.InterfaceType {
	return domain.InterfaceWalletConnect
}

func (i *Interface) Client() *Client {
	return i.client
}

// Providers lists the paired namespaces. Without a session it returns one
// provider carrying a pairing URI, minting the pairing if needed.
func (i *Interface) Providers(ctx context.Context) ([]domain.WalletProvider, error) {
	if session, ok := i.client.Session(); ok {
		return i.sessionProviders(session), nil
	}

	uri := i.client.URI()
	if uri == "" {
		minted, err := i.client.Pair(ctx)
		switch {
		case errors.Is(err, ErrPairingInProgress):
			uri = i.client.URI()
		case err != nil:
			return nil, err
		default:
			uri = minted
		}
	}

	return []domain.WalletProvider{{
		InterfaceType: domain.InterfaceWalletConnect,
		ChainInfo:     domain.ChainInfo{Namespace: domain.NamespaceEIP155},
		Info:          domain.ProviderInfo{Name: "WalletConnect"},
		PairingURI:    uri,
	}}, nil
}

// Connect waits for the pending pairing to be approved when there is no
// session yet, then returns the address for the provider's namespace.
func (i *Interface) Connect(ctx context.Context, provider domain.WalletProvider) (string, error) {
	session, ok := i.client.Session()
	if !ok {
		if i.client.State() == StateNoSession {
			if _, err := i.client.Pair(ctx); err != nil && !errors.Is(err, ErrPairingInProgress) {
				return "", err
			}
		}

		var err error
		session, err = i.client.Approve(ctx)
		if err != nil {
			return "", err
		}
	}

	namespace := provider.ChainInfo.Namespace
	if namespace == "" {
		namespace = domain.NamespaceEIP155
	}
	address, ok := accountAddress(session, namespace)
	if !ok {
		return "", domain.Wrap(domain.ErrNoCredentialAvailable, "connect remote wallet", fmt.Errorf("no %s account in session", namespace))
	}
	return address, nil
}

func (i *Interface) Disconnect(ctx context.Context, _ domain.WalletProvider) error {
	return i.client.Disconnect(ctx)
}

func (i *Interface) Sign(ctx context.Context, payload []byte, provider domain.WalletProvider, intent domain.SignIntent) (string, error) {
	address, ok := provider.PrimaryAddress()
	if !ok {
		return "", domain.Wrap(domain.ErrNoCredentialAvailable, "sign with remote wallet", errors.New("wallet has no connected address"))
	}

	switch provider.ChainInfo.Namespace {
	case domain.NamespaceEIP155:
		return i.signEthereum(ctx, payload, address, intent)
	case domain.NamespaceSolana:
		return i.signSolana(ctx, payload, address, intent)
	default:
		return "", domain.Wrap(domain.ErrUnsupportedOperation, "sign with remote wallet", fmt.Errorf("namespace %q", provider.ChainInfo.Namespace))
	}
}

func (i *Interface) PublicKey(ctx context.Context, provider domain.WalletProvider) (string, error) {
	switch provider.ChainInfo.Namespace {
	case domain.NamespaceEIP155:
		signature, err := i.Sign(ctx, []byte(ethereum.PublicKeyMessage), provider, domain.IntentSignMessage)
		if err != nil {
			return "", err
		}
		return ethereum.RecoverPublicKey([]byte(ethereum.PublicKeyMessage), signature)

	case domain.NamespaceSolana:
		address, ok := provider.PrimaryAddress()
		if !ok {
			return "", domain.Wrap(domain.ErrNoCredentialAvailable, "solana public key", errors.New("wallet has no connected address"))
		}
		return solana.PublicKeyFromAddress(address)

	default:
		return "", domain.Wrap(domain.ErrUnsupportedOperation, "remote wallet public key", fmt.Errorf("namespace %q", provider.ChainInfo.Namespace))
	}
}

func (i *Interface) SwitchChain(ctx context.Context, _ domain.WalletProvider, target domain.SwitchTarget) error {
	return i.client.SwitchChain(ctx, target.Chain)
}

func (i *Interface) signEthereum(ctx context.Context, payload []byte, address string, intent domain.SignIntent) (string, error) {
	switch intent {
	case domain.IntentSignMessage:
		var signature string
		if err := i.call(ctx, domain.NamespaceEIP155, &signature, "personal_sign", []any{hexutil.Encode(payload), address}); err != nil {
			return "", err
		}
		raw, err := ethereum.DecodeSignature(signature)
		if err != nil {
			return "", err
		}
		return hexutil.Encode(raw), nil

	case domain.IntentSignTransaction, domain.IntentSignAndSendTransaction:
		if !json.Valid(payload) {
			return "", errors.New("ethereum transaction payload is not a JSON object")
		}
		method := "eth_signTransaction"
		if intent == domain.IntentSignAndSendTransaction {
			method = "eth_sendTransaction"
		}

		var result string
		if err := i.call(ctx, domain.NamespaceEIP155, &result, method, []any{json.RawMessage(payload)}); err != nil {
			return "", err
		}
		return result, nil

	default:
		return "", fmt.Errorf("sign ethereum payload: unknown intent %q", intent)
	}
}

type solanaSignature struct {
	Signature   string `json:"signature"`
	Transaction string `json:"transaction"`
}

func (i *Interface) signSolana(ctx context.Context, payload []byte, address string, intent domain.SignIntent) (string, error) {
	var result solanaSignature

	switch intent {
	case domain.IntentSignMessage:
		params := map[string]string{"message": base58.Encode(payload), "pubkey": address}
		if err := i.call(ctx, domain.NamespaceSolana, &result, "solana_signMessage", params); err != nil {
			return "", err
		}
		signature, err := base58.Decode(result.Signature)
		if err != nil {
			return "", fmt.Errorf("decode solana signature: %w", err)
		}
		return hex.EncodeToString(signature), nil

	case domain.IntentSignTransaction:
		params := map[string]string{"transaction": base64.StdEncoding.EncodeToString(payload)}
		if err := i.call(ctx, domain.NamespaceSolana, &result, "solana_signTransaction", params); err != nil {
			return "", err
		}
		signed, err := base64.StdEncoding.DecodeString(result.Transaction)
		if err != nil {
			return "", fmt.Errorf("decode signed solana transaction: %w", err)
		}
		return hex.EncodeToString(signed), nil

	case domain.IntentSignAndSendTransaction:
		params := map[string]string{"transaction": base64.StdEncoding.EncodeToString(payload)}
		if err := i.call(ctx, domain.NamespaceSolana, &result, "solana_signAndSendTransaction", params); err != nil {
			return "", err
		}
		return result.Signature, nil

	default:
		return "", fmt.Errorf("sign solana payload: unknown intent %q", intent)
	}
}

func (i *Interface) call(ctx context.Context, namespace domain.Namespace, out any, method string, params any) error {
	raw, err := i.client.Request(ctx, namespace, method, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}
	return nil
}

func (i *Interface) sessionProviders(session ports.RemoteSession) []domain.WalletProvider {
	providers := make([]domain.WalletProvider, 0, len(session.Namespaces))
	for _, name := range negotiatedNamespaces(session) {
		namespace := domain.Namespace(name)
		chain, _ := i.client.ActiveChain(namespace)
		if chain.Namespace == "" {
			chain.Namespace = namespace
		}

		provider := domain.WalletProvider{
			InterfaceType: domain.InterfaceWalletConnect,
			ChainInfo:     chain,
			Info:          domain.ProviderInfo{Name: session.PeerName, UUID: session.Topic + ":" + name},
		}
		if address, ok := accountAddress(session, namespace); ok {
			provider.ConnectedAddresses = []string{address}
		}
		providers = append(providers, provider)
	}
	return providers
}

// accountAddress returns the address of the first CAIP-10 account in
// namespace.
func accountAddress(session ports.RemoteSession, namespace domain.Namespace) (string, bool) {
	ns, ok := session.Namespaces[namespace]
	if !ok {
		return "", false
	}
	for _, account := range ns.Accounts {
		parts := strings.SplitN(account, ":", 3)
		if len(parts) == 3 && parts[2] != "" {
			return parts[2], true
		}
	}
	return "", false
}
