package domain

import (
	"context"
	"fmt"
	"strings"
)

type InterfaceType string

const (
	InterfaceEthereum      InterfaceType = "ethereum"
	InterfaceSolana        InterfaceType = "solana"
	InterfaceWalletConnect InterfaceType = "walletconnect"
)

func ParseInterfaceType(raw string) (InterfaceType, error) {
	switch t := InterfaceType(raw); t {
	case InterfaceEthereum, InterfaceSolana, InterfaceWalletConnect:
		return t, nil
	default:
		return "", fmt.Errorf("unsupported wallet interface %q", raw)
	}
}

// Namespace is a chain family identifier as negotiated by remote pairing.
type Namespace string

const (
	NamespaceEIP155 Namespace = "eip155"
	NamespaceSolana Namespace = "solana"
)

type ChainInfo struct {
	Namespace Namespace
	// ChainID is the numeric EVM chain id, or the genesis reference for Solana.
	ChainID string
}

// CAIP2 renders the chain as "<namespace>:<reference>".
func (c ChainInfo) CAIP2() string {
	if c.ChainID == "" {
		return string(c.Namespace)
	}
	return string(c.Namespace) + ":" + c.ChainID
}

// ParseCAIP2 is the inverse of ChainInfo.CAIP2.
func ParseCAIP2(caip2 string) ChainInfo {
	namespace, reference, _ := strings.Cut(caip2, ":")
	return ChainInfo{Namespace: Namespace(namespace), ChainID: reference}
}

type ProviderInfo struct {
	Name string
	UUID string
	RDNS string
	Icon string
}

// WalletProvider is a freshly discovered wallet. It is never persisted.
type WalletProvider struct {
	InterfaceType      InterfaceType
	ChainInfo          ChainInfo
	ConnectedAddresses []string
	Info               ProviderInfo
	PairingURI         string
}

func (p WalletProvider) PrimaryAddress() (string, bool) {
	if len(p.ConnectedAddresses) == 0 {
		return "", false
	}
	return p.ConnectedAddresses[0], true
}

// SignIntent is the semantic purpose of a signing call.
type SignIntent string

const (
	IntentSignMessage            SignIntent = "sign_message"
	IntentSignTransaction        SignIntent = "sign_transaction"
	IntentSignAndSendTransaction SignIntent = "sign_and_send_transaction"
)

// SwitchTarget names the chain to switch to. Metadata is only needed when the
// wallet does not know the chain yet and it has to be added first.
type SwitchTarget struct {
	Chain    ChainInfo
	Metadata *ChainMetadata
}

type ChainMetadata struct {
	Name        string
	RPCURLs     []string
	Currency    NativeCurrency
	ExplorerURL string
}

type NativeCurrency struct {
	Name     string
	Symbol   string
	Decimals int
}

type WalletAccountKind string

const (
	WalletAccountEmbedded          WalletAccountKind = "embedded"
	WalletAccountConnectedEthereum WalletAccountKind = "connected_ethereum"
	WalletAccountConnectedSolana   WalletAccountKind = "connected_solana"
)

// WalletAccount is a closed sum type: only the variants declared in this
// package implement it. Dispatch on Kind().
type WalletAccount interface {
	Kind() WalletAccountKind
	AccountAddress() string
	walletAccount()
}

type EmbeddedWalletAccount struct {
	WalletID  string
	AccountID string
	Address   string
	Curve     string
	Path      string
}

func (EmbeddedWalletAccount) Kind() WalletAccountKind { return WalletAccountEmbedded }
func (a EmbeddedWalletAccount) AccountAddress() string { return a.Address }
func (EmbeddedWalletAccount) walletAccount() {}

type SignMessageFunc func(ctx context.Context, message []byte) (string, error)
type SignTransactionFunc func(ctx context.Context, unsignedTx []byte) (string, error)

// ConnectedWallet carries the closures bound to the provider that backs a
// connected account. The external wallet owns the key material.
type ConnectedWallet struct {
	Address                string
	Provider               WalletProvider
	SignMessage            SignMessageFunc
	SignTransaction        SignTransactionFunc
	SignAndSendTransaction SignTransactionFunc
}

type ConnectedEthereumWalletAccount struct {
	ConnectedWallet
}

func (ConnectedEthereumWalletAccount) Kind() WalletAccountKind {
	return WalletAccountConnectedEthereum
}
func (a ConnectedEthereumWalletAccount) AccountAddress() string { return a.Address }
func (ConnectedEthereumWalletAccount) walletAccount() {}

type ConnectedSolanaWalletAccount struct {
	ConnectedWallet
}

func (ConnectedSolanaWalletAccount) Kind() WalletAccountKind { return WalletAccountConnectedSolana }
func (a ConnectedSolanaWalletAccount) AccountAddress() string { return a.Address }
func (ConnectedSolanaWalletAccount) walletAccount() {}
