package ports

import (
	"context"
	"encoding/json"

	"github.com/bnema/keystamp/internal/domain"
)

// NamespaceProposal lists what a pairing asks the remote wallet to approve.
type NamespaceProposal struct {
	Namespace domain.Namespace
	Chains    []string
	Methods   []string
	Events    []string
}

// RemoteSession is an approved pairing. Accounts are CAIP-10 strings keyed by
// namespace.
type RemoteSession struct {
	Topic      string
	Namespaces map[domain.Namespace]RemoteNamespace
	PeerName   string
	Expiry     int64
}

type RemoteNamespace struct {
	Chains   []string
	Accounts []string
	Methods  []string
}

type PairingProposal struct {
	URI      string
	Approval func(ctx context.Context) (RemoteSession, error)
}

type SignClientEventKind string

const (
	SignClientSessionDelete SignClientEventKind = "session_delete"
	SignClientSessionUpdate SignClientEventKind = "session_update"
	SignClientChainChanged  SignClientEventKind = "chain_changed"
)

type SignClientEvent struct {
	Kind       SignClientEventKind
	Topic      string
	ChainID    string
	Namespaces map[domain.Namespace]RemoteNamespace
}

// SignClient is the remote pairing protocol as consumed by this module.
type SignClient interface {
	Propose(ctx context.Context, namespaces []NamespaceProposal) (PairingProposal, error)
	Request(ctx context.Context, topic string, chainID string, method string, params any) (json.RawMessage, error)
	Disconnect(ctx context.Context, topic string) error
	OnEvent(handler func(SignClientEvent))
}
