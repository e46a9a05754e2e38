// Package walletconnect pairs with a remote wallet application and signs over
// the approved session.
package walletconnect

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bnema/keystamp/internal/domain"
	"github.com/bnema/keystamp/internal/metrics"
	"github.com/bnema/keystamp/internal/ports"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

var log = logrus.WithField("prefix", "walletconnect")

var (
	ErrPairingInProgress = errors.New("a pairing is already in progress")
	ErrApprovalConsumed  = errors.New("pairing approval already consumed")
	ErrNoPairing         = errors.New("no pairing in progress")
	ErrAlreadyPaired     = errors.New("already paired with a wallet")
	ErrNotPaired         = errors.New("no paired wallet session")
)

// WalletConnect user rejection code, reported next to the EIP-1193 one.
const rpcCodeSessionRejected = 5000

const (
	DefaultRepairInterval = 5 * time.Second
	repairTimeout         = 30 * time.Second
)

type State int

const (
	StateNoSession State = iota
	StatePairing
	StateApproved
)

func (s State) String() string {
	switch s {
	case StateNoSession:
		return "no_session"
	case StatePairing:
		return "pairing"
	case StateApproved:
		return "approved"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Event is pushed to subscribers. It is implemented only by the event types
// of this package.
type Event interface {
	isEvent()
}

type DisconnectEvent struct {
	Topic string
	// Remote is true when the peer deleted the session.
	Remote bool
}

type ChainChangedEvent struct {
	Chain domain.ChainInfo
}

type SessionUpdatedEvent struct {
	Session ports.RemoteSession
}

func (DisconnectEvent) isEvent()     {}
func (ChainChangedEvent) isEvent()   {}
func (SessionUpdatedEvent) isEvent() {}

// DefaultNamespaces is what a pairing asks for when none is configured.
func DefaultNamespaces() []ports.NamespaceProposal {
	return []ports.NamespaceProposal{
		{
			Namespace: domain.NamespaceEIP155,
			Chains:    []string{"eip155:1"},
			Methods:   []string{"personal_sign", "eth_signTransaction", "eth_sendTransaction"},
			Events:    []string{"chainChanged", "accountsChanged"},
		},
		{
			Namespace: domain.NamespaceSolana,
			Chains:    []string{"solana:5eykt4UsFv8P8NJdTREpY1vzqKqZKvdp"},
			Methods:   []string{"solana_signMessage", "solana_signTransaction", "solana_signAndSendTransaction"},
		},
	}
}

type Config struct {
	Namespaces []ports.NamespaceProposal
	// RepairInterval spaces out the pairings started after deleted
	// sessions. Zero means DefaultRepairInterval.
	RepairInterval time.Duration
	Metrics        *metrics.Recorder
}

// Client is the pairing state machine: NoSession, Pairing, Approved. Only one
// pairing can be pending and its approval can be awaited once.
type Client struct {
	sign       ports.SignClient
	namespaces []ports.NamespaceProposal
	limiter    *rate.Limiter
	metrics    *metrics.Recorder

	mu            sync.Mutex
	state         State
	generation    uint64
	uri           string
	approval      func(context.Context) (ports.RemoteSession, error)
	approvalTaken bool
	session       ports.RemoteSession
	chains        map[domain.Namespace]string

	subMu       sync.Mutex
	subscribers map[int]func(Event)
	nextSub     int
}

func NewClient(sign ports.SignClient, cfg Config) *Client {
	namespaces := cfg.Namespaces
	if len(namespaces) == 0 {
		namespaces = DefaultNamespaces()
	}
	interval := cfg.RepairInterval
	if interval <= 0 {
		interval = DefaultRepairInterval
	}

	c := &Client{
		sign:        sign,
		namespaces:  namespaces,
		limiter:     rate.NewLimiter(rate.Every(interval), 1),
		metrics:     cfg.Metrics,
		chains:      map[domain.Namespace]string{},
		subscribers: map[int]func(Event){},
	}
	sign.OnEvent(c.handle)
	return c
}

func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// URI is the pending pairing URI, empty outside the Pairing state.
func (c *Client) URI() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.uri
}

func (c *Client) Session() (ports.RemoteSession, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session, c.state == StateApproved
}

// ActiveChain is the chain requests for namespace are sent to.
func (c *Client) ActiveChain(namespace domain.Namespace) (domain.ChainInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	caip2, ok := c.chains[namespace]
	if !ok {
		return domain.ChainInfo{}, false
	}
	return domain.ParseCAIP2(caip2), true
}

// Pair mints a new pairing URI. The returned URI must reach the remote
// wallet, usually as a QR code, before Approve can complete.
func (c *Client) Pair(ctx context.Context) (string, error) {
	c.mu.Lock()
	switch c.state {
	case StatePairing:
		c.mu.Unlock()
		return "", ErrPairingInProgress
	case StateApproved:
		c.mu.Unlock()
		return "", ErrAlreadyPaired
	}
	c.state = StatePairing
	c.generation++
	generation := c.generation
	c.mu.Unlock()

	proposal, err := c.sign.Propose(ctx, c.namespaces)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != generation {
		return "", errors.New("pair wallet: pairing was superseded")
	}
	if err != nil {
		c.state = StateNoSession
		return "", fmt.Errorf("propose pairing: %w", err)
	}

	c.uri = proposal.URI
	c.approval = proposal.Approval
	c.approvalTaken = false
	c.metrics.Pairing("proposed")
	log.Debug("Pairing proposed")

	return proposal.URI, nil
}

// Approve blocks until the remote user approves or rejects the pending
// pairing. There is no built-in timeout; bound ctx to limit the wait.
func (c *Client) Approve(ctx context.Context) (ports.RemoteSession, error) {
	c.mu.Lock()
	if c.approvalTaken {
		c.mu.Unlock()
		return ports.RemoteSession{}, ErrApprovalConsumed
	}
	if c.state != StatePairing || c.approval == nil {
		c.mu.Unlock()
		return ports.RemoteSession{}, ErrNoPairing
	}
	c.approvalTaken = true
	approval := c.approval
	generation := c.generation
	c.mu.Unlock()

	session, err := approval(ctx)

	c.mu.Lock()
	if c.generation != generation {
		c.mu.Unlock()
		return ports.RemoteSession{}, errors.New("approve pairing: pairing was superseded")
	}
	c.uri = ""
	c.approval = nil
	if err != nil {
		c.state = StateNoSession
		c.mu.Unlock()
		c.metrics.Pairing("rejected")
		return ports.RemoteSession{}, classify("approve pairing", err)
	}

	c.state = StateApproved
	c.session = session
	c.chains = initialChains(session)
	c.mu.Unlock()

	c.metrics.Pairing("approved")
	log.WithField("peer", session.PeerName).Info("Wallet paired")
	c.emit(SessionUpdatedEvent{Session: session})

	return session, nil
}

// Request proxies one JSON-RPC call to the wallet on the active chain of
// namespace.
func (c *Client) Request(ctx context.Context, namespace domain.Namespace, method string, params any) (json.RawMessage, error) {
	c.mu.Lock()
	if c.state != StateApproved {
		c.mu.Unlock()
		return nil, domain.Wrap(domain.ErrNoCredentialAvailable, "wallet request", ErrNotPaired)
	}
	if _, ok := c.session.Namespaces[namespace]; !ok {
		negotiated := negotiatedNamespaces(c.session)
		c.mu.Unlock()
		return nil, domain.Wrap(domain.ErrUnsupportedOperation, "wallet request",
			fmt.Errorf("namespace %q was not negotiated (negotiated: %s)", namespace, strings.Join(negotiated, ", ")))
	}
	topic := c.session.Topic
	chainID := c.chains[namespace]
	c.mu.Unlock()

	result, err := c.sign.Request(ctx, topic, chainID, method, params)
	if err != nil {
		return nil, classify(method, err)
	}
	return result, nil
}

// SwitchChain selects the chain later requests go to. Only chains inside the
// namespaces negotiated at pairing time are accepted; a remote wallet cannot
// be asked to add a network.
func (c *Client) SwitchChain(_ context.Context, chain domain.ChainInfo) error {
	c.mu.Lock()
	if c.state != StateApproved {
		c.mu.Unlock()
		return domain.Wrap(domain.ErrNoCredentialAvailable, "switch chain", ErrNotPaired)
	}

	ns, ok := c.session.Namespaces[chain.Namespace]
	if !ok {
		negotiated := negotiatedNamespaces(c.session)
		c.mu.Unlock()
		return domain.Wrap(domain.ErrUnsupportedOperation, "switch chain",
			fmt.Errorf("namespace %q was not negotiated (negotiated: %s)", chain.Namespace, strings.Join(negotiated, ", ")))
	}

	target := chain.CAIP2()
	if chain.ChainID == "" && len(ns.Chains) > 0 {
		target = ns.Chains[0]
	}
	if !slices.Contains(ns.Chains, target) {
		c.mu.Unlock()
		return domain.Wrap(domain.ErrUnsupportedOperation, "switch chain",
			fmt.Errorf("chain %q was not negotiated (negotiated: %s)", target, strings.Join(ns.Chains, ", ")))
	}
	c.chains[chain.Namespace] = target
	c.mu.Unlock()

	c.emit(ChainChangedEvent{Chain: domain.ParseCAIP2(target)})
	return nil
}

// Disconnect ends the session, or abandons a pending pairing. It does not
// trigger a new pairing.
func (c *Client) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	state := c.state
	topic := c.session.Topic
	c.reset()
	c.mu.Unlock()

	if state != StateApproved {
		return nil
	}

	c.metrics.Pairing("disconnected")
	c.emit(DisconnectEvent{Topic: topic})

	if err := c.sign.Disconnect(ctx, topic); err != nil {
		return fmt.Errorf("disconnect wallet session: %w", err)
	}
	return nil
}

// Subscribe registers fn for every event and returns its id for Unsubscribe.
func (c *Client) Subscribe(fn func(Event)) int {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	c.nextSub++
	c.subscribers[c.nextSub] = fn
	return c.nextSub
}

func (c *Client) Unsubscribe(id int) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	delete(c.subscribers, id)
}

func (c *Client) handle(ev ports.SignClientEvent) {
	switch ev.Kind {
	case ports.SignClientSessionDelete:
		c.mu.Lock()
		if c.state != StateApproved || c.session.Topic != ev.Topic {
			c.mu.Unlock()
			return
		}
		c.reset()
		generation := c.generation
		c.mu.Unlock()

		c.metrics.Pairing("deleted")
		log.Info("Wallet deleted the session")
		c.emit(DisconnectEvent{Topic: ev.Topic, Remote: true})
		go c.repair(generation)

	case ports.SignClientSessionUpdate:
		c.mu.Lock()
		if c.state != StateApproved || c.session.Topic != ev.Topic {
			c.mu.Unlock()
			return
		}
		c.session.Namespaces = ev.Namespaces
		for ns := range c.chains {
			if _, ok := ev.Namespaces[ns]; !ok {
				delete(c.chains, ns)
			}
		}
		for ns, caip2 := range initialChains(c.session) {
			if _, ok := c.chains[ns]; !ok {
				c.chains[ns] = caip2
			}
		}
		session := c.session
		c.mu.Unlock()

		c.emit(SessionUpdatedEvent{Session: session})

	case ports.SignClientChainChanged:
		chain := domain.ParseCAIP2(ev.ChainID)
		c.mu.Lock()
		if c.state != StateApproved || c.session.Topic != ev.Topic {
			c.mu.Unlock()
			return
		}
		c.chains[chain.Namespace] = ev.ChainID
		c.mu.Unlock()

		c.emit(ChainChangedEvent{Chain: chain})
	}
}

// repair starts a fresh pairing after the peer deleted the session, so a URI
// is ready for the next connect. A repair over the rate limit is delayed, not
// dropped, and gives up if anything else moved the client on meanwhile.
func (c *Client) repair(generation uint64) {
	if delay := c.limiter.Reserve().Delay(); delay > 0 {
		log.WithField("delay", delay).Debug("Re-pairing delayed by rate limit")
		timer := time.NewTimer(delay)
		<-timer.C
	}

	c.mu.Lock()
	stale := c.state != StateNoSession || c.generation != generation
	c.mu.Unlock()
	if stale {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), repairTimeout)
	defer cancel()

	if _, err := c.Pair(ctx); err != nil {
		log.WithError(err).Warn("Could not re-initiate pairing")
	}
}

// reset must be called with mu held.
func (c *Client) reset() {
	c.state = StateNoSession
	c.generation++
	c.uri = ""
	c.approval = nil
	c.approvalTaken = false
	c.session = ports.RemoteSession{}
	c.chains = map[domain.Namespace]string{}
}

func (c *Client) emit(ev Event) {
	c.subMu.Lock()
	ids := make([]int, 0, len(c.subscribers))
	for id := range c.subscribers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	subscribers := make([]func(Event), 0, len(ids))
	for _, id := range ids {
		subscribers = append(subscribers, c.subscribers[id])
	}
	c.subMu.Unlock()

	for _, fn := range subscribers {
		fn(ev)
	}
}

func initialChains(session ports.RemoteSession) map[domain.Namespace]string {
	chains := make(map[domain.Namespace]string, len(session.Namespaces))
	for ns, namespace := range session.Namespaces {
		if len(namespace.Chains) > 0 {
			chains[ns] = namespace.Chains[0]
			continue
		}
		// Chains may only be implied by accounts (namespace:reference:address).
		for _, account := range namespace.Accounts {
			if parts := strings.SplitN(account, ":", 3); len(parts) == 3 {
				chains[ns] = parts[0] + ":" + parts[1]
				break
			}
		}
	}
	return chains
}

func negotiatedNamespaces(session ports.RemoteSession) []string {
	names := make([]string, 0, len(session.Namespaces))
	for ns := range session.Namespaces {
		names = append(names, string(ns))
	}
	sort.Strings(names)
	return names
}

func classify(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	var rpcErr *ports.RPCError
	if errors.As(err, &rpcErr) {
		switch rpcErr.Code {
		case ports.RPCCodeUserRejected, rpcCodeSessionRejected:
			return domain.Wrap(domain.ErrUserCancelled, op, err)
		case ports.RPCCodeUnsupported:
			return domain.Wrap(domain.ErrUnsupportedOperation, op, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
