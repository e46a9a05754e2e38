// Package relay implements ports.SignClient as JSON-RPC over a websocket
// relay connection.
package relay

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/bnema/keystamp/internal/domain"
	"github.com/bnema/keystamp/internal/ports"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "relay")

const (
	maxReadBytes = 1 << 20

	methodPropose    = "wc_sessionPropose"
	methodSettle     = "wc_sessionSettle"
	methodReject     = "wc_sessionReject"
	methodRequest    = "wc_sessionRequest"
	methodDelete     = "wc_sessionDelete"
	methodUpdate     = "wc_sessionUpdate"
	methodEvent      = "wc_sessionEvent"
	methodDisconnect = "wc_sessionDisconnect"
)

var ErrClosed = errors.New("relay connection closed")

type Metadata struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
}

type message struct {
	ID      string          `json:"id,omitempty"`
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *ports.RPCError `json:"error,omitempty"`
}

type wireNamespace struct {
	Chains   []string `json:"chains,omitempty"`
	Accounts []string `json:"accounts,omitempty"`
	Methods  []string `json:"methods,omitempty"`
	Events   []string `json:"events,omitempty"`
}

type proposeParams struct {
	PairingTopic       string                   `json:"pairingTopic"`
	RequiredNamespaces map[string]wireNamespace `json:"requiredNamespaces"`
	Proposer           Metadata                 `json:"proposer"`
}

type settleParams struct {
	PairingTopic string                   `json:"pairingTopic"`
	Topic        string                   `json:"topic"`
	Namespaces   map[string]wireNamespace `json:"namespaces"`
	Peer         Metadata                 `json:"peer"`
	Expiry       int64                    `json:"expiry"`
}

type rejectParams struct {
	PairingTopic string         `json:"pairingTopic"`
	Error        ports.RPCError `json:"error"`
}

type sessionRequest struct {
	Method string `json:"method"`
	Params any    `json:"params"`
}

type requestParams struct {
	Topic   string         `json:"topic"`
	ChainID string         `json:"chainId"`
	Request sessionRequest `json:"request"`
}

type topicParams struct {
	Topic      string                   `json:"topic"`
	ChainID    string                   `json:"chainId,omitempty"`
	Namespaces map[string]wireNamespace `json:"namespaces,omitempty"`
	Event      *struct {
		Name string          `json:"name"`
		Data json.RawMessage `json:"data,omitempty"`
	} `json:"event,omitempty"`
}

type settlement struct {
	session ports.RemoteSession
	err     error
}

// Client dials lazily on first use and redials after the connection drops.
// Settlements that arrive while nobody waits on them are kept until the
// approval is awaited.
type Client struct {
	url       string
	projectID string
	metadata  Metadata
	header    http.Header

	mu       sync.Mutex
	conn     *websocket.Conn
	cancel   context.CancelFunc
	pending  map[string]chan message
	settles  map[string]chan settlement
	handlers []func(ports.SignClientEvent)
}

var _ ports.SignClient = (*Client)(nil)

type Option func(*Client)

func WithMetadata(metadata Metadata) Option {
	return func(c *Client) {
		c.metadata = metadata
	}
}

func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.header.Set(key, value)
	}
}

func New(relayURL, projectID string, opts ...Option) *Client {
	c := &Client{
		url:       strings.TrimSpace(relayURL),
		projectID: strings.TrimSpace(projectID),
		metadata:  Metadata{Name: "keystamp"},
		header:    http.Header{},
		pending:   map[string]chan message{},
		settles:   map[string]chan settlement{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) OnEvent(handler func(ports.SignClientEvent)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, handler)
}

// Propose publishes a pairing on a fresh topic and returns the URI a wallet
// scans to join it.
func (c *Client) Propose(ctx context.Context, namespaces []ports.NamespaceProposal) (ports.PairingProposal, error) {
	topic, err := randomHex(32)
	if err != nil {
		return ports.PairingProposal{}, fmt.Errorf("generate pairing topic: %w", err)
	}

	required := make(map[string]wireNamespace, len(namespaces))
	for _, ns := range namespaces {
		required[string(ns.Namespace)] = wireNamespace{Chains: ns.Chains, Methods: ns.Methods, Events: ns.Events}
	}

	settled := make(chan settlement, 1)
	c.mu.Lock()
	c.settles[topic] = settled
	c.mu.Unlock()

	params := proposeParams{PairingTopic: topic, RequiredNamespaces: required, Proposer: c.metadata}
	if _, err := c.call(ctx, methodPropose, params); err != nil {
		c.dropSettle(topic)
		return ports.PairingProposal{}, fmt.Errorf("propose session: %w", err)
	}

	// Payloads travel unencrypted, so the URI carries the topic and no key.
	uri := fmt.Sprintf("wc:%s@2", topic)

	return ports.PairingProposal{
		URI: uri,
		Approval: func(ctx context.Context) (ports.RemoteSession, error) {
			defer c.dropSettle(topic)

			select {
			case s := <-settled:
				return s.session, s.err
			case <-ctx.Done():
				return ports.RemoteSession{}, ctx.Err()
			}
		},
	}, nil
}

func (c *Client) Request(ctx context.Context, topic string, chainID string, method string, params any) (json.RawMessage, error) {
	return c.call(ctx, methodRequest, requestParams{
		Topic:   topic,
		ChainID: chainID,
		Request: sessionRequest{Method: method, Params: params},
	})
}

func (c *Client) Disconnect(ctx context.Context, topic string) error {
	_, err := c.call(ctx, methodDisconnect, topicParams{Topic: topic})
	return err
}

// Close drops the connection. Pending calls fail with ErrClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn == nil {
		return nil
	}
	err := conn.Close(websocket.StatusNormalClosure, "bye")
	c.connectionLost(conn)
	return err
}

func (c *Client) call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	conn, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	rawParams, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("encode %s params: %w", method, err)
	}

	id := uuid.NewString()
	reply := make(chan message, 1)
	c.mu.Lock()
	c.pending[id] = reply
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	if err := wsjson.Write(ctx, conn, message{ID: id, JSONRPC: "2.0", Method: method, Params: rawParams}); err != nil {
		return nil, fmt.Errorf("send %s: %w", method, err)
	}

	select {
	case msg, ok := <-reply:
		if !ok {
			return nil, ErrClosed
		}
		if msg.Error != nil {
			return nil, msg.Error
		}
		return msg.Result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Client) connect(ctx context.Context) (*websocket.Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return c.conn, nil
	}
	if c.url == "" {
		return nil, domain.Wrap(domain.ErrCredentialNotInitialized, "connect relay", errors.New("relay url is not configured"))
	}

	target, err := dialURL(c.url, c.projectID)
	if err != nil {
		return nil, err
	}

	conn, _, err := websocket.Dial(ctx, target, &websocket.DialOptions{HTTPHeader: c.header})
	if err != nil {
		return nil, fmt.Errorf("dial relay: %w", err)
	}
	conn.SetReadLimit(maxReadBytes)

	readCtx, cancel := context.WithCancel(context.Background())
	c.conn = conn
	c.cancel = cancel
	go c.readLoop(readCtx, conn)

	log.Debug("Relay connected")
	return conn, nil
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) {
	defer c.connectionLost(conn)

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == -1 && ctx.Err() == nil {
				log.WithError(err).Debug("Relay read failed")
			}
			return
		}

		var msg message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.WithError(err).Warn("Ignoring malformed relay message")
			continue
		}

		if msg.Method == "" {
			c.deliver(msg)
			continue
		}
		c.notify(msg)
	}
}

func (c *Client) deliver(msg message) {
	c.mu.Lock()
	defer c.mu.Unlock()

	reply, ok := c.pending[msg.ID]
	if !ok {
		return
	}
	select {
	case reply <- msg:
	default:
	}
}

func (c *Client) notify(msg message) {
	switch msg.Method {
	case methodSettle:
		var p settleParams
		if err := json.Unmarshal(msg.Params, &p); err != nil {
			log.WithError(err).Warn("Ignoring malformed settlement")
			return
		}
		c.settle(p.PairingTopic, settlement{session: ports.RemoteSession{
			Topic:      p.Topic,
			Namespaces: fromWire(p.Namespaces),
			PeerName:   p.Peer.Name,
			Expiry:     p.Expiry,
		}})

	case methodReject:
		var p rejectParams
		if err := json.Unmarshal(msg.Params, &p); err != nil {
			log.WithError(err).Warn("Ignoring malformed rejection")
			return
		}
		rpcErr := p.Error
		c.settle(p.PairingTopic, settlement{err: &rpcErr})

	case methodDelete, methodUpdate, methodEvent:
		var p topicParams
		if err := json.Unmarshal(msg.Params, &p); err != nil {
			log.WithError(err).Warn("Ignoring malformed session notification")
			return
		}

		ev := ports.SignClientEvent{Topic: p.Topic}
		switch {
		case msg.Method == methodDelete:
			ev.Kind = ports.SignClientSessionDelete
		case msg.Method == methodUpdate:
			ev.Kind = ports.SignClientSessionUpdate
			ev.Namespaces = fromWire(p.Namespaces)
		case p.Event != nil && p.Event.Name == "chainChanged":
			ev.Kind = ports.SignClientChainChanged
			ev.ChainID = p.ChainID
		default:
			return
		}
		c.emit(ev)

	default:
		log.WithField("method", msg.Method).Debug("Ignoring relay notification")
	}
}

func (c *Client) settle(pairingTopic string, s settlement) {
	c.mu.Lock()
	settled, ok := c.settles[pairingTopic]
	c.mu.Unlock()
	if !ok {
		log.Debug("Settlement for unknown pairing")
		return
	}

	select {
	case settled <- s:
	default:
	}
}

func (c *Client) emit(ev ports.SignClientEvent) {
	c.mu.Lock()
	handlers := append([]func(ports.SignClientEvent){}, c.handlers...)
	c.mu.Unlock()

	for _, handler := range handlers {
		handler(ev)
	}
}

func (c *Client) dropSettle(topic string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.settles, topic)
}

func (c *Client) connectionLost(conn *websocket.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != conn {
		return
	}
	c.conn = nil
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	for id, reply := range c.pending {
		close(reply)
		delete(c.pending, id)
	}
	for topic, settled := range c.settles {
		select {
		case settled <- settlement{err: ErrClosed}:
		default:
		}
		delete(c.settles, topic)
	}
}

func dialURL(raw, projectID string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse relay url: %w", err)
	}
	switch u.Scheme {
	case "ws", "wss", "http", "https":
	default:
		return "", fmt.Errorf("parse relay url: unsupported scheme %q", u.Scheme)
	}
	if projectID != "" {
		q := u.Query()
		q.Set("projectId", projectID)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func fromWire(in map[string]wireNamespace) map[domain.Namespace]ports.RemoteNamespace {
	out := make(map[domain.Namespace]ports.RemoteNamespace, len(in))
	for name, ns := range in {
		out[domain.Namespace(name)] = ports.RemoteNamespace{Chains: ns.Chains, Accounts: ns.Accounts, Methods: ns.Methods}
	}
	return out
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
