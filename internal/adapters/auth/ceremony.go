package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bnema/keystamp/internal/ports"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "auth")

const DefaultTimeout = 5 * time.Minute

type Config struct {
	// ListenAddr defaults to an ephemeral loopback port.
	ListenAddr string
	Timeout    time.Duration
	// Open shows the ceremony URL to the user. It may print it or launch a
	// browser.
	Open func(url string) error
}

// BrowserCeremony runs navigator.credentials in the user's browser.
type BrowserCeremony struct {
	cfg Config
}

var _ ports.WebCredentials = (*BrowserCeremony)(nil)

func NewBrowserCeremony(cfg Config) *BrowserCeremony {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &BrowserCeremony{cfg: cfg}
}

func (b *BrowserCeremony) Get(ctx context.Context, opts ports.CredentialRequestOptions) (ports.AssertionResponse, error) {
	var assertion ports.AssertionResponse
	if err := b.run(ctx, ceremonyRequest{Kind: kindGet, Options: opts}, &assertion); err != nil {
		return ports.AssertionResponse{}, err
	}
	return assertion, nil
}

func (b *BrowserCeremony) Create(ctx context.Context, opts ports.CredentialCreationOptions) (ports.AttestationResponse, error) {
	var attestation ports.AttestationResponse
	if err := b.run(ctx, ceremonyRequest{Kind: kindCreate, Options: opts}, &attestation); err != nil {
		return ports.AttestationResponse{}, err
	}
	return attestation, nil
}

func (b *BrowserCeremony) run(ctx context.Context, request ceremonyRequest, out any) error {
	state, err := NewState()
	if err != nil {
		return fmt.Errorf("generate ceremony state: %w", err)
	}

	server, err := StartCallbackServer(b.cfg.ListenAddr, state, request)
	if err != nil {
		return err
	}
	defer func() { _ = server.Close() }()

	log.WithField("kind", request.Kind).Debug("Waiting for browser passkey ceremony")
	if b.cfg.Open != nil {
		if err := b.cfg.Open(server.URL()); err != nil {
			return fmt.Errorf("open ceremony page: %w", err)
		}
	}

	raw, err := server.WaitForResponse(ctx, b.cfg.Timeout)
	if err != nil {
		return fmt.Errorf("browser passkey %s: %w", request.Kind, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode browser passkey %s: %w", request.Kind, err)
	}
	return nil
}
