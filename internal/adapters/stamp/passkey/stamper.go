// Package passkey stamps requests with a WebAuthn assertion and registers new
// passkey credentials.
package passkey

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/keystamp/internal/domain"
	"github.com/bnema/keystamp/internal/ports"
	"github.com/sirupsen/logrus"
)

const (
	DefaultTimeout          = 5 * time.Minute
	DefaultUserVerification = "preferred"
	algES256                = -7
)

var log = logrus.WithField("prefix", "passkey")

// Platform error texts that mean the user dismissed the prompt.
var cancellationMarkers = []string{
	"NotAllowedError",
	"The operation either timed out or was not allowed",
	"UserCancelled",
	"cancelled",
}

type Config struct {
	RPID             string
	RPName           string
	Timeout          time.Duration
	UserVerification string
	AllowCredentials []ports.CredentialDescriptor
}

// Ceremony runs the platform side of get/create. The web and native variants
// differ only in transport.
type Ceremony interface {
	Get(ctx context.Context, opts ports.CredentialRequestOptions) (ports.AssertionResponse, error)
	Create(ctx context.Context, opts ports.CredentialCreationOptions) (ports.AttestationResponse, error)
}

var _ Ceremony = (ports.WebCredentials)(nil)

type Stamper struct {
	cfg      Config
	ceremony Ceremony
}

var _ ports.PasskeyStamper = (*Stamper)(nil)

func NewStamper(ceremony Ceremony, cfg Config) *Stamper {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserVerification == "" {
		cfg.UserVerification = DefaultUserVerification
	}
	if cfg.RPName == "" {
		cfg.RPName = cfg.RPID
	}

	return &Stamper{cfg: cfg, ceremony: ceremony}
}

func (s *Stamper) Stamp(ctx context.Context, payload []byte) (domain.Stamp, error) {
	if s == nil || s.ceremony == nil {
		return domain.Stamp{}, domain.Wrap(domain.ErrCredentialNotInitialized, "stamp with passkey", errors.New("passkey ceremony is not configured"))
	}

	assertion, err := s.ceremony.Get(ctx, ports.CredentialRequestOptions{
		Challenge:        payloadChallenge(payload),
		RPID:             s.cfg.RPID,
		TimeoutMillis:    s.cfg.Timeout.Milliseconds(),
		UserVerification: s.cfg.UserVerification,
		AllowCredentials: s.cfg.AllowCredentials,
	})
	if err != nil {
		return domain.Stamp{}, classify("passkey assertion", err)
	}

	return domain.NewWebauthnStamp(domain.WebauthnStamp{
		CredentialID:      assertion.CredentialID,
		AuthenticatorData: assertion.AuthenticatorData,
		ClientDataJSON:    assertion.ClientDataJSON,
		Signature:         assertion.Signature,
	})
}

// CreateCredential registers a passkey named name. An empty challenge is
// replaced with a random one, which is returned alongside the attestation.
func (s *Stamper) CreateCredential(ctx context.Context, name string, challenge string) (domain.CreatedCredential, error) {
	if s == nil || s.ceremony == nil {
		return domain.CreatedCredential{}, domain.Wrap(domain.ErrCredentialNotInitialized, "create passkey", errors.New("passkey ceremony is not configured"))
	}

	if challenge == "" {
		generated, err := NewChallenge()
		if err != nil {
			return domain.CreatedCredential{}, fmt.Errorf("generate passkey challenge: %w", err)
		}
		challenge = generated
	}

	userID := make([]byte, 16)
	if _, err := rand.Read(userID); err != nil {
		return domain.CreatedCredential{}, fmt.Errorf("generate passkey user id: %w", err)
	}

	attestation, err := s.ceremony.Create(ctx, ports.CredentialCreationOptions{
		Challenge:        challenge,
		RP:               ports.RelyingParty{ID: s.cfg.RPID, Name: s.cfg.RPName},
		User:             ports.CredentialUser{ID: base64.RawURLEncoding.EncodeToString(userID), Name: name, DisplayName: name},
		PubKeyCredParams: []ports.CredentialParameter{{Type: "public-key", Alg: algES256}},
		TimeoutMillis:    s.cfg.Timeout.Milliseconds(),
		UserVerification: s.cfg.UserVerification,
	})
	if err != nil {
		return domain.CreatedCredential{}, classify("passkey registration", err)
	}

	log.WithField("credentialId", attestation.CredentialID).Debug("Created passkey")
	return domain.CreatedCredential{
		EncodedChallenge: challenge,
		Attestation: domain.Attestation{
			CredentialID:      attestation.CredentialID,
			ClientDataJSON:    attestation.ClientDataJSON,
			AttestationObject: attestation.AttestationObject,
			Transports:        attestation.Transports,
		},
	}, nil
}

func classify(op string, err error) error {
	var kinded *domain.Error
	if errors.As(err, &kinded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	if isCancellation(err) {
		return domain.Wrap(domain.ErrUserCancelled, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isCancellation(err error) bool {
	if errors.Is(err, domain.ErrUserCancelled) {
		return true
	}
	msg := err.Error()
	for _, marker := range cancellationMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
