// Package platform picks the key pair store and passkey ceremony for the
// environment keystamp runs in.
package platform

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/keystamp/internal/adapters/auth"
	"github.com/bnema/keystamp/internal/adapters/keystore/enclave"
	"github.com/bnema/keystamp/internal/adapters/keystore/keychain"
	"github.com/bnema/keystamp/internal/adapters/secrets/chain"
	"github.com/bnema/keystamp/internal/adapters/secrets/file"
	"github.com/bnema/keystamp/internal/adapters/stamp/passkey"
	"github.com/bnema/keystamp/internal/domain"
	"github.com/bnema/keystamp/internal/ports"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "platform")

type Kind string

const (
	// Native keeps private keys in the OS secret store (pass, then files).
	Native Kind = "native"
	// Web keeps non-extractable keys in an encrypted enclave file.
	Web Kind = "web"
)

func Parse(value string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(value))) {
	case Native, "":
		return Native, nil
	case Web:
		return Web, nil
	default:
		return "", fmt.Errorf("unknown platform %q", value)
	}
}

type Options struct {
	Kind          Kind
	KeysDir       string
	KeysNamespace string
	DeviceSecret  string
	SecretsDir    string
	PasskeyHelper string
	Origin        string

	// Ceremony is software, helper or browser. Empty picks the helper on
	// native platforms when one is set and software otherwise.
	Ceremony        string
	CeremonyTimeout time.Duration
	// OpenBrowser shows the browser ceremony URL to the user.
	OpenBrowser func(url string) error
}

const (
	CeremonySoftware = "software"
	CeremonyHelper   = "helper"
	CeremonyBrowser  = "browser"
)

// Capabilities are the storage and ceremony primitives of one platform.
type Capabilities struct {
	Kind     Kind
	Keys     ports.KeyPairStore
	Ceremony passkey.Ceremony
	Secrets  ports.ListableSecretStore
}

func Resolve(opts Options) (Capabilities, error) {
	switch opts.Kind {
	case Native, "":
		return resolveNative(opts)
	case Web:
		return resolveWeb(opts)
	default:
		return Capabilities{}, fmt.Errorf("resolve platform: unknown platform %q", opts.Kind)
	}
}

func resolveNative(opts Options) (Capabilities, error) {
	secrets, err := chain.NewPassFirstWithFileFallback(opts.SecretsDir)
	if err != nil {
		return Capabilities{}, fmt.Errorf("open secret store: %w", err)
	}

	ceremony, err := resolveCeremony(opts, secrets, CeremonyHelper)
	if err != nil {
		return Capabilities{}, err
	}
	return Capabilities{
		Kind:     Native,
		Keys:     keychain.NewStore(secrets, opts.KeysNamespace),
		Ceremony: ceremony,
		Secrets:  secrets,
	}, nil
}

func resolveWeb(opts Options) (Capabilities, error) {
	if strings.TrimSpace(opts.DeviceSecret) == "" {
		return Capabilities{}, domain.Wrap(domain.ErrCredentialNotInitialized, "open enclave key store",
			errors.New("keys.device_secret is required on the web platform"))
	}

	keys, err := enclave.NewStore(opts.KeysDir, opts.DeviceSecret)
	if err != nil {
		return Capabilities{}, fmt.Errorf("open enclave key store: %w", err)
	}

	secrets := file.NewStore(opts.SecretsDir)
	ceremony, err := resolveCeremony(opts, secrets, CeremonySoftware)
	if err != nil {
		return Capabilities{}, err
	}
	return Capabilities{
		Kind:     Web,
		Keys:     keys,
		Ceremony: ceremony,
		Secrets:  secrets,
	}, nil
}

// resolveCeremony picks the passkey ceremony. preferred applies when none is
// named; a preferred helper falls back to software when no helper is set.
func resolveCeremony(opts Options, secrets ports.ListableSecretStore, preferred string) (passkey.Ceremony, error) {
	name := strings.ToLower(strings.TrimSpace(opts.Ceremony))
	helper := strings.TrimSpace(opts.PasskeyHelper)
	if name == "" {
		name = preferred
		if name == CeremonyHelper && helper == "" {
			name = CeremonySoftware
		}
	}

	switch name {
	case CeremonySoftware:
		return passkey.NewSoftware(secrets, opts.Origin), nil
	case CeremonyHelper:
		if helper == "" {
			return nil, domain.Wrap(domain.ErrCredentialNotInitialized, "resolve passkey ceremony",
				errors.New("passkey.helper is required for the helper ceremony"))
		}
		log.WithField("helper", helper).Debug("Using native passkey helper")
		return passkey.NewNativeCeremony(passkey.NewHelper(helper)), nil
	case CeremonyBrowser:
		log.Debug("Using browser passkey ceremony")
		return auth.NewBrowserCeremony(auth.Config{Timeout: opts.CeremonyTimeout, Open: opts.OpenBrowser}), nil
	default:
		return nil, fmt.Errorf("resolve passkey ceremony: unknown ceremony %q", opts.Ceremony)
	}
}
