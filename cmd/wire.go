package cmd

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/bnema/keystamp/internal/adapters/api"
	statusadapter "github.com/bnema/keystamp/internal/adapters/render/status"
	tomlrepo "github.com/bnema/keystamp/internal/adapters/repo/toml"
	"github.com/bnema/keystamp/internal/adapters/stamp/apikey"
	"github.com/bnema/keystamp/internal/adapters/stamp/passkey"
	walletstamp "github.com/bnema/keystamp/internal/adapters/stamp/wallet"
	"github.com/bnema/keystamp/internal/adapters/wallet/discovery"
	"github.com/bnema/keystamp/internal/adapters/wallet/ethereum"
	"github.com/bnema/keystamp/internal/adapters/wallet/softwallet"
	"github.com/bnema/keystamp/internal/adapters/wallet/solana"
	"github.com/bnema/keystamp/internal/adapters/wallet/walletconnect"
	"github.com/bnema/keystamp/internal/adapters/wallet/walletconnect/relay"
	"github.com/bnema/keystamp/internal/application"
	"github.com/bnema/keystamp/internal/config"
	"github.com/bnema/keystamp/internal/logging"
	"github.com/bnema/keystamp/internal/metrics"
	"github.com/bnema/keystamp/internal/platform"
	"github.com/bnema/keystamp/internal/ports"
	"github.com/spf13/viper"
)

const relyingPartyName = "keystamp"

type app struct {
	cfg            config.Config
	platform       platform.Kind
	metrics        *metrics.Recorder
	sessions       *application.SessionService
	wallets        *application.WalletConnector
	pairing        *walletconnect.Client
	statusRenderer func(statusadapter.Report, statusadapter.RenderOptions) (string, error)
	now            func() time.Time
	closers        []func() error
}

func (a *app) wire(opts *rootOptions, errOut io.Writer) error {
	v := viper.New()
	cfg, err := config.Load(v, opts.configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level, format := cfg.Log.Level, cfg.Log.Format
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	if opts.logFormat != "" {
		format = opts.logFormat
	}
	if err := logging.Configure(level, format, os.Stderr); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}

	kind, err := platform.Parse(cfg.Platform)
	if err != nil {
		return fmt.Errorf("wire platform: %w", err)
	}
	openBrowser := func(url string) error {
		_, err := fmt.Fprintf(errOut, "Open %s in a browser to use your passkey\n", url)
		return err
	}
	caps, err := platform.Resolve(platform.Options{
		Kind:          kind,
		KeysDir:       cfg.Keys.Dir,
		KeysNamespace: cfg.Keys.Namespace,
		DeviceSecret:  cfg.Keys.DeviceSecret,
		SecretsDir:    cfg.Keys.SecretsDir,
		PasskeyHelper: cfg.Passkey.Helper,
		Origin:        cfg.PasskeyOrigin(),

		Ceremony:        cfg.Passkey.Ceremony,
		CeremonyTimeout: cfg.Passkey.Timeout,
		OpenBrowser:     openBrowser,
	})
	if err != nil {
		return fmt.Errorf("wire platform: %w", err)
	}

	// The repository resolves its own defaults; pin the path chosen above.
	v.Set(config.KeySessionsPath, cfg.Session.Path)
	sessions, err := tomlrepo.NewSessionRepository(v)
	if err != nil {
		return fmt.Errorf("wire session repository: %w", err)
	}

	recorder := metrics.New()
	keyStamper := apikey.NewStamper(caps.Keys, sessions)
	passkeyStamper := passkey.NewStamper(caps.Ceremony, passkey.Config{
		RPID:    cfg.Passkey.RPID,
		RPName:  relyingPartyName,
		Timeout: cfg.Passkey.Timeout,
	})

	interfaces, err := a.wireWallets(cfg, recorder)
	if err != nil {
		return err
	}
	walletStamper := walletstamp.NewStamper(recorder, interfaces...)

	client := api.Client{
		API:            api.API{BaseURL: cfg.API.BaseURL},
		HTTPClient:     &http.Client{},
		RequestTimeout: cfg.API.Timeout,
	}

	a.cfg = cfg
	a.platform = caps.Kind
	a.metrics = recorder
	a.sessions = application.NewSessionService(application.SessionDependencies{
		Keys:       caps.Keys,
		Sessions:   sessions,
		API:        client,
		KeyStamper: keyStamper,
		Passkey:    passkeyStamper,
		Wallet:     walletStamper,
		Metrics:    recorder,
	}, application.SessionConfig{
		OrganizationID:    cfg.API.OrganizationID,
		DefaultSessionKey: cfg.Session.DefaultKey,
		ExpirationSeconds: cfg.Session.ExpirationSeconds,
	})
	a.wallets = application.NewWalletConnector(walletStamper)
	a.statusRenderer = statusadapter.Render
	a.now = time.Now
	return nil
}

// wireWallets builds the injected-wallet interfaces and, when a relay is
// configured, the remote pairing interface.
func (a *app) wireWallets(cfg config.Config, recorder *metrics.Recorder) ([]ports.WalletInterface, error) {
	bus := discovery.NewBus()
	if cfg.Wallet.Mnemonic != "" {
		wallet, err := softwallet.New(cfg.Wallet.Mnemonic)
		if err != nil {
			return nil, fmt.Errorf("wire software wallet: %w", err)
		}
		unregister := wallet.Register(bus)
		a.closers = append(a.closers, func() error {
			unregister()
			return nil
		})
	}

	interfaces := []ports.WalletInterface{
		ethereum.NewInterface(bus, cfg.Wallet.DiscoveryWindow),
		solana.NewInterface(bus, cfg.Wallet.DiscoveryWindow),
	}

	if cfg.Wallet.RelayURL != "" {
		signClient := relay.New(cfg.Wallet.RelayURL, cfg.Wallet.ProjectID, relay.WithMetadata(relay.Metadata{
			Name:        relyingPartyName,
			Description: "keystamp session login",
		}))
		a.pairing = walletconnect.NewClient(signClient, walletconnect.Config{
			RepairInterval: cfg.Wallet.RepairInterval,
			Metrics:        recorder,
		})
		a.closers = append(a.closers, signClient.Close)
		interfaces = append(interfaces, walletconnect.NewInterface(a.pairing))
	}
	return interfaces, nil
}

func (a *app) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
