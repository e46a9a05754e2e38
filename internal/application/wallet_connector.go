package application

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/bnema/keystamp/internal/domain"
	"github.com/bnema/keystamp/internal/ports"
	"github.com/sirupsen/logrus"
)

// WalletConnector discovers and connects external wallets through the
// interfaces held by a WalletStamper. A connected provider becomes the
// stamper's active provider.
type WalletConnector struct {
	stamper ports.WalletStamper
}

func NewWalletConnector(stamper ports.WalletStamper) *WalletConnector {
	return &WalletConnector{stamper: stamper}
}

// Providers lists the wallets visible through every configured interface, or
// only through filter when it is set. Interfaces that fail are skipped unless
// none succeeds.
func (c *WalletConnector) Providers(ctx context.Context, filter domain.InterfaceType) ([]domain.WalletProvider, error) {
	interfaces, err := c.interfaces(filter)
	if err != nil {
		return nil, err
	}

	var (
		providers []domain.WalletProvider
		errs      []error
	)
	for _, iface := range interfaces {
		found, err := iface.Providers(ctx)
		if err != nil {
			log.WithError(err).WithField("interface", iface.Type()).Warn("Failed to list wallet providers")
			errs = append(errs, fmt.Errorf("list %s providers: %w", iface.Type(), err))
			continue
		}
		providers = append(providers, found...)
	}

	if len(providers) == 0 && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return providers, nil
}

// Connect asks the wallet for access and returns provider with the granted
// address first.
func (c *WalletConnector) Connect(ctx context.Context, provider domain.WalletProvider) (domain.WalletProvider, error) {
	iface, err := c.interfaceFor(provider)
	if err != nil {
		return domain.WalletProvider{}, err
	}

	address, err := iface.Connect(ctx, provider)
	if err != nil {
		return domain.WalletProvider{}, fmt.Errorf("connect %s: %w", providerName(provider), err)
	}
	if address != "" {
		provider.ConnectedAddresses = withPrimary(provider.ConnectedAddresses, address)
	}
	provider.PairingURI = ""

	c.stamper.SetActiveProvider(provider)
	log.WithFields(logrus.Fields{
		"wallet":  providerName(provider),
		"address": address,
	}).Info("Connected wallet")
	return provider, nil
}

func (c *WalletConnector) Disconnect(ctx context.Context, provider domain.WalletProvider) error {
	iface, err := c.interfaceFor(provider)
	if err != nil {
		return err
	}

	if err := iface.Disconnect(ctx, provider); err != nil {
		return fmt.Errorf("disconnect %s: %w", providerName(provider), err)
	}

	if active, ok := c.stamper.ActiveProvider(); ok && sameProvider(active, provider) {
		c.stamper.ClearActiveProvider()
	}
	return nil
}

// SwitchChain moves provider to target. Interfaces without chain switching
// report domain.ErrUnsupportedOperation.
func (c *WalletConnector) SwitchChain(ctx context.Context, provider domain.WalletProvider, target domain.SwitchTarget) (domain.WalletProvider, error) {
	iface, err := c.interfaceFor(provider)
	if err != nil {
		return domain.WalletProvider{}, err
	}

	switcher, ok := iface.(ports.ChainSwitcher)
	if !ok {
		return domain.WalletProvider{}, domain.Wrap(domain.ErrUnsupportedOperation, "switch chain", fmt.Errorf("%s wallets cannot switch chains", iface.Type()))
	}
	if err := switcher.SwitchChain(ctx, provider, target); err != nil {
		return domain.WalletProvider{}, fmt.Errorf("switch %s to %s: %w", providerName(provider), target.Chain.CAIP2(), err)
	}

	provider.ChainInfo = target.Chain
	if active, ok := c.stamper.ActiveProvider(); ok && sameProvider(active, provider) {
		c.stamper.SetActiveProvider(provider)
	}
	return provider, nil
}

// Accounts merges embedded accounts with one connected account per address of
// each connected provider. A nil providers slice discovers them first.
func (c *WalletConnector) Accounts(ctx context.Context, embedded []domain.EmbeddedWalletAccount, providers []domain.WalletProvider) ([]domain.WalletAccount, error) {
	if providers == nil {
		discovered, err := c.Providers(ctx, "")
		if err != nil {
			return nil, err
		}
		providers = discovered
	}

	accounts := make([]domain.WalletAccount, 0, len(embedded)+len(providers))
	for _, account := range embedded {
		accounts = append(accounts, account)
	}

	for _, provider := range providers {
		if len(provider.ConnectedAddresses) == 0 {
			continue
		}
		iface, err := c.interfaceFor(provider)
		if err != nil {
			return nil, err
		}
		for _, address := range provider.ConnectedAddresses {
			account, ok := connectedAccount(iface, provider, address)
			if !ok {
				log.WithField("namespace", provider.ChainInfo.Namespace).Debug("Skipping account on unknown namespace")
				continue
			}
			accounts = append(accounts, account)
		}
	}
	return accounts, nil
}

func (c *WalletConnector) interfaces(filter domain.InterfaceType) ([]ports.WalletInterface, error) {
	if c.stamper == nil {
		return nil, notInitialized("wallet connector", "wallet stamper")
	}
	if filter != "" {
		iface, err := c.stamper.Interface(filter)
		if err != nil {
			return nil, err
		}
		return []ports.WalletInterface{iface}, nil
	}

	interfaces := c.stamper.Interfaces()
	if len(interfaces) == 0 {
		return nil, notInitialized("wallet connector", "wallet interface")
	}
	return interfaces, nil
}

func (c *WalletConnector) interfaceFor(provider domain.WalletProvider) (ports.WalletInterface, error) {
	if c.stamper == nil {
		return nil, notInitialized("wallet connector", "wallet stamper")
	}
	return c.stamper.Interface(provider.InterfaceType)
}

func connectedAccount(iface ports.WalletInterface, provider domain.WalletProvider, address string) (domain.WalletAccount, bool) {
	provider.ConnectedAddresses = withPrimary(provider.ConnectedAddresses, address)

	sign := func(intent domain.SignIntent) func(context.Context, []byte) (string, error) {
		return func(ctx context.Context, payload []byte) (string, error) {
			return iface.Sign(ctx, payload, provider, intent)
		}
	}
	wallet := domain.ConnectedWallet{
		Address:                address,
		Provider:               provider,
		SignMessage:            sign(domain.IntentSignMessage),
		SignTransaction:        sign(domain.IntentSignTransaction),
		SignAndSendTransaction: sign(domain.IntentSignAndSendTransaction),
	}

	switch provider.ChainInfo.Namespace {
	case domain.NamespaceEIP155:
		return domain.ConnectedEthereumWalletAccount{ConnectedWallet: wallet}, true
	case domain.NamespaceSolana:
		return domain.ConnectedSolanaWalletAccount{ConnectedWallet: wallet}, true
	default:
		return nil, false
	}
}

func withPrimary(addresses []string, primary string) []string {
	out := make([]string, 0, len(addresses)+1)
	out = append(out, primary)
	for _, address := range addresses {
		if address != primary {
			out = append(out, address)
		}
	}
	return out
}

func sameProvider(a, b domain.WalletProvider) bool {
	if a.InterfaceType != b.InterfaceType {
		return false
	}
	if a.Info.UUID != "" || b.Info.UUID != "" {
		return a.Info.UUID == b.Info.UUID
	}
	return a.Info.Name == b.Info.Name && slices.Equal(a.ConnectedAddresses, b.ConnectedAddresses)
}

func providerName(p domain.WalletProvider) string {
	if p.Info.Name != "" {
		return p.Info.Name
	}
	return string(p.InterfaceType)
}
