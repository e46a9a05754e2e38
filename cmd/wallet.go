package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bnema/keystamp/internal/domain"
	"github.com/bnema/keystamp/internal/logging"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

func newWalletCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Discover and connect external wallets",
	}

	cmd.AddCommand(
		newWalletProvidersCmd(app),
		newWalletConnectCmd(app),
		newWalletDisconnectCmd(app),
		newWalletSwitchCmd(app),
		newWalletPairCmd(app),
		newWalletAccountsCmd(app),
	)

	return cmd
}

// walletFlags select one provider among the discovered ones.
type walletFlags struct {
	iface  string
	wallet string
}

func (f *walletFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.iface, "interface", "", "Wallet interface (ethereum|solana|walletconnect)")
	cmd.Flags().StringVar(&f.wallet, "wallet", "", "Wallet name, rdns or uuid")
}

func (f walletFlags) interfaceType() (domain.InterfaceType, error) {
	if strings.TrimSpace(f.iface) == "" {
		return "", nil
	}
	return domain.ParseInterfaceType(strings.ToLower(strings.TrimSpace(f.iface)))
}

type providerOutput struct {
	Interface  domain.InterfaceType `json:"interface" yaml:"interface"`
	Name       string               `json:"name" yaml:"name"`
	RDNS       string               `json:"rdns,omitempty" yaml:"rdns,omitempty"`
	UUID       string               `json:"uuid,omitempty" yaml:"uuid,omitempty"`
	Chain      string               `json:"chain" yaml:"chain"`
	Addresses  []string             `json:"addresses,omitempty" yaml:"addresses,omitempty"`
	PairingURI string               `json:"pairingUri,omitempty" yaml:"pairingUri,omitempty"`
}

func newProviderOutput(p domain.WalletProvider) providerOutput {
	return providerOutput{
		Interface:  p.InterfaceType,
		Name:       p.Info.Name,
		RDNS:       p.Info.RDNS,
		UUID:       p.Info.UUID,
		Chain:      p.ChainInfo.CAIP2(),
		Addresses:  p.ConnectedAddresses,
		PairingURI: p.PairingURI,
	}
}

func newWalletProvidersCmd(app *app) *cobra.Command {
	var flags walletFlags
	var output string

	cmd := &cobra.Command{
		Use:   "providers",
		Short: "List the wallets that answer discovery",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := flags.interfaceType()
			if err != nil {
				return err
			}
			providers, err := app.wallets.Providers(cmd.Context(), filter)
			if err != nil {
				return err
			}

			out := make([]providerOutput, 0, len(providers))
			for _, provider := range providers {
				out = append(out, newProviderOutput(provider))
			}

			return writeOutput(cmd, output, out, func() error {
				if len(out) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no wallets found")
					return nil
				}
				for _, p := range out {
					detail := strings.Join(p.Addresses, ",")
					if p.PairingURI != "" {
						detail = p.PairingURI
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", p.Interface, p.Name, p.Chain, detail)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&flags.iface, "interface", "", "Only list wallets of this interface (ethereum|solana|walletconnect)")
	addOutputFlag(cmd, &output)

	return cmd
}

func newWalletConnectCmd(app *app) *cobra.Command {
	var flags walletFlags

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Connect a wallet and print the granted address",
		RunE: func(cmd *cobra.Command, _ []string) error {
			provider, err := connectWallet(cmd, app, flags)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n",
				providerLabel(provider), provider.ChainInfo.CAIP2(), provider.ConnectedAddresses[0])
			return err
		},
	}

	flags.register(cmd)

	return cmd
}

func newWalletDisconnectCmd(app *app) *cobra.Command {
	var flags walletFlags

	cmd := &cobra.Command{
		Use:   "disconnect",
		Short: "Disconnect a wallet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			provider, err := selectProvider(cmd, app, flags)
			if err != nil {
				return err
			}
			return app.wallets.Disconnect(cmd.Context(), provider)
		},
	}

	flags.register(cmd)

	return cmd
}

func newWalletSwitchCmd(app *app) *cobra.Command {
	var flags walletFlags
	var chain string

	cmd := &cobra.Command{
		Use:   "switch",
		Short: "Switch a connected wallet to another chain",
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := domain.ParseCAIP2(strings.TrimSpace(chain))
			if target.Namespace == "" || target.ChainID == "" {
				return fmt.Errorf("invalid chain %q: expected <namespace>:<reference>", chain)
			}

			provider, err := connectWallet(cmd, app, flags)
			if err != nil {
				return err
			}
			switched, err := app.wallets.SwitchChain(cmd.Context(), provider, domain.SwitchTarget{Chain: target})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", providerLabel(switched), switched.ChainInfo.CAIP2())
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&chain, "chain", "", "CAIP-2 chain id, for example eip155:137")
	_ = cmd.MarkFlagRequired("chain")

	return cmd
}

func newWalletPairCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pair",
		Short: "Pair a remote wallet through the relay",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.pairing == nil {
				return domain.Wrap(domain.ErrCredentialNotInitialized, "pair wallet", errors.New("wallet.relay_url is not configured"))
			}

			uri, err := app.pairing.Pair(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), uri)

			return awaitApproval(cmd.Context(), cmd.ErrOrStderr(), "Waiting for the wallet to approve the pairing...", func(ctx context.Context) error {
				session, err := app.pairing.Approve(ctx)
				if err != nil {
					return err
				}
				namespaces := make([]string, 0, len(session.Namespaces))
				for namespace := range session.Namespaces {
					namespaces = append(namespaces, string(namespace))
				}
				sort.Strings(namespaces)
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "paired with %s (%s)\n", session.PeerName, strings.Join(namespaces, ", "))
				return err
			})
		},
	}
}

type accountOutput struct {
	Kind    domain.WalletAccountKind `json:"kind" yaml:"kind"`
	Address string                   `json:"address" yaml:"address"`
	Wallet  string                   `json:"wallet,omitempty" yaml:"wallet,omitempty"`
}

func newWalletAccountsCmd(app *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List accounts exposed by connected wallets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			accounts, err := app.wallets.Accounts(cmd.Context(), nil, nil)
			if err != nil {
				return err
			}

			out := make([]accountOutput, 0, len(accounts))
			for _, account := range accounts {
				entry := accountOutput{Kind: account.Kind(), Address: account.AccountAddress()}
				switch a := account.(type) {
				case domain.ConnectedEthereumWalletAccount:
					entry.Wallet = providerLabel(a.Provider)
				case domain.ConnectedSolanaWalletAccount:
					entry.Wallet = providerLabel(a.Provider)
				case domain.EmbeddedWalletAccount:
					entry.Wallet = a.WalletID
				}
				out = append(out, entry)
			}

			return writeOutput(cmd, output, out, func() error {
				for _, entry := range out {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", entry.Kind, entry.Address, entry.Wallet)
				}
				return nil
			})
		},
	}

	addOutputFlag(cmd, &output)

	return cmd
}

// connectWallet selects a provider and connects it, printing the pairing URI
// first when the provider is a remote wallet awaiting pairing.
func connectWallet(cmd *cobra.Command, app *app, flags walletFlags) (domain.WalletProvider, error) {
	provider, err := selectProvider(cmd, app, flags)
	if err != nil {
		return domain.WalletProvider{}, err
	}
	if provider.PairingURI != "" {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Open this URI in your wallet:\n%s\n", provider.PairingURI)
	}

	var connected domain.WalletProvider
	err = awaitApproval(cmd.Context(), cmd.ErrOrStderr(), "Waiting for the wallet to approve the connection...", func(ctx context.Context) error {
		var err error
		connected, err = app.wallets.Connect(ctx, provider)
		return err
	})
	if err != nil {
		return domain.WalletProvider{}, err
	}
	if len(connected.ConnectedAddresses) == 0 {
		return domain.WalletProvider{}, domain.Wrap(domain.ErrNoCredentialAvailable, "connect wallet", fmt.Errorf("%s granted no address", providerLabel(connected)))
	}
	return connected, nil
}

func selectProvider(cmd *cobra.Command, app *app, flags walletFlags) (domain.WalletProvider, error) {
	filter, err := flags.interfaceType()
	if err != nil {
		return domain.WalletProvider{}, err
	}
	providers, err := app.wallets.Providers(cmd.Context(), filter)
	if err != nil {
		return domain.WalletProvider{}, err
	}

	matches := matchProviders(providers, flags.wallet)
	switch len(matches) {
	case 0:
		if flags.wallet != "" {
			return domain.WalletProvider{}, domain.Wrap(domain.ErrNoCredentialAvailable, "select wallet", fmt.Errorf("no wallet matches %q", flags.wallet))
		}
		return domain.WalletProvider{}, domain.Wrap(domain.ErrNoCredentialAvailable, "select wallet", errors.New("no wallet answered discovery"))
	case 1:
		return matches[0], nil
	}

	if !logging.IsTerminal(os.Stdin) {
		labels := make([]string, 0, len(matches))
		for _, p := range matches {
			labels = append(labels, providerLabel(p))
		}
		return domain.WalletProvider{}, fmt.Errorf("several wallets match, pass --interface or --wallet: %s", strings.Join(labels, ", "))
	}
	return promptProvider(matches)
}

func matchProviders(providers []domain.WalletProvider, wallet string) []domain.WalletProvider {
	wallet = strings.ToLower(strings.TrimSpace(wallet))
	if wallet == "" {
		return providers
	}

	var matches []domain.WalletProvider
	for _, p := range providers {
		for _, candidate := range []string{p.Info.Name, p.Info.RDNS, p.Info.UUID} {
			if candidate != "" && strings.ToLower(candidate) == wallet {
				matches = append(matches, p)
				break
			}
		}
	}
	return matches
}

func promptProvider(providers []domain.WalletProvider) (domain.WalletProvider, error) {
	items := make([]string, 0, len(providers))
	for _, p := range providers {
		items = append(items, fmt.Sprintf("%s (%s)", providerLabel(p), p.ChainInfo.CAIP2()))
	}

	prompt := promptui.Select{
		Label: "Select a wallet",
		Items: items,
	}
	index, _, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return domain.WalletProvider{}, domain.Wrap(domain.ErrUserCancelled, "select wallet", err)
		}
		return domain.WalletProvider{}, fmt.Errorf("select wallet: %w", err)
	}
	return providers[index], nil
}

func providerLabel(p domain.WalletProvider) string {
	name := p.Info.Name
	if name == "" {
		name = string(p.InterfaceType)
	}
	return fmt.Sprintf("%s/%s", p.InterfaceType, name)
}
