package cmd

import (
	"context"

	"github.com/bnema/keystamp/internal/application"
	"github.com/bnema/keystamp/internal/domain"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Obtain a session bound to a fresh key pair",
	}

	cmd.AddCommand(
		newLoginKeyPairCmd(app),
		newLoginPasskeyCmd(app),
		newLoginWalletCmd(app),
	)

	return cmd
}

// loginFlags describe the session every login and sign-up flow produces.
type loginFlags struct {
	sessionKey     string
	organizationID string
	publicKey      string
	importFile     string
	expiration     int64
	invalidate     bool
}

func (f *loginFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.sessionKey, "session-key", "", "Store the session under this key (default: configured default session key)")
	cmd.Flags().StringVar(&f.organizationID, "organization", "", "Organization id (default: api.organization_id)")
	cmd.Flags().StringVar(&f.publicKey, "public-key", "", "Bind the session to this stored key pair instead of a new one")
	cmd.Flags().StringVar(&f.importFile, "import-file", "", "Bind the session to the hex P-256 private key in this file")
	cmd.Flags().Int64Var(&f.expiration, "expiration", 0, "Session lifetime in seconds (default: session.expiration_seconds)")
	cmd.Flags().BoolVar(&f.invalidate, "invalidate-existing", false, "Ask the server to invalidate other sessions of the user")
	cmd.MarkFlagsMutuallyExclusive("public-key", "import-file")
}

func (f loginFlags) command() (application.LoginCommand, error) {
	external, err := readExternalKeyPair(f.importFile)
	if err != nil {
		return application.LoginCommand{}, err
	}

	return application.LoginCommand{
		SessionKey:         f.sessionKey,
		OrganizationID:     f.organizationID,
		PublicKey:          f.publicKey,
		External:           external,
		ExpirationSeconds:  f.expiration,
		InvalidateExisting: f.invalidate,
	}, nil
}

func newLoginKeyPairCmd(app *app) *cobra.Command {
	var flags loginFlags
	var stampingKey string

	cmd := &cobra.Command{
		Use:   "keypair",
		Short: "Log in by stamping with a stored key pair (default: the active session's)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			login, err := flags.command()
			if err != nil {
				return err
			}

			session, err := app.sessions.LoginWithKeyPair(cmd.Context(), application.LoginWithKeyPairCommand{
				LoginCommand:      login,
				StampingPublicKey: stampingKey,
			})
			if err != nil {
				return err
			}
			return printSession(cmd, app, sessionKeyOrDefault(app, login.SessionKey), session)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&stampingKey, "stamping-key", "", "Public key of the stored key pair that stamps the login")

	return cmd
}

func newLoginPasskeyCmd(app *app) *cobra.Command {
	var flags loginFlags

	cmd := &cobra.Command{
		Use:   "passkey",
		Short: "Log in with a passkey assertion",
		RunE: func(cmd *cobra.Command, _ []string) error {
			login, err := flags.command()
			if err != nil {
				return err
			}

			var session domain.Session
			err = awaitPasskey(cmd.Context(), cmd.ErrOrStderr(), app, "Waiting for the passkey prompt...", func(ctx context.Context) error {
				var err error
				session, err = app.sessions.LoginWithPasskey(ctx, login)
				return err
			})
			if err != nil {
				return err
			}
			return printSession(cmd, app, sessionKeyOrDefault(app, login.SessionKey), session)
		},
	}

	flags.register(cmd)

	return cmd
}

func newLoginWalletCmd(app *app) *cobra.Command {
	var flags loginFlags
	var wallet walletFlags

	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Log in by signing with an external wallet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			login, err := flags.command()
			if err != nil {
				return err
			}
			provider, err := connectWallet(cmd, app, wallet)
			if err != nil {
				return err
			}

			var session domain.Session
			err = awaitApproval(cmd.Context(), cmd.ErrOrStderr(), "Waiting for the wallet signature...", func(ctx context.Context) error {
				var err error
				session, err = app.sessions.LoginWithWallet(ctx, application.LoginWithWalletCommand{
					LoginCommand: login,
					Provider:     provider,
				})
				return err
			})
			if err != nil {
				return err
			}
			return printSession(cmd, app, sessionKeyOrDefault(app, login.SessionKey), session)
		},
	}

	flags.register(cmd)
	wallet.register(cmd)

	return cmd
}
