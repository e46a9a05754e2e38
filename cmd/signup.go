package cmd

import (
	"context"

	"github.com/bnema/keystamp/internal/application"
	"github.com/bnema/keystamp/internal/domain"
	"github.com/spf13/cobra"
)

func newSignUpCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a sub-organization and log into it",
	}

	cmd.AddCommand(newSignUpPasskeyCmd(app), newSignUpWalletCmd(app))

	return cmd
}

type signUpFlags struct {
	loginFlags
	userName         string
	userEmail        string
	organizationName string
}

func (f *signUpFlags) register(cmd *cobra.Command) {
	f.loginFlags.register(cmd)
	cmd.Flags().StringVar(&f.userName, "user-name", "", "Name of the root user")
	cmd.Flags().StringVar(&f.userEmail, "user-email", "", "Email of the root user")
	cmd.Flags().StringVar(&f.organizationName, "organization-name", "", "Name of the new sub-organization")
	_ = cmd.MarkFlagRequired("user-name")
}

func (f signUpFlags) command() (application.SignUpCommand, error) {
	login, err := f.loginFlags.command()
	if err != nil {
		return application.SignUpCommand{}, err
	}
	return application.SignUpCommand{
		LoginCommand:     login,
		UserName:         f.userName,
		UserEmail:        f.userEmail,
		OrganizationName: f.organizationName,
	}, nil
}

func newSignUpPasskeyCmd(app *app) *cobra.Command {
	var flags signUpFlags
	var passkeyName string

	cmd := &cobra.Command{
		Use:   "passkey",
		Short: "Sign up with a new passkey as the root authenticator",
		RunE: func(cmd *cobra.Command, _ []string) error {
			signUp, err := flags.command()
			if err != nil {
				return err
			}

			var session domain.Session
			err = awaitPasskey(cmd.Context(), cmd.ErrOrStderr(), app, "Waiting for the passkey registration...", func(ctx context.Context) error {
				var err error
				session, err = app.sessions.SignUpWithPasskey(ctx, application.SignUpWithPasskeyCommand{
					SignUpCommand: signUp,
					PasskeyName:   passkeyName,
				})
				return err
			})
			if err != nil {
				return err
			}
			return printSession(cmd, app, sessionKeyOrDefault(app, signUp.SessionKey), session)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&passkeyName, "passkey-name", "", "Display name of the new passkey")

	return cmd
}

func newSignUpWalletCmd(app *app) *cobra.Command {
	var flags signUpFlags
	var wallet walletFlags

	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Sign up with an external wallet as the root credential",
		RunE: func(cmd *cobra.Command, _ []string) error {
			signUp, err := flags.command()
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
				session, err = app.sessions.SignUpWithWallet(ctx, application.SignUpWithWalletCommand{
					SignUpCommand: signUp,
					Provider:      provider,
				})
				return err
			})
			if err != nil {
				return err
			}
			return printSession(cmd, app, sessionKeyOrDefault(app, signUp.SessionKey), session)
		},
	}

	flags.register(cmd)
	wallet.register(cmd)

	return cmd
}
