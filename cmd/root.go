package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configDir   string
	logLevel    string
	logFormat   string
	timeout     time.Duration
	dumpMetrics bool
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	return newRootCmdWithApp(&app{})
}

func newRootCmdWithApp(app *app) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "ks",
		Short:         "keystamp (ks): session keys and request stamps",
		Long:          "ks manages short-lived API key pairs and the sessions bound to them, and stamps requests with a key pair, a passkey or an external wallet.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.wire(opts, cmd.ErrOrStderr()); err != nil {
				return errors.Join(err, app.close())
			}
			if opts.timeout > 0 {
				ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
				app.closers = append(app.closers, func() error {
					cancel()
					return nil
				})
				cmd.SetContext(ctx)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if opts.dumpMetrics && app.metrics != nil {
				if err := app.metrics.WriteText(cmd.ErrOrStderr()); err != nil {
					return fmt.Errorf("write metrics: %w", err)
				}
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configDir, "config-dir", "", "Configuration directory (default ~/.keystamp)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (trace|debug|info|warn|error)")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format (text|json)")
	flags.DurationVar(&opts.timeout, "timeout", 0, "Abort the command after this duration (0 waits indefinitely)")
	flags.BoolVar(&opts.dumpMetrics, "metrics", false, "Print collected metrics to stderr when the command finishes")

	rootCmd.AddCommand(
		newVersionCmd(),
		newKeysCmd(app),
		newSessionCmd(app),
		newLoginCmd(app),
		newSignUpCmd(app),
		newWalletCmd(app),
		newStampCmd(app),
	)
	releaseAfterRun(rootCmd, app)

	return rootCmd
}

// releaseAfterRun closes app once the RunE of cmd or any of its descendants
// returns. cobra skips PersistentPostRunE after a failed RunE, so the hook
// cannot do it.
func releaseAfterRun(cmd *cobra.Command, app *app) {
	for _, child := range cmd.Commands() {
		releaseAfterRun(child, app)
	}
	if cmd.RunE == nil {
		return
	}

	run := cmd.RunE
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		if closeErr := app.close(); closeErr != nil {
			return errors.Join(err, fmt.Errorf("release resources: %w", closeErr))
		}
		return err
	}
}
