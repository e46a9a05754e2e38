package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/bnema/keystamp/internal/application"
	"github.com/bnema/keystamp/internal/domain"
	"github.com/spf13/cobra"
)

func newKeysCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage stored API key pairs",
	}

	cmd.AddCommand(
		newKeysListCmd(app),
		newKeysCreateCmd(app),
		newKeysDeleteCmd(app),
		newKeysPruneCmd(app),
	)

	return cmd
}

type keyPairOutput struct {
	PublicKey string   `json:"publicKey" yaml:"publicKey"`
	Sessions  []string `json:"sessions" yaml:"sessions"`
}

func newKeysListCmd(app *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List key pairs and the sessions bound to them",
		RunE: func(cmd *cobra.Command, _ []string) error {
			views, err := app.sessions.KeyPairs(cmd.Context())
			if err != nil {
				return err
			}

			out := make([]keyPairOutput, 0, len(views))
			for _, view := range views {
				out = append(out, keyPairOutput{PublicKey: view.PublicKey, Sessions: view.SessionKeys})
			}

			return writeOutput(cmd, output, out, func() error {
				for _, view := range views {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", view.PublicKey, sessionList(view))
				}
				return nil
			})
		},
	}

	addOutputFlag(cmd, &output)

	return cmd
}

func newKeysCreateCmd(app *app) *cobra.Command {
	var importFile string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Generate a key pair, or import one with --import-file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			external, err := readExternalKeyPair(importFile)
			if err != nil {
				return err
			}

			publicKey, err := app.sessions.CreateKeyPair(cmd.Context(), external)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), publicKey)
			return err
		},
	}

	cmd.Flags().StringVar(&importFile, "import-file", "", "File holding a hex P-256 private key to import")

	return cmd
}

func newKeysDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <public-key>",
		Short: "Delete a key pair that no session is bound to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.sessions.DeleteKeyPair(cmd.Context(), strings.TrimSpace(args[0]))
		},
	}
}

func newKeysPruneCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Delete every key pair no stored session is bound to",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deleted, err := app.sessions.ClearUnusedKeyPairs(cmd.Context())
			for _, publicKey := range deleted {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", publicKey)
			}
			if err != nil {
				return err
			}
			if len(deleted) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no unused key pairs")
			}
			return nil
		},
	}
}

func sessionList(view application.KeyPairView) string {
	if !view.Bound() {
		return "(unused)"
	}
	return strings.Join(view.SessionKeys, ",")
}

// readExternalKeyPair loads the private key to import. An empty path means
// the store generates the key.
func readExternalKeyPair(path string) (*domain.ExternalKeyPair, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}
	privateKey := strings.TrimSpace(string(raw))
	if privateKey == "" {
		return nil, fmt.Errorf("key file %s is empty", path)
	}
	return &domain.ExternalKeyPair{PrivateKey: privateKey}, nil
}
