package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bnema/keystamp/internal/application"
	"github.com/spf13/cobra"
)

type stampOutput struct {
	Header string `json:"header" yaml:"header"`
	Value  string `json:"value" yaml:"value"`
}

func newStampCmd(app *app) *cobra.Command {
	var source string
	var payload string
	var payloadFile string
	var publicKey string
	var wallet walletFlags
	var output string

	cmd := &cobra.Command{
		Use:   "stamp",
		Short: "Stamp a request body and print the header to send with it",
		Long:  "stamp signs the request body given with --payload, --payload-file or on stdin, and prints the stamp header.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			body, err := readPayload(cmd, payload, payloadFile)
			if err != nil {
				return err
			}

			stampCmd := application.StampCommand{
				Source:    application.StampSource(strings.ToLower(strings.TrimSpace(source))),
				Payload:   body,
				PublicKey: publicKey,
			}
			switch stampCmd.Source {
			case application.StampWithKeyPair, application.StampWithPasskey:
			case application.StampWithWallet:
				provider, err := connectWallet(cmd, app, wallet)
				if err != nil {
					return err
				}
				stampCmd.Provider = &provider
			default:
				return fmt.Errorf("unsupported stamp source %q", source)
			}

			stamp, err := app.sessions.Stamp(cmd.Context(), stampCmd)
			if err != nil {
				return err
			}

			out := stampOutput{Header: stamp.HeaderName, Value: stamp.HeaderValue}
			return writeOutput(cmd, output, out, func() error {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", out.Header, out.Value)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&source, "source", string(application.StampWithKeyPair), "Credential source (keypair|passkey|wallet)")
	cmd.Flags().StringVar(&payload, "payload", "", "Request body to stamp")
	cmd.Flags().StringVar(&payloadFile, "payload-file", "", "File holding the request body to stamp")
	cmd.Flags().StringVar(&publicKey, "public-key", "", "Stamp with this stored key pair instead of the active session's")
	wallet.register(cmd)
	addOutputFlag(cmd, &output)
	cmd.MarkFlagsMutuallyExclusive("payload", "payload-file")

	return cmd
}

func readPayload(cmd *cobra.Command, payload, payloadFile string) ([]byte, error) {
	switch {
	case payload != "":
		return []byte(payload), nil
	case payloadFile != "":
		body, err := os.ReadFile(payloadFile)
		if err != nil {
			return nil, fmt.Errorf("read payload file: %w", err)
		}
		return body, nil
	default:
		body, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read payload: %w", err)
		}
		if len(body) == 0 {
			return nil, errors.New("payload is empty: pass --payload, --payload-file or pipe it on stdin")
		}
		return body, nil
	}
}
