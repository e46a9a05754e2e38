package cmd

import (
	"fmt"
	"time"

	statusadapter "github.com/bnema/keystamp/internal/adapters/render/status"
	"github.com/bnema/keystamp/internal/application"
	"github.com/bnema/keystamp/internal/domain"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage stored sessions",
	}

	cmd.AddCommand(
		newSessionListCmd(app),
		newSessionUseCmd(app),
		newSessionStatusCmd(app),
		newSessionRefreshCmd(app),
		newSessionLogoutCmd(app),
		newSessionClearCmd(app),
	)

	return cmd
}

// sessionOutput is the serialised form of a stored session. The token is
// never printed.
type sessionOutput struct {
	Key            string             `json:"key" yaml:"key"`
	Active         bool               `json:"active" yaml:"active"`
	PublicKey      string             `json:"publicKey" yaml:"publicKey"`
	OrganizationID string             `json:"organizationId,omitempty" yaml:"organizationId,omitempty"`
	UserID         string             `json:"userId,omitempty" yaml:"userId,omitempty"`
	SessionType    domain.SessionType `json:"sessionType,omitempty" yaml:"sessionType,omitempty"`
	ExpiresAt      time.Time          `json:"expiresAt" yaml:"expiresAt"`
	Expired        bool               `json:"expired" yaml:"expired"`
}

func newSessionOutput(view application.SessionView, now time.Time) sessionOutput {
	return sessionOutput{
		Key:            view.Key,
		Active:         view.Active,
		PublicKey:      view.Session.PublicKey,
		OrganizationID: view.Session.OrganizationID,
		UserID:         view.Session.UserID,
		SessionType:    view.Session.SessionType,
		ExpiresAt:      view.Session.ExpiresAt(),
		Expired:        view.Session.IsExpired(now),
	}
}

func newSessionListCmd(app *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			views, err := app.sessions.Sessions(cmd.Context())
			if err != nil {
				return err
			}

			now := app.now()
			out := make([]sessionOutput, 0, len(views))
			for _, view := range views {
				out = append(out, newSessionOutput(view, now))
			}

			return writeOutput(cmd, output, out, func() error {
				for _, view := range views {
					marker := " "
					if view.Active {
						marker = "*"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\t%s\n",
						marker, view.Key, domain.ShortKey(view.Session.PublicKey), expiryLabel(view.Session, now))
				}
				return nil
			})
		},
	}

	addOutputFlag(cmd, &output)

	return cmd
}

func newSessionUseCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "use <session-key>",
		Short: "Make a stored session the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.sessions.UseSession(cmd.Context(), args[0])
		},
	}
}

func newSessionStatusCmd(app *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show sessions, their lifetime and the key pairs behind them",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sessions, err := app.sessions.Sessions(cmd.Context())
			if err != nil {
				return err
			}
			keyPairs, err := app.sessions.KeyPairs(cmd.Context())
			if err != nil {
				return err
			}
			report := statusadapter.Report{Sessions: sessions, KeyPairs: keyPairs}

			return writeOutput(cmd, output, newStatusOutput(report, app.now()), func() error {
				rendered, err := app.statusRenderer(report, statusadapter.RenderOptions{Now: app.now()})
				if err != nil {
					return fmt.Errorf("render status: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
				return err
			})
		},
	}

	addOutputFlag(cmd, &output)

	return cmd
}

type statusOutput struct {
	Sessions []sessionOutput `json:"sessions" yaml:"sessions"`
	KeyPairs []keyPairOutput `json:"keyPairs" yaml:"keyPairs"`
}

func newStatusOutput(report statusadapter.Report, now time.Time) statusOutput {
	out := statusOutput{
		Sessions: make([]sessionOutput, 0, len(report.Sessions)),
		KeyPairs: make([]keyPairOutput, 0, len(report.KeyPairs)),
	}
	for _, view := range report.Sessions {
		out.Sessions = append(out.Sessions, newSessionOutput(view, now))
	}
	for _, view := range report.KeyPairs {
		out.KeyPairs = append(out.KeyPairs, keyPairOutput{PublicKey: view.PublicKey, Sessions: view.SessionKeys})
	}
	return out
}

func newSessionRefreshCmd(app *app) *cobra.Command {
	var sessionKey string
	var expiration int64
	var invalidate bool

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Rotate a session onto a fresh key pair",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.sessions.RefreshSession(cmd.Context(), application.RefreshSessionCommand{
				SessionKey:         sessionKey,
				ExpirationSeconds:  expiration,
				InvalidateExisting: invalidate,
			})
			if err != nil {
				return err
			}
			return printSession(cmd, app, sessionKeyOrDefault(app, sessionKey), session)
		},
	}

	cmd.Flags().StringVar(&sessionKey, "session-key", "", "Session to refresh (default: configured default session key)")
	cmd.Flags().Int64Var(&expiration, "expiration", 0, "Lifetime of the new session in seconds (default: current lifetime)")
	cmd.Flags().BoolVar(&invalidate, "invalidate-existing", false, "Ask the server to invalidate other sessions of the user")

	return cmd
}

func newSessionLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout [session-key]",
		Short: "Clear a session and delete its key pair",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionKey := ""
			if len(args) == 1 {
				sessionKey = args[0]
			}
			return app.sessions.Logout(cmd.Context(), sessionKey)
		},
	}
}

func newSessionClearCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear every session and delete their key pairs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.sessions.ClearAllSessions(cmd.Context())
		},
	}
}

func printSession(cmd *cobra.Command, app *app, sessionKey string, session domain.Session) error {
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "session %s bound to %s, %s\n",
		sessionKey, domain.ShortKey(session.PublicKey), expiryLabel(session, app.now()))
	return err
}

func expiryLabel(session domain.Session, now time.Time) string {
	if session.Expiry == 0 {
		return "no expiry"
	}
	if session.IsExpired(now) {
		return "expired " + humanize.RelTime(session.ExpiresAt(), now, "ago", "from now")
	}
	return "expires " + humanize.RelTime(session.ExpiresAt(), now, "ago", "from now")
}

func sessionKeyOrDefault(app *app, sessionKey string) string {
	if sessionKey != "" {
		return sessionKey
	}
	return app.cfg.Session.DefaultKey
}
