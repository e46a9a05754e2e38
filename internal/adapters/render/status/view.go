package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/keystamp/internal/application"
	"github.com/bnema/keystamp/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Now time.Time
}

const barWidth = 24

func renderView(report Report, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Keystamp Sessions"),
		s.header.Render(fmt.Sprintf("sessions: %d  key pairs: %d", len(report.Sessions), len(report.KeyPairs))),
	}

	if len(report.Sessions) == 0 {
		lines = append(lines, s.empty.Render("No stored sessions."))
	}
	for _, view := range report.Sessions {
		lines = append(lines, s.section.Render(renderSession(view, opts, s)))
	}

	if len(report.KeyPairs) > 0 {
		keyLines := []string{s.title.Render("Key pairs")}
		for _, view := range report.KeyPairs {
			keyLines = append(keyLines, renderKeyPair(view, s))
		}
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, keyLines...)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderSession(view application.SessionView, opts RenderOptions, s styles) string {
	title := s.session.Render(view.Key)
	if view.Active {
		title = lipgloss.JoinHorizontal(lipgloss.Top, title, " ", s.active.Render("(active)"))
	}

	session := view.Session
	parts := []string{
		title,
		s.detail.Render(fmt.Sprintf("organization: %s", orDash(session.OrganizationID))),
		s.detail.Render(fmt.Sprintf("user: %s  type: %s", orDash(session.UserID), sessionTypeLabel(session.SessionType))),
		s.detail.Render(fmt.Sprintf("public key: %s", domain.ShortKey(session.PublicKey))),
		lifetimeLine(session, opts, s),
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderKeyPair(view application.KeyPairView, s styles) string {
	key := s.key.Render(domain.ShortKey(view.PublicKey))
	if !view.Bound() {
		return lipgloss.JoinHorizontal(lipgloss.Top, key, " ", s.warning.Render("[unbound]"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, key, " ", s.meta.Render("-> "+strings.Join(view.SessionKeys, ", ")))
}

func lifetimeLine(session domain.Session, opts RenderOptions, s styles) string {
	if session.Expiry == 0 {
		return s.meta.Render("expiry: unknown")
	}
	if opts.Now.IsZero() {
		return s.meta.Render("expires " + session.ExpiresAt().Format(time.RFC3339))
	}
	if session.IsExpired(opts.Now) {
		return lipgloss.JoinHorizontal(lipgloss.Top,
			renderProgressBar(0, barWidth, s), " ", s.warning.Render("[expired]"))
	}

	left := remainingPercent(session, opts.Now)
	percentStyle := lipgloss.NewStyle().Foreground(interpolateColor(left, 0, 100))
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.key.Render("lifetime:"),
		" ",
		renderProgressBar(left, barWidth, s),
		" ",
		percentStyle.Render(fmt.Sprintf("%2.0f%% left", left)),
		" ",
		s.meta.Render(fmt.Sprintf("(%s)", formatExpiresRelative(session.ExpiresAt(), opts.Now))),
	)
}

func remainingPercent(session domain.Session, now time.Time) float64 {
	total := time.Duration(session.ExpirationSeconds) * time.Second
	if total <= 0 {
		return 100
	}
	return clampPercent(100 * session.TTL(now).Seconds() / total.Seconds())
}

func renderProgressBar(leftPercent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(leftPercent) / 100))
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func formatExpiresRelative(expiresAt, now time.Time) string {
	remaining := expiresAt.Sub(now)
	switch {
	case remaining < time.Minute:
		return fmt.Sprintf("expires in %ds (%s)", int(remaining.Seconds()), expiresAt.Format("15:04:05"))
	case remaining < time.Hour:
		minutes := int(math.Ceil(remaining.Minutes()))
		return fmt.Sprintf("expires in %d %s (%s)", minutes, plural(minutes, "minute"), expiresAt.Format("15:04"))
	case remaining < 24*time.Hour:
		hours := int(math.Ceil(remaining.Hours()))
		return fmt.Sprintf("expires in %d %s (%s)", hours, plural(hours, "hour"), expiresAt.Format("15:04"))
	default:
		days := int(math.Ceil(remaining.Hours() / 24))
		return fmt.Sprintf("expires in %d %s (%s)", days, plural(days, "day"), expiresAt.Format("15:04 on 02 Jan"))
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}

func sessionTypeLabel(t domain.SessionType) string {
	switch t {
	case domain.SessionTypeReadOnly:
		return "read-only"
	case domain.SessionTypeReadWrite:
		return "read-write"
	default:
		return "unknown"
	}
}

func orDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}

// interpolateColor maps value onto the 240..255 greyscale ramp.
func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	return lipgloss.Color(fmt.Sprintf("%d", int(240+15*normalized)))
}
