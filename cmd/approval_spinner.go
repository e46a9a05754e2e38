package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bnema/keystamp/internal/domain"
	"github.com/bnema/keystamp/internal/logging"
	"github.com/bnema/keystamp/internal/platform"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type approvalOutcome int

const (
	approvalPending approvalOutcome = iota
	approvalGranted
	approvalDeclined
	approvalExpired
	approvalFailed
)

var (
	approvalWaitStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	approvalHintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	approvalGrantedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	approvalDeclinedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

type approvalDoneMsg struct {
	err error
	at  time.Time
}

// approvalModel shows how long a prompt on another device or application has
// been pending, and how it ended.
type approvalModel struct {
	spinner  spinner.Model
	label    string
	wait     tea.Cmd
	started  time.Time
	deadline time.Time
	now      time.Time
	outcome  approvalOutcome
	err      error
}

func newApprovalModel(label string, wait tea.Cmd, started, deadline time.Time) approvalModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(approvalWaitStyle),
	)

	return approvalModel{
		spinner:  s,
		label:    label,
		wait:     wait,
		started:  started,
		deadline: deadline,
		now:      started,
	}
}

func (m approvalModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.wait)
}

func (m approvalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		m.now = msg.Time
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case approvalDoneMsg:
		m.now = msg.at
		m.err = msg.err
		m.outcome = classifyApproval(msg.err)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m approvalModel) View() string {
	elapsed := m.now.Sub(m.started).Round(time.Second)

	switch m.outcome {
	case approvalGranted:
		return approvalGrantedStyle.Render("✓") + fmt.Sprintf(" Approved after %s\n", elapsed)
	case approvalDeclined:
		return approvalDeclinedStyle.Render("✗") + " Declined\n"
	case approvalExpired:
		return approvalDeclinedStyle.Render("✗") + fmt.Sprintf(" No answer after %s\n", elapsed)
	case approvalFailed:
		// The command reports the error itself.
		return ""
	}

	hint := elapsed.String()
	if !m.deadline.IsZero() {
		remaining := m.deadline.Sub(m.now).Round(time.Second)
		if remaining < 0 {
			remaining = 0
		}
		hint = fmt.Sprintf("%s, %s left", elapsed, remaining)
	}
	return fmt.Sprintf("%s %s %s", m.spinner.View(), m.label, approvalHintStyle.Render("("+hint+")"))
}

func classifyApproval(err error) approvalOutcome {
	switch {
	case err == nil:
		return approvalGranted
	case domain.IsUserCancelled(err):
		return approvalDeclined
	case errors.Is(err, context.DeadlineExceeded):
		return approvalExpired
	default:
		return approvalFailed
	}
}

// awaitApproval runs wait behind a spinner on interactive terminals and
// plainly otherwise.
func awaitApproval(ctx context.Context, output io.Writer, label string, wait func(context.Context) error) error {
	if !logging.IsTerminal(output) {
		return wait(ctx)
	}

	waitCmd := func() tea.Msg {
		err := wait(ctx)
		return approvalDoneMsg{err: err, at: time.Now()}
	}
	deadline, _ := ctx.Deadline()

	p := tea.NewProgram(
		newApprovalModel(label, waitCmd, time.Now(), deadline),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(approvalModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}

// awaitPasskey is awaitApproval for passkey ceremonies. The browser ceremony
// prints the page URL while waiting, so it runs without the spinner.
func awaitPasskey(ctx context.Context, output io.Writer, app *app, label string, wait func(context.Context) error) error {
	if app.cfg.Passkey.Ceremony == platform.CeremonyBrowser {
		return wait(ctx)
	}
	return awaitApproval(ctx, output, label, wait)
}
