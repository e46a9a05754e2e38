package passkey

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bnema/keystamp/internal/domain"
	"github.com/bnema/keystamp/internal/ports"
)

var ErrHelperUnavailable = errors.New("passkey helper unavailable")

type runFunc func(ctx context.Context, input string, args ...string) (stdout string, stderr string, err error)

// Helper reaches the platform passkey module through an external command. The
// command is invoked as "<helper> get" or "<helper> create" with the request
// JSON on stdin and answers with the credential JSON on stdout.
type Helper struct {
	run runFunc
}

var _ ports.NativePasskeys = (*Helper)(nil)

func NewHelper(command string) *Helper {
	return &Helper{run: helperCommand(command)}
}

func (h *Helper) Get(ctx context.Context, requestJSON string) (string, error) {
	return h.call(ctx, "get", requestJSON)
}

func (h *Helper) Create(ctx context.Context, requestJSON string) (string, error) {
	return h.call(ctx, "create", requestJSON)
}

func (h *Helper) call(ctx context.Context, op string, requestJSON string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stdout, stderr, err := h.run(ctx, requestJSON, op)
	if err != nil {
		if errors.Is(err, ErrHelperUnavailable) {
			return "", domain.Wrap(domain.ErrCredentialNotInitialized, "passkey helper "+op, err)
		}
		if stderr == "" {
			return "", fmt.Errorf("passkey helper %s: %w", op, err)
		}
		return "", fmt.Errorf("passkey helper %s: %w: %s", op, err, stderr)
	}

	return strings.TrimSpace(stdout), nil
}

func helperCommand(command string) runFunc {
	return func(ctx context.Context, input string, args ...string) (string, string, error) {
		command = strings.TrimSpace(command)
		if command == "" {
			return "", "", ErrHelperUnavailable
		}
		path, err := exec.LookPath(command)
		if err != nil {
			if errors.Is(err, exec.ErrNotFound) {
				return "", "", ErrHelperUnavailable
			}
			return "", "", fmt.Errorf("locate passkey helper: %w", err)
		}

		cmd := exec.CommandContext(ctx, path, args...)
		cmd.Stdin = strings.NewReader(input)

		var stdout bytes.Buffer
		var stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		err = cmd.Run()
		return stdout.String(), strings.TrimSpace(stderr.String()), err
	}
}
