package ports

import (
	"context"

	"github.com/bnema/keystamp/internal/domain"
)

// AuthAPI is the remote signing authority. Domain rejections are reported as
// domain.ErrRemoteRejected.
type AuthAPI interface {
	StampLogin(ctx context.Context, req domain.LoginRequest, stamper Stamper) (string, error)
	SignUp(ctx context.Context, req domain.SignUpRequest) (domain.SignUpResult, error)
}
