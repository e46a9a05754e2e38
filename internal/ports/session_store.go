package ports

import (
	"context"

	"github.com/bnema/keystamp/internal/domain"
)

type SessionStore interface {
	Store(ctx context.Context, token string, sessionKey string) (domain.Session, error)
	Get(ctx context.Context, sessionKey string) (domain.Session, error)
	ActiveKey(ctx context.Context) (string, error)
	Active(ctx context.Context) (domain.Session, error)
	SetActive(ctx context.Context, sessionKey string) error
	ListKeys(ctx context.Context) ([]string, error)
	Clear(ctx context.Context, sessionKey string) error
	ClearAll(ctx context.Context) error
}
