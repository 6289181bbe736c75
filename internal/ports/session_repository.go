package ports

import (
	"context"

	"github.com/karu-dev/deckhand/internal/domain"
)

// SessionRepository persists the latest session snapshot between CLI
// invocations. Best effort, last writer wins; Load returns
// domain.ErrSessionNotFound when nothing has been saved yet.
type SessionRepository interface {
	Load(ctx context.Context) (domain.SessionState, error)
	Save(ctx context.Context, state domain.SessionState) error
	Clear(ctx context.Context) error
}
