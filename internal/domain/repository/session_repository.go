package repository

import (
	"context"

	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
)

// SessionStateStore holds the principal slot of each identity session.
// All methods are atomic with respect to each other.
type SessionStateStore interface {
	// Begin issues the next sequence token for sid and marks the state
	// loading unless a principal is already committed.
	Begin(ctx context.Context, sid string) (int64, error)
	// Commit stores p only when seq is still the latest token issued for
	// sid. It reports false when the attempt was superseded.
	Commit(ctx context.Context, sid string, seq int64, p *entity.Principal) (bool, error)
	// Abort gives up the attempt seq. A state still loading for that
	// attempt goes back to unauthenticated so the next request resolves it
	// again.
	Abort(ctx context.Context, sid string, seq int64) error
	// Clear drops the principal, marks the state unauthenticated and
	// invalidates every in-flight attempt.
	Clear(ctx context.Context, sid string) error
	// Load returns nil, nil when nothing is stored for sid.
	Load(ctx context.Context, sid string) (*entity.SessionState, error)
}
