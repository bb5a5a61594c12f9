package entity

import "time"

// SessionStatus is the lifecycle state of one identity session.
type SessionStatus string

const (
	SessionLoading         SessionStatus = "loading"
	SessionUnauthenticated SessionStatus = "unauthenticated"
	SessionAuthenticated   SessionStatus = "authenticated"
)

// SessionState is the resolved view of an identity session. Principal is
// set only when Status is SessionAuthenticated.
type SessionState struct {
	SessionID string
	Status    SessionStatus
	Seq       int64
	Principal *Principal
	// LoadingUntil is when a loading state stops waiting for its
	// resolution. Zero when not loading.
	LoadingUntil time.Time
}

// Stalled reports a loading state whose resolution never committed or
// aborted in time.
func (s *SessionState) Stalled(now time.Time) bool {
	return s != nil && s.Status == SessionLoading && !s.LoadingUntil.IsZero() && now.After(s.LoadingUntil)
}
