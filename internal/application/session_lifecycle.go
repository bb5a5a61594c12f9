package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
	repo "github.com/AcasisDev/siteguard-hub/internal/domain/repository"
)

const abortTimeout = 2 * time.Second

// SessionSource reports identity session changes.
type SessionSource interface {
	OnSessionChange(fn SessionListener) func()
}

// SessionLifecycle is the only writer of the principal slot of a session.
// Every event that carries a session runs a full resolution; each attempt
// takes a sequence token from the store and its result is dropped if a
// newer attempt was started meanwhile.
type SessionLifecycle struct {
	Store    repo.SessionStateStore
	Resolver PrincipalResolver
	Logger   *logrus.Logger
}

func NewSessionLifecycle(store repo.SessionStateStore, resolver PrincipalResolver, logger *logrus.Logger) *SessionLifecycle {
	return &SessionLifecycle{Store: store, Resolver: resolver, Logger: logger}
}

// Attach subscribes the lifecycle to src and returns the unsubscribe func.
func (l *SessionLifecycle) Attach(src SessionSource) func() {
	return src.OnSessionChange(l.HandleEvent)
}

func (l *SessionLifecycle) HandleEvent(ctx context.Context, ev SessionEvent, sid string, s *Session) {
	log := l.log().WithFields(logrus.Fields{"sid": sid, "event": string(ev)})
	if s == nil {
		if err := l.Store.Clear(ctx, sid); err != nil {
			log.WithError(err).Error("clear session state failed")
		}
		return
	}
	if _, err := l.resolve(ctx, sid, s.User); err != nil {
		log.WithError(err).Error("session resolution failed")
	}
}

// Restore resolves an existing identity session whose state is missing,
// for instance after the state expired or on first use after a restart.
func (l *SessionLifecycle) Restore(ctx context.Context, s *Session) (*entity.SessionState, error) {
	if _, err := l.resolve(ctx, s.ID, s.User); err != nil {
		return nil, err
	}
	return l.Store.Load(ctx, s.ID)
}

// Current returns the stored state, or nil when none exists.
func (l *SessionLifecycle) Current(ctx context.Context, sid string) (*entity.SessionState, error) {
	return l.Store.Load(ctx, sid)
}

func (l *SessionLifecycle) resolve(ctx context.Context, sid string, id entity.Identity) (bool, error) {
	seq, err := l.Store.Begin(ctx, sid)
	if err != nil {
		return false, err
	}
	p := l.Resolver.Resolve(ctx, id)
	ok, err := l.Store.Commit(ctx, sid, seq, p)
	if err != nil {
		l.abort(ctx, sid, seq)
		return false, err
	}
	if !ok {
		l.log().WithFields(logrus.Fields{"sid": sid, "seq": seq}).Debug("discarding stale resolution")
	}
	return ok, nil
}

// abort releases a loading state whose commit failed. It runs detached from
// ctx since a cancelled request is one of the ways commits fail.
func (l *SessionLifecycle) abort(ctx context.Context, sid string, seq int64) {
	actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), abortTimeout)
	defer cancel()
	if err := l.Store.Abort(actx, sid, seq); err != nil {
		l.log().WithError(err).WithFields(logrus.Fields{"sid": sid, "seq": seq}).Warn("abort session resolution failed")
	}
}

func (l *SessionLifecycle) log() logrus.FieldLogger {
	if l.Logger == nil {
		return logrus.StandardLogger()
	}
	return l.Logger
}
