package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
	repo "github.com/AcasisDev/siteguard-hub/internal/domain/repository"
	"github.com/AcasisDev/siteguard-hub/pkg/helpers"
	"github.com/AcasisDev/siteguard-hub/pkg/mailer"
)

const minPasswordLen = 8

// SessionEvent names a change reported to session listeners.
type SessionEvent string

const (
	EventSignedIn       SessionEvent = "signed_in"
	EventTokenRefreshed SessionEvent = "token_refreshed"
	EventRestored       SessionEvent = "restored"
	EventSignedOut      SessionEvent = "signed_out"
)

// Session is an authenticated identity session. Tokens are only populated
// when the session was just issued or rotated.
type Session struct {
	ID           string
	User         entity.Identity
	AccessToken  helpers.Token
	RefreshToken helpers.Token
}

// SessionListener receives every session change. s is nil for EventSignedOut.
type SessionListener func(ctx context.Context, event SessionEvent, sessionID string, s *Session)

type SignUpOptions struct {
	DisplayName string
	RedirectURL string
}

// JobPublisher enqueues background jobs.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// IdentityService owns credentials and identity sessions. Sessions live in
// Redis under identity:session:<sid> and are bound to the refresh token id
// issued last.
type IdentityService struct {
	Users     repo.UserRepository
	Profiles  repo.ProfileRepository
	JWT       *helpers.JWTManager
	Redis     *redis.Client
	Publisher JobPublisher
	Logger    *logrus.Logger

	mu        sync.RWMutex
	listeners map[int]SessionListener
	nextID    int
}

func NewIdentityService(users repo.UserRepository, profiles repo.ProfileRepository, jwt *helpers.JWTManager, rdb *redis.Client, pub JobPublisher, logger *logrus.Logger) *IdentityService {
	return &IdentityService{
		Users:     users,
		Profiles:  profiles,
		JWT:       jwt,
		Redis:     rdb,
		Publisher: pub,
		Logger:    logger,
		listeners: map[int]SessionListener{},
	}
}

func identityKey(sid string) string { return "identity:session:" + sid }

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// rotateScript swaps the stored refresh token id only if the presented one
// is still current, so a refresh token can be used once.
var rotateScript = redis.NewScript(`
if redis.call("HGET", KEYS[1], "refresh_jti") ~= ARGV[1] then
  return 0
end
redis.call("HSET", KEYS[1], "refresh_jti", ARGV[2], "updated_at", ARGV[3])
redis.call("PEXPIRE", KEYS[1], ARGV[4])
return redis.call("HGETALL", KEYS[1])
`)

// OnSessionChange registers fn and returns a function that removes it.
func (s *IdentityService) OnSessionChange(fn SessionListener) func() {
	s.mu.Lock()
	if s.listeners == nil {
		s.listeners = map[int]SessionListener{}
	}
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *IdentityService) emit(ctx context.Context, ev SessionEvent, sid string, sess *Session) {
	s.mu.RLock()
	fns := make([]SessionListener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()
	for _, fn := range fns {
		fn(ctx, ev, sid, sess)
	}
}

func (s *IdentityService) SignIn(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.Users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil || u == nil {
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
		helpers.CompareDummy(password)
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}

	sid := uuid.NewString()
	access, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		}
		return nil, err
	}
	refresh, err := s.JWT.GenerateRefreshToken(u.ID, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate refresh token failed")
		}
		return nil, err
	}

	key := identityKey(sid)
	pipe := s.Redis.TxPipeline()
	pipe.HSet(ctx, key, map[string]any{
		"user_id":      u.ID,
		"email":        u.Email,
		"refresh_jti":  refresh.ID,
		"user_created": u.CreatedAt.UTC().Format(time.RFC3339Nano),
		"user_updated": u.UpdatedAt.UTC().Format(time.RFC3339Nano),
		"created_at":   nowRFC3339(),
	})
	pipe.Expire(ctx, key, s.JWT.RefreshTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	sess := &Session{ID: sid, User: u.Identity(), AccessToken: access, RefreshToken: refresh}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "sid": sid}).Info("signed in")
	}
	s.emit(ctx, EventSignedIn, sid, sess)
	return sess, nil
}

// SignUp creates the account and its profile and enqueues the sign-up job.
// It does not open a session.
func (s *IdentityService) SignUp(ctx context.Context, email, password string, opts SignUpOptions) (*entity.Identity, error) {
	email = normalizeEmail(email)
	if len(password) < minPasswordLen {
		return nil, ErrWeakPassword
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Email: email, Password: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	name := strings.TrimSpace(opts.DisplayName)
	if name == "" {
		name = nameFromEmail(email)
	}
	if s.Profiles != nil {
		if err := s.Profiles.Upsert(ctx, &entity.Profile{UserID: u.ID, DisplayName: name}); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("create profile failed")
		}
	}

	if s.Publisher != nil {
		job := mailer.SignupJob{UserID: u.ID, Email: u.Email, DisplayName: name, RedirectURL: opts.RedirectURL, CreatedAt: u.CreatedAt}
		if err := s.Publisher.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("publish signup job failed")
		}
	}

	id := u.Identity()
	return &id, nil
}

func (s *IdentityService) SignOut(ctx context.Context, sessionID string) error {
	if err := s.Redis.Del(ctx, identityKey(sessionID)).Err(); err != nil {
		return err
	}
	s.emit(ctx, EventSignedOut, sessionID, nil)
	return nil
}

// GetSession returns nil, nil when the token is invalid, expired or its
// session has ended.
func (s *IdentityService) GetSession(ctx context.Context, accessToken string) (*Session, error) {
	claims, err := s.JWT.ParseAccessToken(accessToken)
	if err != nil {
		return nil, nil
	}
	data, err := s.Redis.HGetAll(ctx, identityKey(claims.SessionID)).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || data["user_id"] != claims.UserID {
		return nil, nil
	}
	return &Session{ID: claims.SessionID, User: identityFromHash(data)}, nil
}

// Refresh rotates the token pair of a session. The session id is kept.
func (s *IdentityService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidSession
	}
	sid := claims.SessionID

	access, err := s.JWT.GenerateAccessToken(claims.UserID, sid)
	if err != nil {
		return nil, err
	}
	refresh, err := s.JWT.GenerateRefreshToken(claims.UserID, sid)
	if err != nil {
		return nil, err
	}
	// The script answers 0 for a stale token, else the rotated hash, so the
	// identity read cannot race a concurrent sign-out.
	res, err := rotateScript.Run(ctx, s.Redis, []string{identityKey(sid)},
		claims.ID, refresh.ID, nowRFC3339(), s.JWT.RefreshTTL.Milliseconds()).Result()
	if err != nil {
		return nil, err
	}
	data := hashFromReply(res)
	if data["user_id"] != claims.UserID {
		if s.Logger != nil {
			s.Logger.WithFields(logrus.Fields{"user_id": claims.UserID, "sid": sid}).Warn("refresh token rejected")
		}
		return nil, ErrInvalidSession
	}
	sess := &Session{ID: sid, User: identityFromHash(data), AccessToken: access, RefreshToken: refresh}
	s.emit(ctx, EventTokenRefreshed, sid, sess)
	return sess, nil
}

// hashFromReply turns an HGETALL reply into a map. Any other reply yields an
// empty map.
func hashFromReply(v any) map[string]string {
	flat, _ := v.([]any)
	out := make(map[string]string, len(flat)/2)
	for i := 0; i+1 < len(flat); i += 2 {
		k, _ := flat[i].(string)
		val, _ := flat[i+1].(string)
		out[k] = val
	}
	return out
}

func identityFromHash(data map[string]string) entity.Identity {
	id := entity.Identity{UserID: data["user_id"], Email: data["email"]}
	id.CreatedAt, _ = time.Parse(time.RFC3339Nano, data["user_created"])
	id.UpdatedAt, _ = time.Parse(time.RFC3339Nano, data["user_updated"])
	return id
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
