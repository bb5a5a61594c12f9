package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AcasisDev/siteguard-hub/internal/application"
	"github.com/AcasisDev/siteguard-hub/internal/domain/access"
	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
	"github.com/AcasisDev/siteguard-hub/internal/infrastructure/redisstore"
	"github.com/AcasisDev/siteguard-hub/internal/interface/middleware"
)

func init() { gin.SetMode(gin.TestMode) }

type fakeSessions struct {
	sess *application.Session
	err  error
}

func (f fakeSessions) GetSession(_ context.Context, token string) (*application.Session, error) {
	if token != "good" {
		return nil, f.err
	}
	return f.sess, f.err
}

type fakeStates struct {
	current  *entity.SessionState
	restored *entity.SessionState
	restores int
}

func (f *fakeStates) Current(context.Context, string) (*entity.SessionState, error) {
	return f.current, nil
}

func (f *fakeStates) Restore(context.Context, *application.Session) (*entity.SessionState, error) {
	f.restores++
	return f.restored, nil
}

func authed(role access.Role) *entity.SessionState {
	return &entity.SessionState{
		SessionID: "s1",
		Status:    entity.SessionAuthenticated,
		Principal: &entity.Principal{ID: "u1", Email: "u1@example.com", Role: role},
	}
}

func newEngine(sessions middleware.SessionReader, states middleware.StateReader, handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	chain := append([]gin.HandlerFunc{middleware.Auth(sessions, states, nil)}, handlers...)
	chain = append(chain, func(c *gin.Context) {
		p := middleware.PrincipalFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": p.ID, "role": p.Role, "sid": middleware.SessionIDFrom(c)})
	})
	r.GET("/x", chain...)
	return r
}

func do(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRejectsMissingAndUnknownTokens(t *testing.T) {
	states := &fakeStates{}
	r := newEngine(fakeSessions{}, states)

	assert.Equal(t, http.StatusUnauthorized, do(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "bad").Code)
	assert.Zero(t, states.restores)
}

func TestAuthUsesResolvedPrincipal(t *testing.T) {
	sess := &application.Session{ID: "s1", User: entity.Identity{UserID: "u1"}}
	states := &fakeStates{current: authed(access.RoleEditor)}
	w := do(newEngine(fakeSessions{sess: sess}, states), "good")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"u1","role":"editor","sid":"s1"}`, w.Body.String())
	assert.Zero(t, states.restores)
}

func TestAuthRestoresMissingState(t *testing.T) {
	sess := &application.Session{ID: "s1", User: entity.Identity{UserID: "u1"}}
	states := &fakeStates{restored: authed(access.RoleViewer)}
	w := do(newEngine(fakeSessions{sess: sess}, states), "good")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, states.restores)
}

func TestAuthReportsLoadingState(t *testing.T) {
	sess := &application.Session{ID: "s1"}
	loading := &entity.SessionState{SessionID: "s1", Status: entity.SessionLoading}
	w := do(newEngine(fakeSessions{sess: sess}, &fakeStates{current: loading}), "good")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestAuthRestoresStalledLoadingState(t *testing.T) {
	sess := &application.Session{ID: "s1", User: entity.Identity{UserID: "u1"}}
	stalled := &entity.SessionState{SessionID: "s1", Status: entity.SessionLoading, LoadingUntil: time.Now().Add(-time.Second)}
	states := &fakeStates{current: stalled, restored: authed(access.RoleViewer)}
	w := do(newEngine(fakeSessions{sess: sess}, states), "good")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, states.restores)
}

type fixedResolver access.Role

func (r fixedResolver) Resolve(_ context.Context, id entity.Identity) *entity.Principal {
	return &entity.Principal{ID: id.UserID, Email: id.Email, Role: access.Role(r)}
}

type commitFailStore struct{ *redisstore.SessionStore }

func (commitFailStore) Commit(context.Context, string, int64, *entity.Principal) (bool, error) {
	return false, errors.New("i/o timeout")
}

func TestAuthAfterFailedCommitResolvesAgain(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	store := redisstore.NewSessionStore(rdb, time.Hour)
	sess := &application.Session{ID: "s1", User: entity.Identity{UserID: "u1", Email: "u1@example.com"}}

	broken := application.NewSessionLifecycle(commitFailStore{store}, fixedResolver(access.RoleEditor), nil)
	broken.HandleEvent(context.Background(), application.EventSignedIn, sess.ID, sess)

	st, err := store.Load(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SessionUnauthenticated, st.Status)

	healthy := application.NewSessionLifecycle(store, fixedResolver(access.RoleEditor), nil)
	w := do(newEngine(fakeSessions{sess: sess}, healthy), "good")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"u1","role":"editor","sid":"s1"}`, w.Body.String())
}

func TestAuthSessionLookupError(t *testing.T) {
	w := do(newEngine(fakeSessions{err: errors.New("redis down")}, &fakeStates{}), "good")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequirePermission(t *testing.T) {
	sess := &application.Session{ID: "s1"}
	guard := middleware.RequirePermission(access.ResourceDomains, access.ActionCreate)

	w := do(newEngine(fakeSessions{sess: sess}, &fakeStates{current: authed(access.RoleEditor)}, guard), "good")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(newEngine(fakeSessions{sess: sess}, &fakeStates{current: authed(access.RoleAdmin)}, guard), "good")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequirePermissionWithoutPrincipal(t *testing.T) {
	r := gin.New()
	r.GET("/x", middleware.RequirePermission(access.ResourceWebsites, access.ActionRead), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	assert.Equal(t, http.StatusUnauthorized, do(r, "").Code)
}

func TestRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	r := gin.New()
	r.GET("/x", middleware.RateLimit(rdb, 2, time.Minute, middleware.KeyByIPAndPath(), nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, do(r, "").Code)
	w := do(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = do(r, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRateLimitBypass(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	r := gin.New()
	r.Use(middleware.RealIP())
	r.GET("/x", middleware.RateLimit(rdb, 1, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.RemoteAddr = "10.0.0.2:41000"
		req.Header.Set("X-Forwarded-For", "10.1.2.3, 203.0.113.9")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRequestIDKeepsValidHeader(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	const id = "3b241101-e2bb-4255-8caf-4136c566a962"
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", id)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, id, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.NotEqual(t, id, w.Body.String())
	assert.Equal(t, w.Body.String(), w.Header().Get("X-Request-ID"))
}

func TestRealIPIgnoresHeadersFromUntrustedPeers(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RealIP())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("real_ip")) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.RemoteAddr = "203.0.113.7:5000"
	req.Header.Set("X-Forwarded-For", "10.9.9.9")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "203.0.113.7", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.RemoteAddr = "127.0.0.1:5000"
	req.Header.Set("CF-Connecting-IP", "198.51.100.4")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "198.51.100.4", w.Body.String())
}
