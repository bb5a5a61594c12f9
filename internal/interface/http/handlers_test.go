package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AcasisDev/siteguard-hub/internal/application"
	"github.com/AcasisDev/siteguard-hub/internal/domain/access"
	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
	repo "github.com/AcasisDev/siteguard-hub/internal/domain/repository"
	handlers "github.com/AcasisDev/siteguard-hub/internal/interface/http"
	"github.com/AcasisDev/siteguard-hub/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

type fakeServers struct {
	items   map[string]entity.Server
	lastF   repo.ListFilter
	lastIn  application.ServerInput
	deleted string
}

func (f *fakeServers) List(_ context.Context, lf repo.ListFilter) ([]entity.Server, error) {
	f.lastF = lf
	out := []entity.Server{}
	for _, s := range f.items {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeServers) Get(_ context.Context, id string) (*entity.Server, error) {
	s, ok := f.items[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &s, nil
}

func (f *fakeServers) Create(_ context.Context, actor *entity.Principal, in application.ServerInput) (*entity.Server, error) {
	f.lastIn = in
	s := entity.Server{ID: "new", UserID: actor.ID, Provider: in.Provider}
	return &s, nil
}

func (f *fakeServers) Update(_ context.Context, _ *entity.Principal, id string, _ application.ServerInput) (*entity.Server, error) {
	if id == "boom" {
		return nil, errors.New("db exploded")
	}
	return nil, repo.ErrNotFound
}

func (f *fakeServers) Delete(_ context.Context, _ *entity.Principal, id string) error {
	f.deleted = id
	return nil
}

func withPrincipal(p *entity.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("principal", p)
		c.Set("sessionID", "s1")
		c.Next()
	}
}

func serverRouter(svc *fakeServers) *gin.Engine {
	h := handlers.NewResourceHandler[entity.Server, application.ServerInput](svc, "server", nil)
	r := gin.New()
	g := r.Group("/servers", withPrincipal(&entity.Principal{ID: "u1", Role: access.RoleAdmin}))
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	return r
}

func call(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
	Error   map[string]any  `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestResourceHandlerList(t *testing.T) {
	svc := &fakeServers{items: map[string]entity.Server{"a": {ID: "a", Provider: "Hetzner"}}}
	w := call(serverRouter(svc), http.MethodGet, "/servers?q=hetz&limit=5", "")

	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.True(t, env.Success)
	assert.EqualValues(t, 1, env.Meta["count"])
	assert.Equal(t, repo.ListFilter{Search: "hetz", Limit: 5}, svc.lastF)
}

func TestResourceHandlerCreateValidates(t *testing.T) {
	svc := &fakeServers{}
	r := serverRouter(svc)

	w := call(r, http.MethodPost, "/servers", `{"provider":"Hetzner","ip_address":"not-an-ip","status":"rebooting"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.Contains(t, env.Error, "status")

	w = call(r, http.MethodPost, "/servers", `{"website_id":"3b241101-e2bb-4255-8caf-4136c566a962","provider":"Hetzner","ip_address":"10.0.0.1","status":"online"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Hetzner", svc.lastIn.Provider)
}

func TestResourceHandlerErrorMapping(t *testing.T) {
	r := serverRouter(&fakeServers{})

	assert.Equal(t, http.StatusNotFound, call(r, http.MethodGet, "/servers/missing", "").Code)

	body := `{"website_id":"3b241101-e2bb-4255-8caf-4136c566a962","provider":"Hetzner","ip_address":"10.0.0.1","status":"online"}`
	w := call(r, http.MethodPut, "/servers/boom", body)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal error", decode(t, w).Message)
}

func TestResourceHandlerDelete(t *testing.T) {
	svc := &fakeServers{}
	w := call(serverRouter(svc), http.MethodDelete, "/servers/abc", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc", svc.deleted)
}

func TestMe(t *testing.T) {
	h := handlers.NewAuthHandler(nil, nil, nil, nil, "")
	r := gin.New()
	r.GET("/me", withPrincipal(&entity.Principal{ID: "u1", Email: "e@example.com", Role: access.RoleEditor}), h.Me)

	w := call(r, http.MethodGet, "/me", "")
	require.Equal(t, http.StatusOK, w.Code)

	var view handlers.MeView
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &view))
	assert.Equal(t, access.RoleEditor, view.User.Role)
	assert.True(t, view.Permissions.Websites.Create)
	assert.False(t, view.Permissions.Domains.Create)
	assert.Len(t, view.Navigation, 5)
}

func TestDomainLookupNotConfigured(t *testing.T) {
	h := handlers.NewDomainHandler(&application.DomainService{}, nil)
	r := gin.New()
	r.POST("/lookup", h.Lookup)

	assert.Equal(t, http.StatusBadRequest, call(r, http.MethodPost, "/lookup", `{"domain":"not a domain"}`).Code)
	assert.Equal(t, http.StatusServiceUnavailable, call(r, http.MethodPost, "/lookup", `{"domain":"example.com"}`).Code)
}
