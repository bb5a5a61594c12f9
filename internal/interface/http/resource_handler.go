package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
	repo "github.com/AcasisDev/siteguard-hub/internal/domain/repository"
	"github.com/AcasisDev/siteguard-hub/pkg/response"
)

// ResourceService is the CRUD surface shared by websites, credentials,
// domains and servers.
type ResourceService[T, In any] interface {
	List(ctx context.Context, f repo.ListFilter) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, actor *entity.Principal, in In) (*T, error)
	Update(ctx context.Context, actor *entity.Principal, id string, in In) (*T, error)
	Delete(ctx context.Context, actor *entity.Principal, id string) error
}

// ResourceHandler serves one managed resource. Permission checks are done
// by the router.
type ResourceHandler[T, In any] struct {
	Svc    ResourceService[T, In]
	Name   string
	Logger *logrus.Logger
}

func NewResourceHandler[T, In any](svc ResourceService[T, In], name string, logger *logrus.Logger) *ResourceHandler[T, In] {
	return &ResourceHandler[T, In]{Svc: svc, Name: name, Logger: logger}
}

func (h *ResourceHandler[T, In]) List(c *gin.Context) {
	f := listFilter(c)
	items, err := h.Svc.List(c.Request.Context(), f)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	response.Success(c, http.StatusOK, items, h.Name+" list", listMeta(f, len(items)))
}

func (h *ResourceHandler[T, In]) Get(c *gin.Context) {
	item, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, item, h.Name, nil)
}

func (h *ResourceHandler[T, In]) Create(c *gin.Context) {
	var in In
	if err := c.ShouldBindJSON(&in); err != nil {
		badPayload(c, err)
		return
	}
	item, err := h.Svc.Create(c.Request.Context(), actorFrom(c), in)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, item, h.Name+" created", nil)
}

func (h *ResourceHandler[T, In]) Update(c *gin.Context) {
	var in In
	if err := c.ShouldBindJSON(&in); err != nil {
		badPayload(c, err)
		return
	}
	item, err := h.Svc.Update(c.Request.Context(), actorFrom(c), c.Param("id"), in)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, item, h.Name+" updated", nil)
}

func (h *ResourceHandler[T, In]) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"id": c.Param("id")}, h.Name+" deleted", nil)
}
