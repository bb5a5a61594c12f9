package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/AcasisDev/siteguard-hub/internal/application"
	"github.com/AcasisDev/siteguard-hub/pkg/response"
)

// DomainHandler adds the WHOIS prefill endpoint to the domain CRUD routes.
type DomainHandler struct {
	*ResourceHandler[application.DomainView, application.DomainInput]
	Svc *application.DomainService
}

func NewDomainHandler(svc *application.DomainService, logger *logrus.Logger) *DomainHandler {
	return &DomainHandler{
		ResourceHandler: NewResourceHandler[application.DomainView, application.DomainInput](svc, "domain", logger),
		Svc:             svc,
	}
}

type lookupRequest struct {
	Domain string `json:"domain" binding:"required,fqdn"`
}

func (h *DomainHandler) Expiring(c *gin.Context) {
	f := listFilter(c)
	list, err := h.Svc.Expiring(c.Request.Context(), f.Limit)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	if list == nil {
		list = []application.DomainView{}
	}
	response.Success(c, http.StatusOK, list, "domains expiring soon", nil)
}

func (h *DomainHandler) Lookup(c *gin.Context) {
	var req lookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	info, err := h.Svc.Lookup(c.Request.Context(), req.Domain)
	if err != nil {
		if errors.Is(err, application.ErrNotConfigured) {
			fail(c, h.Logger, err)
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("domain", req.Domain).Warn("whois lookup failed")
		}
		response.Error[any](c, http.StatusBadGateway, "whois lookup failed", err.Error())
		return
	}
	response.Success(c, http.StatusOK, info, "whois", nil)
}
