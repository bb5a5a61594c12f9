package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/AcasisDev/siteguard-hub/internal/application"
	"github.com/AcasisDev/siteguard-hub/internal/domain/access"
	repo "github.com/AcasisDev/siteguard-hub/internal/domain/repository"
	"github.com/AcasisDev/siteguard-hub/internal/interface/middleware"
	"github.com/AcasisDev/siteguard-hub/pkg/response"
	"github.com/AcasisDev/siteguard-hub/pkg/validation"
)

// statusFor maps service and repository errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repo.ErrConflict), errors.Is(err, application.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, application.ErrSelfModification), errors.Is(err, application.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, application.ErrInvalidCredentials), errors.Is(err, application.ErrInvalidSession):
		return http.StatusUnauthorized
	case errors.Is(err, application.ErrUnknownWebsite),
		errors.Is(err, application.ErrInvalidDates),
		errors.Is(err, application.ErrWeakPassword),
		errors.Is(err, access.ErrUnknownRole):
		return http.StatusBadRequest
	case errors.Is(err, application.ErrNotConfigured):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// fail writes err with its mapped status. Unmapped errors are logged and
// reported without detail.
func fail(c *gin.Context, logger *logrus.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"path":       c.FullPath(),
			}).Error("request failed")
		}
		response.Error[any](c, status, "internal error", nil)
		return
	}
	response.Error[any](c, status, err.Error(), nil)
}

func badPayload(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}

// listFilter reads ?q= and ?limit=.
func listFilter(c *gin.Context) repo.ListFilter {
	f := repo.ListFilter{Search: c.Query("q")}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Limit = n
		}
	}
	return f
}

func listMeta(f repo.ListFilter, n int) gin.H {
	return gin.H{"q": f.Search, "count": n}
}

var actorFrom = middleware.PrincipalFrom
