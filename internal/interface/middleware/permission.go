package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AcasisDev/siteguard-hub/internal/domain/access"
	"github.com/AcasisDev/siteguard-hub/pkg/response"
)

// RequirePermission rejects requests whose principal may not perform act on
// res. It must run after Auth.
func RequirePermission(res access.Resource, act access.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := PrincipalFrom(c)
		if p == nil {
			response.Abort(c, http.StatusUnauthorized, "not authenticated", nil)
			return
		}
		if !access.Can(p.Role, res, act) {
			response.Abort(c, http.StatusForbidden, "forbidden", gin.H{"resource": res, "action": act, "role": p.Role})
			return
		}
		c.Next()
	}
}
