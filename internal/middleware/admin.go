package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"florist-api-io/api/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// AdminOnly restricts a route to callers presenting the admin bearer token.
// With no token configured the route is closed.
func AdminOnly(adminToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminToken == "" {
			util.HandleError(c, http.StatusForbidden, errors.New("admin access is disabled"))
			c.Abort()
			return
		}

		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			util.HandleError(c, http.StatusUnauthorized, errors.New("authorization header does not start with 'Bearer '"))
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(token), []byte(adminToken)) != 1 {
			util.HandleError(c, http.StatusForbidden, errors.New("insufficient permissions: admin access required"))
			c.Abort()
			return
		}

		c.Next()
	}
}
