package helpers

import (
	"net/http"

	"florist-api-io/api/internal/auth"
	"florist-api-io/api/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// MySessionId returns the cart session of the request, answering 401 when the
// session middleware did not run.
func MySessionId(c *gin.Context) (string, error) {
	sessionID := auth.SessionID(c)
	if sessionID == "" {
		err := errors.New("request has no cart session")
		util.HandleError(c, http.StatusUnauthorized, err)
		return "", err
	}
	return sessionID, nil
}
