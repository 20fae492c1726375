package auth

import (
	"strings"

	"florist-api-io/api/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var SESSION_NAME = "____fl"

// SessionHeader carries the session token for clients that do not keep cookies.
const SessionHeader = "X-Cart-Session"

const sessionContextKey = "cartSessionId"

// CartSession resolves the cart session of every request, issuing a new one
// when the request carries no valid token.
func CartSession(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractSessionToken(c); token != "" {
			claims, err := ValidateSessionJWT(secret, token)
			if err == nil {
				c.Set(sessionContextKey, claims.SessionId)
				c.Header(SessionHeader, token)
				c.Next()
				return
			}
			util.LogInfo("replacing cart session token", zap.Error(err))
		}

		sessionID := uuid.NewString()
		token, expiresAt, err := GenerateSessionJWT(secret, sessionID)
		if err != nil {
			util.HandleError(c, 500, err)
			c.Abort()
			return
		}

		maxAge := int(SessionTokenExpirationTime.Seconds())
		c.SetCookie(SESSION_NAME, token, maxAge, "/", getDomainFromRequest(c), isHTTPS(c), true)
		c.Header(SessionHeader, token)
		c.Set(sessionContextKey, sessionID)
		util.LogInfo("issued cart session", zap.String("session", sessionID), zap.Time("expires_at", expiresAt))
		c.Next()
	}
}

// SessionID returns the cart session resolved by CartSession.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionContextKey)
}

func extractSessionToken(c *gin.Context) string {
	if token, err := c.Cookie(SESSION_NAME); err == nil && token != "" {
		return token
	}
	return strings.TrimSpace(c.GetHeader(SessionHeader))
}

func getDomainFromRequest(ctx *gin.Context) string {
	host := ctx.Request.Host

	// Remove port
	if colonIndex := strings.LastIndex(host, ":"); colonIndex != -1 {
		host = host[:colonIndex]
	}

	if host == "localhost" || host == "127.0.0.1" || host == "" {
		return ""
	}

	parts := strings.Split(host, ".")
	if len(parts) >= 2 {
		return "." + strings.Join(parts[len(parts)-2:], ".")
	}

	return host
}

func isHTTPS(ctx *gin.Context) bool {
	if ctx.Request.TLS != nil {
		return true
	}

	if ctx.GetHeader("X-Forwarded-Proto") == "https" {
		return true
	}

	if ctx.GetHeader("X-Forwarded-Ssl") == "on" {
		return true
	}

	return false
}
