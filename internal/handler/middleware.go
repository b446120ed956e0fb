package handler

import (
	"net/http"
	"strings"

	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/cache"
	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// sessionKeyContext is the gin context key the middleware stores the
// validated session key under.
const sessionKeyContext = "session_key"

// AuthMiddleware validates the "Authorization: Bearer <state>" credential
// against the session cache. Every failure mode answers with the same 403
// body so callers cannot distinguish an unknown token from a malformed
// header.
func AuthMiddleware(sessions cache.SessionCache, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		parts := strings.Split(c.GetHeader("Authorization"), " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			denyAccess(c, logger)
			return
		}

		key := parts[1]
		if !sessions.Exists(key) {
			denyAccess(c, logger)
			return
		}

		c.Set(sessionKeyContext, key)
		c.Next()
	}
}

// denyAccess rejects the request with 403, logs the caller's forwarded IP
// and short-circuits the handler chain.
func denyAccess(c *gin.Context, logger *zap.Logger) {
	ip := c.GetHeader("X-Forwarded-For")
	if ip == "" {
		ip = c.ClientIP()
	}

	logger.Warn("Denied access to data endpoint",
		zap.String("ip", ip),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusForbidden, dto.ErrorResponse{
		Error:   "Forbidden",
		Message: "You are not allowed to access this endpoint. Your IP has been logged.",
	})
	c.Abort()
}
