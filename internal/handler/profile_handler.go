package handler

import (
	"net/http"

	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/cache"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProfileHandler serves the authenticated caller's own public profile.
type ProfileHandler struct {
	sessions cache.SessionCache
	logger   *zap.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(sessions cache.SessionCache, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// GetMe handles GET /redirect/@me. It answers with the cached public view
// only; the user row and its access packet never leave the process.
func (h *ProfileHandler) GetMe(c *gin.Context) {
	key := c.GetString(sessionKeyContext)

	entry, ok := h.sessions.Get(key)
	if !ok {
		// The session vanished between middleware check and lookup.
		denyAccess(c, h.logger)
		return
	}

	c.JSON(http.StatusOK, entry.Profile)
}
