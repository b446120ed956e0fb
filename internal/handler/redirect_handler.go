package handler

import (
	"context"
	"net/http"

	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/dto"
	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/service"
	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/worker"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RedirectHandler completes the Discord OAuth2 callback.
type RedirectHandler struct {
	auth    service.AuthService
	pool    *worker.Pool
	authURL string
	logger  *zap.Logger
}

// NewRedirectHandler creates a new redirect handler. authURL is the
// post-auth page the browser is sent to; when empty the callback answers
// 500 instead of redirecting.
func NewRedirectHandler(auth service.AuthService, pool *worker.Pool, authURL string, logger *zap.Logger) *RedirectHandler {
	return &RedirectHandler{
		auth:    auth,
		pool:    pool,
		authURL: authURL,
		logger:  logger,
	}
}

// Callback handles GET /redirect?code=&state=. The multi-step continuation
// (token exchange, profile fetch, persistence, cache store) runs on the
// worker pool; this handler only validates input and awaits the outcome, so
// upstream latency never occupies the accepting path.
func (h *RedirectHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")

	if code == "" || state == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad request",
			Message: "code and state query parameters are required",
		})
		return
	}

	h.logger.Info("Session authenticated with Discord, exchanging code", zap.String("state", state))

	// The continuation must run to completion even if the browser
	// disconnects, so it gets a context detached from the request's
	// cancellation.
	result := h.pool.Submit(context.WithoutCancel(c.Request.Context()), func(ctx context.Context) error {
		_, err := h.auth.CompleteLogin(ctx, code, state)
		return err
	})

	select {
	case err := <-result:
		if err != nil {
			h.logger.Error("Discord login failed", zap.String("state", state), zap.Error(err))
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error:   "Internal server error",
				Message: "Failed to complete Discord authentication",
			})
			return
		}

		if h.authURL == "" {
			h.logger.Error("AUTH_URL is not configured, cannot redirect after login")
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error:   "Internal server error",
				Message: "Post-auth redirect URL is not configured",
			})
			return
		}

		c.Redirect(http.StatusFound, h.authURL)

	case <-c.Request.Context().Done():
		// Browser went away; the worker still finishes the login, the
		// redirect is simply never delivered.
	}
}
