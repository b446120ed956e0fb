package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/dto"
	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/worker"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

const testAuthURL = "https://app.example.com/auth"

func newCallbackRouter(t *testing.T, auth *MockAuthService, authURL string) *gin.Engine {
	t.Helper()

	pool := worker.NewPool(1, 4, zap.NewNop())
	pool.Start()
	t.Cleanup(pool.Stop)

	router := gin.New()
	handler := NewRedirectHandler(auth, pool, authURL, zap.NewNop())
	router.GET("/redirect", handler.Callback)
	return router
}

func TestRedirectHandler_Callback(t *testing.T) {
	auth := new(MockAuthService)
	auth.On("CompleteLogin", mock.Anything, "auth-code", "state-token").
		Return(&dto.PublicProfile{ClientID: "42"}, nil)
	router := newCallbackRouter(t, auth, testAuthURL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/redirect?code=auth-code&state=state-token", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, testAuthURL, w.Header().Get("Location"))
	auth.AssertExpectations(t)
}

func TestRedirectHandler_Callback_MissingParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"no params", ""},
		{"missing state", "?code=auth-code"},
		{"missing code", "?state=state-token"},
		{"empty values", "?code=&state="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := new(MockAuthService)
			router := newCallbackRouter(t, auth, testAuthURL)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/redirect"+tt.query, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			auth.AssertNotCalled(t, "CompleteLogin", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestRedirectHandler_Callback_LoginFails(t *testing.T) {
	auth := new(MockAuthService)
	auth.On("CompleteLogin", mock.Anything, "auth-code", "state-token").
		Return(nil, errors.New("invalid_grant"))
	router := newCallbackRouter(t, auth, testAuthURL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/redirect?code=auth-code&state=state-token", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to complete Discord authentication")
}

func TestRedirectHandler_Callback_NoAuthURL(t *testing.T) {
	auth := new(MockAuthService)
	auth.On("CompleteLogin", mock.Anything, "auth-code", "state-token").
		Return(&dto.PublicProfile{ClientID: "42"}, nil)
	router := newCallbackRouter(t, auth, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/redirect?code=auth-code&state=state-token", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "redirect URL is not configured")
}
