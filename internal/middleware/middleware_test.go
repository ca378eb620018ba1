package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"onboarding_backend/internal/auth"
	"onboarding_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubProvider map[string]*auth.Identity

func (s stubProvider) Resolve(_ context.Context, token string) (*auth.Identity, error) {
	if id, ok := s[token]; ok {
		return id, nil
	}
	return nil, auth.ErrNoIdentity
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestTimeout_HandlerSeesDeadline(t *testing.T) {
	r := gin.New()
	r.Use(RequestTimeout(2 * time.Second))

	var (
		deadline time.Time
		ok       bool
	)
	r.GET("/", func(c *gin.Context) {
		deadline, ok = c.Request.Context().Deadline()
		c.Status(http.StatusNoContent)
	})

	start := time.Now()
	serve(r, httptest.NewRequest(http.MethodGet, "/", nil))

	require.True(t, ok, "request context must carry a deadline")
	assert.WithinDuration(t, start.Add(2*time.Second), deadline, time.Second)
}

func TestRequestTimeout_ExpiredContextIsCancelled(t *testing.T) {
	r := gin.New()
	r.Use(RequestTimeout(20 * time.Millisecond))

	var err error
	r.GET("/", func(c *gin.Context) {
		<-c.Request.Context().Done()
		err = c.Request.Context().Err()
		c.Status(http.StatusNoContent)
	})

	serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRequestTimeout_DisabledWhenZero(t *testing.T) {
	r := gin.New()
	r.Use(RequestTimeout(0))

	ok := true
	r.GET("/", func(c *gin.Context) {
		_, ok = c.Request.Context().Deadline()
		c.Status(http.StatusNoContent)
	})

	serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}

func TestErrorHandler_UnhandledErrorIsOpaque(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler(zap.NewNop()))
	r.GET("/", func(c *gin.Context) {
		_ = c.Error(errors.New("pq: connection refused"))
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error", body["error"])
	assert.NotContains(t, body, "details")
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestErrorHandler_APIErrorKeepsStatus(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler(zap.NewNop()))
	r.GET("/", func(c *gin.Context) {
		_ = c.Error(common.ErrConflict)
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestIdentityMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(IdentityMiddleware(stubProvider{"tok": {ID: "uid-1"}}, zap.NewNop()))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, GetIdentityFromContext(c).ID)
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"missing", "", http.StatusUnauthorized, "Unauthorized"},
		{"wrong scheme", "Basic tok", http.StatusUnauthorized, "Unauthorized"},
		{"unknown token", "Bearer nope", http.StatusUnauthorized, "Unauthorized"},
		{"valid", "Bearer tok", http.StatusOK, "uid-1"},
		{"lowercase scheme", "bearer tok", http.StatusOK, "uid-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := serve(r, req)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestZapLogger_RequestID(t *testing.T) {
	r := gin.New()
	r.Use(ZapLogger(zap.NewNop()))
	r.GET("/", func(c *gin.Context) {
		_, hasLogger := c.Get(common.LoggerKey)
		assert.True(t, hasLogger)
		c.String(http.StatusOK, c.GetString(RequestIDContextKey))
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, w.Header().Get(RequestIDHeader), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w = serve(r, req)
	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
}
