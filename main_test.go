package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"prioritix/config"
	"prioritix/handler"
	"prioritix/services"
	"prioritix/testutils"
	"prioritix/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() config.AppConfig {
	return config.AppConfig{
		Server: config.ServerConfig{
			AllowedOrigins: []string{"http://localhost:5173"},
			RequestTimeout: 5 * time.Second,
			MaxBodyBytes:   1 << 20,
		},
		Auth:  config.AuthConfig{SecretKey: "router-test-secret", Issuer: "prioritix", AccessTokenTTL: time.Hour},
		Todos: config.TodosConfig{DefaultPageLimit: 10, MaxPageLimit: 100, TimeZone: "UTC"},
	}
}

func setupTestRouter(t *testing.T) (*gin.Engine, config.AppConfig) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	up := func(context.Context) error { return nil }
	deps := routerDeps{
		Todos:     usecase.NewTodosService(testutils.NewMemoryTodoStore()),
		Analytics: usecase.NewAnalyticsService(&testutils.StubAnalyticsStore{}, time.UTC),
		Health:    handler.NewHealthHandler(up, nil),
		Logger:    zap.NewNop(),
	}
	return setupRouter(cfg, deps), cfg
}

func bearer(t *testing.T, cfg config.AppConfig, userID string) string {
	t.Helper()
	token, err := services.GenerateAccessToken(cfg.Auth.SecretKey, cfg.Auth.Issuer, userID, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestRouterRequiresAuthForAPI(t *testing.T) {
	router, _ := setupTestRouter(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/todos"},
		{http.MethodGet, "/api/todos/recent"},
		{http.MethodPost, "/api/todos"},
		{http.MethodPut, "/api/todos/abc"},
		{http.MethodDelete, "/api/todos/abc"},
		{http.MethodGet, "/api/analytics"},
		{http.MethodGet, "/api/analytics/monthly"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(route.method, route.path, nil))
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRouterPublicEndpoints(t *testing.T) {
	router, _ := setupTestRouter(t)

	for _, path := range []string{"/health", "/metrics"} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestRouterTodoLifecycle(t *testing.T) {
	router, cfg := setupTestRouter(t)
	alice := bearer(t, cfg, "alice")
	bob := bearer(t, cfg, "bob")

	send := func(method, path, auth, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Authorization", auth)
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := send(http.MethodPost, "/api/todos", alice, `{"title":"Ship release","category":"work","priority":"high"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	var created struct {
		ID   string `json:"id"`
		User string `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "alice", created.User)

	w = send(http.MethodPut, "/api/todos/"+created.ID, bob, `{"completed":true}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = send(http.MethodPut, "/api/todos/"+created.ID, alice, `{"completed":true}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = send(http.MethodGet, "/api/todos", bob, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"todos":[],"totalPages":0,"currentPage":1,"total":0}`, w.Body.String())

	w = send(http.MethodDelete, "/api/todos/"+created.ID, alice, "")
	assert.Equal(t, http.StatusOK, w.Code)
}
