package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MarkoPoloResearchLab/botdash/internal/httpapi"
)

const (
	testAllowedOrigin = "http://console.example.test"
	testUsersPayload  = `{"total": 1, "page": 1, "pages": 1, "users": [{"username": "alice", "points": 3, "badges": []}]}`
)

func newTestDashboardServer(testingT *testing.T, allowedOrigins []string) *dashboardServer {
	testingT.Helper()
	gin.SetMode(gin.TestMode)

	backendServer := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		if request.URL.Path == "/api/users" {
			_, _ = writer.Write([]byte(testUsersPayload))
			return
		}
		_, _ = writer.Write([]byte(`{"error": "not implemented"}`))
	}))
	testingT.Cleanup(backendServer.Close)

	server, buildErr := buildDashboardServer(DashboardConfig{
		BackendBaseURL:  backendServer.URL,
		RequestTimeout:  time.Second,
		RefreshInterval: time.Minute,
		SessionSecret:   "0123456789abcdef0123456789abcdef",
		AllowedOrigins:  allowedOrigins,
	}, zap.NewNop())
	require.NoError(testingT, buildErr)
	testingT.Cleanup(server.refresher.Stop)
	return server
}

func serve(server *dashboardServer, method string, target string, origin string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, nil)
	if origin != "" {
		request.Header.Set("Origin", origin)
	}
	recorder := httptest.NewRecorder()
	server.router.ServeHTTP(recorder, request)
	return recorder
}

func TestRootRedirectsToDashboard(testingT *testing.T) {
	server := newTestDashboardServer(testingT, nil)

	recorder := serve(server, http.MethodGet, "/", "")
	require.Equal(testingT, http.StatusFound, recorder.Code)
	require.Equal(testingT, httpapi.DashboardPath, recorder.Header().Get("Location"))
}

func TestHealthAndMetricsRoutes(testingT *testing.T) {
	server := newTestDashboardServer(testingT, nil)

	health := serve(server, http.MethodGet, httpapi.HealthPath, "")
	require.Equal(testingT, http.StatusOK, health.Code)
	require.JSONEq(testingT, `{"status":"ok"}`, health.Body.String())

	metrics := serve(server, http.MethodGet, httpapi.MetricsPath, "")
	require.Equal(testingT, http.StatusOK, metrics.Code)
	require.Contains(testingT, metrics.Body.String(), "go_goroutines")
}

func TestUsersFragmentRouteRendersTableAndSetsSession(testingT *testing.T) {
	server := newTestDashboardServer(testingT, nil)

	recorder := serve(server, http.MethodGet, httpapi.UsersFragmentPath+"?page=1", "")
	require.Equal(testingT, http.StatusOK, recorder.Code)
	require.Contains(testingT, recorder.Body.String(), "alice")
	require.True(testingT, strings.Contains(recorder.Header().Get("Set-Cookie"), httpapi.SessionCookieName))
}

func TestStatsFragmentRouteReturnsBadGatewayOnBackendError(testingT *testing.T) {
	server := newTestDashboardServer(testingT, nil)

	recorder := serve(server, http.MethodGet, httpapi.StatsFragmentPath, "")
	require.Equal(testingT, http.StatusBadGateway, recorder.Code)
	require.Contains(testingT, recorder.Body.String(), "not implemented")
}

func TestDashboardScriptRoute(testingT *testing.T) {
	server := newTestDashboardServer(testingT, nil)

	recorder := serve(server, http.MethodGet, httpapi.DashboardScriptPath, "")
	require.Equal(testingT, http.StatusOK, recorder.Code)
	require.Contains(testingT, recorder.Header().Get("Content-Type"), "javascript")
}

func TestDashboardPreflightHonoursAllowedOrigins(testingT *testing.T) {
	server := newTestDashboardServer(testingT, []string{testAllowedOrigin})

	request := httptest.NewRequest(http.MethodOptions, httpapi.ThemePath, nil)
	request.Header.Set("Origin", testAllowedOrigin)
	request.Header.Set("Access-Control-Request-Method", http.MethodPost)
	recorder := httptest.NewRecorder()
	server.router.ServeHTTP(recorder, request)

	require.Equal(testingT, http.StatusNoContent, recorder.Code)
	require.Equal(testingT, testAllowedOrigin, recorder.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(testingT, "true", recorder.Header().Get("Access-Control-Allow-Credentials"))
}

func TestSplitOriginsDropsBlanks(testingT *testing.T) {
	require.Equal(testingT, []string{"http://a.test", "http://b.test"}, splitOrigins(" http://a.test, ,http://b.test "))
	require.Nil(testingT, splitOrigins(""))
}
