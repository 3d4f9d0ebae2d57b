package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/service"
	"github.com/MKhiriev/go-task-manager/models"
)

// protectedRoutes must answer 401 without a bearer token.
var protectedRoutes = []struct {
	method string
	path   string
}{
	{http.MethodPost, "/api/auth/change-password"},
	{http.MethodGet, "/api/auth/profile"},
	{http.MethodPut, "/api/auth/profile"},
	{http.MethodPut, "/api/users/u1"},
	{http.MethodDelete, "/api/users/u1"},
	{http.MethodPost, "/api/tasks"},
	{http.MethodGet, "/api/tasks"},
	{http.MethodGet, "/api/tasks/export"},
	{http.MethodGet, "/api/tasks/t1"},
	{http.MethodPut, "/api/tasks/t1"},
	{http.MethodDelete, "/api/tasks/t1"},
	{http.MethodGet, "/api/tasks/t1/attachment"},
}

func TestInit_ProtectedRoutesRequireToken(t *testing.T) {
	for _, route := range protectedRoutes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			f := newHandlerFixture(t)
			f.auth.EXPECT().Authenticate(gomock.Any(), "").Return(models.Identity{}, service.ErrUnauthenticated)

			rr := f.do(httptest.NewRequest(route.method, route.path, nil))

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.JSONEq(t, `{"error":"Please authenticate."}`, rr.Body.String())
		})
	}
}

func TestInit_PublicRoutes(t *testing.T) {
	f := newHandlerFixture(t)
	f.users.EXPECT().ListUsers(gomock.Any()).Return([]models.User{}, nil)
	f.users.EXPECT().GetUser(gomock.Any(), "u1").Return(models.User{UserID: "u1"}, nil)
	f.projects.EXPECT().ListProjects(gomock.Any()).Return([]models.Project{}, nil)

	for _, path := range []string{"/api/users", "/api/users/u1", "/api/projects", "/health"} {
		rr := f.do(httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rr.Code, path)
	}
}

func TestInit_UnknownPathAndMethod(t *testing.T) {
	f := newHandlerFixture(t)

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{name: "unknown path", method: http.MethodGet, path: "/api/unknown"},
		{name: "unregistered method", method: http.MethodPatch, path: "/api/projects"},
		{name: "get on login", method: http.MethodGet, path: "/api/auth/login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := f.do(httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, http.StatusNotFound, rr.Code)
		})
	}
}

func TestInit_Metrics(t *testing.T) {
	f := newHandlerFixture(t)
	f.do(httptest.NewRequest(http.MethodGet, "/health", nil))

	rr := f.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `task_manager_http_requests_total{method="GET",route="/health",status="200"} 1`)
	assert.Contains(t, body, "task_manager_http_request_duration_seconds")
}

func TestInit_TraceIDEchoed(t *testing.T) {
	f := newHandlerFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(traceIDHeader, "trace-42")
	rr := f.do(req)

	assert.Equal(t, "trace-42", rr.Header().Get(traceIDHeader))
}

func TestInit_CORS(t *testing.T) {
	h := NewHandler(&service.Services{}, config.Server{CORSOrigins: []string{"http://app.test"}}, models.AppBuildInfo{}, logger.Nop())
	router := h.Init()

	t.Run("allowed origin preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/tasks", nil)
		req.Header.Set("Origin", "http://app.test")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, "http://app.test", rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("other origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://evil.test")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestInit_GzipResponses(t *testing.T) {
	f := newHandlerFixture(t)
	users := make([]models.User, 50)
	for i := range users {
		users[i] = models.User{UserID: strings.Repeat("x", 10), Name: "John Doe", Email: "john@doe.com"}
	}
	f.users.EXPECT().ListUsers(gomock.Any()).Return(users, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := f.do(req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
	assert.Contains(t, gunzip(t, rr.Body), `"results"`)
}
