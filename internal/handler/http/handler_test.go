package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/mock"
	"github.com/MKhiriev/go-task-manager/internal/service"
	"github.com/MKhiriev/go-task-manager/models"
)

const testToken = "header.payload.signature"

var testIdentity = models.Identity{
	User:  models.User{UserID: "user-1", Name: "John Doe", Email: "john@doe.com"},
	Token: testToken,
}

// handlerFixture wires a Handler to mocked services.
type handlerFixture struct {
	auth     *mock.MockAuthService
	users    *mock.MockUserService
	tasks    *mock.MockTaskService
	projects *mock.MockProjectService

	handler *Handler
	router  http.Handler
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &handlerFixture{
		auth:     mock.NewMockAuthService(ctrl),
		users:    mock.NewMockUserService(ctrl),
		tasks:    mock.NewMockTaskService(ctrl),
		projects: mock.NewMockProjectService(ctrl),
	}
	f.handler = NewHandler(&service.Services{
		AuthService:    f.auth,
		UserService:    f.users,
		TaskService:    f.tasks,
		ProjectService: f.projects,
	}, config.Server{}, models.NewAppBuildInfo("1.2.3", "2026-10-01", "abc123"), logger.Nop())
	f.router = f.handler.Init()

	return f
}

// authenticated expects one successful token check for testIdentity.
func (f *handlerFixture) authenticated() {
	f.auth.EXPECT().Authenticate(gomock.Any(), "Bearer "+testToken).Return(testIdentity, nil)
}

func (f *handlerFixture) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func newJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = strings.NewReader(string(data))
	}

	req := httptest.NewRequest(method, target, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func withBearer(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer "+testToken)
	return req
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestNewHandler(t *testing.T) {
	svcs := &service.Services{}
	log := logger.Nop()
	cfg := config.Server{HTTPAddress: ":3000"}

	h := NewHandler(svcs, cfg, models.NewAppBuildInfo("v1", "", ""), log)

	require.NotNil(t, h)
	assert.Same(t, svcs, h.services)
	assert.Same(t, log, h.logger)
	assert.Equal(t, cfg, h.cfg)
	assert.Equal(t, "v1", h.buildInfo.BuildVersion())
	require.NotNil(t, h.metrics)
}

func TestNewHandler_IndependentMetrics(t *testing.T) {
	h1 := NewHandler(&service.Services{}, config.Server{}, models.AppBuildInfo{}, logger.Nop())
	h2 := NewHandler(&service.Services{}, config.Server{}, models.AppBuildInfo{}, logger.Nop())

	assert.NotSame(t, h1, h2)
	assert.NotSame(t, h1.metrics.registry, h2.metrics.registry)
}

func TestHealth(t *testing.T) {
	f := newHandlerFixture(t)

	rr := f.do(httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, models.HealthResponse{Status: "ok", Version: "1.2.3"}, decodeBody[models.HealthResponse](t, rr))
}

func TestListProjects(t *testing.T) {
	t.Run("projects", func(t *testing.T) {
		f := newHandlerFixture(t)
		projects := []models.Project{{ProjectID: "p1", Title: "Project Alpha"}, {ProjectID: "p2", Title: "Project Beta"}}
		f.projects.EXPECT().ListProjects(gomock.Any()).Return(projects, nil)

		rr := f.do(httptest.NewRequest(http.MethodGet, "/api/projects", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, projects, decodeBody[[]models.Project](t, rr))
	})

	t.Run("empty list is an array", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.projects.EXPECT().ListProjects(gomock.Any()).Return(nil, nil)

		rr := f.do(httptest.NewRequest(http.MethodGet, "/api/projects", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("store failure", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.projects.EXPECT().ListProjects(gomock.Any()).Return(nil, assert.AnError)

		rr := f.do(httptest.NewRequest(http.MethodGet, "/api/projects", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"error":"Internal Server Error"}`, rr.Body.String())
	})
}
