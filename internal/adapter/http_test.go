// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/models"
)

var johnDoe = models.AuthResponse{
	User:  models.User{UserID: "user-1", Name: "John Doe", Email: "john@doe.com"},
	Token: "token-1",
}

func newTestClient(t *testing.T, serverURL string) *httpAPIClient {
	t.Helper()
	c, err := NewHTTPAPIClient(serverURL, 0, logger.Nop())
	require.NoError(t, err)
	return c.(*httpAPIClient)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "scheme added", raw: "localhost:3000", want: "http://localhost:3000"},
		{name: "trailing slash trimmed", raw: " https://api.test/ ", want: "https://api.test"},
		{name: "empty", raw: "  ", wantErr: true},
		{name: "no host", raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPAPIClient_InvalidAddress(t *testing.T) {
	c, err := NewHTTPAPIClient("", 0, logger.Nop())
	assert.Nil(t, c)
	assert.Error(t, err)
}

func TestRegister_StoresToken(t *testing.T) {
	req := models.RegisterRequest{Name: "John Doe", Email: "john@doe.com", Password: "secret123"}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/register", r.URL.Path)

		var got models.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, req, got)

		writeJSON(t, w, http.StatusCreated, johnDoe)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	got, err := c.Register(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, johnDoe, got)
	assert.Equal(t, "token-1", c.Token())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, models.ErrorResponse{Error: "Email already exists"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Register(context.Background(), models.RegisterRequest{})

	assert.ErrorIs(t, err, ErrBadRequest)
	assert.ErrorContains(t, err, "Email already exists")
	assert.Empty(t, c.Token())
}

func TestLogin_InvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, models.MessageResponse{Message: "Invalid credentials"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Login(context.Background(), models.LoginRequest{Email: "john@doe.com", Password: "nope"})

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.ErrorContains(t, err, "Invalid credentials")
}

func TestLogin_MissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, models.AuthResponse{User: johnDoe.User})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Login(context.Background(), models.LoginRequest{})

	assert.ErrorContains(t, err, "response carries no token")
}

func TestProfile_SendsBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/profile", r.URL.Path)
		if r.Header.Get("Authorization") != "Bearer token-1" {
			writeJSON(t, w, http.StatusUnauthorized, models.ErrorResponse{Error: "Please authenticate."})
			return
		}
		writeJSON(t, w, http.StatusOK, johnDoe.User)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetToken(" token-1 ")

	got, err := c.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, johnDoe.User, got)
}

func TestAuthenticatedCallsRequireToken(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:1")
	ctx := context.Background()

	_, err := c.Profile(ctx)
	assert.ErrorIs(t, err, ErrNoToken)
	_, err = c.ChangePassword(ctx, models.ChangePasswordRequest{})
	assert.ErrorIs(t, err, ErrNoToken)
	_, err = c.UpdateProfile(ctx, models.ProfileUpdateRequest{})
	assert.ErrorIs(t, err, ErrNoToken)
	_, err = c.CreateTask(ctx, models.TaskInput{})
	assert.ErrorIs(t, err, ErrNoToken)
	_, err = c.ListTasks(ctx, 1, 10)
	assert.ErrorIs(t, err, ErrNoToken)
	_, err = c.ExportTasks(ctx)
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestChangePassword_ReplacesToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/change-password", r.URL.Path)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, models.AuthResponse{User: johnDoe.User, Token: "token-2"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetToken("token-1")

	_, err := c.ChangePassword(context.Background(), models.ChangePasswordRequest{OldPassword: "a", NewPassword: "b", ConfirmPassword: "b"})
	require.NoError(t, err)
	assert.Equal(t, "token-2", c.Token())
}

func TestChangePassword_Mismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, models.MessageResponse{Message: "New password must be confirmed"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetToken("token-1")

	_, err := c.ChangePassword(context.Background(), models.ChangePasswordRequest{})
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Equal(t, "token-1", c.Token())
}

func TestListTasks_Query(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tasks", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.False(t, r.URL.Query().Has("limit"))
		writeJSON(t, w, http.StatusOK, models.TaskPage{Total: 12, Page: 2, Limit: 10, TotalPages: 2, Results: []models.Task{}})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetToken("token-1")

	page, err := c.ListTasks(context.Background(), 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 12, page.Total)
	assert.Equal(t, 2, page.Page)
}

func TestCreateTask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var in models.TaskInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		writeJSON(t, w, http.StatusCreated, models.Task{TaskID: "task-1", Title: in.Title, Priority: models.Priority(in.Priority)})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetToken("token-1")

	task, err := c.CreateTask(context.Background(), models.TaskInput{Title: "Write report", Priority: "High"})
	require.NoError(t, err)
	assert.Equal(t, "task-1", task.TaskID)
	assert.Equal(t, models.PriorityHigh, task.Priority)
}

func TestExportTasks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Write([]byte("PK\x03\x04"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetToken("token-1")

	data, err := c.ExportTasks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("PK\x03\x04"), data)
}

func TestListProjectsAndHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/api/projects":
			writeJSON(t, w, http.StatusOK, []models.Project{{ProjectID: "p1", Title: "Project Alpha"}})
		case "/health":
			writeJSON(t, w, http.StatusOK, models.HealthResponse{Status: "ok", Version: "1.0.0"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	projects, err := c.ListProjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Project{{ProjectID: "p1", Title: "Project Alpha"}}, projects)

	health, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
}
