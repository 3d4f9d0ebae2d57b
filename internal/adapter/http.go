package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/utils"
	"github.com/MKhiriev/go-task-manager/models"
)

type httpAPIClient struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPAPIClient constructs the resty implementation of [APIClient].
// address may omit the scheme, in which case http is assumed. A
// non-positive timeout disables the per-request timeout.
func NewHTTPAPIClient(address string, timeout time.Duration, logger *logger.Logger) (APIClient, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid api address: %w", err)
	}

	return &httpAPIClient{client: utils.NewHTTPClient(baseURL, timeout), logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpAPIClient) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpAPIClient) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpAPIClient) Health(ctx context.Context) (models.HealthResponse, error) {
	var health models.HealthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&health).
		Get("/health")
	if err != nil {
		return models.HealthResponse{}, fmt.Errorf("health request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.HealthResponse{}, err
	}

	return health, nil
}

// Register posts to POST /api/auth/register and keeps the returned token.
func (h *httpAPIClient) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	return h.signIn(h.client.R().SetContext(ctx), "/api/auth/register", req)
}

// Login posts to POST /api/auth/login and keeps the returned token.
func (h *httpAPIClient) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	return h.signIn(h.client.R().SetContext(ctx), "/api/auth/login", req)
}

func (h *httpAPIClient) Profile(ctx context.Context) (models.User, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.User{}, err
	}

	var user models.User
	resp, err := req.SetResult(&user).Get("/api/auth/profile")
	if err != nil {
		return models.User{}, fmt.Errorf("profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// ChangePassword replaces the stored token with the freshly issued one.
func (h *httpAPIClient) ChangePassword(ctx context.Context, changeReq models.ChangePasswordRequest) (models.AuthResponse, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.AuthResponse{}, err
	}
	return h.signIn(req, "/api/auth/change-password", changeReq)
}

func (h *httpAPIClient) UpdateProfile(ctx context.Context, updateReq models.ProfileUpdateRequest) (models.AuthResponse, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.AuthResponse{}, err
	}

	var auth models.AuthResponse
	resp, err := req.SetBody(updateReq).SetResult(&auth).Put("/api/auth/profile")
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("update profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	h.SetToken(auth.Token)
	return auth, nil
}

func (h *httpAPIClient) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&projects).
		Get("/api/projects")
	if err != nil {
		return nil, fmt.Errorf("list projects request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return projects, nil
}

func (h *httpAPIClient) CreateTask(ctx context.Context, input models.TaskInput) (models.Task, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.Task{}, err
	}

	var task models.Task
	resp, err := req.SetBody(input).SetResult(&task).Post("/api/tasks")
	if err != nil {
		return models.Task{}, fmt.Errorf("create task request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Task{}, err
	}

	return task, nil
}

// ListTasks leaves page and limit to the server defaults when they are not
// positive.
func (h *httpAPIClient) ListTasks(ctx context.Context, page, limit int) (models.TaskPage, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.TaskPage{}, err
	}
	if page > 0 {
		req.SetQueryParam("page", strconv.Itoa(page))
	}
	if limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(limit))
	}

	var tasks models.TaskPage
	resp, err := req.SetResult(&tasks).Get("/api/tasks")
	if err != nil {
		return models.TaskPage{}, fmt.Errorf("list tasks request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TaskPage{}, err
	}

	return tasks, nil
}

func (h *httpAPIClient) ExportTasks(ctx context.Context) ([]byte, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := req.SetHeader("Accept", "*/*").Get("/api/tasks/export")
	if err != nil {
		return nil, fmt.Errorf("export tasks request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}

// signIn posts body to path, expects an {user, token} answer and stores the
// token.
func (h *httpAPIClient) signIn(req *resty.Request, path string, body any) (models.AuthResponse, error) {
	var auth models.AuthResponse

	resp, err := req.SetBody(body).SetResult(&auth).Post(path)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("%s request: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}
	if auth.Token == "" {
		return models.AuthResponse{}, fmt.Errorf("%s: response carries no token", path)
	}

	h.SetToken(auth.Token)
	h.logger.Debug().Str("user_id", auth.User.UserID).Str("path", path).Msg("token received")

	return auth, nil
}

func (h *httpAPIClient) authedRequest(ctx context.Context) (*resty.Request, error) {
	token := h.Token()
	if token == "" {
		return nil, ErrNoToken
	}
	return h.client.R().SetContext(ctx).SetAuthToken(token), nil
}
