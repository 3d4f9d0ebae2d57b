// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a client for the task manager HTTP API.
//
// [APIClient] hides the transport from callers. Non-2xx responses are mapped
// by mapHTTPError onto the sentinels of errors.go, so callers can match them
// with [errors.Is] (e.g. [ErrUnauthorized] for 401, [ErrNotFound] for 404).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-task-manager/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/api_client_mock.go -package=mock

// APIClient talks to a task manager server on behalf of one user.
//
// Operations that mint a token (Register, Login, ChangePassword and
// UpdateProfile) store it with SetToken; every authenticated call sends the
// stored token as a bearer credential.
type APIClient interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token, or "" if none was set.
	Token() string

	Health(ctx context.Context) (models.HealthResponse, error)

	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)
	Profile(ctx context.Context) (models.User, error)
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (models.AuthResponse, error)
	UpdateProfile(ctx context.Context, req models.ProfileUpdateRequest) (models.AuthResponse, error)

	ListProjects(ctx context.Context) ([]models.Project, error)

	CreateTask(ctx context.Context, input models.TaskInput) (models.Task, error)
	ListTasks(ctx context.Context, page, limit int) (models.TaskPage, error)

	// ExportTasks downloads the caller's tasks as an xlsx workbook.
	ExportTasks(ctx context.Context) ([]byte, error)
}
