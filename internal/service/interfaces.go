package service

import (
	"context"
	"io"

	"github.com/MKhiriev/go-task-manager/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// TokenService mints and verifies bearer tokens. Tokens are stateless and
// cannot be revoked.
type TokenService interface {
	// Issue signs a token whose subject is subjectID.
	Issue(ctx context.Context, subjectID string) (models.Token, error)

	// Verify checks signature, issuer and expiry. Failures are
	// [ErrTokenMalformed], [ErrTokenBadSignature] or [ErrTokenIsExpired].
	Verify(ctx context.Context, token string) (models.Token, error)
}

// AuthService implements the identity lifecycle: registration, login,
// password change, profile update and request authentication.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)
	ChangePassword(ctx context.Context, identity models.Identity, req models.ChangePasswordRequest) (models.AuthResponse, error)
	UpdateProfile(ctx context.Context, identity models.Identity, req models.ProfileUpdateRequest) (models.AuthResponse, error)

	// Authenticate resolves an Authorization header value into the identity
	// of an existing user. Every failure is reported as [ErrUnauthenticated].
	Authenticate(ctx context.Context, authorizationHeader string) (models.Identity, error)
}

// UserService manages user accounts outside of the identity flows.
type UserService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, userID string) (models.User, error)
	UpdateUser(ctx context.Context, userID string, req models.ProfileUpdateRequest) (models.User, error)
	DeleteUser(ctx context.Context, userID string) (models.User, error)
}

// TaskService manages tasks and their attachments. Returned tasks have
// their assignees and projects populated.
type TaskService interface {
	CreateTask(ctx context.Context, userID string, input models.TaskInput, attachment *models.Attachment) (models.Task, error)
	ListTasks(ctx context.Context, req models.ListTasksRequest) (models.TaskPage, error)
	GetTask(ctx context.Context, taskID string) (models.Task, error)
	UpdateTask(ctx context.Context, taskID string, update models.TaskUpdate, attachment *models.Attachment) (models.Task, error)
	DeleteTask(ctx context.Context, taskID string) (models.Task, error)

	// OpenAttachment returns the stored attachment of taskID and its key.
	OpenAttachment(ctx context.Context, taskID string) (io.ReadCloser, string, error)

	// ExportTasks renders every task created by userID as an xlsx workbook.
	ExportTasks(ctx context.Context, userID string) ([]byte, error)
}

// ProjectService lists and seeds projects.
type ProjectService interface {
	ListProjects(ctx context.Context) ([]models.Project, error)

	// SeedProjects inserts the default projects when none exist yet and
	// returns how many were inserted.
	SeedProjects(ctx context.Context) (int, error)
}
