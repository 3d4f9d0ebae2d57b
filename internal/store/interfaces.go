package store

import (
	"context"
	"io"

	"github.com/MKhiriev/go-task-manager/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository is the credential store. Its operations mirror the
// document-store contract the service layer relies on: findOne by email,
// findById, save, findByIdAndUpdate and findByIdAndDelete.
type UserRepository interface {
	// CreateUser persists a new user. user.Password must already be a hash.
	// Returns [ErrDuplicateEmail] when the email is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail returns [ErrNoUserWasFound] when no user owns email.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID returns [ErrNoUserWasFound] when userID matches no user.
	FindUserByID(ctx context.Context, userID string) (models.User, error)

	// FindUsersByIDs returns the users whose ids are in userIDs. Unknown ids
	// are skipped; the result follows the order of userIDs.
	FindUsersByIDs(ctx context.Context, userIDs []string) ([]models.User, error)

	// ListUsers returns every user ordered by id.
	ListUsers(ctx context.Context) ([]models.User, error)

	// UpdateUser overwrites name and email of user.UserID and returns the
	// updated record.
	UpdateUser(ctx context.Context, user models.User) (models.User, error)

	// UpdatePassword replaces the stored password hash of userID.
	UpdatePassword(ctx context.Context, userID, passwordHash string) error

	// DeleteUser removes userID and returns the deleted record. Tasks and
	// projects referencing the user are left untouched.
	DeleteUser(ctx context.Context, userID string) (models.User, error)
}

// TaskRepository persists tasks together with their assignee and project
// references.
type TaskRepository interface {
	// CreateTask persists task and its references in one transaction.
	CreateTask(ctx context.Context, task models.Task) (models.Task, error)

	// FindTaskByID returns the task with its stored references (not
	// resolved). Returns [ErrTaskNotFound] when absent.
	FindTaskByID(ctx context.Context, taskID string) (models.Task, error)

	// ListTasks returns one page of tasks created by req.UserID.
	// req.SortColumn must already be a whitelisted column.
	ListTasks(ctx context.Context, req models.ListTasksRequest) ([]models.Task, error)

	// CountTasks returns the number of tasks created by userID.
	CountTasks(ctx context.Context, userID string) (int64, error)

	// UpdateTask applies the non-nil fields of update to taskID. When
	// attachment is non-nil it replaces the stored attachment key.
	UpdateTask(ctx context.Context, taskID string, update models.TaskUpdate, attachment *string) (models.Task, error)

	// DeleteTask removes taskID and returns the deleted task.
	DeleteTask(ctx context.Context, taskID string) (models.Task, error)
}

// ProjectRepository persists projects.
type ProjectRepository interface {
	// CreateProjects inserts every project in one transaction.
	CreateProjects(ctx context.Context, projects ...models.Project) error

	// ListProjects returns every project ordered by id.
	ListProjects(ctx context.Context) ([]models.Project, error)

	// FindProjectsByIDs returns the projects whose ids are in projectIDs.
	// Unknown ids are skipped; the result follows the order of projectIDs.
	FindProjectsByIDs(ctx context.Context, projectIDs []string) ([]models.Project, error)

	// CountProjects returns the total number of projects.
	CountProjects(ctx context.Context) (int64, error)
}

// AttachmentStorage keeps the files uploaded with tasks. Keys returned by
// Save are opaque to callers and stored on the task as is.
type AttachmentStorage interface {
	// Save stores the attachment content and returns its key.
	Save(ctx context.Context, attachment models.Attachment) (string, error)

	// Open returns a reader over the stored object. The caller closes it.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the stored object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
