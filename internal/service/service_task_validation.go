package service

import (
	"context"
	"io"
	"slices"

	"github.com/MKhiriev/go-task-manager/internal/validators"
	"github.com/MKhiriev/go-task-manager/models"
)

// allowedUpdateKeys are the request fields a task update may carry.
var allowedUpdateKeys = []string{"title", "description", "completed", "priority"}

type TaskValidationService struct {
	inner     TaskService
	validator validators.Validator
}

func NewTaskValidationService() TaskServiceWrapper {
	return &TaskValidationService{
		validator: validators.NewTaskValidator(),
	}
}

func (v *TaskValidationService) CreateTask(ctx context.Context, userID string, input models.TaskInput, attachment *models.Attachment) (models.Task, error) {
	if err := v.validator.Validate(ctx, input); err != nil {
		return models.Task{}, err
	}

	return v.inner.CreateTask(ctx, userID, input, attachment)
}

func (v *TaskValidationService) ListTasks(ctx context.Context, req models.ListTasksRequest) (models.TaskPage, error) {
	return v.inner.ListTasks(ctx, req)
}

func (v *TaskValidationService) GetTask(ctx context.Context, taskID string) (models.Task, error) {
	return v.inner.GetTask(ctx, taskID)
}

// UpdateTask checks field values first and the set of keys second, so a
// request with both kinds of problems reports the field errors.
func (v *TaskValidationService) UpdateTask(ctx context.Context, taskID string, update models.TaskUpdate, attachment *models.Attachment) (models.Task, error) {
	if err := v.validator.Validate(ctx, update); err != nil {
		return models.Task{}, err
	}

	for _, key := range update.Keys {
		if !slices.Contains(allowedUpdateKeys, key) {
			return models.Task{}, ErrInvalidUpdates
		}
	}

	return v.inner.UpdateTask(ctx, taskID, update, attachment)
}

func (v *TaskValidationService) DeleteTask(ctx context.Context, taskID string) (models.Task, error) {
	return v.inner.DeleteTask(ctx, taskID)
}

func (v *TaskValidationService) OpenAttachment(ctx context.Context, taskID string) (io.ReadCloser, string, error) {
	return v.inner.OpenAttachment(ctx, taskID)
}

func (v *TaskValidationService) ExportTasks(ctx context.Context, userID string) ([]byte, error) {
	return v.inner.ExportTasks(ctx, userID)
}

func (v *TaskValidationService) Wrap(wrapper TaskService) TaskService {
	v.inner = wrapper
	return v
}
