package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/store"
	"github.com/MKhiriev/go-task-manager/internal/utils"
	"github.com/MKhiriev/go-task-manager/models"
)

// Task listing limits.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type taskService struct {
	taskRepository    store.TaskRepository
	userRepository    store.UserRepository
	projectRepository store.ProjectRepository
	attachments       store.AttachmentStorage
	ids               *utils.UUIDGenerator

	logger *logger.Logger
}

// NewTaskService returns the TaskService core. It does not validate its
// input; wrap it with [NewTaskValidationService] for that.
func NewTaskService(storages *store.Storages, logger *logger.Logger) TaskService {
	return &taskService{
		taskRepository:    storages.TaskRepository,
		userRepository:    storages.UserRepository,
		projectRepository: storages.ProjectRepository,
		attachments:       storages.AttachmentStorage,
		ids:               utils.NewUUIDGenerator(),
		logger:            logger,
	}
}

// CreateTask stores the attachment first, then the task. The attachment is
// removed again if the task cannot be saved.
func (t *taskService) CreateTask(ctx context.Context, userID string, input models.TaskInput, attachment *models.Attachment) (models.Task, error) {
	log := logger.FromContext(ctx)

	startDate, err := time.Parse(models.DateLayout, input.StartDate)
	if err != nil {
		return models.Task{}, fmt.Errorf("invalid start date: %w", err)
	}
	endDate, err := time.Parse(models.DateLayout, input.EndDate)
	if err != nil {
		return models.Task{}, fmt.Errorf("invalid end date: %w", err)
	}

	task := models.Task{
		TaskID:      t.ids.Generate(),
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		StartDate:   startDate,
		EndDate:     endDate,
		Priority:    models.Priority(input.Priority),
		CreatedBy:   userID,
		AssigneeIDs: uniqueIDs(input.Assignees),
		ProjectIDs:  uniqueIDs(input.Projects),
	}

	if attachment != nil {
		key, saveErr := t.attachments.Save(ctx, *attachment)
		if saveErr != nil {
			return models.Task{}, fmt.Errorf("attachment upload failed: %w", saveErr)
		}
		task.Attachment = &key
	}

	created, err := t.taskRepository.CreateTask(ctx, task)
	if err != nil {
		log.Err(err).Str("func", "*taskService.CreateTask").Str("user_id", userID).Msg("task creation failed")
		t.discardAttachment(ctx, task.Attachment)
		return models.Task{}, fmt.Errorf("task creation failed: %w", err)
	}

	return t.populateOne(ctx, created)
}

// ListTasks returns one page of the tasks created by req.UserID. Out of range
// paging values fall back to the defaults and unknown sort columns to "_id".
func (t *taskService) ListTasks(ctx context.Context, req models.ListTasksRequest) (models.TaskPage, error) {
	req = normalizeListRequest(req)

	total, err := t.taskRepository.CountTasks(ctx, req.UserID)
	if err != nil {
		return models.TaskPage{}, fmt.Errorf("counting tasks failed: %w", err)
	}

	tasks, err := t.taskRepository.ListTasks(ctx, req)
	if err != nil {
		return models.TaskPage{}, fmt.Errorf("listing tasks failed: %w", err)
	}

	if tasks, err = t.populate(ctx, tasks); err != nil {
		return models.TaskPage{}, err
	}

	return newTaskPage(total, req.Page, req.Limit, tasks), nil
}

func (t *taskService) GetTask(ctx context.Context, taskID string) (models.Task, error) {
	task, err := t.taskRepository.FindTaskByID(ctx, taskID)
	if err != nil {
		return models.Task{}, err
	}

	return t.populateOne(ctx, task)
}

// UpdateTask applies update. A new attachment replaces the stored one; the
// previous object is deleted once the task points at the new one.
func (t *taskService) UpdateTask(ctx context.Context, taskID string, update models.TaskUpdate, attachment *models.Attachment) (models.Task, error) {
	log := logger.FromContext(ctx)

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		update.Title = &title
	}
	if update.Description != nil {
		description := strings.TrimSpace(*update.Description)
		update.Description = &description
	}

	var previous, key *string
	if attachment != nil {
		current, err := t.taskRepository.FindTaskByID(ctx, taskID)
		if err != nil {
			return models.Task{}, err
		}
		previous = current.Attachment

		saved, err := t.attachments.Save(ctx, *attachment)
		if err != nil {
			return models.Task{}, fmt.Errorf("attachment upload failed: %w", err)
		}
		key = &saved
	}

	updated, err := t.taskRepository.UpdateTask(ctx, taskID, update, key)
	if err != nil {
		t.discardAttachment(ctx, key)
		if !errors.Is(err, store.ErrNotFound) {
			log.Err(err).Str("func", "*taskService.UpdateTask").Str("task_id", taskID).Msg("task update failed")
		}
		return models.Task{}, fmt.Errorf("task update failed: %w", err)
	}

	if key != nil {
		t.discardAttachment(ctx, previous)
	}

	return t.populateOne(ctx, updated)
}

// DeleteTask removes the task and then its attachment. A failed attachment
// removal is logged and does not fail the call.
func (t *taskService) DeleteTask(ctx context.Context, taskID string) (models.Task, error) {
	deleted, err := t.taskRepository.DeleteTask(ctx, taskID)
	if err != nil {
		return models.Task{}, fmt.Errorf("task deletion failed: %w", err)
	}

	t.discardAttachment(ctx, deleted.Attachment)

	return t.populateOne(ctx, deleted)
}

func (t *taskService) OpenAttachment(ctx context.Context, taskID string) (io.ReadCloser, string, error) {
	task, err := t.taskRepository.FindTaskByID(ctx, taskID)
	if err != nil {
		return nil, "", err
	}
	if task.Attachment == nil {
		return nil, "", store.ErrAttachmentNotFound
	}

	rc, err := t.attachments.Open(ctx, *task.Attachment)
	if err != nil {
		return nil, "", err
	}

	return rc, *task.Attachment, nil
}

func (t *taskService) discardAttachment(ctx context.Context, key *string) {
	if key == nil || *key == "" {
		return
	}
	if err := t.attachments.Delete(ctx, *key); err != nil {
		logger.FromContext(ctx).Err(err).Str("key", *key).Msg("failed to delete attachment")
	}
}

func (t *taskService) populateOne(ctx context.Context, task models.Task) (models.Task, error) {
	tasks, err := t.populate(ctx, []models.Task{task})
	if err != nil {
		return models.Task{}, err
	}
	return tasks[0], nil
}

// populate resolves the assignee and project references of tasks with one
// lookup per collection. References to missing rows are dropped.
func (t *taskService) populate(ctx context.Context, tasks []models.Task) ([]models.Task, error) {
	var userIDs, projectIDs []string
	for _, task := range tasks {
		userIDs = append(userIDs, task.AssigneeIDs...)
		projectIDs = append(projectIDs, task.ProjectIDs...)
	}

	users, err := t.userRepository.FindUsersByIDs(ctx, uniqueIDs(userIDs))
	if err != nil {
		return nil, fmt.Errorf("resolving assignees failed: %w", err)
	}
	projects, err := t.projectRepository.FindProjectsByIDs(ctx, uniqueIDs(projectIDs))
	if err != nil {
		return nil, fmt.Errorf("resolving projects failed: %w", err)
	}

	usersByID := make(map[string]models.User, len(users))
	for _, user := range users {
		usersByID[user.UserID] = models.User{UserID: user.UserID, Name: user.Name, Email: user.Email}
	}
	projectsByID := make(map[string]models.ProjectRef, len(projects))
	for _, project := range projects {
		projectsByID[project.ProjectID] = models.ProjectRef{ProjectID: project.ProjectID, Title: project.Title}
	}

	for i := range tasks {
		tasks[i].Assignees = make([]models.User, 0, len(tasks[i].AssigneeIDs))
		for _, id := range tasks[i].AssigneeIDs {
			if user, ok := usersByID[id]; ok {
				tasks[i].Assignees = append(tasks[i].Assignees, user)
			}
		}

		tasks[i].Projects = make([]models.ProjectRef, 0, len(tasks[i].ProjectIDs))
		for _, id := range tasks[i].ProjectIDs {
			if project, ok := projectsByID[id]; ok {
				tasks[i].Projects = append(tasks[i].Projects, project)
			}
		}
	}

	return tasks, nil
}

func normalizeListRequest(req models.ListTasksRequest) models.ListTasksRequest {
	if req.Page < 1 {
		req.Page = DefaultPage
	}
	if req.Limit < 1 {
		req.Limit = DefaultLimit
	}
	if req.Limit > MaxLimit {
		req.Limit = MaxLimit
	}
	if !slices.Contains(models.TaskSortColumns, req.SortColumn) {
		req.SortColumn = models.DefaultTaskSortColumn
	}

	switch strings.ToLower(req.SortOrder) {
	case models.SortDescending, "descending", "-1":
		req.SortOrder = models.SortDescending
	default:
		req.SortOrder = models.SortAscending
	}

	return req
}

func newTaskPage(total int64, page, limit int, tasks []models.Task) models.TaskPage {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	result := models.TaskPage{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		Results:    tasks,
	}
	if page < totalPages {
		next := fmt.Sprintf("/tasks?page=%d&limit=%d", page+1, limit)
		result.NextPage = &next
	}
	if page > 1 {
		prev := fmt.Sprintf("/tasks?page=%d&limit=%d", page-1, limit)
		result.PrevPage = &prev
	}

	return result
}

// uniqueIDs drops blanks and repeats, keeping first occurrences in order.
func uniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
