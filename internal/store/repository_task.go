package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/models"
)

const (
	taskAssigneesTable = "task_assignees"
	taskProjectsTable  = "task_projects"
)

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// taskRepository is the PostgreSQL-backed implementation of [TaskRepository].
// Tasks live in the "tasks" table; assignee and project references live in
// the task_assignees and task_projects join tables and are returned as
// AssigneeIDs and ProjectIDs.
type taskRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTaskRepository constructs a [TaskRepository] backed by db.
func NewTaskRepository(db *DB, logger *logger.Logger) TaskRepository {
	logger.Debug().Msg("creating task repository")
	return &taskRepository{
		db:     db,
		logger: logger,
	}
}

func scanTask(row rowScanner) (models.Task, error) {
	var (
		task       models.Task
		priority   string
		attachment sql.NullString
	)

	err := row.Scan(
		&task.TaskID,
		&task.Title,
		&task.Description,
		&task.StartDate,
		&task.EndDate,
		&priority,
		&task.Completed,
		&task.CreatedBy,
		&attachment,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return models.Task{}, err
	}

	task.Priority = models.Priority(priority)
	if attachment.Valid {
		task.Attachment = &attachment.String
	}

	return task, nil
}

// CreateTask inserts the task row and its reference rows inside a single
// transaction. The transaction is rolled back (via defer) if any insert
// fails.
func (t *taskRepository) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateTaskQuery(task)
	if err != nil {
		return models.Task{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.CreateTask").Msg("failed to begin transaction")
		return models.Task{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	created, err := scanTask(tx.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).
			Str("func", "*taskRepository.CreateTask").
			Str("task_id", task.TaskID).
			Bool("retryable", t.db.retryable(err)).
			Msg("failed to save task")
		return models.Task{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err = insertTaskReferences(ctx, tx, taskAssigneesTable, "user_id", created.TaskID, task.AssigneeIDs); err != nil {
		log.Err(err).Str("func", "*taskRepository.CreateTask").Str("task_id", created.TaskID).Msg("failed to save task assignees")
		return models.Task{}, err
	}
	if err = insertTaskReferences(ctx, tx, taskProjectsTable, "project_id", created.TaskID, task.ProjectIDs); err != nil {
		log.Err(err).Str("func", "*taskRepository.CreateTask").Str("task_id", created.TaskID).Msg("failed to save task projects")
		return models.Task{}, err
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*taskRepository.CreateTask").Msg("failed to commit transaction")
		return models.Task{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	created.AssigneeIDs = nonNil(task.AssigneeIDs)
	created.ProjectIDs = nonNil(task.ProjectIDs)

	return created, nil
}

func insertTaskReferences(ctx context.Context, q querier, table, column, taskID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := buildInsertTaskReferencesQuery(table, column, taskID, ids)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// FindTaskByID returns the task with its stored references.
func (t *taskRepository) FindTaskByID(ctx context.Context, taskID string) (models.Task, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindTaskQuery(taskID)
	if err != nil {
		return models.Task{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	task, err := scanTask(t.db.QueryRowContext(ctx, query, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Task{}, ErrTaskNotFound
	case err != nil:
		log.Err(err).
			Str("func", "*taskRepository.FindTaskByID").
			Str("task_id", taskID).
			Bool("retryable", t.db.retryable(err)).
			Msg("failed to find task")
		return models.Task{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	tasks := []models.Task{task}
	if err = loadTaskReferences(ctx, t.db, tasks); err != nil {
		log.Err(err).Str("func", "*taskRepository.FindTaskByID").Str("task_id", taskID).Msg("failed to load task references")
		return models.Task{}, err
	}

	return tasks[0], nil
}

// ListTasks returns one page of the tasks created by req.UserID.
func (t *taskRepository) ListTasks(ctx context.Context, req models.ListTasksRequest) ([]models.Task, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListTasksQuery(req)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.ListTasks").Str("user_id", req.UserID).Msg("failed to create query")
		return nil, err
	}

	rows, err := t.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*taskRepository.ListTasks").
			Str("user_id", req.UserID).
			Bool("retryable", t.db.retryable(err)).
			Msg("failed to execute query for listing tasks")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	tasks := make([]models.Task, 0, req.Limit)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*taskRepository.ListTasks").Msg("failed to scan task row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		tasks = append(tasks, task)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*taskRepository.ListTasks").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}
	rows.Close()

	if err = loadTaskReferences(ctx, t.db, tasks); err != nil {
		log.Err(err).Str("func", "*taskRepository.ListTasks").Msg("failed to load task references")
		return nil, err
	}

	return tasks, nil
}

// CountTasks returns the number of tasks created by userID.
func (t *taskRepository) CountTasks(ctx context.Context, userID string) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCountTasksQuery(userID)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int64
	if err = t.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).Str("func", "*taskRepository.CountTasks").Str("user_id", userID).Msg("failed to count tasks")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

// UpdateTask applies update (and the attachment key, when given) to taskID.
func (t *taskRepository) UpdateTask(ctx context.Context, taskID string, update models.TaskUpdate, attachment *string) (models.Task, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateTaskQuery(taskID, update, attachment)
	if err != nil {
		return models.Task{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	task, err := scanTask(t.db.QueryRowContext(ctx, query, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Task{}, ErrTaskNotFound
	case err != nil:
		log.Err(err).
			Str("func", "*taskRepository.UpdateTask").
			Str("task_id", taskID).
			Bool("retryable", t.db.retryable(err)).
			Msg("failed to update task")
		return models.Task{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	tasks := []models.Task{task}
	if err = loadTaskReferences(ctx, t.db, tasks); err != nil {
		log.Err(err).Str("func", "*taskRepository.UpdateTask").Str("task_id", taskID).Msg("failed to load task references")
		return models.Task{}, err
	}

	return tasks[0], nil
}

// DeleteTask removes taskID and returns it with the references it had.
// Reference rows go with the task (ON DELETE CASCADE).
func (t *taskRepository) DeleteTask(ctx context.Context, taskID string) (models.Task, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteTaskQuery(taskID)
	if err != nil {
		return models.Task{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.DeleteTask").Msg("failed to begin transaction")
		return models.Task{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	task, err := scanTask(tx.QueryRowContext(ctx, query, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Task{}, ErrTaskNotFound
	case err != nil:
		log.Err(err).
			Str("func", "*taskRepository.DeleteTask").
			Str("task_id", taskID).
			Bool("retryable", t.db.retryable(err)).
			Msg("failed to delete task")
		return models.Task{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	// the join rows are still visible inside the transaction until commit
	tasks := []models.Task{task}
	if err = loadTaskReferences(ctx, tx, tasks); err != nil {
		log.Err(err).Str("func", "*taskRepository.DeleteTask").Str("task_id", taskID).Msg("failed to load task references")
		return models.Task{}, err
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*taskRepository.DeleteTask").Msg("failed to commit transaction")
		return models.Task{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return tasks[0], nil
}

// loadTaskReferences fills AssigneeIDs and ProjectIDs of every task with two
// queries, whatever the number of tasks.
func loadTaskReferences(ctx context.Context, q querier, tasks []models.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	taskIDs := make([]string, len(tasks))
	for i, task := range tasks {
		taskIDs[i] = task.TaskID
	}

	assignees, err := selectTaskReferences(ctx, q, taskAssigneesTable, "user_id", taskIDs)
	if err != nil {
		return err
	}
	projects, err := selectTaskReferences(ctx, q, taskProjectsTable, "project_id", taskIDs)
	if err != nil {
		return err
	}

	for i := range tasks {
		tasks[i].AssigneeIDs = nonNil(assignees[tasks[i].TaskID])
		tasks[i].ProjectIDs = nonNil(projects[tasks[i].TaskID])
	}

	return nil
}

func selectTaskReferences(ctx context.Context, q querier, table, column string, taskIDs []string) (map[string][]string, error) {
	query, args, err := buildSelectTaskReferencesQuery(table, column, taskIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	refs := make(map[string][]string, len(taskIDs))
	for rows.Next() {
		var taskID, refID string
		if err = rows.Scan(&taskID, &refID); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		refs[taskID] = append(refs[taskID], refID)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return refs, nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
