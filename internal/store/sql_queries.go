package store

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-task-manager/models"
)

// psql renders every query with PostgreSQL $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var (
	userColumns    = []string{"user_id", "name", "email", "password", "created_at", "updated_at"}
	taskColumns    = []string{"task_id", "title", "description", "start_date", "end_date", "priority", "completed", "created_by", "attachment", "created_at", "updated_at"}
	projectColumns = []string{"project_id", "title", "created_by"}
)

// taskSortColumns maps the JSON field names of a task to their columns.
var taskSortColumns = map[string]string{
	"_id":       "task_id",
	"title":     "title",
	"startDate": "start_date",
	"endDate":   "end_date",
	"priority":  "priority",
	"completed": "completed",
}

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

// ── users ────────────────────────────────────────────────────────────────────

func buildCreateUserQuery(user models.User) (string, []any, error) {
	return psql.Insert("users").
		Columns("user_id", "name", "email", "password").
		Values(user.UserID, user.Name, user.Email, user.Password).
		Suffix(returning(userColumns)).
		ToSql()
}

func buildFindUserQuery(where sq.Eq) (string, []any, error) {
	return psql.Select(userColumns...).
		From("users").
		Where(where).
		Limit(1).
		ToSql()
}

func buildFindUsersByIDsQuery(userIDs []string) (string, []any, error) {
	return psql.Select(userColumns...).
		From("users").
		Where(sq.Eq{"user_id": userIDs}).
		ToSql()
}

func buildListUsersQuery() (string, []any, error) {
	return psql.Select(userColumns...).
		From("users").
		OrderBy("user_id").
		ToSql()
}

func buildUpdateUserQuery(user models.User) (string, []any, error) {
	return psql.Update("users").
		Set("name", user.Name).
		Set("email", user.Email).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"user_id": user.UserID}).
		Suffix(returning(userColumns)).
		ToSql()
}

func buildUpdatePasswordQuery(userID, passwordHash string) (string, []any, error) {
	return psql.Update("users").
		Set("password", passwordHash).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildDeleteUserQuery(userID string) (string, []any, error) {
	return psql.Delete("users").
		Where(sq.Eq{"user_id": userID}).
		Suffix(returning(userColumns)).
		ToSql()
}

// ── tasks ────────────────────────────────────────────────────────────────────

func buildCreateTaskQuery(task models.Task) (string, []any, error) {
	return psql.Insert("tasks").
		Columns("task_id", "title", "description", "start_date", "end_date", "priority", "completed", "created_by", "attachment").
		Values(task.TaskID, task.Title, task.Description, task.StartDate, task.EndDate, string(task.Priority), task.Completed, task.CreatedBy, task.Attachment).
		Suffix(returning(taskColumns)).
		ToSql()
}

// buildInsertTaskReferencesQuery inserts (task_id, column, position) rows
// into a join table, keeping the request order in position.
func buildInsertTaskReferencesQuery(table, column, taskID string, ids []string) (string, []any, error) {
	builder := psql.Insert(table).Columns("task_id", column, "position")
	for i, id := range ids {
		builder = builder.Values(taskID, id, i)
	}
	return builder.Suffix("ON CONFLICT DO NOTHING").ToSql()
}

func buildSelectTaskReferencesQuery(table, column string, taskIDs []string) (string, []any, error) {
	return psql.Select("task_id", column).
		From(table).
		Where(sq.Eq{"task_id": taskIDs}).
		OrderBy("task_id", "position").
		ToSql()
}

func buildFindTaskQuery(taskID string) (string, []any, error) {
	return psql.Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"task_id": taskID}).
		ToSql()
}

func buildListTasksQuery(req models.ListTasksRequest) (string, []any, error) {
	column, ok := taskSortColumns[req.SortColumn]
	if !ok {
		return "", nil, fmt.Errorf("%w: unsupported sort column %q", ErrBuildingSQLQuery, req.SortColumn)
	}
	direction := "ASC"
	if req.SortOrder == models.SortDescending {
		direction = "DESC"
	}
	if req.Page < 1 || req.Limit < 1 {
		return "", nil, fmt.Errorf("%w: page and limit must be positive", ErrBuildingSQLQuery)
	}

	orderBy := []string{column + " " + direction}
	if column != "task_id" {
		orderBy = append(orderBy, "task_id "+direction)
	}

	return psql.Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"created_by": req.UserID}).
		OrderBy(orderBy...).
		Limit(uint64(req.Limit)).
		Offset(uint64((req.Page - 1) * req.Limit)).
		ToSql()
}

func buildCountTasksQuery(userID string) (string, []any, error) {
	return psql.Select("COUNT(*)").
		From("tasks").
		Where(sq.Eq{"created_by": userID}).
		ToSql()
}

func buildUpdateTaskQuery(taskID string, update models.TaskUpdate, attachment *string) (string, []any, error) {
	builder := psql.Update("tasks")
	if update.Title != nil {
		builder = builder.Set("title", *update.Title)
	}
	if update.Description != nil {
		builder = builder.Set("description", *update.Description)
	}
	if update.Completed != nil {
		builder = builder.Set("completed", *update.Completed)
	}
	if update.Priority != nil {
		builder = builder.Set("priority", *update.Priority)
	}
	if attachment != nil {
		builder = builder.Set("attachment", *attachment)
	}

	return builder.
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"task_id": taskID}).
		Suffix(returning(taskColumns)).
		ToSql()
}

func buildDeleteTaskQuery(taskID string) (string, []any, error) {
	return psql.Delete("tasks").
		Where(sq.Eq{"task_id": taskID}).
		Suffix(returning(taskColumns)).
		ToSql()
}

// ── projects ─────────────────────────────────────────────────────────────────

func buildCreateProjectsQuery(projects []models.Project) (string, []any, error) {
	builder := psql.Insert("projects").Columns(projectColumns...)
	for _, p := range projects {
		builder = builder.Values(p.ProjectID, p.Title, p.CreatedBy)
	}
	return builder.ToSql()
}

func buildListProjectsQuery() (string, []any, error) {
	return psql.Select(projectColumns...).
		From("projects").
		OrderBy("project_id").
		ToSql()
}

func buildFindProjectsByIDsQuery(projectIDs []string) (string, []any, error) {
	return psql.Select(projectColumns...).
		From("projects").
		Where(sq.Eq{"project_id": projectIDs}).
		ToSql()
}

func buildCountProjectsQuery() (string, []any, error) {
	return psql.Select("COUNT(*)").From("projects").ToSql()
}
