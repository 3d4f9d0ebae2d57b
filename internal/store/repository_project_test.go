package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/models"
)

func newTestProjectRepo(t *testing.T) (*projectRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &projectRepository{db: db, logger: logger.Nop()}, mock
}

func TestCreateProjects(t *testing.T) {
	owner := "u-1"

	t.Run("multi row insert", func(t *testing.T) {
		repo, mock := newTestProjectRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO projects \\(project_id,title,created_by\\) VALUES \\(\\$1,\\$2,\\$3\\),\\(\\$4,\\$5,\\$6\\)").
			WithArgs("p-1", "Website Redesign", "u-1", "p-2", "Mobile App Development", nil).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		err := repo.CreateProjects(context.Background(),
			models.Project{ProjectID: "p-1", Title: "Website Redesign", CreatedBy: &owner},
			models.Project{ProjectID: "p-2", Title: "Mobile App Development"},
		)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nothing to insert", func(t *testing.T) {
		repo, mock := newTestProjectRepo(t)

		require.NoError(t, repo.CreateProjects(context.Background()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exec error rolls back", func(t *testing.T) {
		repo, mock := newTestProjectRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO projects").WillReturnError(errors.New("boom"))
		mock.ExpectRollback()

		err := repo.CreateProjects(context.Background(), models.Project{ProjectID: "p-1", Title: "x"})
		assert.ErrorIs(t, err, ErrExecutingStatement)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListProjects(t *testing.T) {
	repo, mock := newTestProjectRepo(t)

	mock.ExpectQuery("SELECT project_id, title, created_by FROM projects ORDER BY project_id").
		WillReturnRows(sqlmock.NewRows(projectColumns).
			AddRow("p-1", "Website Redesign", "u-1").
			AddRow("p-2", "Cloud Migration", nil))

	projects, err := repo.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)
	require.NotNil(t, projects[0].CreatedBy)
	assert.Equal(t, "u-1", *projects[0].CreatedBy)
	assert.Nil(t, projects[1].CreatedBy)
}

func TestFindProjectsByIDs_KeepsRequestOrder(t *testing.T) {
	repo, mock := newTestProjectRepo(t)

	mock.ExpectQuery("FROM projects WHERE project_id IN \\(\\$1,\\$2,\\$3\\)").
		WithArgs("p-2", "gone", "p-1").
		WillReturnRows(sqlmock.NewRows(projectColumns).
			AddRow("p-1", "One", nil).
			AddRow("p-2", "Two", nil))

	projects, err := repo.FindProjectsByIDs(context.Background(), []string{"p-2", "gone", "p-1"})
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "p-2", projects[0].ProjectID)
	assert.Equal(t, "p-1", projects[1].ProjectID)
}

func TestFindProjectsByIDs_Empty(t *testing.T) {
	repo, _ := newTestProjectRepo(t)

	projects, err := repo.FindProjectsByIDs(context.Background(), []string{})
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestCountProjects(t *testing.T) {
	repo, mock := newTestProjectRepo(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM projects").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(12)))

	count, err := repo.CountProjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), count)
}

func TestCountProjects_Error(t *testing.T) {
	repo, mock := newTestProjectRepo(t)

	mock.ExpectQuery("SELECT COUNT").WillReturnError(errors.New("boom"))

	_, err := repo.CountProjects(context.Background())
	assert.ErrorIs(t, err, ErrExecutingQuery)
}
