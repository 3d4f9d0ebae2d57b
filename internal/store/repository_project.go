package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/models"
)

// projectRepository is the PostgreSQL-backed implementation of
// [ProjectRepository].
type projectRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewProjectRepository constructs a [ProjectRepository] backed by db.
func NewProjectRepository(db *DB, logger *logger.Logger) ProjectRepository {
	logger.Debug().Msg("creating project repository")
	return &projectRepository{
		db:     db,
		logger: logger,
	}
}

func scanProject(row rowScanner) (models.Project, error) {
	var (
		project   models.Project
		createdBy sql.NullString
	)

	if err := row.Scan(&project.ProjectID, &project.Title, &createdBy); err != nil {
		return models.Project{}, err
	}
	if createdBy.Valid {
		project.CreatedBy = &createdBy.String
	}

	return project, nil
}

// CreateProjects inserts all projects with a single multi-row statement
// inside a transaction.
func (p *projectRepository) CreateProjects(ctx context.Context, projects ...models.Project) error {
	if len(projects) == 0 {
		return nil
	}

	log := logger.FromContext(ctx)

	query, args, err := buildCreateProjectsQuery(projects)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*projectRepository.CreateProjects").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "*projectRepository.CreateProjects").
			Int("count", len(projects)).
			Bool("retryable", p.db.retryable(err)).
			Msg("failed to insert projects")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*projectRepository.CreateProjects").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// ListProjects returns every project ordered by id.
func (p *projectRepository) ListProjects(ctx context.Context) ([]models.Project, error) {
	query, args, err := buildListProjectsQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return p.queryProjects(ctx, "*projectRepository.ListProjects", query, args...)
}

// FindProjectsByIDs resolves project references, dropping ids that match no
// project and keeping the order of projectIDs.
func (p *projectRepository) FindProjectsByIDs(ctx context.Context, projectIDs []string) ([]models.Project, error) {
	if len(projectIDs) == 0 {
		return []models.Project{}, nil
	}

	query, args, err := buildFindProjectsByIDsQuery(projectIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	projects, err := p.queryProjects(ctx, "*projectRepository.FindProjectsByIDs", query, args...)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Project, len(projects))
	for _, project := range projects {
		byID[project.ProjectID] = project
	}

	ordered := make([]models.Project, 0, len(projects))
	for _, id := range projectIDs {
		if project, ok := byID[id]; ok {
			ordered = append(ordered, project)
			delete(byID, id)
		}
	}

	return ordered, nil
}

// CountProjects returns the total number of projects.
func (p *projectRepository) CountProjects(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCountProjectsQuery()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int64
	if err = p.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).Str("func", "*projectRepository.CountProjects").Msg("failed to count projects")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

func (p *projectRepository) queryProjects(ctx context.Context, funcName, query string, args ...any) ([]models.Project, error) {
	log := logger.FromContext(ctx)

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Bool("retryable", p.db.retryable(err)).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	projects := make([]models.Project, 0)
	for rows.Next() {
		project, scanErr := scanProject(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", funcName).Msg("failed to scan project row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		projects = append(projects, project)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", funcName).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return projects, nil
}
