package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/models"
)

// DefaultProjectTitles are inserted by SeedProjects into an empty store.
var DefaultProjectTitles = []string{
	"Starting up a company",
	"Building a website",
	"Building an app",
	"Build a user interface",
	"Design a logo",
	"Design a website",
	"Create a marketing plan",
	"Create a business plan",
	"Create a marketing campaign",
	"Create a social media campaign",
	"Advertising campaign",
	"Migration to the cloud",
}

// SeedProjects is a no-op once any project exists. Seeded projects are
// attributed to the first user, if there is one.
func (p *projectService) SeedProjects(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	count, err := p.projectRepository.CountProjects(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting projects failed: %w", err)
	}
	if count > 0 {
		log.Info().Int64("count", count).Msg("projects already seeded")
		return 0, nil
	}

	users, err := p.userRepository.ListUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("looking up project owner failed: %w", err)
	}
	var createdBy *string
	if len(users) > 0 {
		createdBy = &users[0].UserID
	}

	projects := make([]models.Project, len(DefaultProjectTitles))
	for i, title := range DefaultProjectTitles {
		projects[i] = models.Project{ProjectID: p.ids.Generate(), Title: title, CreatedBy: createdBy}
	}

	if err = p.projectRepository.CreateProjects(ctx, projects...); err != nil {
		return 0, fmt.Errorf("seeding projects failed: %w", err)
	}

	log.Info().Int("count", len(projects)).Msg("projects seeded")
	return len(projects), nil
}
