package service

import (
	"context"

	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/store"
	"github.com/MKhiriev/go-task-manager/internal/utils"
	"github.com/MKhiriev/go-task-manager/models"
)

type projectService struct {
	projectRepository store.ProjectRepository
	userRepository    store.UserRepository
	ids               *utils.UUIDGenerator

	logger *logger.Logger
}

func NewProjectService(projectRepository store.ProjectRepository, userRepository store.UserRepository, logger *logger.Logger) ProjectService {
	return &projectService{
		projectRepository: projectRepository,
		userRepository:    userRepository,
		ids:               utils.NewUUIDGenerator(),
		logger:            logger,
	}
}

func (p *projectService) ListProjects(ctx context.Context) ([]models.Project, error) {
	return p.projectRepository.ListProjects(ctx)
}
