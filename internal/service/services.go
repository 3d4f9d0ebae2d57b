package service

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/store"
	"github.com/MKhiriev/go-task-manager/internal/utils"
)

// TaskServiceWrapper decorates a TaskService, e.g. with validation.
type TaskServiceWrapper interface {
	Wrap(TaskService) TaskService
}

type Services struct {
	TokenService   TokenService
	AuthService    AuthService
	UserService    UserService
	TaskService    TaskService
	ProjectService ProjectService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	tokenService, err := NewTokenService(cfg.App, time.Now, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating token service: %w", err)
	}

	hasher := utils.NewPasswordHasher(cfg.App.PasswordHashCost)

	return &Services{
		TokenService:   tokenService,
		AuthService:    NewAuthService(storages.UserRepository, tokenService, hasher, logger),
		UserService:    NewUserService(storages.UserRepository, logger),
		TaskService:    NewTaskValidationService().Wrap(NewTaskService(storages, logger)),
		ProjectService: NewProjectService(storages.ProjectRepository, storages.UserRepository, logger),
	}, nil
}
