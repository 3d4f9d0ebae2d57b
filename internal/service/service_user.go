package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/store"
	"github.com/MKhiriev/go-task-manager/internal/validators"
	"github.com/MKhiriev/go-task-manager/models"
)

type userService struct {
	userRepository store.UserRepository
	validator      validators.Validator

	logger *logger.Logger
}

func NewUserService(userRepository store.UserRepository, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		validator:      validators.NewUserValidator(),
		logger:         logger,
	}
}

func (u *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	return u.userRepository.ListUsers(ctx)
}

func (u *userService) GetUser(ctx context.Context, userID string) (models.User, error) {
	return u.userRepository.FindUserByID(ctx, userID)
}

// UpdateUser overwrites name and email of userID. Moving to an email owned
// by another account fails with [store.ErrDuplicateEmail].
func (u *userService) UpdateUser(ctx context.Context, userID string, req models.ProfileUpdateRequest) (models.User, error) {
	if err := u.validator.Validate(ctx, req); err != nil {
		return models.User{}, err
	}

	if err := ensureEmailIsFree(ctx, u.userRepository, req.Email, userID); err != nil {
		return models.User{}, err
	}

	user, err := u.userRepository.UpdateUser(ctx, models.User{UserID: userID, Name: req.Name, Email: req.Email})
	if err != nil {
		return models.User{}, fmt.Errorf("user update failed: %w", err)
	}

	return user, nil
}

// DeleteUser removes the account only; tasks and projects that reference
// it are kept and stop resolving it.
func (u *userService) DeleteUser(ctx context.Context, userID string) (models.User, error) {
	user, err := u.userRepository.DeleteUser(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("user deletion failed: %w", err)
	}

	logger.FromContext(ctx).Info().Str("user_id", userID).Msg("user deleted")
	return user, nil
}
