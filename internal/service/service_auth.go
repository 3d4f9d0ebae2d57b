package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/store"
	"github.com/MKhiriev/go-task-manager/internal/utils"
	"github.com/MKhiriev/go-task-manager/internal/validators"
	"github.com/MKhiriev/go-task-manager/models"
)

// authService is the concrete implementation of AuthService.
// Passwords are hashed with bcrypt before any repository write; tokens are
// minted by the injected TokenService.
type authService struct {
	// userRepository is the credential store.
	userRepository store.UserRepository

	tokenService TokenService
	hasher       *utils.PasswordHasher
	ids          *utils.UUIDGenerator
	validator    validators.Validator

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, tokenService TokenService, hasher *utils.PasswordHasher, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenService:   tokenService,
		hasher:         hasher,
		ids:            utils.NewUUIDGenerator(),
		validator:      validators.NewUserValidator(),
		logger:         logger,
	}
}

// Register creates a new account and signs the user in.
//
// Returns:
//   - [validators.ValidationErrors] listing every invalid field.
//   - [store.ErrDuplicateEmail] if the email is taken (lookup or unique index).
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.AuthResponse{}, err
	}

	if err := ensureEmailIsFree(ctx, a.userRepository, req.Email, ""); err != nil {
		return models.AuthResponse{}, err
	}

	hash, err := a.hasher.HashPassword(req.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("password hashing failed")
		return models.AuthResponse{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		UserID:   a.ids.Generate(),
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
	})
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Str("email", req.Email).Msg("user creation ended with error")
		return models.AuthResponse{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return a.signIn(ctx, user)
}

// Login verifies an email/password pair. Unknown email and wrong password
// are indistinguishable: both return [ErrInvalidCredentials].
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.AuthResponse{}, err
	}

	user, err := a.userRepository.FindUserByEmail(ctx, req.Email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		log.Debug().Str("func", "*authService.Login").Msg("unknown email")
		return models.AuthResponse{}, ErrInvalidCredentials
	case err != nil:
		return models.AuthResponse{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !a.hasher.VerifyPassword(req.Password, user.Password) {
		log.Debug().Str("func", "*authService.Login").Str("user_id", user.UserID).Msg("wrong password")
		return models.AuthResponse{}, ErrInvalidCredentials
	}

	return a.signIn(ctx, user)
}

// ChangePassword replaces the password of the admitted identity and issues
// a fresh token. Tokens issued earlier stay valid until they expire.
//
// The old password is checked before the confirmation.
func (a *authService) ChangePassword(ctx context.Context, identity models.Identity, req models.ChangePasswordRequest) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.AuthResponse{}, err
	}

	if !a.hasher.VerifyPassword(req.OldPassword, identity.User.Password) {
		return models.AuthResponse{}, ErrInvalidCredentials
	}
	if req.NewPassword != req.ConfirmPassword {
		return models.AuthResponse{}, ErrConfirmationMismatch
	}

	hash, err := a.hasher.HashPassword(req.NewPassword)
	if err != nil {
		log.Err(err).Str("func", "*authService.ChangePassword").Msg("password hashing failed")
		return models.AuthResponse{}, fmt.Errorf("password hashing failed: %w", err)
	}

	if err = a.userRepository.UpdatePassword(ctx, identity.User.UserID, hash); err != nil {
		log.Err(err).Str("func", "*authService.ChangePassword").Str("user_id", identity.User.UserID).Msg("password update failed")
		return models.AuthResponse{}, fmt.Errorf("password update failed: %w", err)
	}

	user := identity.User
	user.Password = hash
	return a.signIn(ctx, user)
}

// UpdateProfile overwrites name and email of the admitted identity and
// issues a fresh token.
func (a *authService) UpdateProfile(ctx context.Context, identity models.Identity, req models.ProfileUpdateRequest) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.AuthResponse{}, err
	}

	if err := ensureEmailIsFree(ctx, a.userRepository, req.Email, identity.User.UserID); err != nil {
		return models.AuthResponse{}, err
	}

	user, err := a.userRepository.UpdateUser(ctx, models.User{
		UserID: identity.User.UserID,
		Name:   req.Name,
		Email:  req.Email,
	})
	if err != nil {
		log.Err(err).Str("func", "*authService.UpdateProfile").Str("user_id", identity.User.UserID).Msg("profile update failed")
		return models.AuthResponse{}, fmt.Errorf("profile update failed: %w", err)
	}

	return a.signIn(ctx, user)
}

// Authenticate runs extract, verify and resolve. The failing step is
// logged; callers only see [ErrUnauthenticated].
func (a *authService) Authenticate(ctx context.Context, authorizationHeader string) (models.Identity, error) {
	log := logger.FromContext(ctx)

	raw, err := utils.ParseBearerToken(authorizationHeader)
	if err != nil {
		log.Debug().Err(err).Str("step", "extract").Msg("authentication failed")
		return models.Identity{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	token, err := a.tokenService.Verify(ctx, raw)
	if err != nil {
		log.Debug().Err(err).Str("step", "verify").Msg("authentication failed")
		return models.Identity{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	user, err := a.userRepository.FindUserByID(ctx, token.UserID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Err(err).Str("step", "resolve").Msg("authentication failed")
		} else {
			log.Debug().Err(err).Str("step", "resolve").Str("user_id", token.UserID).Msg("authentication failed")
		}
		return models.Identity{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	return models.Identity{User: user, Token: raw}, nil
}

func (a *authService) signIn(ctx context.Context, user models.User) (models.AuthResponse, error) {
	token, err := a.tokenService.Issue(ctx, user.UserID)
	if err != nil {
		return models.AuthResponse{}, err
	}

	return models.AuthResponse{User: user, Token: token.SignedString}, nil
}

// ensureEmailIsFree fails with [store.ErrDuplicateEmail] when email belongs
// to an account other than ownerID.
func ensureEmailIsFree(ctx context.Context, users store.UserRepository, email, ownerID string) error {
	existing, err := users.FindUserByEmail(ctx, email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("user search by email failed: %w", err)
	case existing.UserID != ownerID:
		return store.ErrDuplicateEmail
	default:
		return nil
	}
}
