package validators

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/go-task-manager/models"
)

// Field names of the identity payloads.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldOldPassword     = "old_password"
	FieldNewPassword     = "new_password"
	FieldConfirmPassword = "confirm_password"
)

// maxPasswordBytes is the longest plaintext bcrypt accepts.
const maxPasswordBytes = 72

// UserValidator validates register, login, change-password and profile
// payloads.
type UserValidator struct {
	validate *validator.Validate
}

func NewUserValidator() Validator {
	return &UserValidator{validate: validator.New()}
}

func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegister(value, fields...)
	case *models.RegisterRequest:
		return v.validateRegister(*value, fields...)

	case models.LoginRequest:
		return v.validateLogin(value, fields...)
	case *models.LoginRequest:
		return v.validateLogin(*value, fields...)

	case models.ChangePasswordRequest:
		return v.validateChangePassword(value, fields...)
	case *models.ChangePasswordRequest:
		return v.validateChangePassword(*value, fields...)

	case models.ProfileUpdateRequest:
		return v.validateProfileUpdate(value, fields...)
	case *models.ProfileUpdateRequest:
		return v.validateProfileUpdate(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateRegister(req models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldEmail, FieldPassword}
	}

	var errs ValidationErrors
	for _, f := range fields {
		switch f {
		case FieldName:
			if isEmpty(req.Name) {
				errs.add(FieldName, "Name is required")
			}
		case FieldEmail:
			if !v.isEmail(req.Email) {
				errs.add(FieldEmail, "Email is not valid")
			}
		case FieldPassword:
			if isEmpty(req.Password) {
				errs.add(FieldPassword, "Password is required")
			} else if len(req.Password) > maxPasswordBytes {
				errs.add(FieldPassword, "Password must be at most 72 bytes long")
			}
		default:
			return ErrUnknownField
		}
	}

	return errs.err()
}

func (v *UserValidator) validateLogin(req models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	var errs ValidationErrors
	for _, f := range fields {
		switch f {
		case FieldEmail:
			if isEmpty(req.Email) {
				errs.add(FieldEmail, "Email is required")
			}
		case FieldPassword:
			if isEmpty(req.Password) {
				errs.add(FieldPassword, "Password is required")
			}
		default:
			return ErrUnknownField
		}
	}

	return errs.err()
}

func (v *UserValidator) validateChangePassword(req models.ChangePasswordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldOldPassword, FieldNewPassword, FieldConfirmPassword}
	}

	var errs ValidationErrors
	for _, f := range fields {
		switch f {
		case FieldOldPassword:
			if isEmpty(req.OldPassword) {
				errs.add(FieldOldPassword, "Old password is required")
			}
		case FieldNewPassword:
			if isEmpty(req.NewPassword) {
				errs.add(FieldNewPassword, "New password is required")
			} else if len(req.NewPassword) > maxPasswordBytes {
				errs.add(FieldNewPassword, "New password must be at most 72 bytes long")
			}
		case FieldConfirmPassword:
			if isEmpty(req.ConfirmPassword) {
				errs.add(FieldConfirmPassword, "Password confirmation is required")
			}
		default:
			return ErrUnknownField
		}
	}

	return errs.err()
}

func (v *UserValidator) validateProfileUpdate(req models.ProfileUpdateRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldEmail}
	}

	var errs ValidationErrors
	for _, f := range fields {
		switch f {
		case FieldName:
			if isEmpty(req.Name) {
				errs.add(FieldName, "Name is required")
			}
		case FieldEmail:
			if !v.isEmail(req.Email) {
				errs.add(FieldEmail, "Email is required")
			}
		default:
			return ErrUnknownField
		}
	}

	return errs.err()
}

func isEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// isEmail accepts a bare address ("john@example.com"); display names and
// hosts without a top-level domain are rejected.
func (v *UserValidator) isEmail(s string) bool {
	return v.validate.Var(s, "required,email") == nil
}
