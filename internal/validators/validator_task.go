package validators

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/MKhiriev/go-task-manager/models"
)

// Field names of the task payloads.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldStartDate   = "start_date"
	FieldEndDate     = "end_date"
	FieldPriority    = "priority"
)

const (
	minTitleLength       = 3
	maxDescriptionLength = 255
)

// TaskValidator validates task creation and update payloads.
type TaskValidator struct {
}

func NewTaskValidator() Validator {
	return &TaskValidator{}
}

func (v *TaskValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.TaskInput:
		return v.validateTaskInput(value, fields...)
	case *models.TaskInput:
		return v.validateTaskInput(*value, fields...)

	case models.TaskUpdate:
		return v.validateTaskUpdate(value, fields...)
	case *models.TaskUpdate:
		return v.validateTaskUpdate(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *TaskValidator) validateTaskInput(input models.TaskInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldDescription, FieldStartDate, FieldEndDate, FieldPriority}
	}

	var errs ValidationErrors
	for _, f := range fields {
		switch f {
		case FieldTitle:
			checkTitle(&errs, input.Title)
		case FieldDescription:
			switch {
			case isEmpty(input.Description):
				errs.add(FieldDescription, "Description is required")
			case tooLong(input.Description):
				errs.add(FieldDescription, "Description must be at most 255 characters")
			}
		case FieldStartDate:
			if !isDate(input.StartDate) {
				errs.add(FieldStartDate, "Start date is required")
			}
		case FieldEndDate:
			if !isDate(input.EndDate) {
				errs.add(FieldEndDate, "End date is required")
			}
		case FieldPriority:
			checkPriority(&errs, input.Priority)
		default:
			return ErrUnknownField
		}
	}

	return errs.err()
}

// validateTaskUpdate checks values only; which keys an update may carry is
// decided by the service.
func (v *TaskValidator) validateTaskUpdate(update models.TaskUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldDescription, FieldPriority}
	}

	var errs ValidationErrors
	for _, f := range fields {
		switch f {
		case FieldTitle:
			title := ""
			if update.Title != nil {
				title = *update.Title
			}
			checkTitle(&errs, title)
		case FieldDescription:
			if update.Description != nil && tooLong(*update.Description) {
				errs.add(FieldDescription, "Description must be at most 255 characters")
			}
		case FieldPriority:
			priority := ""
			if update.Priority != nil {
				priority = *update.Priority
			}
			checkPriority(&errs, priority)
		default:
			return ErrUnknownField
		}
	}

	return errs.err()
}

func checkTitle(errs *ValidationErrors, title string) {
	switch {
	case isEmpty(title):
		errs.add(FieldTitle, "Title is required")
	case utf8.RuneCountInString(strings.TrimSpace(title)) < minTitleLength:
		errs.add(FieldTitle, "Title must be at least 3 characters")
	}
}

func checkPriority(errs *ValidationErrors, priority string) {
	if !models.Priority(priority).Valid() {
		errs.add(FieldPriority, "Priority must be one of Low, Medium, High")
	}
}

func tooLong(description string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(description)) > maxDescriptionLength
}

func isDate(s string) bool {
	_, err := time.Parse(models.DateLayout, s)
	return err == nil
}
