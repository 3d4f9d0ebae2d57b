package validators

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-task-manager/models"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrValidation is matched by every [ValidationErrors] value.
	ErrValidation = errors.New("validation failed")
)

// ValidationErrors lists every violated field of one request, in the order
// the fields were checked.
type ValidationErrors []models.FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Path + ": " + fe.Msg
	}
	return ErrValidation.Error() + ": " + strings.Join(msgs, "; ")
}

// Is reports ErrValidation as the kind of every ValidationErrors.
func (v ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// add appends a body field violation.
func (v *ValidationErrors) add(path, msg string) {
	*v = append(*v, models.FieldError{
		Type:     "field",
		Msg:      msg,
		Path:     path,
		Location: "body",
	})
}

// err returns nil when nothing was recorded.
func (v ValidationErrors) err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}
