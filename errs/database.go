package errs

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

// FromDatabase translates a storage failure into an ApiErr. The gorm
// connection is opened with TranslateError, so duplicate-key violations reach
// us as gorm.ErrDuplicatedKey: the insert itself is the uniqueness check, no
// pre-check-then-insert race.
func FromDatabase(operation, entity string, cause error) *ApiErr {
	details := fmt.Sprintf("failed to %s %s", operation, entity)

	switch {
	case errors.Is(cause, gorm.ErrRecordNotFound):
		return &ApiErr{
			StatusCode: http.StatusNotFound,
			err:        fmt.Errorf("%s: %w", entity, ErrNotFound),
			Details:    details,
			Cause:      cause,
		}
	case errors.Is(cause, gorm.ErrDuplicatedKey):
		return &ApiErr{
			StatusCode: http.StatusConflict,
			err:        fmt.Errorf("%s already exists: %w", entity, ErrConflict),
			Details:    details,
			Cause:      cause,
		}
	case errors.Is(cause, gorm.ErrForeignKeyViolated):
		return &ApiErr{
			StatusCode: http.StatusBadRequest,
			err:        fmt.Errorf("invalid reference in %s: %w", entity, ErrBadRequest),
			Details:    "the referenced resource does not exist or cannot be linked",
			Cause:      cause,
		}
	}

	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrInternal,
		Details:    details,
		Cause:      cause,
	}
}
