package employee

import "staffpay/internal/domain/apperr"

var (
	ErrIDRequired         = apperr.InvalidInput("employee ID cannot be null")
	ErrNameRequired       = apperr.InvalidInput("employee name cannot be empty")
	ErrDepartmentRequired = apperr.InvalidInput("department cannot be null or empty")
	ErrNegativeSalary     = apperr.InvalidInput("salary cannot be negative")
	ErrVariantChange      = apperr.InvalidInput("employee type cannot change after creation")
)

// NotFoundError is what repositories return for an unknown employee id.
func NotFoundError(id string) error {
	return apperr.NotFound("Employee", "ID", id)
}
