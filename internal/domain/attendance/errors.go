package attendance

import "staffpay/internal/domain/apperr"

var (
	ErrEmployeeIDRequired   = apperr.InvalidInput("employee ID cannot be null")
	ErrAttendanceIDRequired = apperr.InvalidInput("attendance ID cannot be null")
	ErrDateRequired         = apperr.InvalidInput("date cannot be null")
)

// NotFoundError is what repositories return for an unknown attendance id.
func NotFoundError(id string) error {
	return apperr.NotFound("Attendance", "ID", id)
}
