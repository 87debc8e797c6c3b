package attendance

import "time"

// Common status values. Status is free text and stored as given.
const (
	StatusPresent = "PRESENT"
	StatusAbsent  = "ABSENT"
)

type Attendance struct {
	ID          string     `json:"id"`
	EmployeeID  string     `json:"employeeId"`
	Date        time.Time  `json:"date"`
	Status      string     `json:"status"`
	CheckIn     *time.Time `json:"checkIn,omitempty"`
	CheckOut    *time.Time `json:"checkOut,omitempty"`
	WorkedHours *int       `json:"workedHours,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Day truncates t to its calendar day in UTC, the form dates are stored and compared in.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WorkedHours is the whole number of hours between check-in and check-out, truncated.
func WorkedHours(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn) / time.Hour)
}
