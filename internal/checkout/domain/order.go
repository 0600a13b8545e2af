package domain

// ValidationError is a user-correctable problem with a submitted order,
// carried as data and ready for display. Never raised as a Go error.
type ValidationError struct {
	Message string `json:"message"`
}
