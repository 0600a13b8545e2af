package domain

// Status tracks a checkout submission through its lifecycle.
type Status string

const (
	StatusShopping   Status = "SHOPPING"
	StatusValidating Status = "VALIDATING"
	StatusRejected   Status = "REJECTED"
	StatusAccepted   Status = "ACCEPTED"
	StatusNotifying  Status = "NOTIFYING"
	StatusCompleted  Status = "COMPLETED"
)

func (s Status) IsTerminal() bool {
	return s == StatusRejected || s == StatusCompleted
}

// String representation (for logging)
func (s Status) String() string {
	return string(s)
}
