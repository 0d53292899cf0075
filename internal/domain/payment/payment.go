package payment

import "time"

// MonthLayout is the format of the Month field ("2025-01").
const MonthLayout = "2006-01"

// Status of a recorded rent payment.
type Status string

const (
	StatusPaid   Status = "PAID"
	StatusLate   Status = "LATE" // paid after the due date
	StatusUnpaid Status = "UNPAID"
)

// Settled reports whether the payment covers its cycle. Late payments count:
// a tenant who paid late is not dunned again.
func (s Status) Settled() bool {
	return s == StatusPaid || s == StatusLate
}

// Payment is one rent payment record for one monthly cycle.
type Payment struct {
	ID        int64
	TenantID  int64
	Month     string // cycle month, MonthLayout
	Status    Status
	PaidDate  string // calendar date the payment was made, may be empty
	CreatedAt time.Time
}
