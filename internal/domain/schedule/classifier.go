package schedule

import "time"

// Default classification thresholds. The reminder offset is the single
// day-count before a due date that triggers proactive notification; the
// upcoming window is the inclusive day range surfaced as "coming due soon".
const (
	DefaultReminderOffset = 5
	DefaultUpcomingWindow = 10
)

// LeaseInfo is the classifier's view of a tenant record. StartDate is carried
// as raw text so that malformed values fail the typed parse step inside
// classification instead of blowing up date arithmetic upstream.
type LeaseInfo struct {
	TenantID  string
	FullName  string
	Phone     string
	Email     string
	StartDate string
	Rent      int64
}

// Entry is one classified tenant, carrying enough data for display without a
// second lookup. DaysLeft is negative for overdue entries (days late, signed).
type Entry struct {
	TenantID string    `json:"tenant_id"`
	FullName string    `json:"fullname"`
	Phone    string    `json:"phone,omitempty"`
	Email    string    `json:"email,omitempty"`
	DueDate  time.Time `json:"due_date"`
	DaysLeft int       `json:"days_left"`
	Rent     int64     `json:"rent"`
}

// Report holds the classification buckets. A tenant whose days-left equals
// the reminder offset appears in both Reminder and Upcoming; an overdue
// tenant appears only in Overdue. Skipped lists the IDs of tenants whose
// lease dates failed to parse. Input iteration order is preserved.
type Report struct {
	Overdue  []Entry  `json:"overdue"`
	Reminder []Entry  `json:"reminder"`
	Upcoming []Entry  `json:"upcoming"`
	Skipped  []string `json:"skipped,omitempty"`
}

// Options are the classification thresholds, injected by the caller rather
// than read from ambient globals.
type Options struct {
	ReminderOffset int
	UpcomingWindow int
}

// DefaultOptions returns the standard 5-day reminder offset and 10-day
// upcoming window.
func DefaultOptions() Options {
	return Options{ReminderOffset: DefaultReminderOffset, UpcomingWindow: DefaultUpcomingWindow}
}

// PaidThroughFunc reports whether the rent cycle due on dueDate has a settled
// payment for the given tenant. A nil func disables overdue detection.
type PaidThroughFunc func(tenantID string, dueDate time.Time) bool

// Classify buckets tenants by their projected due dates as seen from asOf.
//
// Predicates are ordered: a tenant whose previous cycle's due date has passed
// unpaid is Overdue (DaysLeft = -(days late)) and is excluded from the other
// buckets. Otherwise DaysLeft == ReminderOffset places the tenant in
// Reminder, and 0 <= DaysLeft <= UpcomingWindow places it in Upcoming; the
// two overlap on the offset day. Tenants with unparseable start dates are
// recorded in Skipped and appear in no bucket.
//
// Classify is pure; notification dispatch is the caller's concern.
func Classify(tenants []LeaseInfo, asOf time.Time, paid PaidThroughFunc, opts Options) Report {
	asOf = dateOnly(asOf)
	var report Report

	for _, t := range tenants {
		start, err := ParseLeaseDate(t.StartDate)
		if err != nil {
			report.Skipped = append(report.Skipped, t.TenantID)
			continue
		}

		p := Project(start, asOf)

		if paid != nil && !p.PrevDueDate.IsZero() && p.PrevDueDate.Before(asOf) && !paid(t.TenantID, p.PrevDueDate) {
			report.Overdue = append(report.Overdue, Entry{
				TenantID: t.TenantID,
				FullName: t.FullName,
				Phone:    t.Phone,
				Email:    t.Email,
				DueDate:  p.PrevDueDate,
				DaysLeft: -daysBetween(p.PrevDueDate, asOf),
				Rent:     t.Rent,
			})
			continue
		}

		entry := Entry{
			TenantID: t.TenantID,
			FullName: t.FullName,
			Phone:    t.Phone,
			Email:    t.Email,
			DueDate:  p.NextDueDate,
			DaysLeft: p.DaysLeft,
			Rent:     t.Rent,
		}
		if p.DaysLeft == opts.ReminderOffset {
			report.Reminder = append(report.Reminder, entry)
		}
		if p.DaysLeft <= opts.UpcomingWindow {
			report.Upcoming = append(report.Upcoming, entry)
		}
	}
	return report
}
