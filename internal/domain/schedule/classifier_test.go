package schedule

import (
	"testing"
	"time"
)

// asOf is fixed so lease start dates below yield known days-left values:
// due day 6 -> 5 days, due day 11 -> 10 days, due day 12 -> 11 days,
// due day 30 -> previous cycle due 2025-05-30, two days late.
var asOf = date(2025, time.June, 1)

func leaseTenants() []LeaseInfo {
	return []LeaseInfo{
		{TenantID: "1", FullName: "Mukamana Alice", Phone: "+250780000001", StartDate: "2024-02-06"},
		{TenantID: "2", FullName: "Habimana Jean", Email: "jean@example.com", StartDate: "2024-09-06"},
		{TenantID: "3", FullName: "Uwase Claire", StartDate: "2024-03-11"},
		{TenantID: "4", FullName: "Niyonzima Eric", StartDate: "2024-07-12"},
		{TenantID: "5", FullName: "Ingabire Diane", StartDate: "2024-01-30"},
	}
}

func ids(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.TenantID)
	}
	return out
}

func equalIDs(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestClassify_Buckets(t *testing.T) {
	nothingPaid := func(string, time.Time) bool { return false }
	paidExceptDiane := func(tenantID string, _ time.Time) bool { return tenantID != "5" }

	report := Classify(leaseTenants(), asOf, paidExceptDiane, DefaultOptions())

	if got, want := ids(report.Overdue), []string{"5"}; !equalIDs(got, want) {
		t.Errorf("Overdue = %v, want %v", got, want)
	}
	if got, want := ids(report.Reminder), []string{"1", "2"}; !equalIDs(got, want) {
		t.Errorf("Reminder = %v, want %v", got, want)
	}
	if got, want := ids(report.Upcoming), []string{"1", "2", "3"}; !equalIDs(got, want) {
		t.Errorf("Upcoming = %v, want %v", got, want)
	}

	if len(report.Overdue) == 1 {
		e := report.Overdue[0]
		if e.DaysLeft != -2 {
			t.Errorf("overdue DaysLeft = %d, want -2", e.DaysLeft)
		}
		if want := date(2025, time.May, 30); !e.DueDate.Equal(want) {
			t.Errorf("overdue DueDate = %v, want %v", e.DueDate, want)
		}
	}

	// With everything unpaid, day-5 tenants still classify forward: only
	// tenants whose previous cycle has actually passed go overdue.
	report = Classify(leaseTenants(), asOf, nothingPaid, DefaultOptions())
	for _, e := range report.Overdue {
		if e.DaysLeft >= 0 {
			t.Errorf("overdue entry %s has non-negative DaysLeft %d", e.TenantID, e.DaysLeft)
		}
	}
}

func TestClassify_ReminderAlsoUpcoming(t *testing.T) {
	report := Classify(leaseTenants(), asOf, nil, DefaultOptions())

	// A day-5 tenant shows in both the reminder and upcoming lists.
	reminder := map[string]bool{}
	for _, e := range report.Reminder {
		reminder[e.TenantID] = true
	}
	upcoming := map[string]bool{}
	for _, e := range report.Upcoming {
		upcoming[e.TenantID] = true
	}
	for id := range reminder {
		if !upcoming[id] {
			t.Errorf("tenant %s in Reminder but missing from Upcoming", id)
		}
	}

	// Day-11 tenant appears nowhere.
	for _, bucket := range [][]Entry{report.Overdue, report.Reminder, report.Upcoming} {
		for _, e := range bucket {
			if e.TenantID == "4" {
				t.Errorf("day-11 tenant classified into a bucket: %+v", e)
			}
		}
	}
}

func TestClassify_NilPaidFuncDisablesOverdue(t *testing.T) {
	report := Classify(leaseTenants(), asOf, nil, DefaultOptions())
	if len(report.Overdue) != 0 {
		t.Errorf("Overdue = %v, want empty without a payment lookup", ids(report.Overdue))
	}
}

func TestClassify_SkipsInvalidStartDate(t *testing.T) {
	tenants := append(leaseTenants(),
		LeaseInfo{TenantID: "6", FullName: "Broken Date", StartDate: ""},
		LeaseInfo{TenantID: "7", FullName: "Worse Date", StartDate: "31-12-2024"},
	)
	report := Classify(tenants, asOf, nil, DefaultOptions())

	if got, want := report.Skipped, []string{"6", "7"}; !equalIDs(got, want) {
		t.Errorf("Skipped = %v, want %v", got, want)
	}
	for _, bucket := range [][]Entry{report.Overdue, report.Reminder, report.Upcoming} {
		for _, e := range bucket {
			if e.TenantID == "6" || e.TenantID == "7" {
				t.Errorf("skipped tenant %s leaked into a bucket", e.TenantID)
			}
		}
	}
}

func TestClassify_CustomThresholds(t *testing.T) {
	report := Classify(leaseTenants(), asOf, nil, Options{ReminderOffset: 10, UpcomingWindow: 11})

	if got, want := ids(report.Reminder), []string{"3"}; !equalIDs(got, want) {
		t.Errorf("Reminder = %v, want %v", got, want)
	}
	if got, want := ids(report.Upcoming), []string{"1", "2", "3", "4"}; !equalIDs(got, want) {
		t.Errorf("Upcoming = %v, want %v", got, want)
	}
}

func TestClassify_NewTenantNeverOverdue(t *testing.T) {
	// Lease begins later this month; there is no previous cycle to miss.
	tenants := []LeaseInfo{{TenantID: "9", FullName: "New Tenant", StartDate: "2025-06-10"}}
	nothingPaid := func(string, time.Time) bool { return false }
	report := Classify(tenants, asOf, nothingPaid, DefaultOptions())
	if len(report.Overdue) != 0 {
		t.Errorf("new tenant marked overdue: %v", ids(report.Overdue))
	}
}
