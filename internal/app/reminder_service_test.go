package app

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strconv"
	"testing"
	"time"

	"tenant_portal/internal/domain/payment"
	"tenant_portal/internal/domain/schedule"
	"tenant_portal/internal/domain/tenant"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// mockTenantRepo serves a fixed tenant list.
type mockTenantRepo struct {
	tenants []*tenant.Tenant
	err     error
}

func (m *mockTenantRepo) Create(ctx context.Context, t *tenant.Tenant) error { return nil }
func (m *mockTenantRepo) GetByID(ctx context.Context, id int64) (*tenant.Tenant, error) {
	for _, t := range m.tenants {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, errors.New("tenant not found")
}
func (m *mockTenantRepo) GetByPhone(ctx context.Context, phone string) (*tenant.Tenant, error) {
	for _, t := range m.tenants {
		if t.Phone == phone {
			return t, nil
		}
	}
	return nil, errors.New("tenant not found")
}
func (m *mockTenantRepo) Update(ctx context.Context, t *tenant.Tenant) error { return nil }
func (m *mockTenantRepo) List(ctx context.Context) ([]*tenant.Tenant, error) {
	return m.tenants, m.err
}

// mockPaymentRepo answers HasSettled from a set of "tenantID/month" keys.
type mockPaymentRepo struct {
	settled map[string]bool
	err     error
}

func (m *mockPaymentRepo) Create(ctx context.Context, p *payment.Payment) error { return nil }
func (m *mockPaymentRepo) ListByTenant(ctx context.Context, tenantID int64) ([]*payment.Payment, error) {
	return nil, nil
}
func (m *mockPaymentRepo) List(ctx context.Context) ([]*payment.Payment, error) { return nil, nil }
func (m *mockPaymentRepo) HasSettled(ctx context.Context, tenantID int64, month string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.settled[key(tenantID, month)], nil
}

func key(id int64, month string) string {
	return month + "/" + strconv.FormatInt(id, 10)
}

// mockSender records sends and can fail on demand.
type mockSender struct {
	smsTo   []string
	emailTo []string
	fail    bool
}

func (m *mockSender) SendSMS(ctx context.Context, phone, text string) error {
	if m.fail {
		return errors.New("provider rejected")
	}
	m.smsTo = append(m.smsTo, phone)
	return nil
}

func (m *mockSender) SendEmail(ctx context.Context, address, subject, body string) error {
	if m.fail {
		return errors.New("provider rejected")
	}
	m.emailTo = append(m.emailTo, address)
	return nil
}

// asOf 2025-06-01: due day 6 puts a tenant 5 days out (reminder window).
var testAsOf = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

func reminderTenants() []*tenant.Tenant {
	return []*tenant.Tenant{
		{ID: 1, FullName: "Mukamana Alice", Phone: "+250780000001", StartDate: "2024-02-06", Rent: 50000},
		{ID: 2, FullName: "Habimana Jean", Phone: "+250780000002",
			Email:     sql.NullString{String: "jean@example.com", Valid: true},
			StartDate: "2024-09-06", Rent: 65000},
		{ID: 3, FullName: "Uwase Claire", Phone: "+250780000003", StartDate: "2024-03-11", Rent: 40000},
		{ID: 4, FullName: "Broken Date", Phone: "+250780000004", StartDate: "", Rent: 30000},
	}
}

func allSettled() *mockPaymentRepo {
	settled := map[string]bool{}
	for _, t := range reminderTenants() {
		settled[key(t.ID, "2025-05")] = true
	}
	return &mockPaymentRepo{settled: settled}
}

func TestReminderService_BuildReport(t *testing.T) {
	svc := NewReminderService(&mockTenantRepo{tenants: reminderTenants()}, allSettled(), nil, nil, testLogger(), schedule.DefaultOptions())

	report, err := svc.BuildReport(context.Background(), testAsOf)
	if err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}

	if len(report.Reminder) != 2 {
		t.Errorf("Reminder entries = %d, want 2", len(report.Reminder))
	}
	if len(report.Upcoming) != 3 {
		t.Errorf("Upcoming entries = %d, want 3", len(report.Upcoming))
	}
	if len(report.Overdue) != 0 {
		t.Errorf("Overdue entries = %d, want 0 with all cycles settled", len(report.Overdue))
	}
	if len(report.Skipped) != 1 || report.Skipped[0] != "4" {
		t.Errorf("Skipped = %v, want [4]", report.Skipped)
	}
}

func TestReminderService_OverdueFromUnsettledCycle(t *testing.T) {
	repo := allSettled()
	delete(repo.settled, key(3, "2025-05")) // Claire missed May

	svc := NewReminderService(&mockTenantRepo{tenants: reminderTenants()}, repo, nil, nil, testLogger(), schedule.DefaultOptions())
	report, err := svc.BuildReport(context.Background(), testAsOf)
	if err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}

	if len(report.Overdue) != 1 || report.Overdue[0].TenantID != "3" {
		t.Fatalf("Overdue = %+v, want only tenant 3", report.Overdue)
	}
	if report.Overdue[0].DaysLeft >= 0 {
		t.Errorf("overdue DaysLeft = %d, want negative", report.Overdue[0].DaysLeft)
	}
	// Overdue excludes the tenant from the forward buckets.
	for _, e := range report.Upcoming {
		if e.TenantID == "3" {
			t.Error("overdue tenant leaked into Upcoming")
		}
	}
}

func TestReminderService_PaymentLookupErrorDoesNotDun(t *testing.T) {
	repo := &mockPaymentRepo{err: errors.New("db down")}
	svc := NewReminderService(&mockTenantRepo{tenants: reminderTenants()}, repo, nil, nil, testLogger(), schedule.DefaultOptions())

	report, err := svc.BuildReport(context.Background(), testAsOf)
	if err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}
	if len(report.Overdue) != 0 {
		t.Errorf("Overdue = %d entries, want 0 when payment lookups fail", len(report.Overdue))
	}
}

func TestReminderService_RunWithoutDispatch(t *testing.T) {
	sender := &mockSender{}
	svc := NewReminderService(&mockTenantRepo{tenants: reminderTenants()}, allSettled(), sender, sender, testLogger(), schedule.DefaultOptions())

	if _, err := svc.Run(context.Background(), testAsOf, false); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(sender.smsTo) != 0 || len(sender.emailTo) != 0 {
		t.Errorf("dispatch happened without the flag: sms=%v email=%v", sender.smsTo, sender.emailTo)
	}
}

func TestReminderService_RunWithDispatch(t *testing.T) {
	sender := &mockSender{}
	svc := NewReminderService(&mockTenantRepo{tenants: reminderTenants()}, allSettled(), sender, sender, testLogger(), schedule.DefaultOptions())

	report, err := svc.Run(context.Background(), testAsOf, true)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Both reminder-window tenants have phones; only Jean has an email.
	if len(sender.smsTo) != 2 {
		t.Errorf("SMS sent to %v, want 2 recipients", sender.smsTo)
	}
	if len(sender.emailTo) != 1 || sender.emailTo[0] != "jean@example.com" {
		t.Errorf("email sent to %v, want [jean@example.com]", sender.emailTo)
	}
	if len(report.DispatchFailures) != 0 {
		t.Errorf("DispatchFailures = %v, want none", report.DispatchFailures)
	}
}

func TestReminderService_DispatchFailuresCollected(t *testing.T) {
	sender := &mockSender{fail: true}
	svc := NewReminderService(&mockTenantRepo{tenants: reminderTenants()}, allSettled(), sender, sender, testLogger(), schedule.DefaultOptions())

	report, err := svc.Run(context.Background(), testAsOf, true)
	if err != nil {
		t.Fatalf("Run() error = %v, dispatch failures must not fail the batch", err)
	}

	// 2 SMS failures + 1 email failure.
	if len(report.DispatchFailures) != 3 {
		t.Fatalf("DispatchFailures = %d, want 3: %+v", len(report.DispatchFailures), report.DispatchFailures)
	}
	channels := map[string]int{}
	for _, f := range report.DispatchFailures {
		channels[f.Channel]++
		if f.Reason == "" {
			t.Errorf("failure for %s has empty reason", f.TenantID)
		}
	}
	if channels["sms"] != 2 || channels["email"] != 1 {
		t.Errorf("failure channels = %v, want sms:2 email:1", channels)
	}
}
