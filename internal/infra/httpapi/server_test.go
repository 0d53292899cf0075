package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tenant_portal/internal/app"
	"tenant_portal/internal/domain/message"
	"tenant_portal/internal/domain/payment"
	"tenant_portal/internal/domain/schedule"
	"tenant_portal/internal/domain/tenant"
	"tenant_portal/internal/infra/database"

	"github.com/sirupsen/logrus"
)

const testAdminPassword = "testpw"

type memTenantRepo struct {
	tenants []*tenant.Tenant
}

func (m *memTenantRepo) Create(ctx context.Context, t *tenant.Tenant) error {
	t.ID = int64(len(m.tenants) + 1)
	m.tenants = append(m.tenants, t)
	return nil
}

func (m *memTenantRepo) GetByID(ctx context.Context, id int64) (*tenant.Tenant, error) {
	for _, t := range m.tenants {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, database.ErrTenantNotFound
}

func (m *memTenantRepo) GetByPhone(ctx context.Context, phone string) (*tenant.Tenant, error) {
	for _, t := range m.tenants {
		if t.Phone == phone {
			return t, nil
		}
	}
	return nil, database.ErrTenantNotFound
}

func (m *memTenantRepo) Update(ctx context.Context, t *tenant.Tenant) error { return nil }

func (m *memTenantRepo) List(ctx context.Context) ([]*tenant.Tenant, error) {
	return m.tenants, nil
}

type memPaymentRepo struct {
	payments []*payment.Payment
}

func (m *memPaymentRepo) Create(ctx context.Context, p *payment.Payment) error {
	p.ID = int64(len(m.payments) + 1)
	m.payments = append(m.payments, p)
	return nil
}

func (m *memPaymentRepo) ListByTenant(ctx context.Context, tenantID int64) ([]*payment.Payment, error) {
	out := []*payment.Payment{}
	for _, p := range m.payments {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPaymentRepo) List(ctx context.Context) ([]*payment.Payment, error) {
	return m.payments, nil
}

func (m *memPaymentRepo) HasSettled(ctx context.Context, tenantID int64, month string) (bool, error) {
	for _, p := range m.payments {
		if p.TenantID == tenantID && p.Month == month && p.Status.Settled() {
			return true, nil
		}
	}
	return false, nil
}

type memMessageRepo struct {
	messages []*message.Message
}

func (m *memMessageRepo) Create(ctx context.Context, msg *message.Message) error {
	msg.ID = int64(len(m.messages) + 1)
	m.messages = append(m.messages, msg)
	return nil
}

func (m *memMessageRepo) GetByID(ctx context.Context, id int64) (*message.Message, error) {
	for _, msg := range m.messages {
		if msg.ID == id {
			return msg, nil
		}
	}
	return nil, database.ErrMessageNotFound
}

func (m *memMessageRepo) ListByTenant(ctx context.Context, tenantID int64) ([]*message.Message, error) {
	out := []*message.Message{}
	for _, msg := range m.messages {
		if msg.TenantID == tenantID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *memMessageRepo) List(ctx context.Context) ([]*message.Message, error) {
	return m.messages, nil
}

func (m *memMessageRepo) Reply(ctx context.Context, id int64, reply string) (*message.Message, error) {
	return nil, database.ErrMessageNotFound
}

func testServer(t *testing.T) *Server {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	tenants := &memTenantRepo{tenants: []*tenant.Tenant{
		{ID: 1, FullName: "Mukamana Alice", Phone: "+250780000001", StartDate: "2024-02-06", Rent: 50000},
	}}
	payments := &memPaymentRepo{}
	messages := &memMessageRepo{}

	adminService := app.NewAdminService(tenants, nil, logger, testAdminPassword)
	reminderService := app.NewReminderService(tenants, payments, nil, nil, logger, schedule.DefaultOptions())
	paymentService := app.NewPaymentService(payments, tenants, logger)
	messageService := app.NewMessageService(messages, tenants, nil, logger)

	return NewServer(":0", adminService, reminderService, paymentService, messageService, nil, nil, nil, logger)
}

func do(s *Server, method, target, body string, admin bool) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.Header.Set(adminPasswordHeader, testAdminPassword)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	rec := do(testServer(t), http.MethodGet, "/health", "", false)
	if rec.Code != http.StatusOK {
		t.Errorf("GET /health = %d, want 200", rec.Code)
	}
}

func TestServer_AdminRequiresPassword(t *testing.T) {
	s := testServer(t)

	rec := do(s, http.MethodGet, "/admin/reminders", "", false)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("GET /admin/reminders without password = %d, want 401", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/tenants", nil)
	req.Header.Set(adminPasswordHeader, "wrong")
	rec = httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("GET /admin/tenants with wrong password = %d, want 401", rec.Code)
	}
}

func TestServer_ReminderReport(t *testing.T) {
	rec := do(testServer(t), http.MethodGet, "/admin/reminders", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /admin/reminders = %d, body %s", rec.Code, rec.Body)
	}
	var report struct {
		Overdue  []json.RawMessage `json:"overdue"`
		Reminder []json.RawMessage `json:"reminder"`
		Upcoming []json.RawMessage `json:"upcoming"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
}

func TestServer_CreateTenant(t *testing.T) {
	s := testServer(t)
	body := `{"fullname":"Habimana Jean","id_number":"1199780011122233","phone":"+250780000002",` +
		`"sex":"Gabo","people":2,"house_status":"Nziza","start_date":"2024-09-06","rent":65000}`

	rec := do(s, http.MethodPost, "/admin/tenants", body, true)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /admin/tenants = %d, body %s", rec.Code, rec.Body)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Error("tenant response leaks the password field")
	}

	rec = do(s, http.MethodPost, "/admin/tenants", body, true)
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate POST /admin/tenants = %d, want 409", rec.Code)
	}
}

func TestServer_TenantLogin(t *testing.T) {
	s := testServer(t)

	rec := do(s, http.MethodPost, "/tenant/login", `{"phone":"+250780000001"}`, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /tenant/login = %d, body %s", rec.Code, rec.Body)
	}
	var view struct {
		TenantID int64 `json:"tenant_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("login response is not valid JSON: %v", err)
	}
	if view.TenantID != 1 {
		t.Errorf("tenant_id = %d, want 1", view.TenantID)
	}

	rec = do(s, http.MethodPost, "/tenant/login", `{"phone":"+250700000000"}`, false)
	if rec.Code != http.StatusNotFound {
		t.Errorf("login with unknown phone = %d, want 404", rec.Code)
	}
}

func TestServer_TenantMessages(t *testing.T) {
	s := testServer(t)

	rec := do(s, http.MethodPost, "/tenant/1/messages", `{"message":"Umuryango urafunze nabi"}`, false)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /tenant/1/messages = %d, body %s", rec.Code, rec.Body)
	}

	rec = do(s, http.MethodPost, "/tenant/1/messages", `{"message":"   "}`, false)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("blank message = %d, want 400", rec.Code)
	}

	rec = do(s, http.MethodGet, "/tenant/1/messages", "", false)
	if rec.Code != http.StatusOK {
		t.Errorf("GET /tenant/1/messages = %d, want 200", rec.Code)
	}
}
