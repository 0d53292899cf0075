package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"tenant_portal/internal/app"
	"tenant_portal/internal/domain/notify"
	"tenant_portal/internal/domain/payment"
	"tenant_portal/internal/domain/tenant"
	"tenant_portal/internal/infra/database"
	"tenant_portal/internal/infra/files"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type handler struct {
	admin     *app.AdminService
	reminders *app.ReminderService
	payments  *app.PaymentService
	messages  *app.MessageService
	files     *files.Store
	sms       notify.SMSSender
	email     notify.EmailSender
	logger    *logrus.Logger
}

// tenantView is the JSON shape of a tenant; the stored password never leaves
// the server.
type tenantView struct {
	TenantID      int64  `json:"tenant_id"`
	FullName      string `json:"fullname"`
	IDNumber      string `json:"id_number"`
	Phone         string `json:"phone"`
	Email         string `json:"email,omitempty"`
	Sex           string `json:"sex"`
	People        int    `json:"people"`
	HouseStatus   string `json:"house_status"`
	StartDate     string `json:"start_date"`
	Rent          int64  `json:"rent"`
	AgreementFile string `json:"agreement_file,omitempty"`
}

func toTenantView(t *tenant.Tenant) tenantView {
	return tenantView{
		TenantID:      t.ID,
		FullName:      t.FullName,
		IDNumber:      t.IDNumber,
		Phone:         t.Phone,
		Email:         t.EmailOrEmpty(),
		Sex:           t.Sex,
		People:        t.People,
		HouseStatus:   t.HouseStatus,
		StartDate:     t.StartDate,
		Rent:          t.Rent,
		AgreementFile: t.AgreementFile.String,
	}
}

// reminderReport serves the dashboard classification. With ?dispatch=1 the
// reminder-window notifications are sent before the report is returned.
func (h *handler) reminderReport(c echo.Context) error {
	dispatch := c.QueryParam("dispatch") == "1" || c.QueryParam("dispatch") == "true"

	report, err := h.reminders.Run(c.Request().Context(), time.Now(), dispatch)
	if err != nil {
		h.logger.WithError(err).Error("building reminder report")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not build reminder report"})
	}
	return c.JSON(http.StatusOK, report)
}

func (h *handler) createTenant(c echo.Context) error {
	var in app.NewTenantInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	t, err := h.admin.AddTenant(c.Request().Context(), in)
	if err != nil {
		if errors.Is(err, app.ErrTenantAlreadyExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, toTenantView(t))
}

func (h *handler) listTenants(c echo.Context) error {
	tenants, err := h.admin.ListTenants(c.Request().Context())
	if err != nil {
		h.logger.WithError(err).Error("listing tenants")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list tenants"})
	}
	views := make([]tenantView, 0, len(tenants))
	for _, t := range tenants {
		views = append(views, toTenantView(t))
	}
	return c.JSON(http.StatusOK, views)
}

func (h *handler) getTenant(c echo.Context) error {
	t, err := h.tenantFromParam(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTenantView(t))
}

func (h *handler) downloadAgreement(c echo.Context) error {
	t, err := h.tenantFromParam(c)
	if err != nil {
		return err
	}
	if !t.AgreementFile.Valid {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no agreement on file"})
	}
	return c.Attachment(t.AgreementFile.String, "agreement.pdf")
}

func (h *handler) downloadProfile(c echo.Context) error {
	t, err := h.tenantFromParam(c)
	if err != nil {
		return err
	}
	return c.Attachment(h.files.ProfilePath(t), t.Phone+".json")
}

func (h *handler) exportTenants(c echo.Context) error {
	tenants, err := h.admin.ListTenants(c.Request().Context())
	if err != nil {
		h.logger.WithError(err).Error("listing tenants for export")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not export tenants"})
	}
	path, err := h.files.ExportTenants(tenants)
	if err != nil {
		h.logger.WithError(err).Error("exporting tenants")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not export tenants"})
	}
	return c.Attachment(path, "ALL_TENANTS.xlsx")
}

type paymentInput struct {
	TenantID int64  `json:"tenant_id"`
	Month    string `json:"month"`
	Status   string `json:"status"`
	PaidDate string `json:"paid_date"`
}

func (h *handler) recordPayment(c echo.Context) error {
	var in paymentInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	p, err := h.payments.Record(c.Request().Context(), in.TenantID, in.Month, payment.Status(in.Status), in.PaidDate)
	if err != nil {
		if errors.Is(err, database.ErrTenantNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "tenant not found"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *handler) listPayments(c echo.Context) error {
	if idStr := c.QueryParam("tenant_id"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tenant_id"})
		}
		payments, err := h.payments.ListByTenant(c.Request().Context(), id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list payments"})
		}
		return c.JSON(http.StatusOK, payments)
	}

	payments, err := h.payments.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list payments"})
	}
	return c.JSON(http.StatusOK, payments)
}

func (h *handler) listMessages(c echo.Context) error {
	msgs, err := h.messages.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list messages"})
	}
	return c.JSON(http.StatusOK, msgs)
}

func (h *handler) replyMessage(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid message id"})
	}
	var in struct {
		Reply string `json:"reply"`
	}
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	m, err := h.messages.Reply(c.Request().Context(), id, in.Reply)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrMessageNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "message not found"})
		case errors.Is(err, app.ErrEmptyMessage):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		default:
			h.logger.WithError(err).Error("replying to message")
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store reply"})
		}
	}
	return c.JSON(http.StatusOK, m)
}

type manualNotifyInput struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
	Text  string `json:"text"`
}

// manualNotify is the "Kohereza SMS/Email" surface: a one-off send to an
// arbitrary phone and/or email. Per-channel results are reported, never a
// batch failure.
func (h *handler) manualNotify(c echo.Context) error {
	var in manualNotifyInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if in.Text == "" || (in.Phone == "" && in.Email == "") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "text and at least one of phone/email are required"})
	}

	results := echo.Map{}
	if in.Phone != "" {
		if h.sms == nil {
			results["sms"] = "sms channel not configured"
		} else if err := h.sms.SendSMS(c.Request().Context(), in.Phone, in.Text); err != nil {
			results["sms"] = err.Error()
		} else {
			results["sms"] = "sent"
		}
	}
	if in.Email != "" {
		if h.email == nil {
			results["email"] = "email channel not configured"
		} else if err := h.email.SendEmail(c.Request().Context(), in.Email, "Ubutumwa bwa Nyir'inzu", in.Text); err != nil {
			results["email"] = err.Error()
		} else {
			results["email"] = "sent"
		}
	}
	return c.JSON(http.StatusOK, results)
}

func (h *handler) tenantFromParam(c echo.Context) (*tenant.Tenant, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid tenant id")
	}
	t, err := h.admin.GetTenant(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrTenantNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "tenant not found")
		}
		h.logger.WithError(err).Error("loading tenant")
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "could not load tenant")
	}
	return t, nil
}
