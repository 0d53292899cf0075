// Package httpapi exposes the admin dashboard and tenant portal surfaces
// over HTTP. The admin group is guarded by the static password check.
package httpapi

import (
	"context"
	"net/http"

	"tenant_portal/internal/app"
	"tenant_portal/internal/domain/notify"
	"tenant_portal/internal/infra/files"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

// adminPasswordHeader carries the static admin password on /admin requests.
const adminPasswordHeader = "X-Admin-Password"

type Server struct {
	echo *echo.Echo
	addr string
}

func NewServer(
	addr string,
	adminService *app.AdminService,
	reminderService *app.ReminderService,
	paymentService *app.PaymentService,
	messageService *app.MessageService,
	fileStore *files.Store,
	sms notify.SMSSender,
	email notify.EmailSender,
	logger *logrus.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))

	h := &handler{
		admin:     adminService,
		reminders: reminderService,
		payments:  paymentService,
		messages:  messageService,
		files:     fileStore,
		sms:       sms,
		email:     email,
		logger:    logger,
	}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	admin := e.Group("/admin", h.requireAdminPassword)
	admin.GET("/reminders", h.reminderReport)
	admin.POST("/tenants", h.createTenant)
	admin.GET("/tenants", h.listTenants)
	admin.GET("/tenants/export", h.exportTenants)
	admin.GET("/tenants/:id", h.getTenant)
	admin.GET("/tenants/:id/agreement", h.downloadAgreement)
	admin.GET("/tenants/:id/profile", h.downloadProfile)
	admin.POST("/payments", h.recordPayment)
	admin.GET("/payments", h.listPayments)
	admin.GET("/messages", h.listMessages)
	admin.POST("/messages/:id/reply", h.replyMessage)
	admin.POST("/notify", h.manualNotify)

	tenantGroup := e.Group("/tenant")
	tenantGroup.POST("/login", h.tenantLogin)
	tenantGroup.GET("/:id/payments", h.tenantPayments)
	tenantGroup.GET("/:id/messages", h.tenantMessages)
	tenantGroup.POST("/:id/messages", h.tenantSendMessage)

	return &Server{echo: e, addr: addr}
}

func (s *Server) Start() error {
	return s.echo.Start(s.addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// requireAdminPassword gates the admin group on the configured static password.
func (h *handler) requireAdminPassword(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := h.admin.CheckPassword(c.Request().Header.Get(adminPasswordHeader)); err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "admin password required"})
		}
		return next(c)
	}
}

func requestLogger(logger *logrus.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.WithFields(logrus.Fields{
				"method": v.Method,
				"uri":    v.URI,
				"status": v.Status,
			}).Info("request")
			return nil
		},
	})
}
