package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"tenant_portal/internal/app"
	"tenant_portal/internal/infra/database"

	"github.com/labstack/echo/v4"
)

// tenantLogin looks a tenant up by phone number, the portal's login key.
func (h *handler) tenantLogin(c echo.Context) error {
	var in struct {
		Phone string `json:"phone"`
	}
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if in.Phone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "phone is required"})
	}

	t, err := h.admin.GetTenantByPhone(c.Request().Context(), in.Phone)
	if err != nil {
		if errors.Is(err, database.ErrTenantNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no tenant with this phone number"})
		}
		h.logger.WithError(err).Error("tenant login lookup")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not look up tenant"})
	}
	return c.JSON(http.StatusOK, toTenantView(t))
}

func (h *handler) tenantPayments(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tenant id"})
	}
	payments, err := h.payments.ListByTenant(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list payments"})
	}
	return c.JSON(http.StatusOK, payments)
}

func (h *handler) tenantMessages(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tenant id"})
	}
	msgs, err := h.messages.ListByTenant(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list messages"})
	}
	return c.JSON(http.StatusOK, msgs)
}

func (h *handler) tenantSendMessage(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tenant id"})
	}
	var in struct {
		Message string `json:"message"`
	}
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	m, err := h.messages.Send(c.Request().Context(), id, in.Message)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrEmptyMessage):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, database.ErrTenantNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "tenant not found"})
		default:
			h.logger.WithError(err).Error("storing tenant message")
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store message"})
		}
	}
	return c.JSON(http.StatusCreated, m)
}
