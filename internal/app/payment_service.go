package app

import (
	"context"
	"fmt"
	"time"

	"tenant_portal/internal/domain/payment"
	"tenant_portal/internal/domain/tenant"

	"github.com/sirupsen/logrus"
)

// PaymentService records rent payments and serves payment history.
type PaymentService struct {
	paymentRepo payment.Repository
	tenantRepo  tenant.Repository
	logger      *logrus.Logger
}

func NewPaymentService(pr payment.Repository, tr tenant.Repository, logger *logrus.Logger) *PaymentService {
	return &PaymentService{paymentRepo: pr, tenantRepo: tr, logger: logger}
}

// Record stores one payment row for a tenant and cycle month.
func (s *PaymentService) Record(ctx context.Context, tenantID int64, month string, status payment.Status, paidDate string) (*payment.Payment, error) {
	if _, err := time.Parse(payment.MonthLayout, month); err != nil {
		return nil, fmt.Errorf("invalid cycle month %q: %w", month, err)
	}
	switch status {
	case payment.StatusPaid, payment.StatusLate, payment.StatusUnpaid:
	default:
		return nil, fmt.Errorf("invalid payment status %q", status)
	}
	if _, err := s.tenantRepo.GetByID(ctx, tenantID); err != nil {
		return nil, fmt.Errorf("looking up tenant: %w", err)
	}

	p := &payment.Payment{
		TenantID: tenantID,
		Month:    month,
		Status:   status,
		PaidDate: paidDate,
	}
	if err := s.paymentRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("storing payment: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"tenant_id": tenantID, "month": month, "status": status}).Info("payment recorded")
	return p, nil
}

// ListByTenant returns a tenant's payment history.
func (s *PaymentService) ListByTenant(ctx context.Context, tenantID int64) ([]*payment.Payment, error) {
	return s.paymentRepo.ListByTenant(ctx, tenantID)
}

// List returns all payments for the admin view.
func (s *PaymentService) List(ctx context.Context) ([]*payment.Payment, error) {
	return s.paymentRepo.List(ctx)
}
