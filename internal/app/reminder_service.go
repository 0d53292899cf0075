package app

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"tenant_portal/internal/domain/notify"
	"tenant_portal/internal/domain/payment"
	"tenant_portal/internal/domain/schedule"
	"tenant_portal/internal/domain/tenant"

	"github.com/sirupsen/logrus"
)

// DispatchFailure records one failed notification channel for one tenant.
// Failures are data, not batch errors: the rest of the run proceeds.
type DispatchFailure struct {
	TenantID string `json:"tenant_id"`
	Channel  string `json:"channel"` // "sms" or "email"
	Reason   string `json:"reason"`
}

// ReminderReport is the dashboard-facing result of one reminder run.
type ReminderReport struct {
	schedule.Report
	DispatchFailures []DispatchFailure `json:"dispatch_failures,omitempty"`
}

// ReminderService builds reminder reports over the tenant snapshot and,
// when asked, dispatches the reminder-window notifications.
type ReminderService struct {
	tenantRepo  tenant.Repository
	paymentRepo payment.Repository
	sms         notify.SMSSender
	email       notify.EmailSender
	logger      *logrus.Logger
	opts        schedule.Options
}

func NewReminderService(
	tr tenant.Repository,
	pr payment.Repository,
	sms notify.SMSSender,
	email notify.EmailSender,
	logger *logrus.Logger,
	opts schedule.Options,
) *ReminderService {
	return &ReminderService{
		tenantRepo:  tr,
		paymentRepo: pr,
		sms:         sms,
		email:       email,
		logger:      logger,
		opts:        opts,
	}
}

// BuildReport classifies every tenant as of asOf. Tenants with malformed
// lease dates are skipped (and listed), never fatal. Overdue detection
// consults the payment table for the previous cycle's month; a lookup error
// counts the cycle as settled so a storage hiccup cannot produce a false
// dunning notice.
func (s *ReminderService) BuildReport(ctx context.Context, asOf time.Time) (*ReminderReport, error) {
	tenants, err := s.tenantRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tenants for reminder report: %w", err)
	}

	infos := make([]schedule.LeaseInfo, 0, len(tenants))
	byID := make(map[string]int64, len(tenants))
	for _, t := range tenants {
		id := strconv.FormatInt(t.ID, 10)
		byID[id] = t.ID
		infos = append(infos, schedule.LeaseInfo{
			TenantID:  id,
			FullName:  t.FullName,
			Phone:     t.Phone,
			Email:     t.EmailOrEmpty(),
			StartDate: t.StartDate,
			Rent:      t.Rent,
		})
	}

	paid := func(tenantID string, dueDate time.Time) bool {
		month := dueDate.Format(payment.MonthLayout)
		settled, err := s.paymentRepo.HasSettled(ctx, byID[tenantID], month)
		if err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"tenant_id": tenantID,
				"month":     month,
			}).Warn("payment lookup failed, treating cycle as settled")
			return true
		}
		return settled
	}

	report := schedule.Classify(infos, asOf, paid, s.opts)
	for _, id := range report.Skipped {
		s.logger.WithField("tenant_id", id).Warn("tenant skipped: invalid lease start date")
	}
	return &ReminderReport{Report: report}, nil
}

// Run builds the report and, when dispatch is true, sends the reminder-window
// notifications before returning.
func (s *ReminderService) Run(ctx context.Context, asOf time.Time, dispatch bool) (*ReminderReport, error) {
	report, err := s.BuildReport(ctx, asOf)
	if err != nil {
		return nil, err
	}
	if dispatch {
		report.DispatchFailures = s.Dispatch(ctx, report.Reminder)
	}
	return report, nil
}

// Dispatch sends one SMS (when a phone is on record) and one email (when an
// address is on record) per entry. Every failure is collected per tenant per
// channel; none aborts the batch.
func (s *ReminderService) Dispatch(ctx context.Context, entries []schedule.Entry) []DispatchFailure {
	var failures []DispatchFailure
	for _, e := range entries {
		text := reminderText(e)
		if e.Phone != "" && s.sms != nil {
			if err := s.sms.SendSMS(ctx, e.Phone, text); err != nil {
				s.logger.WithError(err).WithField("tenant_id", e.TenantID).Error("reminder SMS failed")
				failures = append(failures, DispatchFailure{TenantID: e.TenantID, Channel: "sms", Reason: err.Error()})
			} else {
				s.logger.WithField("tenant_id", e.TenantID).Info("reminder SMS sent")
			}
		}
		if e.Email != "" && s.email != nil {
			if err := s.email.SendEmail(ctx, e.Email, reminderSubject, text); err != nil {
				s.logger.WithError(err).WithField("tenant_id", e.TenantID).Error("reminder email failed")
				failures = append(failures, DispatchFailure{TenantID: e.TenantID, Channel: "email", Reason: err.Error()})
			} else {
				s.logger.WithField("tenant_id", e.TenantID).Info("reminder email sent")
			}
		}
	}
	return failures
}

const reminderSubject = "Kwibutsa ubukode (Rent reminder)"

func reminderText(e schedule.Entry) string {
	return fmt.Sprintf(
		"Mwaramutse %s! Ubukode bwawe bwa %d RWF bugomba kwishyurwa ku itariki ya %s (hasigaye iminsi %d).",
		e.FullName, e.Rent, e.DueDate.Format(schedule.LeaseDateLayout), e.DaysLeft,
	)
}
