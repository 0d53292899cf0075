package scheduler

import (
	"context"
	"fmt"
	"time"

	"tenant_portal/internal/app"
	"tenant_portal/internal/infra/telegram"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ReminderScheduler runs the daily reminder job: classify every tenant,
// dispatch the reminder-window notifications, and (optionally) alert the
// landlord with a summary.
type ReminderScheduler struct {
	cronEngine      *cron.Cron
	reminderService *app.ReminderService
	alerter         telegram.Alerter // nil disables the summary alert
	logger          *logrus.Logger
	cronSpec        string
}

func NewReminderScheduler(
	rs *app.ReminderService,
	alerter telegram.Alerter,
	logger *logrus.Logger,
	cronSpec string, // e.g. "0 8 * * *" (08:00 daily)
) *ReminderScheduler {
	return &ReminderScheduler{
		cronEngine:      cron.New(cron.WithLocation(time.Local)), // server's local time
		reminderService: rs,
		alerter:         alerter,
		logger:          logger,
		cronSpec:        cronSpec,
	}
}

func (s *ReminderScheduler) Start() error {
	_, err := s.cronEngine.AddFunc(s.cronSpec, s.runOnce)
	if err != nil {
		return fmt.Errorf("adding reminder cron job: %w", err)
	}
	s.cronEngine.Start()
	s.logger.WithField("cron_spec", s.cronSpec).Info("reminder scheduler started")
	return nil
}

func (s *ReminderScheduler) runOnce() {
	s.logger.Info("cron job triggered: daily reminder run")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	report, err := s.reminderService.Run(ctx, time.Now(), true)
	if err != nil {
		s.logger.WithError(err).Error("daily reminder run failed")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"overdue":           len(report.Overdue),
		"reminders":         len(report.Reminder),
		"upcoming":          len(report.Upcoming),
		"skipped":           len(report.Skipped),
		"dispatch_failures": len(report.DispatchFailures),
	}).Info("daily reminder run complete")

	if s.alerter != nil {
		summary := fmt.Sprintf(
			"Reminder run %s: %d overdue, %d reminded, %d upcoming, %d skipped, %d send failures.",
			time.Now().Format("2006-01-02"),
			len(report.Overdue), len(report.Reminder), len(report.Upcoming),
			len(report.Skipped), len(report.DispatchFailures),
		)
		if err := s.alerter.Alert(summary); err != nil {
			s.logger.WithError(err).Warn("landlord summary alert failed")
		}
	}
}

func (s *ReminderScheduler) Stop() {
	s.logger.Info("stopping reminder scheduler")
	ctx := s.cronEngine.Stop() // waits for running jobs
	<-ctx.Done()
	s.logger.Info("reminder scheduler gracefully stopped")
}
