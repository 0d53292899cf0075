package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tenant_portal/internal/app"
	"tenant_portal/internal/domain/notify"
	"tenant_portal/internal/domain/schedule"
	"tenant_portal/internal/infra/config"
	idb "tenant_portal/internal/infra/database"
	"tenant_portal/internal/infra/files"
	"tenant_portal/internal/infra/httpapi"
	"tenant_portal/internal/infra/logger"
	infranotify "tenant_portal/internal/infra/notify"
	"tenant_portal/internal/infra/scheduler"
	"tenant_portal/internal/infra/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("could not load application configuration: %v", err)
	}
	logger.Init(cfg)
	log := logger.Get()
	log.WithField("environment", cfg.Environment).Info("tenant portal starting")

	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}
	defer db.Close()
	log.Info("database connection established")

	tenantRepo := idb.NewPostgresTenantRepository(db)
	paymentRepo := idb.NewPostgresPaymentRepository(db)
	messageRepo := idb.NewPostgresMessageRepository(db)

	fileStore, err := files.NewStore(cfg.AgreementsDir, cfg.TenantFilesDir, files.Landlord{
		Name:  cfg.LandlordName,
		Phone: cfg.LandlordPhone,
		Email: cfg.LandlordEmail,
	})
	if err != nil {
		log.Fatalf("could not prepare file store: %v", err)
	}

	var sms notify.SMSSender
	if cfg.SMSEnabled() {
		sms = infranotify.NewTwilioSMSSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom)
		log.Info("SMS channel enabled")
	} else {
		log.Warn("SMS channel not configured, reminders will be email-only")
	}

	var email notify.EmailSender
	if cfg.EmailEnabled() {
		email = infranotify.NewSendgridEmailSender(cfg.SendgridAPIKey, cfg.EmailFrom)
		log.Info("email channel enabled")
	} else {
		log.Warn("email channel not configured")
	}

	opts := schedule.Options{
		ReminderOffset: cfg.ReminderOffsetDays,
		UpcomingWindow: cfg.UpcomingWindowDays,
	}
	reminderService := app.NewReminderService(tenantRepo, paymentRepo, sms, email, log, opts)
	adminService := app.NewAdminService(tenantRepo, fileStore, log, cfg.AdminPassword)
	paymentService := app.NewPaymentService(paymentRepo, tenantRepo, log)
	messageService := app.NewMessageService(messageRepo, tenantRepo, sms, log)

	var alerter telegram.Alerter
	if cfg.TelegramEnabled() {
		a, err := telegram.NewTelebotAlerter(cfg.TelegramToken, cfg.TelegramAdminChatID)
		if err != nil {
			log.Fatalf("could not create telegram alerter: %v", err)
		}
		alerter = a
		log.Info("landlord telegram alerts enabled")
	}

	remScheduler := scheduler.NewReminderScheduler(reminderService, alerter, log, cfg.CronSpecReminders)
	if err := remScheduler.Start(); err != nil {
		log.Fatalf("could not start reminder scheduler: %v", err)
	}

	server := httpapi.NewServer(
		cfg.HTTPAddr,
		adminService,
		reminderService,
		paymentService,
		messageService,
		fileStore,
		sms,
		email,
		log,
	)
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Info("http server stopped")
		}
	}()
	log.WithField("addr", cfg.HTTPAddr).Info("http server listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	remScheduler.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("http server shutdown")
	}
	log.Info("shut down gracefully")
}
