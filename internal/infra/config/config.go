package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application.
type AppConfig struct {
	DatabaseURL   string
	HTTPAddr      string
	AdminPassword string

	ReminderOffsetDays int
	UpcomingWindowDays int
	CronSpecReminders  string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFrom       string
	SendgridAPIKey   string
	EmailFrom        string

	// Optional landlord alert channel; both must be set to enable it.
	TelegramToken       string
	TelegramAdminChatID int64

	TenantFilesDir string
	AgreementsDir  string

	LandlordName  string
	LandlordPhone string
	LandlordEmail string

	LogLevel    string
	Environment string
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	if cfg.AdminPassword == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD is not set")
	}

	cfg.HTTPAddr = envOrDefault("HTTP_ADDR", ":8080")

	cfg.ReminderOffsetDays, err = envIntOrDefault("REMINDER_OFFSET_DAYS", 5)
	if err != nil {
		return nil, err
	}
	cfg.UpcomingWindowDays, err = envIntOrDefault("UPCOMING_WINDOW_DAYS", 10)
	if err != nil {
		return nil, err
	}
	cfg.CronSpecReminders = envOrDefault("CRON_SPEC_REMINDERS", "0 8 * * *") // 08:00 daily

	cfg.TwilioAccountSID = os.Getenv("TWILIO_ACCOUNT_SID")
	cfg.TwilioAuthToken = os.Getenv("TWILIO_AUTH_TOKEN")
	cfg.TwilioFrom = os.Getenv("TWILIO_FROM")
	cfg.SendgridAPIKey = os.Getenv("SENDGRID_API_KEY")
	cfg.EmailFrom = os.Getenv("EMAIL_FROM")

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if chatID := os.Getenv("TELEGRAM_ADMIN_CHAT_ID"); chatID != "" {
		cfg.TelegramAdminChatID, err = strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_ADMIN_CHAT_ID: %w", err)
		}
	}

	cfg.TenantFilesDir = envOrDefault("TENANT_FILES_DIR", "tenant_files")
	cfg.AgreementsDir = envOrDefault("AGREEMENTS_DIR", "agreements")

	cfg.LandlordName = os.Getenv("LANDLORD_NAME")
	cfg.LandlordPhone = os.Getenv("LANDLORD_PHONE")
	cfg.LandlordEmail = os.Getenv("LANDLORD_EMAIL")

	cfg.LogLevel = strings.ToLower(envOrDefault("LOG_LEVEL", "info"))
	cfg.Environment = strings.ToLower(envOrDefault("ENVIRONMENT", "development"))

	return cfg, nil
}

// SMSEnabled reports whether the Twilio channel is fully configured.
func (c *AppConfig) SMSEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFrom != ""
}

// EmailEnabled reports whether the SendGrid channel is fully configured.
func (c *AppConfig) EmailEnabled() bool {
	return c.SendgridAPIKey != "" && c.EmailFrom != ""
}

// TelegramEnabled reports whether the landlord alert channel is configured.
func (c *AppConfig) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramAdminChatID != 0
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOrDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
