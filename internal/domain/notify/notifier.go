package notify

import "context"

// SMSSender delivers a text message to a phone number. Implementations treat
// provider rejections as errors; callers decide whether a failure is fatal.
type SMSSender interface {
	SendSMS(ctx context.Context, phone, text string) error
}

// EmailSender delivers an email. Same error semantics as SMSSender.
type EmailSender interface {
	SendEmail(ctx context.Context, address, subject, body string) error
}
