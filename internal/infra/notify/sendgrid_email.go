package notify

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

var (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// SendgridEmailSender delivers email through the SendGrid v3 mail API.
type SendgridEmailSender struct {
	key  string
	from *sgmail.Email
}

func NewSendgridEmailSender(apiKey, fromAddress string) *SendgridEmailSender {
	return &SendgridEmailSender{
		key:  apiKey,
		from: sgmail.NewEmail("", fromAddress),
	}
}

func (s *SendgridEmailSender) SendEmail(ctx context.Context, address, subject, body string) error {
	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)

	p := sgmail.NewPersonalization()
	p.Subject = subject
	p.AddTos(sgmail.NewEmail("", address))
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/plain", body))

	req := sendgrid.GetRequest(s.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sendgrid send to %s: %w", address, err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid send to %s: status %d: %s", address, res.StatusCode, res.Body)
	}
	return nil
}
