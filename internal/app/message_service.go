package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tenant_portal/internal/domain/message"
	"tenant_portal/internal/domain/notify"
	"tenant_portal/internal/domain/tenant"

	"github.com/sirupsen/logrus"
)

var ErrEmptyMessage = fmt.Errorf("message body is empty")

// MessageService handles tenant-to-admin messages and admin replies.
type MessageService struct {
	messageRepo message.Repository
	tenantRepo  tenant.Repository
	sms         notify.SMSSender
	logger      *logrus.Logger
}

func NewMessageService(mr message.Repository, tr tenant.Repository, sms notify.SMSSender, logger *logrus.Logger) *MessageService {
	return &MessageService{messageRepo: mr, tenantRepo: tr, sms: sms, logger: logger}
}

// Send records a message from a tenant to the administrator.
func (s *MessageService) Send(ctx context.Context, tenantID int64, body string) (*message.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyMessage
	}
	if _, err := s.tenantRepo.GetByID(ctx, tenantID); err != nil {
		return nil, fmt.Errorf("looking up sender: %w", err)
	}
	m := &message.Message{
		TenantID: tenantID,
		Body:     body,
		DateSent: time.Now(),
		Status:   message.StatusSent,
	}
	if err := s.messageRepo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("storing message: %w", err)
	}
	return m, nil
}

// Reply stores the admin reply and forwards it to the tenant by SMS, best
// effort: a send failure is logged, the reply stays recorded.
func (s *MessageService) Reply(ctx context.Context, messageID int64, reply string) (*message.Message, error) {
	if strings.TrimSpace(reply) == "" {
		return nil, ErrEmptyMessage
	}
	m, err := s.messageRepo.Reply(ctx, messageID, reply)
	if err != nil {
		return nil, fmt.Errorf("storing reply: %w", err)
	}

	t, err := s.tenantRepo.GetByID(ctx, m.TenantID)
	if err != nil {
		s.logger.WithError(err).WithField("message_id", messageID).Warn("reply stored but tenant lookup failed, SMS not sent")
		return m, nil
	}
	if t.Phone != "" && s.sms != nil {
		text := fmt.Sprintf("Igisubizo cya nyir'inzu: %s", reply)
		if err := s.sms.SendSMS(ctx, t.Phone, text); err != nil {
			s.logger.WithError(err).WithField("message_id", messageID).Warn("reply SMS failed")
		}
	}
	return m, nil
}

// ListByTenant returns a tenant's messages, newest first per repository order.
func (s *MessageService) ListByTenant(ctx context.Context, tenantID int64) ([]*message.Message, error) {
	return s.messageRepo.ListByTenant(ctx, tenantID)
}

// List returns all messages for the admin view.
func (s *MessageService) List(ctx context.Context) ([]*message.Message, error) {
	return s.messageRepo.List(ctx)
}
