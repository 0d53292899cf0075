package message

import (
	"database/sql"
	"time"
)

// Status of a tenant message.
type Status string

const (
	StatusSent    Status = "SENT"
	StatusReplied Status = "REPLIED"
)

// Message is a note a tenant sent to the administrator, with an optional reply.
type Message struct {
	ID        int64
	TenantID  int64
	Body      string
	Reply     sql.NullString
	DateSent  time.Time
	DateReply sql.NullTime
	Status    Status
}
