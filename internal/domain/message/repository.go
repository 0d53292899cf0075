package message

import "context"

// Repository defines the operations for persisting and retrieving Message records.
type Repository interface {
	Create(ctx context.Context, m *Message) error
	GetByID(ctx context.Context, id int64) (*Message, error)
	ListByTenant(ctx context.Context, tenantID int64) ([]*Message, error)
	List(ctx context.Context) ([]*Message, error)
	// Reply stores the admin reply and flips the message to REPLIED.
	Reply(ctx context.Context, id int64, reply string) (*Message, error)
}
