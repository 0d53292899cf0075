package tenant

import "context"

// Repository defines the operations for persisting and retrieving Tenant records.
type Repository interface {
	Create(ctx context.Context, t *Tenant) error
	GetByID(ctx context.Context, id int64) (*Tenant, error)
	GetByPhone(ctx context.Context, phone string) (*Tenant, error)
	Update(ctx context.Context, t *Tenant) error
	List(ctx context.Context) ([]*Tenant, error)
}
