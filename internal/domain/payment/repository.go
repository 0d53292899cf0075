package payment

import "context"

// Repository defines the operations for persisting and retrieving Payment records.
type Repository interface {
	Create(ctx context.Context, p *Payment) error
	ListByTenant(ctx context.Context, tenantID int64) ([]*Payment, error)
	List(ctx context.Context) ([]*Payment, error)
	// HasSettled reports whether the tenant has a PAID or LATE payment
	// recorded for the given cycle month.
	HasSettled(ctx context.Context, tenantID int64, month string) (bool, error)
}
