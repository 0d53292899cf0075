package database

import (
	"context"
	"database/sql"
	"fmt"

	"tenant_portal/internal/domain/payment"
)

var ErrPaymentNotFound = fmt.Errorf("payment not found")

type PostgresPaymentRepository struct {
	db *sql.DB
}

func NewPostgresPaymentRepository(db *sql.DB) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{db: db}
}

func (r *PostgresPaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	query := `INSERT INTO payments (tenant_id, month, status, paid_date)
               VALUES ($1, $2, $3, $4)
               RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, p.TenantID, p.Month, p.Status, p.PaidDate).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating payment: %w", err)
	}
	return nil
}

func (r *PostgresPaymentRepository) ListByTenant(ctx context.Context, tenantID int64) ([]*payment.Payment, error) {
	query := `SELECT id, tenant_id, month, status, paid_date, created_at
               FROM payments WHERE tenant_id = $1 ORDER BY month DESC, id DESC`
	return r.queryPayments(ctx, query, tenantID)
}

func (r *PostgresPaymentRepository) List(ctx context.Context) ([]*payment.Payment, error) {
	query := `SELECT id, tenant_id, month, status, paid_date, created_at
               FROM payments ORDER BY month DESC, id DESC`
	return r.queryPayments(ctx, query)
}

func (r *PostgresPaymentRepository) HasSettled(ctx context.Context, tenantID int64, month string) (bool, error) {
	query := `SELECT EXISTS (
                   SELECT 1 FROM payments
                   WHERE tenant_id = $1 AND month = $2 AND status IN ($3, $4)
               )`
	var settled bool
	err := r.db.QueryRowContext(ctx, query, tenantID, month, payment.StatusPaid, payment.StatusLate).Scan(&settled)
	if err != nil {
		return false, fmt.Errorf("error checking settled payment: %w", err)
	}
	return settled, nil
}

func (r *PostgresPaymentRepository) queryPayments(ctx context.Context, query string, args ...any) ([]*payment.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing payments: %w", err)
	}
	defer rows.Close()

	payments := make([]*payment.Payment, 0)
	for rows.Next() {
		p := &payment.Payment{}
		if err := rows.Scan(&p.ID, &p.TenantID, &p.Month, &p.Status, &p.PaidDate, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payments: %w", err)
	}
	return payments, nil
}
