package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"tenant_portal/internal/domain/tenant"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Custom errors
var ErrTenantNotFound = fmt.Errorf("tenant not found")
var ErrDuplicatePhone = fmt.Errorf("tenant with this phone number already exists")

type PostgresTenantRepository struct {
	db *sql.DB
}

func NewPostgresTenantRepository(db *sql.DB) *PostgresTenantRepository {
	return &PostgresTenantRepository{db: db}
}

const tenantColumns = `id, fullname, id_number, phone, email, sex, people, house_status,
               start_date, rent, username, password, agreement_file, created_at, updated_at`

func scanTenant(row interface{ Scan(...any) error }, t *tenant.Tenant) error {
	return row.Scan(&t.ID, &t.FullName, &t.IDNumber, &t.Phone, &t.Email, &t.Sex, &t.People,
		&t.HouseStatus, &t.StartDate, &t.Rent, &t.Username, &t.Password, &t.AgreementFile,
		&t.CreatedAt, &t.UpdatedAt)
}

func (r *PostgresTenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	query := `INSERT INTO tenants (fullname, id_number, phone, email, sex, people, house_status,
                                   start_date, rent, username, password)
               VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
               RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, t.FullName, t.IDNumber, t.Phone, t.Email, t.Sex,
		t.People, t.HouseStatus, t.StartDate, t.Rent, t.Username, t.Password).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "unique constraint") && strings.Contains(err.Error(), "tenants_phone_key") {
			return ErrDuplicatePhone
		}
		return fmt.Errorf("error creating tenant: %w", err)
	}
	return nil
}

func (r *PostgresTenantRepository) GetByID(ctx context.Context, id int64) (*tenant.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`
	t := &tenant.Tenant{}
	err := scanTenant(r.db.QueryRowContext(ctx, query, id), t)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("error getting tenant by ID: %w", err)
	}
	return t, nil
}

func (r *PostgresTenantRepository) GetByPhone(ctx context.Context, phone string) (*tenant.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE phone = $1`
	t := &tenant.Tenant{}
	err := scanTenant(r.db.QueryRowContext(ctx, query, phone), t)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("error getting tenant by phone: %w", err)
	}
	return t, nil
}

func (r *PostgresTenantRepository) Update(ctx context.Context, t *tenant.Tenant) error {
	query := `UPDATE tenants
               SET fullname = $1, id_number = $2, phone = $3, email = $4, sex = $5, people = $6,
                   house_status = $7, start_date = $8, rent = $9, agreement_file = $10, updated_at = NOW()
               WHERE id = $11
               RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query, t.FullName, t.IDNumber, t.Phone, t.Email, t.Sex,
		t.People, t.HouseStatus, t.StartDate, t.Rent, t.AgreementFile, t.ID).Scan(&t.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrTenantNotFound
		}
		return fmt.Errorf("error updating tenant: %w", err)
	}
	return nil
}

func (r *PostgresTenantRepository) List(ctx context.Context) ([]*tenant.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing tenants: %w", err)
	}
	defer rows.Close()

	tenants := make([]*tenant.Tenant, 0)
	for rows.Next() {
		t := &tenant.Tenant{}
		if err := scanTenant(rows, t); err != nil {
			return nil, fmt.Errorf("error scanning tenant: %w", err)
		}
		tenants = append(tenants, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tenants: %w", err)
	}
	return tenants, nil
}
