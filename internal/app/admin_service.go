package app

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"fmt"

	"tenant_portal/internal/domain/schedule"
	"tenant_portal/internal/domain/tenant"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// Application-level errors for the admin service.
var (
	ErrAdminNotAuthorized  = fmt.Errorf("admin password does not match")
	ErrTenantAlreadyExists = fmt.Errorf("tenant with this phone number already exists")
)

// Every tenant is issued the same starter password; tenants log in by phone
// number.
const defaultTenantPassword = "1234"

// NewTenantInput is the registration form for a tenant.
type NewTenantInput struct {
	FullName    string `json:"fullname" validate:"required"`
	IDNumber    string `json:"id_number" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	Sex         string `json:"sex" validate:"required,oneof=Gabo Gore"`
	People      int    `json:"people" validate:"required,min=1"`
	HouseStatus string `json:"house_status" validate:"required"`
	StartDate   string `json:"start_date" validate:"required"`
	Rent        int64  `json:"rent" validate:"min=0"`
}

// AgreementWriter produces the lease agreement PDF and the JSON profile dump
// for a freshly registered tenant, returning the written file path.
type AgreementWriter interface {
	WriteAgreement(t *tenant.Tenant) (string, error)
	WriteProfile(t *tenant.Tenant) (string, error)
}

// AdminService owns tenant administration: the static password gate, tenant
// registration (with agreement/profile generation) and listing.
type AdminService struct {
	tenantRepo    tenant.Repository
	files         AgreementWriter
	validate      *validator.Validate
	logger        *logrus.Logger
	adminPassword string
}

func NewAdminService(tr tenant.Repository, files AgreementWriter, logger *logrus.Logger, adminPassword string) *AdminService {
	return &AdminService{
		tenantRepo:    tr,
		files:         files,
		validate:      validator.New(),
		logger:        logger,
		adminPassword: adminPassword,
	}
}

// CheckPassword performs the static admin password check.
func (s *AdminService) CheckPassword(password string) error {
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) != 1 {
		return ErrAdminNotAuthorized
	}
	return nil
}

// AddTenant validates and registers a new tenant, then generates the lease
// agreement PDF and the JSON profile file. File generation failures are
// logged but do not undo the registration.
func (s *AdminService) AddTenant(ctx context.Context, in NewTenantInput) (*tenant.Tenant, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid tenant input: %w", err)
	}
	if _, err := schedule.ParseLeaseDate(in.StartDate); err != nil {
		return nil, fmt.Errorf("invalid tenant input: %w", err)
	}

	if _, err := s.tenantRepo.GetByPhone(ctx, in.Phone); err == nil {
		return nil, ErrTenantAlreadyExists
	}

	t := &tenant.Tenant{
		FullName:    in.FullName,
		IDNumber:    in.IDNumber,
		Phone:       in.Phone,
		Email:       nullString(in.Email),
		Sex:         in.Sex,
		People:      in.People,
		HouseStatus: in.HouseStatus,
		StartDate:   in.StartDate,
		Rent:        in.Rent,
		Username:    in.Phone,
		Password:    defaultTenantPassword,
	}
	if err := s.tenantRepo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("creating tenant: %w", err)
	}

	if s.files != nil {
		if path, err := s.files.WriteAgreement(t); err != nil {
			s.logger.WithError(err).WithField("tenant_id", t.ID).Error("agreement generation failed")
		} else {
			t.AgreementFile = nullString(path)
			if err := s.tenantRepo.Update(ctx, t); err != nil {
				s.logger.WithError(err).WithField("tenant_id", t.ID).Error("storing agreement path failed")
			}
		}
		if _, err := s.files.WriteProfile(t); err != nil {
			s.logger.WithError(err).WithField("tenant_id", t.ID).Error("profile dump failed")
		}
	}

	s.logger.WithFields(logrus.Fields{"tenant_id": t.ID, "phone": t.Phone}).Info("tenant registered")
	return t, nil
}

// ListTenants returns every tenant on record.
func (s *AdminService) ListTenants(ctx context.Context) ([]*tenant.Tenant, error) {
	return s.tenantRepo.List(ctx)
}

// GetTenant returns one tenant by ID.
func (s *AdminService) GetTenant(ctx context.Context, id int64) (*tenant.Tenant, error) {
	return s.tenantRepo.GetByID(ctx, id)
}

// GetTenantByPhone returns one tenant by phone number (the tenant portal's
// login key).
func (s *AdminService) GetTenantByPhone(ctx context.Context, phone string) (*tenant.Tenant, error) {
	return s.tenantRepo.GetByPhone(ctx, phone)
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
