package files

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tenant_portal/internal/domain/tenant"
)

// tenantProfile is the JSON shape of a per-tenant profile dump, keyed by the
// same field names the flat tenant table uses.
type tenantProfile struct {
	TenantID      int64  `json:"tenant_id"`
	FullName      string `json:"fullname"`
	IDNumber      string `json:"id_number"`
	Phone         string `json:"phone"`
	Email         string `json:"email,omitempty"`
	Sex           string `json:"sex"`
	People        int    `json:"people"`
	HouseStatus   string `json:"house_status"`
	StartDate     string `json:"start_date"`
	Rent          int64  `json:"rent"`
	Username      string `json:"username"`
	AgreementFile string `json:"agreement_file,omitempty"`
	CreatedAt     string `json:"created_at"`
}

// WriteProfile dumps the tenant's profile as a JSON file named after the
// phone number and returns its path.
func (s *Store) WriteProfile(t *tenant.Tenant) (string, error) {
	p := tenantProfile{
		TenantID:    t.ID,
		FullName:    t.FullName,
		IDNumber:    t.IDNumber,
		Phone:       t.Phone,
		Email:       t.EmailOrEmpty(),
		Sex:         t.Sex,
		People:      t.People,
		HouseStatus: t.HouseStatus,
		StartDate:   t.StartDate,
		Rent:        t.Rent,
		Username:    t.Username,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
	if t.AgreementFile.Valid {
		p.AgreementFile = t.AgreementFile.String
	}

	data, err := json.MarshalIndent(p, "", "    ")
	if err != nil {
		return "", fmt.Errorf("marshaling profile: %w", err)
	}

	path := filepath.Join(s.tenantFilesDir, t.Phone+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing profile: %w", err)
	}
	return path, nil
}

// ProfilePath returns where a tenant's JSON profile lives, without checking
// that the file exists.
func (s *Store) ProfilePath(t *tenant.Tenant) string {
	return filepath.Join(s.tenantFilesDir, t.Phone+".json")
}
