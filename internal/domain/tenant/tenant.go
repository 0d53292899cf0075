package tenant

import (
	"database/sql"
	"time"
)

// Tenant represents a tenant renting a unit.
//
// StartDate is kept as the raw text the record was created with; the schedule
// package owns parsing it, so a malformed date skips that tenant during
// classification instead of failing the whole read.
type Tenant struct {
	ID            int64
	FullName      string
	IDNumber      string
	Phone         string
	Email         sql.NullString // optional contact channel
	Sex           string
	People        int
	HouseStatus   string
	StartDate     string
	Rent          int64
	Username      string
	Password      string
	AgreementFile sql.NullString // path to the generated lease agreement PDF
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EmailOrEmpty returns the email address or "" when none is on record.
func (t *Tenant) EmailOrEmpty() string {
	if t.Email.Valid {
		return t.Email.String
	}
	return ""
}
