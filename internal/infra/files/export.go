package files

import (
	"fmt"
	"path/filepath"

	"tenant_portal/internal/domain/tenant"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Tenants"

var exportHeader = []string{
	"tenant_id", "fullname", "id_number", "phone", "email", "sex", "people",
	"house_status", "start_date", "rent", "username", "agreement_file", "created_at",
}

// ExportTenants writes all tenants into a single-sheet xlsx workbook and
// returns its path.
func (s *Store) ExportTenants(tenants []*tenant.Tenant) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), exportSheet)

	for col, name := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return "", fmt.Errorf("building header cell: %w", err)
		}
		if err := f.SetCellValue(exportSheet, cell, name); err != nil {
			return "", fmt.Errorf("writing header: %w", err)
		}
	}

	for i, t := range tenants {
		row := []any{
			t.ID, t.FullName, t.IDNumber, t.Phone, t.EmailOrEmpty(), t.Sex, t.People,
			t.HouseStatus, t.StartDate, t.Rent, t.Username, t.AgreementFile.String,
			t.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return "", fmt.Errorf("building cell: %w", err)
			}
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return "", fmt.Errorf("writing tenant row: %w", err)
			}
		}
	}

	path := filepath.Join(s.tenantFilesDir, "ALL_TENANTS.xlsx")
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("saving export: %w", err)
	}
	return path, nil
}
