// Package files produces the tenant artifacts the admin surface serves:
// lease agreement PDFs, per-tenant JSON profiles and the xlsx tenant export.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tenant_portal/internal/domain/tenant"

	"github.com/go-pdf/fpdf"
)

// Landlord identifies the lessor printed on every agreement.
type Landlord struct {
	Name  string
	Phone string
	Email string
}

// Store writes tenant artifacts under the configured directories.
type Store struct {
	agreementsDir  string
	tenantFilesDir string
	landlord       Landlord
}

func NewStore(agreementsDir, tenantFilesDir string, landlord Landlord) (*Store, error) {
	for _, dir := range []string{agreementsDir, tenantFilesDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return &Store{agreementsDir: agreementsDir, tenantFilesDir: tenantFilesDir, landlord: landlord}, nil
}

// WriteAgreement renders the lease agreement PDF and returns its path.
func (s *Store) WriteAgreement(t *tenant.Tenant) (string, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "AMASEZERANO YO GUKODESHA INZU", "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 12)
	line := func(text string) {
		pdf.CellFormat(0, 8, text, "", 1, "L", false, 0, "")
	}

	line(fmt.Sprintf("Amazina ya Nyir'inzu: %s", s.landlord.Name))
	line(fmt.Sprintf("Telefone: %s", s.landlord.Phone))
	line(fmt.Sprintf("Email: %s", s.landlord.Email))
	pdf.Ln(4)

	line(fmt.Sprintf("Amazina y'Umukiriya: %s", t.FullName))
	line(fmt.Sprintf("Indangamuntu: %s", t.IDNumber))
	line(fmt.Sprintf("Telefone: %s", t.Phone))
	line(fmt.Sprintf("Igitsina: %s", t.Sex))
	line(fmt.Sprintf("Abantu batuye mu nzu: %d", t.People))
	line(fmt.Sprintf("Status y'inzu: %s", t.HouseStatus))
	line(fmt.Sprintf("Amafaranga y'ubukode buri kwezi: %d", t.Rent))
	line(fmt.Sprintf("Itariki y'itangira: %s", t.StartDate))
	pdf.Ln(8)

	pdf.MultiCell(0, 7,
		"IKITONDERWA:\n"+
			"1. Umukiriya agomba kwishyura ubukode buri kwezi ku gihe.\n"+
			"2. Kubahiriza isuku, kubungabunga ibikoresho n'ibindi byubatse inzu ni inshingano zawe.\n"+
			"3. Iyo umukiriya yatinze kwishyura, nyir'inzu afite uburenganzira bwo gukurikirana.\n",
		"", "L", false)
	pdf.Ln(8)
	line(fmt.Sprintf("Itariki: %s", time.Now().Format("2006-01-02 15:04:05")))
	pdf.Ln(12)
	line("Umukiriya: _______________________")
	line("Nyir'inzu: _______________________")

	path := filepath.Join(s.agreementsDir, fmt.Sprintf("%d_agreement.pdf", t.ID))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("writing agreement pdf: %w", err)
	}
	return path, nil
}
