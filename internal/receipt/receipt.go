// Package receipt renders PDF donation receipts.
package receipt

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/brightwood-pta/portal/internal/model"
)

const orgName = "Brightwood Elementary PTA"

// Render produces a single-page PDF receipt for a paid donation.  Callers
// are expected to have verified the donation's status; rendering an unpaid
// donation is refused here as a backstop.
func Render(d model.Donation) ([]byte, error) {
	if d.Status != model.DonationStatusPaid {
		return nil, fmt.Errorf("donation %d is not paid", d.ID)
	}
	paidAt := time.Now().UTC()
	if d.PaidAt != nil {
		paidAt = *d.PaidAt
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Donation Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, orgName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, "Donation Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(8)

	line := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(45, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
	}
	line("Receipt no.:", fmt.Sprintf("%06d", d.ID))
	line("Date:", paidAt.Format("January 2, 2006"))
	line("Donor:", d.DonorName)
	line("Email:", d.Email)
	line("Amount:", fmt.Sprintf("$%d.%02d", d.AmountCents/100, d.AmountCents%100))
	line("Reference:", d.Reference)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6,
		"Thank you for supporting our students and teachers. "+
			"No goods or services were provided in exchange for this contribution.",
		"", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
