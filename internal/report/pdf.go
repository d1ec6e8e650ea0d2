package report

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/diewo77/salesdesk/internal/config"
	"github.com/jung-kurt/gofpdf"
)

const (
	generator  = "salesdesk"
	fontFamily = "DejaVu"
)

var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	fontRegular []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	fontBold []byte
)

// newDocument starts an A4 page set in an embedded UTF-8 font, so text
// such as "ș", "ț" and "ă" is printed as entered.
func newDocument(title string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddUTF8FontFromBytes(fontFamily, "", fontRegular)
	pdf.AddUTF8FontFromBytes(fontFamily, "B", fontBold)
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(title, true)
	pdf.SetCreator(generator, true)
	pdf.AddPage()
	return pdf
}

func companyHeader(pdf *gofpdf.Fpdf, c config.Company) {
	pdf.SetFont(fontFamily, "B", 12)
	pdf.CellFormat(190, 6, c.Name, "", 1, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 9)
	lines := []string{}
	if c.RegistrationNumber != "" {
		lines = append(lines, "Nr. Reg. Com.: "+c.RegistrationNumber)
	}
	if c.TaxID != "" {
		lines = append(lines, "CIF: "+c.TaxID)
	}
	if c.Address != "" {
		lines = append(lines, "Adresă: "+c.Address)
	}
	for _, acct := range c.BankAccounts {
		lines = append(lines, "Cont: "+acct)
	}
	if c.Phone != "" {
		lines = append(lines, "Tel: "+c.Phone)
	}
	if c.ShareCapital != "" {
		lines = append(lines, "Capital social: "+c.ShareCapital)
	}
	for _, l := range lines {
		pdf.CellFormat(190, 5, l, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func salesTableHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont(fontFamily, "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(15, 7, "Nr.", "1", 0, "C", true, 0, "")
	pdf.CellFormat(95, 7, "Document", "1", 0, "C", true, 0, "")
	pdf.CellFormat(45, 7, "Sumă", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Ora", "1", 1, "C", true, 0, "")
}

func salesRows(pdf *gofpdf.Fpdf, rows []SaleRow) {
	pdf.SetFont(fontFamily, "", 10)
	for _, r := range rows {
		pdf.CellFormat(15, 6, fmt.Sprintf("%d", r.Index), "1", 0, "C", false, 0, "")
		pdf.CellFormat(95, 6, truncate(r.Doc, 50), "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 6, r.Amount, "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, r.Time, "1", 1, "C", false, 0, "")
	}
}

// RenderDaily writes the daily sales report as PDF.
func RenderDaily(w io.Writer, r Daily, company config.Company) error {
	pdf := newDocument("Raport zilnic " + r.Date.Format("02.01.2006"))
	companyHeader(pdf, company)

	pdf.SetFont(fontFamily, "B", 16)
	pdf.CellFormat(190, 10, "Raport zilnic vânzări", "", 1, "C", false, 0, "")
	pdf.SetFont(fontFamily, "", 10)
	pdf.CellFormat(190, 6, "Data: "+r.Date.Format("02.01.2006"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	salesTableHeader(pdf)
	salesRows(pdf, r.Rows)

	pdf.SetFont(fontFamily, "B", 11)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(110, 8, fmt.Sprintf("Total (%d vânzări)", r.Count), "1", 0, "L", true, 0, "")
	pdf.CellFormat(80, 8, r.Total+" RON", "1", 1, "R", true, 0, "")

	return pdf.Output(w)
}

// RenderMonthly writes the monthly sales report as PDF.
func RenderMonthly(w io.Writer, r Monthly, company config.Company) error {
	pdf := newDocument("Raport lunar " + r.Month.Format("01.2006"))
	companyHeader(pdf, company)

	pdf.SetFont(fontFamily, "B", 16)
	pdf.CellFormat(190, 10, "Raport lunar vânzări", "", 1, "C", false, 0, "")
	pdf.SetFont(fontFamily, "", 10)
	pdf.CellFormat(190, 6, "Luna: "+r.Month.Format("01.2006"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, d := range r.Days {
		pdf.SetFont(fontFamily, "B", 11)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(190, 7, d.Date.Format("02.01.2006"), "1", 1, "L", true, 0, "")
		salesTableHeader(pdf)
		salesRows(pdf, d.Rows)
		pdf.SetFont(fontFamily, "B", 10)
		pdf.CellFormat(110, 6, fmt.Sprintf("Subtotal zi (%d)", d.Count), "1", 0, "L", false, 0, "")
		pdf.CellFormat(80, 6, d.Subtotal, "1", 1, "R", false, 0, "")
		pdf.Ln(3)
	}

	pdf.SetFont(fontFamily, "B", 12)
	pdf.SetFillColor(200, 255, 200)
	pdf.CellFormat(110, 9, fmt.Sprintf("Total lună (%d vânzări)", r.Count), "1", 0, "L", true, 0, "")
	pdf.CellFormat(80, 9, r.Total+" RON", "1", 1, "R", true, 0, "")

	return pdf.Output(w)
}

// RenderOffer writes an offer document as PDF.
func RenderOffer(w io.Writer, d OfferDocument) error {
	title := "OFERTĂ DE PREȚ"
	if d.Internal {
		title = "OFERTĂ - UZ INTERN"
	}
	pdf := newDocument(fmt.Sprintf("%s %d", title, d.Number))
	companyHeader(pdf, d.Company)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont(fontFamily, "B", 11)
	pdf.CellFormat(190, 7, "Client", "1", 1, "L", true, 0, "")
	pdf.SetFont(fontFamily, "", 10)
	pdf.CellFormat(95, 6, "CIF: "+d.Client.CIF, "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, "Tel: "+d.Client.Phone, "RB", 1, "L", false, 0, "")
	pdf.CellFormat(190, 6, "Denumire: "+d.Client.Name, "LRB", 1, "L", false, 0, "")
	pdf.CellFormat(190, 6, "Adresă: "+d.Client.Address, "LRB", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(fontFamily, "B", 16)
	pdf.CellFormat(190, 10, title, "", 1, "C", false, 0, "")
	pdf.SetFont(fontFamily, "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Nr. %d / %s", d.Number, d.Date.Format("02.01.2006")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	widths := []float64{10, 62, 12, 20, 24, 24, 14, 24}
	heads := []string{"Nr.", "Denumire produs", "U.M.", "Cant.", "Preț unitar", "Valoare", "TVA %", "Valoare TVA"}
	pdf.SetFont(fontFamily, "B", 8)
	pdf.SetFillColor(200, 200, 200)
	for i, h := range heads {
		ln := 0
		if i == len(heads)-1 {
			ln = 1
		}
		pdf.CellFormat(widths[i], 7, h, "1", ln, "C", true, 0, "")
	}

	pdf.SetFont(fontFamily, "", 8)
	for _, r := range d.Rows {
		cells := []string{fmt.Sprintf("%d", r.Index), truncate(r.Product, 40), r.Unit, r.Quantity, r.UnitPrice, r.Value, r.VATRate, r.VATValue}
		aligns := []string{"C", "L", "C", "R", "R", "R", "C", "R"}
		for i, c := range cells {
			ln := 0
			if i == len(cells)-1 {
				ln = 1
			}
			pdf.CellFormat(widths[i], 6, c, "1", ln, aligns[i], false, 0, "")
		}
	}

	pdf.SetFont(fontFamily, "B", 9)
	pdf.CellFormat(128, 7, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(24, 7, d.Subtotal, "1", 0, "R", false, 0, "")
	pdf.CellFormat(14, 7, "", "1", 0, "C", false, 0, "")
	pdf.CellFormat(24, 7, d.VAT, "1", 1, "R", false, 0, "")

	pdf.SetFont(fontFamily, "B", 11)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(128, 8, "Total de plată (cu TVA)", "1", 0, "R", true, 0, "")
	pdf.CellFormat(62, 8, d.Final+" RON", "1", 1, "R", true, 0, "")

	return pdf.Output(w)
}

func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-3]) + "..."
}
