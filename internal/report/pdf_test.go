package report

import (
	"bytes"
	"testing"
	"time"
	"unicode/utf16"

	"github.com/diewo77/salesdesk/internal/config"
)

var testCompany = config.Company{
	Name:               "Agro Distributie SRL",
	RegistrationNumber: "J40/1/2020",
	TaxID:              "RO123",
	Address:            "Str. Școlii 1",
	BankAccounts:       []string{"RO49AAAA1B31007593840000"},
	Phone:              "0700",
	ShareCapital:       "200 RON",
}

func assertPDF(t *testing.T, b []byte) {
	t.Helper()
	if !bytes.HasPrefix(b, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF (starts with %q)", b[:min(len(b), 8)])
	}
}

func TestRenderDaily(t *testing.T) {
	r := Daily{
		Date:  time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local),
		Rows:  []SaleRow{{Index: 1, Doc: "Bon ăîșț", Amount: "10.00", Time: "09:00:00"}},
		Total: "10.00",
		Count: 1,
	}
	var buf bytes.Buffer
	if err := RenderDaily(&buf, r, testCompany); err != nil {
		t.Fatalf("render: %v", err)
	}
	assertPDF(t, buf.Bytes())
}

func TestRenderMonthly(t *testing.T) {
	r := Monthly{
		Month: time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local),
		Days: []DayGroup{
			{Date: time.Date(2024, 2, 29, 0, 0, 0, 0, time.Local), Rows: []SaleRow{{Index: 1, Doc: "A", Amount: "1.00", Time: "10:00:00"}}, Subtotal: "1.00", Count: 1},
		},
		Total: "1.00",
		Count: 1,
	}
	var buf bytes.Buffer
	if err := RenderMonthly(&buf, r, testCompany); err != nil {
		t.Fatalf("render: %v", err)
	}
	assertPDF(t, buf.Bytes())
}

func TestRenderOffer_BothVariants(t *testing.T) {
	doc := OfferDocument{
		Number:  3,
		Date:    time.Date(2024, 5, 2, 0, 0, 0, 0, time.Local),
		Company: testCompany,
		Client:  Party{CIF: "RO1", Name: "Client", Address: "Adresa", Phone: "07"},
		Rows: []OfferRow{{
			Index: 1, Product: "P1 - Seeds", Unit: UnitOfMeasure, Quantity: "3.0000",
			UnitPrice: "10.0050", Value: "30.02", VATRate: "19", VATValue: "5.70",
		}},
		Subtotal: "30.02", VAT: "5.70", Final: "35.72",
	}
	for _, internal := range []bool{false, true} {
		doc.Internal = internal
		var buf bytes.Buffer
		if err := RenderOffer(&buf, doc); err != nil {
			t.Fatalf("render internal=%v: %v", internal, err)
		}
		assertPDF(t, buf.Bytes())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("ăîșțâăîșțâăîșț", 8); got != "ăîșțâ..." {
		t.Errorf("truncate runes = %q", got)
	}
}

// utf16BE encodes s the way UTF-8 fonts write text into a page stream.
func utf16BE(s string) []byte {
	var out []byte
	for _, u := range utf16.Encode([]rune(s)) {
		out = append(out, byte(u>>8), byte(u))
	}
	return out
}

func TestNewDocument_KeepsRomanianDiacritics(t *testing.T) {
	pdf := newDocument("test")
	pdf.SetCompression(false)
	companyHeader(pdf, testCompany)
	pdf.SetFont(fontFamily, "", 10)
	pdf.CellFormat(190, 6, "Țăran Ionescu ăîâșț", "", 1, "L", false, 0, "")
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("output: %v", err)
	}
	for _, want := range []string{"Str. Școlii 1", "Țăran Ionescu ăîâșț"} {
		if !bytes.Contains(buf.Bytes(), utf16BE(want)) {
			t.Errorf("page text %q not found in output", want)
		}
	}
}
