// Package report assembles sales reports and offer documents and renders
// them as PDF files. Builders are pure; nothing here writes to the store.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/diewo77/salesdesk/internal/config"
	"github.com/diewo77/salesdesk/internal/models"
	"github.com/diewo77/salesdesk/internal/services"
	"github.com/shopspring/decimal"
)

// UnitOfMeasure is printed on every offer row.
const UnitOfMeasure = "BUC"

// SaleRow is one printed sale.
type SaleRow struct {
	Index  int
	Doc    string
	Amount string // two decimals
	Time   string // HH:MM:SS
}

// Daily lists one day's sales in chronological order.
type Daily struct {
	Date  time.Time
	Rows  []SaleRow
	Total string
	Count int
}

// DayGroup is one day of a monthly report.
type DayGroup struct {
	Date     time.Time
	Rows     []SaleRow
	Subtotal string
	Count    int
}

// Monthly groups a month's sales by day. Days without sales are omitted.
type Monthly struct {
	Month time.Time // first day of the month
	Days  []DayGroup
	Total string
	Count int
}

// BuildDaily builds the report for date from the sales falling on it.
// Sales on other days are ignored.
func BuildDaily(date time.Time, sales []models.Sale) Daily {
	day := onDay(sales, models.DatePrefix(date))
	rows, total := saleRows(day)
	return Daily{
		Date:  time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()),
		Rows:  rows,
		Total: total,
		Count: len(rows),
	}
}

// BuildMonthly walks every calendar day of the month containing ref and
// keeps the days that have at least one sale.
func BuildMonthly(ref time.Time, sales []models.Sale) Monthly {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	m := Monthly{Month: first}
	grand := decimal.Zero
	for i := 0; i < DaysInMonth(first); i++ {
		d := first.AddDate(0, 0, i)
		day := onDay(sales, models.DatePrefix(d))
		if len(day) == 0 {
			continue
		}
		rows, subtotal := saleRows(day)
		for _, s := range day {
			grand = grand.Add(decimal.NewFromFloat(s.Amount))
		}
		m.Days = append(m.Days, DayGroup{Date: d, Rows: rows, Subtotal: subtotal, Count: len(rows)})
		m.Count += len(rows)
	}
	m.Total = grand.StringFixed(2)
	return m
}

// DaysInMonth returns the calendar length of the month containing t.
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func onDay(sales []models.Sale, prefix string) []models.Sale {
	var out []models.Sale
	for _, s := range sales {
		if strings.HasPrefix(s.Timestamp.String(), prefix) {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp.Time)
	})
	return out
}

func saleRows(sales []models.Sale) ([]SaleRow, string) {
	rows := make([]SaleRow, len(sales))
	total := decimal.Zero
	for i, s := range sales {
		amt := decimal.NewFromFloat(s.Amount)
		total = total.Add(amt)
		rows[i] = SaleRow{
			Index:  i + 1,
			Doc:    s.Doc,
			Amount: amt.StringFixed(2),
			Time:   s.Timestamp.Format("15:04:05"),
		}
	}
	return rows, total.StringFixed(2)
}

// Party identifies the client on an offer document.
type Party struct {
	CIF     string
	Name    string
	Address string
	Phone   string
}

// OfferRow is one printed offer line.
type OfferRow struct {
	Index     int
	Product   string // code and name
	Unit      string
	Quantity  string // four decimals
	UnitPrice string // four decimals
	Value     string // excluding VAT, two decimals
	VATRate   string // integer percent
	VATValue  string // two decimals
}

// OfferDocument is everything printed on an offer.
type OfferDocument struct {
	Number   uint
	Date     time.Time
	Internal bool
	Company  config.Company
	Client   Party
	Rows     []OfferRow
	Subtotal string
	VAT      string
	Final    string
}

// BuildOfferDocument lays out offer for printing. Totals come from
// services.ComputeTotals so the printed figures match the ledger.
func BuildOfferDocument(offer *models.Offer, company config.Company, internal bool) OfferDocument {
	items := services.LineItemsFromModels(offer.Items)
	doc := OfferDocument{
		Number:   offer.ID,
		Date:     offer.Timestamp.Time,
		Internal: internal,
		Company:  company,
		Client:   Party{CIF: offer.CIF, Name: offer.Name, Address: offer.Address, Phone: offer.Phone},
		Rows:     make([]OfferRow, len(items)),
	}
	for i, it := range items {
		doc.Rows[i] = OfferRow{
			Index:     i + 1,
			Product:   productLabel(it.Code, it.Name),
			Unit:      UnitOfMeasure,
			Quantity:  decimal.NewFromFloat(it.Quantity).StringFixed(4),
			UnitPrice: decimal.NewFromFloat(it.UnitPrice).StringFixed(4),
			Value:     it.Net().StringFixed(2),
			VATRate:   fmt.Sprintf("%d", int(it.VAT)),
			VATValue:  it.VATAmount().StringFixed(2),
		}
	}
	t := services.ComputeTotals(items)
	doc.Subtotal = fmt.Sprintf("%.2f", t.Subtotal)
	doc.VAT = fmt.Sprintf("%.2f", t.VAT)
	doc.Final = fmt.Sprintf("%.2f", t.Final)
	return doc
}

func productLabel(code, name string) string {
	if code == "" {
		return name
	}
	return code + " - " + name
}
