package services

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/diewo77/salesdesk/internal/models"
	"github.com/shopspring/decimal"
)

// Summary is the count and rounded sum of a set of sales.
type Summary struct {
	Count int
	Total float64
}

// Summarize adds sale amounts exactly and rounds the result to cents.
func Summarize(sales []models.Sale) Summary {
	total := decimal.Zero
	for _, s := range sales {
		total = total.Add(decimal.NewFromFloat(s.Amount))
	}
	return Summary{Count: len(sales), Total: total.Round(2).InexactFloat64()}
}

// ExportSalesCSV writes sales as id,doc,amount,timestamp rows under a
// header line.
func ExportSalesCSV(w io.Writer, sales []models.Sale) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "doc", "amount", "timestamp"}); err != nil {
		return err
	}
	for _, s := range sales {
		row := []string{
			strconv.FormatUint(uint64(s.ID), 10),
			s.Doc,
			decimal.NewFromFloat(s.Amount).StringFixed(2),
			s.Timestamp.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
