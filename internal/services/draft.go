package services

import (
	"fmt"
	"strings"

	"github.com/diewo77/salesdesk/validation"
)

// DraftOffer is an offer being assembled before it is saved. It holds the
// client identity and the rows entered so far.
type DraftOffer struct {
	CIF     string
	Name    string
	Address string
	Phone   string
	Items   []LineItem
}

// Add validates item and appends it.
func (d *DraftOffer) Add(item LineItem) error {
	if v := item.Validate(); !v.Empty() {
		return &ValidationError{Violations: v}
	}
	d.Items = append(d.Items, item)
	return nil
}

// Remove drops the row at index i.
func (d *DraftOffer) Remove(i int) error {
	if i < 0 || i >= len(d.Items) {
		return fmt.Errorf("remove row %d: %w", i, ErrNotFound)
	}
	d.Items = append(d.Items[:i], d.Items[i+1:]...)
	return nil
}

// Totals computes the draft's current totals.
func (d *DraftOffer) Totals() Totals {
	return ComputeTotals(d.Items)
}

// Len returns the number of rows.
func (d *DraftOffer) Len() int { return len(d.Items) }

// Clear resets the draft to empty, client fields included.
func (d *DraftOffer) Clear() {
	*d = DraftOffer{}
}

// Validate checks the header and every row. Row violations are keyed as
// "items[i].field".
func (d *DraftOffer) Validate() error {
	if len(d.Items) == 0 {
		return ErrEmptyOffer
	}
	v := validation.Violations{}
	validation.Required("cif", d.CIF, v)
	for i, it := range d.Items {
		for field, code := range it.Validate() {
			v.Add(fmt.Sprintf("items[%d].%s", i, field), code)
		}
	}
	if !v.Empty() {
		return &ValidationError{Violations: v}
	}
	return nil
}

func (d *DraftOffer) normalize() {
	d.CIF = strings.TrimSpace(d.CIF)
	d.Name = strings.TrimSpace(d.Name)
	d.Address = strings.TrimSpace(d.Address)
	d.Phone = strings.TrimSpace(d.Phone)
}
