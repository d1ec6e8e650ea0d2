package services

import (
	"strings"

	"github.com/diewo77/salesdesk/internal/models"
	"github.com/diewo77/salesdesk/validation"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// LineItem is a validated offer row before or after persistence.
type LineItem struct {
	Code      string
	Name      string
	Quantity  float64
	UnitPrice float64
	VAT       float64 // percent
}

// NewLineItem builds a LineItem and rejects invalid values with a
// *ValidationError.
func NewLineItem(code, name string, qty, price, vat float64) (LineItem, error) {
	li := LineItem{
		Code:      strings.TrimSpace(code),
		Name:      strings.TrimSpace(name),
		Quantity:  qty,
		UnitPrice: price,
		VAT:       vat,
	}
	if v := li.Validate(); !v.Empty() {
		return LineItem{}, &ValidationError{Violations: v}
	}
	return li, nil
}

// ParseLineItem builds a LineItem from raw text fields. Numbers may use a
// decimal comma.
func ParseLineItem(code, name, qty, price, vat string) (LineItem, error) {
	v := validation.Violations{}
	q := validation.ParseFloat("quantity", qty, v)
	p := validation.ParseFloat("unit_price", price, v)
	r := validation.ParseFloat("vat", vat, v)
	li := LineItem{Code: strings.TrimSpace(code), Name: strings.TrimSpace(name), Quantity: q, UnitPrice: p, VAT: r}
	for field, c := range li.Validate() {
		v.Add(field, c)
	}
	if !v.Empty() {
		return LineItem{}, &ValidationError{Violations: v}
	}
	return li, nil
}

// Validate checks quantity > 0, unit price > 0, 0 < vat < 100 and a
// non-blank product name.
func (li LineItem) Validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("product", li.Name, v)
	validation.PositiveFloat("quantity", li.Quantity, v)
	validation.PositiveFloat("unit_price", li.UnitPrice, v)
	validation.OpenRange("vat", li.VAT, 0, 100, v)
	return v
}

// Net is quantity × unit price, unrounded.
func (li LineItem) Net() decimal.Decimal {
	return decimal.NewFromFloat(li.Quantity).Mul(decimal.NewFromFloat(li.UnitPrice))
}

// VATAmount is Net × vat / 100, unrounded.
func (li LineItem) VATAmount() decimal.Decimal {
	return li.Net().Mul(decimal.NewFromFloat(li.VAT)).Div(hundred)
}

// Gross is Net + VATAmount, unrounded.
func (li LineItem) Gross() decimal.Decimal {
	return li.Net().Add(li.VATAmount())
}

func (li LineItem) toModel(offerID uint) models.OfferLineItem {
	return models.OfferLineItem{
		OfferID:     offerID,
		ProductCode: li.Code,
		ProductName: li.Name,
		Quantity:    li.Quantity,
		UnitPrice:   li.UnitPrice,
		VAT:         li.VAT,
	}
}

// LineItemFromModel converts a stored row.
func LineItemFromModel(m models.OfferLineItem) LineItem {
	return LineItem{
		Code:      m.ProductCode,
		Name:      m.ProductName,
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
		VAT:       m.VAT,
	}
}

// LineItemsFromModels converts stored rows, keeping order.
func LineItemsFromModels(rows []models.OfferLineItem) []LineItem {
	out := make([]LineItem, len(rows))
	for i, r := range rows {
		out[i] = LineItemFromModel(r)
	}
	return out
}
