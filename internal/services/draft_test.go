package services

import (
	"errors"
	"testing"
)

func TestDraftOffer_AddRemoveTotals(t *testing.T) {
	var d DraftOffer
	if err := d.Add(LineItem{Name: "A", Quantity: 2, UnitPrice: 100, VAT: 19}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := d.Add(LineItem{Name: "B", Quantity: 1, UnitPrice: 50, VAT: 9}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := d.Add(LineItem{Name: "bad", Quantity: 0, UnitPrice: 1, VAT: 19}); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if d.Len() != 2 {
		t.Fatalf("Len = %d, want 2", d.Len())
	}
	if got := d.Totals().Final; got != 292.5 {
		t.Fatalf("Final = %v, want 292.5", got)
	}

	if err := d.Remove(0); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if d.Items[0].Name != "B" {
		t.Fatalf("remaining item = %q", d.Items[0].Name)
	}
	if err := d.Remove(5); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDraftOffer_Validate(t *testing.T) {
	d := DraftOffer{CIF: "RO123"}
	if err := d.Validate(); !errors.Is(err, ErrEmptyOffer) {
		t.Fatalf("expected ErrEmptyOffer, got %v", err)
	}

	d.Items = []LineItem{{Name: "A", Quantity: 1, UnitPrice: 1, VAT: 19}, {Name: "B", Quantity: -1, UnitPrice: 1, VAT: 19}}
	d.CIF = ""
	err := d.Validate()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if _, ok := ve.Violations["cif"]; !ok {
		t.Errorf("expected cif violation")
	}
	if _, ok := ve.Violations["items[1].quantity"]; !ok {
		t.Errorf("expected items[1].quantity violation, got %v", ve.Violations)
	}
}

func TestDraftOffer_Clear(t *testing.T) {
	d := DraftOffer{CIF: "RO1", Name: "Client", Items: []LineItem{{Name: "A"}}}
	d.Clear()
	if d.CIF != "" || d.Len() != 0 {
		t.Fatalf("draft not cleared: %+v", d)
	}
}
