package models

import (
	"testing"
	"time"
)

func TestSale_GetUserID(t *testing.T) {
	sale := &Sale{UserID: 42}
	if got := sale.GetUserID(); got != 42 {
		t.Errorf("GetUserID() = %d, want 42", got)
	}
}

func TestOffer_GetUserID(t *testing.T) {
	offer := &Offer{UserID: 7}
	if got := offer.GetUserID(); got != 7 {
		t.Errorf("GetUserID() = %d, want 7", got)
	}
}

func TestOfferLineItem_LineTotal(t *testing.T) {
	tests := []struct {
		name  string
		qty   float64
		price float64
		vat   float64
		want  float64
	}{
		{"19% VAT", 2, 100, 19, 238},
		{"9% VAT", 1, 50, 9, 54.5},
		{"fractional quantity", 0.5, 10, 5, 5.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &OfferLineItem{Quantity: tt.qty, UnitPrice: tt.price, VAT: tt.vat}
			got := item.LineTotal()
			if diff := got - tt.want; diff > 0.0001 || diff < -0.0001 {
				t.Errorf("LineTotal() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestOfferLineItem_TableName(t *testing.T) {
	if got := (OfferLineItem{}).TableName(); got != "offers_positions" {
		t.Errorf("TableName() = %q", got)
	}
}

func TestLocalTime_ValueAndScan(t *testing.T) {
	in := NewLocalTime(time.Date(2024, 2, 29, 13, 4, 5, 123456789, time.UTC))
	v, err := in.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != "2024-02-29T13:04:05.123456" {
		t.Fatalf("Value() = %v", v)
	}

	var out LocalTime
	if err := out.Scan(v); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !out.Equal(in.Time) {
		t.Fatalf("round trip mismatch: %v != %v", out, in)
	}
}

func TestLocalTime_ScanShortForms(t *testing.T) {
	for _, s := range []string{"2024-03-15T10:00:00", "2024-03-15T10:00:00.5"} {
		var lt LocalTime
		if err := lt.Scan([]byte(s)); err != nil {
			t.Fatalf("Scan(%q): %v", s, err)
		}
		if lt.Year() != 2024 || lt.Month() != time.March || lt.Day() != 15 || lt.Hour() != 10 {
			t.Fatalf("Scan(%q) = %v", s, lt)
		}
	}

	var lt LocalTime
	if err := lt.Scan(42); err == nil {
		t.Fatalf("expected error for int source")
	}
	if err := lt.Scan("not a time"); err == nil {
		t.Fatalf("expected error for garbage text")
	}
}

func TestPrefixes(t *testing.T) {
	if got := MonthPrefix(2024, time.February); got != "2024-02" {
		t.Errorf("MonthPrefix = %q", got)
	}
	if got := YearPrefix(2024); got != "2024" {
		t.Errorf("YearPrefix = %q", got)
	}
	if got := DatePrefix(time.Date(2024, 3, 5, 23, 0, 0, 0, time.Local)); got != "2024-03-05" {
		t.Errorf("DatePrefix = %q", got)
	}
}
