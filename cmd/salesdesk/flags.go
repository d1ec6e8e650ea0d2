package main

import (
	"strings"
	"time"

	"github.com/diewo77/salesdesk/internal/services"
	"github.com/diewo77/salesdesk/validation"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// parseItem reads a --item value of the form code:name:qty:price:vat.
// The name may itself contain colons.
func parseItem(raw string) (services.LineItem, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 5 {
		return services.LineItem{}, &services.ValidationError{Violations: validation.Violations{"item": validation.CodeOutOfRange}}
	}
	n := len(parts)
	name := strings.Join(parts[1:n-3], ":")
	return services.ParseLineItem(parts[0], name, parts[n-3], parts[n-2], parts[n-1])
}

func parseItems(raws []string) ([]services.LineItem, error) {
	items := make([]services.LineItem, 0, len(raws))
	for _, raw := range raws {
		li, err := parseItem(raw)
		if err != nil {
			return nil, err
		}
		items = append(items, li)
	}
	return items, nil
}

// parseDate reads a YYYY-MM-DD value in local time.
func parseDate(field, raw string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(raw), time.Local)
	if err != nil {
		return time.Time{}, &services.ValidationError{Violations: validation.Violations{field: validation.CodeOutOfRange}}
	}
	return t, nil
}

// parseMonth reads a YYYY-MM value in local time.
func parseMonth(field, raw string) (time.Time, error) {
	t, err := time.ParseInLocation(monthLayout, strings.TrimSpace(raw), time.Local)
	if err != nil {
		return time.Time{}, &services.ValidationError{Violations: validation.Violations{field: validation.CodeOutOfRange}}
	}
	return t, nil
}

// parseAmount reads a sale amount. A decimal comma is accepted.
func parseAmount(raw string) (float64, error) {
	v := validation.Violations{}
	amount := validation.ParseFloat("amount", raw, v)
	if !v.Empty() {
		return 0, &services.ValidationError{Violations: v}
	}
	return amount, nil
}
