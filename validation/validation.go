// Package validation collects field-level input violations.
package validation

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Violation codes. They double as i18n keys.
const (
	CodeRequired       = "required"
	CodeMustBePositive = "must_be_positive"
	CodeOutOfRange     = "out_of_range"
	CodeNotANumber     = "not_a_number"
)

// Violations maps a field name to a violation code. The first violation
// recorded for a field wins.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Add records code for field unless the field already has a violation.
func (v Violations) Add(field, code string) {
	if _, ok := v[field]; !ok {
		v[field] = code
	}
}

// Fields returns the violated field names in sorted order.
func (v Violations) Fields() []string {
	out := make([]string, 0, len(v))
	for f := range v {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// String renders "field: code" pairs in field order.
func (v Violations) String() string {
	parts := make([]string, 0, len(v))
	for _, f := range v.Fields() {
		parts = append(parts, f+": "+v[f])
	}
	return strings.Join(parts, ", ")
}

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, CodeRequired)
	}
}

func PositiveFloat(field string, val float64, v Violations) {
	if math.IsNaN(val) || val <= 0 {
		v.Add(field, CodeMustBePositive)
	}
}

// OpenRange requires minVal < val < maxVal.
func OpenRange(field string, val, minVal, maxVal float64, v Violations) {
	if math.IsNaN(val) || val <= minVal || val >= maxVal {
		v.Add(field, CodeOutOfRange)
	}
}

// ParseFloat parses raw user input, accepting a decimal comma. A parse
// failure is recorded as a violation and 0 is returned.
func ParseFloat(field, raw string, v Violations) float64 {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if s == "" {
		v.Add(field, CodeRequired)
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		v.Add(field, CodeNotANumber)
		return 0
	}
	return f
}
