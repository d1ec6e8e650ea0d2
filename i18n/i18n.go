// Package i18n holds the user-facing message catalogue.
package i18n

import "strings"

// DefaultLang is used when the requested language has no catalogue.
const DefaultLang = "ro"

var catalog = map[string]map[string]string{
	"ro": {
		"required":         "Obligatoriu",
		"must_be_positive": "Trebuie să fie pozitiv",
		"out_of_range":     "În afara intervalului",
		"not_a_number":     "Nu este un număr",
		"offer_empty":      "Oferta trebuie să conțină cel puțin un produs",
		"integrity":        "Operațiune respinsă de baza de date",
		"not_found":        "Înregistrarea nu există",
		"unauthorized":     "Nu aveți drept pentru această operațiune",
		"failed":           "Operațiunea a eșuat",
		"invalid_login":    "Utilizator sau parolă greșită",
		"user_exists":      "Utilizatorul există deja",
		"lookup_failed":    "Datele clientului nu au putut fi preluate",
		"field.quantity":   "Cantitate",
		"field.unit_price": "Preț unitar",
		"field.vat":        "TVA",
		"field.product":    "Produs",
		"field.cif":        "CIF",
		"field.doc":        "Document",
		"field.amount":     "Sumă",
		"field.username":   "Utilizator",
		"field.password":   "Parolă",
		"field.email":      "Email",
		"field.date":       "Data",
		"field.month":      "Luna",
		"field.item":       "Linie produs",
	},
	"en": {
		"required":         "Required",
		"must_be_positive": "Must be positive",
		"out_of_range":     "Out of range",
		"not_a_number":     "Not a number",
		"offer_empty":      "An offer needs at least one product",
		"integrity":        "Rejected by the database",
		"not_found":        "Record not found",
		"unauthorized":     "You are not allowed to do this",
		"failed":           "Operation failed",
		"invalid_login":    "Wrong username or password",
		"user_exists":      "User already exists",
		"lookup_failed":    "Client data could not be fetched",
		"field.quantity":   "Quantity",
		"field.unit_price": "Unit price",
		"field.vat":        "VAT",
		"field.product":    "Product",
		"field.cif":        "CIF",
		"field.doc":        "Document",
		"field.amount":     "Amount",
		"field.username":   "Username",
		"field.password":   "Password",
		"field.email":      "Email",
		"field.date":       "Date",
		"field.month":      "Month",
		"field.item":       "Product line",
	},
}

// DetectLanguage picks a supported language from a locale string such as
// "en_US.UTF-8" or "en-US,en;q=0.9". Unknown values yield DefaultLang.
func DetectLanguage(locale string) string {
	s := strings.ToLower(strings.TrimSpace(locale))
	for _, sep := range []string{",", ";", ".", "_", "-"} {
		if i := strings.Index(s, sep); i >= 0 {
			s = s[:i]
		}
	}
	if _, ok := catalog[s]; ok {
		return s
	}
	return DefaultLang
}

// T translates code into lang, falling back to DefaultLang and then to
// the code itself.
func T(lang, code string) string {
	if m, ok := catalog[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := catalog[DefaultLang][code]; ok {
		return s
	}
	return code
}

// Field translates a field name, e.g. "vat" -> "TVA".
func Field(lang, field string) string {
	if s := T(lang, "field."+field); s != "field."+field {
		return s
	}
	return field
}
