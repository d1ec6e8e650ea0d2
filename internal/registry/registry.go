// Package registry looks up client companies in the public company
// registry by tax id.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the Romanian jurisdiction endpoint of OpenCorporates.
const DefaultBaseURL = "https://api.opencorporates.com/v0.4/companies/ro"

var (
	ErrEmptyCIF = errors.New("empty cif")
	ErrNotFound = errors.New("company not found")
	ErrLookup   = errors.New("registry lookup failed")
)

// Company is what the registry knows about a client.
type Company struct {
	Name               string
	RegistrationNumber string
	Address            string
}

// Client queries the registry. It never retries.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a registry client. A zero timeout means 10 seconds.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type lookupResponse struct {
	Results struct {
		Company struct {
			Name              string `json:"name"`
			CompanyNumber     string `json:"company_number"`
			RegisteredAddress any    `json:"registered_address"`
		} `json:"company"`
	} `json:"results"`
}

// Lookup fetches the company registered under cif. A leading "RO" VAT
// prefix is dropped.
func (c *Client) Lookup(ctx context.Context, cif string) (Company, error) {
	id := NormalizeCIF(cif)
	if id == "" {
		return Company{}, ErrEmptyCIF
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+url.PathEscape(id), nil)
	if err != nil {
		return Company{}, fmt.Errorf("%w: %v", ErrLookup, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Company{}, fmt.Errorf("%w: %v", ErrLookup, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Company{}, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Company{}, fmt.Errorf("%w: status %d: %s", ErrLookup, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Company{}, fmt.Errorf("%w: decode: %v", ErrLookup, err)
	}
	co := out.Results.Company
	if co.Name == "" && co.CompanyNumber == "" {
		return Company{}, ErrNotFound
	}
	return Company{
		Name:               co.Name,
		RegistrationNumber: co.CompanyNumber,
		Address:            formatAddress(co.RegisteredAddress),
	}, nil
}

// NormalizeCIF trims spaces and the "RO" prefix.
func NormalizeCIF(cif string) string {
	s := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(cif), " ", ""))
	return strings.TrimPrefix(s, "RO")
}

// formatAddress accepts either a plain string or the structured address
// object some registry records carry.
func formatAddress(v any) string {
	switch a := v.(type) {
	case string:
		return a
	case map[string]any:
		var parts []string
		for _, k := range []string{"street_address", "locality", "region", "postal_code", "country"} {
			if s, ok := a[k].(string); ok && strings.TrimSpace(s) != "" {
				parts = append(parts, strings.TrimSpace(s))
			}
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}
