package services

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Totals are the three money figures of an offer, each rounded to cents.
type Totals struct {
	Subtotal float64
	VAT      float64
	Final    float64
}

// ComputeTotals sums the unrounded line values first and rounds each sum
// to two decimals. Final is the sum of the rounded figures, so
// Final == Subtotal + VAT always holds.
func ComputeTotals(items []LineItem) Totals {
	sub, vat := decimal.Zero, decimal.Zero
	for _, it := range items {
		sub = sub.Add(it.Net())
		vat = vat.Add(it.VATAmount())
	}
	sub, vat = sub.Round(2), vat.Round(2)
	return Totals{
		Subtotal: sub.InexactFloat64(),
		VAT:      vat.InexactFloat64(),
		Final:    sub.Add(vat).InexactFloat64(),
	}
}

// TotalsCache keeps computed totals per offer id. Entries are dropped on
// any line-item mutation of that offer.
type TotalsCache struct {
	mu    sync.RWMutex
	cache map[uint]Totals
}

// NewTotalsCache creates an empty cache.
func NewTotalsCache() *TotalsCache {
	return &TotalsCache{cache: make(map[uint]Totals)}
}

// Get returns the cached totals for offerID.
func (c *TotalsCache) Get(offerID uint) (Totals, bool) {
	c.mu.RLock()
	t, ok := c.cache[offerID]
	c.mu.RUnlock()
	return t, ok
}

// Set stores totals for offerID.
func (c *TotalsCache) Set(offerID uint, t Totals) {
	c.mu.Lock()
	c.cache[offerID] = t
	c.mu.Unlock()
}

// Invalidate removes offerID from the cache.
func (c *TotalsCache) Invalidate(offerID uint) {
	c.mu.Lock()
	delete(c.cache, offerID)
	c.mu.Unlock()
}

// InvalidateAll clears the cache. Used after cascades that remove offers
// in bulk, such as deleting a user.
func (c *TotalsCache) InvalidateAll() {
	c.mu.Lock()
	c.cache = make(map[uint]Totals)
	c.mu.Unlock()
}

// Len returns the number of cached offers.
func (c *TotalsCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}
