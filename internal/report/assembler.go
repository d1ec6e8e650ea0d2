package report

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/diewo77/salesdesk/internal/config"
	"github.com/diewo77/salesdesk/internal/models"
	"github.com/google/uuid"
)

// SalesSource is the read side of the sales ledger.
type SalesSource interface {
	GetSalesByDate(ctx context.Context, user *models.User, date time.Time) ([]models.Sale, error)
	GetSalesByMonth(ctx context.Context, user *models.User, year int, month time.Month) ([]models.Sale, error)
}

// OfferSource loads one offer for an actor.
type OfferSource interface {
	GetOffer(ctx context.Context, actor *models.User, offerID uint) (*models.Offer, error)
}

// Assembler loads report input and writes PDF files.
type Assembler struct {
	sales   SalesSource
	offers  OfferSource
	company config.Company
	tempDir string
}

func NewAssembler(sales SalesSource, offers OfferSource, company config.Company) *Assembler {
	return &Assembler{sales: sales, offers: offers, company: company, tempDir: os.TempDir()}
}

// DailyReport writes user's sales for date to path.
func (a *Assembler) DailyReport(ctx context.Context, user *models.User, date time.Time, path string) error {
	sales, err := a.sales.GetSalesByDate(ctx, user, date)
	if err != nil {
		return err
	}
	r := BuildDaily(date, sales)
	return writePDF(path, func(buf *bytes.Buffer) error { return RenderDaily(buf, r, a.company) })
}

// MonthlyReport writes user's sales for the month containing ref to path.
func (a *Assembler) MonthlyReport(ctx context.Context, user *models.User, ref time.Time, path string) error {
	sales, err := a.sales.GetSalesByMonth(ctx, user, ref.Year(), ref.Month())
	if err != nil {
		return err
	}
	r := BuildMonthly(ref, sales)
	return writePDF(path, func(buf *bytes.Buffer) error { return RenderMonthly(buf, r, a.company) })
}

// OfferDocument writes the offer to path. internal selects the in-house
// variant of the title.
func (a *Assembler) OfferDocument(ctx context.Context, actor *models.User, offerID uint, path string, internal bool) error {
	offer, err := a.offers.GetOffer(ctx, actor, offerID)
	if err != nil {
		return err
	}
	doc := BuildOfferDocument(offer, a.company, internal)
	return writePDF(path, func(buf *bytes.Buffer) error { return RenderOffer(buf, doc) })
}

// PreviewOffer writes the offer to a fresh temporary file and returns its
// path.
func (a *Assembler) PreviewOffer(ctx context.Context, actor *models.User, offerID uint, internal bool) (string, error) {
	kind := "offer"
	if internal {
		kind = "offer-internal"
	}
	path := a.PreviewPath(kind)
	if err := a.OfferDocument(ctx, actor, offerID, path, internal); err != nil {
		return "", err
	}
	return path, nil
}

// PreviewPath returns a unique PDF path under the temp directory.
func (a *Assembler) PreviewPath(kind string) string {
	return filepath.Join(a.tempDir, fmt.Sprintf("salesdesk-%s-%s.pdf", kind, uuid.NewString()))
}

// writePDF renders into memory first so a failed render leaves no
// partial file behind.
func writePDF(path string, render func(*bytes.Buffer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return fmt.Errorf("render %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	log.Printf("[report] wrote %s (%d bytes)", path, buf.Len())
	return nil
}
