package services

import (
	"context"
	"fmt"
	"time"

	"github.com/diewo77/salesdesk/internal/models"
	"github.com/diewo77/salesdesk/internal/policy"
	"github.com/diewo77/salesdesk/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OfferService manages offers and their line items.
type OfferService struct {
	db     *gorm.DB
	gate   *policy.Gate
	totals *TotalsCache
	now    func() time.Time
}

func NewOfferService(db *gorm.DB, gate *policy.Gate, totals *TotalsCache) *OfferService {
	if totals == nil {
		totals = NewTotalsCache()
	}
	return &OfferService{db: db, gate: gate, totals: totals, now: time.Now}
}

// CreateOffer stores the header and every item in one transaction. An
// empty item list fails with ErrEmptyOffer and writes nothing.
func (s *OfferService) CreateOffer(ctx context.Context, cif, name, address, phone string, items []LineItem, user *models.User) (*models.Offer, error) {
	return s.Save(ctx, &DraftOffer{CIF: cif, Name: name, Address: address, Phone: phone, Items: items}, user)
}

// Save persists a draft as a new offer owned by user. The draft itself is
// left untouched so the caller can retry after a failure.
func (s *OfferService) Save(ctx context.Context, draft *DraftOffer, user *models.User) (*models.Offer, error) {
	d := *draft
	d.normalize()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if user == nil || user.ID == 0 {
		return nil, &ValidationError{Violations: validation.Violations{"user": validation.CodeRequired}}
	}

	offer := models.Offer{
		CIF:       d.CIF,
		Name:      d.Name,
		Address:   d.Address,
		Phone:     d.Phone,
		Timestamp: models.NewLocalTime(s.now()),
		UserID:    user.ID,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&offer).Error; err != nil {
			return err
		}
		rows := make([]models.OfferLineItem, len(d.Items))
		for i, it := range d.Items {
			rows[i] = it.toModel(offer.ID)
			if err := tx.Create(&rows[i]).Error; err != nil {
				return err
			}
		}
		offer.Items = rows
		return nil
	})
	if err != nil {
		return nil, storeError("offers", "create offer", err)
	}
	s.totals.Set(offer.ID, ComputeTotals(d.Items))
	return &offer, nil
}

// GetOffersByUser returns user's offers with their items, newest first.
func (s *OfferService) GetOffersByUser(ctx context.Context, user *models.User) ([]models.Offer, error) {
	offers := []models.Offer{}
	if user == nil {
		return offers, nil
	}
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("user_id = ?", user.ID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}, Desc: true}).
		Order("id DESC").
		Find(&offers).Error
	if err != nil {
		return []models.Offer{}, storeError("offers", "list offers", err)
	}
	return offers, nil
}

// GetOffer loads one offer with items if actor may view it.
func (s *OfferService) GetOffer(ctx context.Context, actor *models.User, offerID uint) (*models.Offer, error) {
	offer, err := s.loadOffer(s.db.WithContext(ctx), offerID, true)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(ctx, actor, policy.ActionView, policy.ResourceOffer, offer); err != nil {
		return nil, fmt.Errorf("view offer %d: %w", offerID, err)
	}
	return offer, nil
}

// Totals returns the totals of an offer actor may view, computing and
// caching them on a miss.
func (s *OfferService) Totals(ctx context.Context, actor *models.User, offerID uint) (Totals, error) {
	db := s.db.WithContext(ctx)
	offer, err := s.loadOffer(db, offerID, false)
	if err != nil {
		return Totals{}, err
	}
	if err := s.gate.Authorize(ctx, actor, policy.ActionView, policy.ResourceOffer, offer); err != nil {
		return Totals{}, fmt.Errorf("totals of offer %d: %w", offerID, err)
	}
	if t, ok := s.totals.Get(offerID); ok {
		return t, nil
	}
	var rows []models.OfferLineItem
	if err := db.Where("offer_id = ?", offerID).Order("id ASC").Find(&rows).Error; err != nil {
		return Totals{}, storeError("offers", fmt.Sprintf("load items of offer %d", offerID), err)
	}
	t := ComputeTotals(LineItemsFromModels(rows))
	s.totals.Set(offerID, t)
	return t, nil
}

// OfferTotals returns the totals of an offer already loaded with its
// items, filling the cache on a miss. It does not touch the store.
func (s *OfferService) OfferTotals(offer *models.Offer) Totals {
	if t, ok := s.totals.Get(offer.ID); ok {
		return t
	}
	t := ComputeTotals(LineItemsFromModels(offer.Items))
	s.totals.Set(offer.ID, t)
	return t
}

// AddProduct appends one item to an existing offer.
func (s *OfferService) AddProduct(ctx context.Context, actor *models.User, offerID uint, item LineItem) (*models.OfferLineItem, error) {
	if offerID == 0 {
		return nil, ErrMissingID
	}
	if v := item.Validate(); !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}
	var row models.OfferLineItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		offer, err := s.loadOffer(tx, offerID, false)
		if err != nil {
			return err
		}
		if err := s.gate.Authorize(ctx, actor, policy.ActionUpdate, policy.ResourceOffer, offer); err != nil {
			return fmt.Errorf("add product to offer %d: %w", offerID, err)
		}
		row = item.toModel(offerID)
		if err := tx.Create(&row).Error; err != nil {
			return storeError("offers", "add product", err)
		}
		return nil
	})
	s.totals.Invalidate(offerID)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// UpdateProduct replaces every mutable field of an item. The item stays
// on its offer.
func (s *OfferService) UpdateProduct(ctx context.Context, actor *models.User, itemID uint, item LineItem) error {
	if itemID == 0 {
		return ErrMissingID
	}
	if v := item.Validate(); !v.Empty() {
		return &ValidationError{Violations: v}
	}
	var offerID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := s.authorizeItem(ctx, tx, actor, itemID)
		if err != nil {
			return err
		}
		offerID = row.OfferID
		updated := item.toModel(row.OfferID)
		err = tx.Model(row).
			Select("product_code", "product_name", "quantity", "unit_price", "vat").
			Updates(&updated).Error
		return storeError("offers", fmt.Sprintf("update product %d", itemID), err)
	})
	if offerID != 0 {
		s.totals.Invalidate(offerID)
	}
	return err
}

// DeleteProduct removes one item.
func (s *OfferService) DeleteProduct(ctx context.Context, actor *models.User, itemID uint) error {
	if itemID == 0 {
		return ErrMissingID
	}
	var offerID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := s.authorizeItem(ctx, tx, actor, itemID)
		if err != nil {
			return err
		}
		offerID = row.OfferID
		return storeError("offers", fmt.Sprintf("delete product %d", itemID), tx.Delete(row).Error)
	})
	if offerID != 0 {
		s.totals.Invalidate(offerID)
	}
	return err
}

// DeleteOffer removes an offer; its items go with it through the
// foreign-key cascade.
func (s *OfferService) DeleteOffer(ctx context.Context, actor *models.User, offerID uint) error {
	if offerID == 0 {
		return ErrMissingID
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		offer, err := s.loadOffer(tx, offerID, false)
		if err != nil {
			return err
		}
		if err := s.gate.Authorize(ctx, actor, policy.ActionDelete, policy.ResourceOffer, offer); err != nil {
			return fmt.Errorf("delete offer %d: %w", offerID, err)
		}
		return storeError("offers", fmt.Sprintf("delete offer %d", offerID), tx.Delete(offer).Error)
	})
	s.totals.Invalidate(offerID)
	return err
}

func (s *OfferService) loadOffer(db *gorm.DB, offerID uint, withItems bool) (*models.Offer, error) {
	if offerID == 0 {
		return nil, ErrMissingID
	}
	var offer models.Offer
	q := db
	if withItems {
		q = q.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") })
	}
	if err := q.First(&offer, offerID).Error; err != nil {
		return nil, storeError("offers", fmt.Sprintf("load offer %d", offerID), err)
	}
	return &offer, nil
}

// authorizeItem loads an item and checks actor against its parent offer.
func (s *OfferService) authorizeItem(ctx context.Context, tx *gorm.DB, actor *models.User, itemID uint) (*models.OfferLineItem, error) {
	var row models.OfferLineItem
	if err := tx.First(&row, itemID).Error; err != nil {
		return nil, storeError("offers", fmt.Sprintf("load product %d", itemID), err)
	}
	offer, err := s.loadOffer(tx, row.OfferID, false)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(ctx, actor, policy.ActionUpdate, policy.ResourceOffer, offer); err != nil {
		return nil, fmt.Errorf("product %d: %w", itemID, err)
	}
	return &row, nil
}
