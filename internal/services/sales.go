package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/diewo77/salesdesk/internal/models"
	"github.com/diewo77/salesdesk/internal/policy"
	"github.com/diewo77/salesdesk/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SalesService records and queries cash sales per user.
type SalesService struct {
	db   *gorm.DB
	gate *policy.Gate
	now  func() time.Time
}

func NewSalesService(db *gorm.DB, gate *policy.Gate) *SalesService {
	return &SalesService{db: db, gate: gate, now: time.Now}
}

// CreateSale stores a sale for user. When date is set, the sale is dated
// on that calendar day at the current time of day.
func (s *SalesService) CreateSale(ctx context.Context, doc string, amount float64, user *models.User, date *time.Time) (*models.Sale, error) {
	v := validation.Violations{}
	validation.Required("doc", doc, v)
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		v.Add("amount", validation.CodeNotANumber)
	}
	if user == nil || user.ID == 0 {
		v.Add("user", validation.CodeRequired)
	}
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}

	sale := models.Sale{
		Doc:       strings.TrimSpace(doc),
		Amount:    amount,
		Timestamp: models.NewLocalTime(saleTime(s.now(), date)),
		UserID:    user.ID,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&sale).Error
	})
	if err != nil {
		return nil, storeError("sales", "create sale", err)
	}
	return &sale, nil
}

func saleTime(now time.Time, date *time.Time) time.Time {
	if date == nil {
		return now
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), now.Location())
}

// GetSalesByUser returns all of user's sales, newest first.
func (s *SalesService) GetSalesByUser(ctx context.Context, user *models.User) ([]models.Sale, error) {
	return s.list(ctx, user, "")
}

// GetSalesByDate returns user's sales on the calendar day of date.
func (s *SalesService) GetSalesByDate(ctx context.Context, user *models.User, date time.Time) ([]models.Sale, error) {
	return s.list(ctx, user, models.DatePrefix(date))
}

// GetSalesByMonth returns user's sales in the given month.
func (s *SalesService) GetSalesByMonth(ctx context.Context, user *models.User, year int, month time.Month) ([]models.Sale, error) {
	if month < time.January || month > time.December {
		return []models.Sale{}, nil
	}
	return s.list(ctx, user, models.MonthPrefix(year, month))
}

// GetSalesByYear returns user's sales in the given year.
func (s *SalesService) GetSalesByYear(ctx context.Context, user *models.User, year int) ([]models.Sale, error) {
	return s.list(ctx, user, models.YearPrefix(year))
}

// list matches the stored timestamp text against prefix. An empty match
// is an empty, non-nil slice.
func (s *SalesService) list(ctx context.Context, user *models.User, prefix string) ([]models.Sale, error) {
	sales := []models.Sale{}
	if user == nil {
		return sales, nil
	}
	q := s.db.WithContext(ctx).Where("user_id = ?", user.ID)
	if prefix != "" {
		q = q.Where(clause.Like{Column: clause.Column{Name: "timestamp"}, Value: prefix + "%"})
	}
	err := q.Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}, Desc: true}).
		Order("id DESC").
		Find(&sales).Error
	if err != nil {
		return []models.Sale{}, storeError("sales", "list sales", err)
	}
	return sales, nil
}

// DeleteSale removes a sale. A zero id fails with ErrMissingID; actor must
// own the sale or be an admin.
func (s *SalesService) DeleteSale(ctx context.Context, actor *models.User, id uint) error {
	if id == 0 {
		return ErrMissingID
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sale models.Sale
		if err := tx.First(&sale, id).Error; err != nil {
			return storeError("sales", fmt.Sprintf("load sale %d", id), err)
		}
		if err := s.gate.Authorize(ctx, actor, policy.ActionDelete, policy.ResourceSale, &sale); err != nil {
			return fmt.Errorf("delete sale %d: %w", id, err)
		}
		if err := tx.Delete(&sale).Error; err != nil {
			return storeError("sales", fmt.Sprintf("delete sale %d", id), err)
		}
		return nil
	})
}
