package models

// Offer is a client quotation header. Totals are never stored; they are
// recomputed from Items.
type Offer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CIF       string    `gorm:"column:cif;size:64;not null" json:"cif"`
	Name      string    `gorm:"size:255" json:"name"`
	Address   string    `gorm:"size:500" json:"address"`
	Phone     string    `gorm:"size:64" json:"phone"`
	Timestamp LocalTime `gorm:"column:timestamp;type:varchar(32);not null;index" json:"timestamp"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`

	Items []OfferLineItem `gorm:"foreignKey:OfferID;constraint:OnDelete:CASCADE" json:"items"`
}

// GetUserID implements the Ownable interface for authorization.
func (o *Offer) GetUserID() uint {
	return o.UserID
}

// OfferLineItem is one product row of an offer (an "offer position").
type OfferLineItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OfferID     uint    `gorm:"index;not null" json:"offer_id"`
	ProductCode string  `gorm:"size:64" json:"product_code"`
	ProductName string  `gorm:"size:255;not null" json:"product_name"`
	Quantity    float64 `gorm:"not null" json:"quantity"`
	UnitPrice   float64 `gorm:"not null" json:"unit_price"`
	VAT         float64 `gorm:"column:vat;not null" json:"vat"` // percent, e.g. 19
}

// TableName keeps the historical table name for line items.
func (OfferLineItem) TableName() string {
	return "offers_positions"
}

// LineTotal returns quantity × unit price × (1 + vat/100), unrounded.
func (item *OfferLineItem) LineTotal() float64 {
	return item.Quantity * item.UnitPrice * (1 + item.VAT/100)
}
