package models

// Sale is one cash-sale entry in the ledger.
// Implements the Ownable interface for ownership-based authorization.
type Sale struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Doc       string    `gorm:"size:255;not null" json:"doc"`
	Amount    float64   `gorm:"not null" json:"amount"`
	Timestamp LocalTime `gorm:"column:timestamp;type:varchar(32);not null;index" json:"timestamp"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
}

// GetUserID implements the Ownable interface for authorization.
func (s *Sale) GetUserID() uint {
	return s.UserID
}
