package models

// User owns sales and offers. Deleting a user cascades to both.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;size:255;not null" json:"username"`
	PasswordHash string `gorm:"column:password_hash;size:255;not null" json:"-"` // bcrypt, never exposed
	Email        string `gorm:"size:255" json:"email,omitempty"`
	IsAdmin      bool   `gorm:"not null;default:false" json:"is_admin"`

	Sales  []Sale  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Offers []Offer `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// GetUserID returns the user's own id so that users can be checked
// by the same ownership rules as the records they own.
func (u *User) GetUserID() uint {
	return u.ID
}
