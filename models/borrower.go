package models

import "time"

// Borrower is a library patron. Email is unique within one staff account's
// records. Deletion is blocked while the borrower holds open checkouts.
type Borrower struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:uuid;not null;uniqueIndex:uq_borrowers_user_email" json:"user_id"`

	FirstName string `gorm:"size:120;not null" json:"first_name"`
	LastName  string `gorm:"size:120;not null" json:"last_name"`
	Email     string `gorm:"size:255;not null;uniqueIndex:uq_borrowers_user_email" json:"email"`
	Phone     string `gorm:"size:45" json:"phone"`
	AltPhone  string `gorm:"size:45" json:"alt_phone"`
	Address   string `gorm:"size:500" json:"address"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Borrower) TableName() string { return "borrowers" }
