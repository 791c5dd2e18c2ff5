package models

import "time"

// Wishlist priority values.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Wishlist status values. No transition rules; any value settable any time.
const (
	WishlistRequested = "Requested"
	WishlistOrdered   = "Ordered"
	WishlistReceived  = "Received"
	WishlistCancelled = "Cancelled"
)

// WishlistItem is a requested title not yet in the catalog. title/author/isbn
// are free text on purpose; there is nothing to reference.
type WishlistItem struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:uuid;index;not null" json:"user_id"`

	Title        string `gorm:"size:500;not null" json:"title"`
	Author       string `gorm:"size:300" json:"author"`
	ISBN         string `gorm:"size:32" json:"isbn"`
	RequestedBy  string `gorm:"size:255" json:"requested_by"`
	RequestNotes string `gorm:"size:1000" json:"request_notes"`
	Priority     string `gorm:"size:10;not null;default:'Medium'" json:"priority"`
	Status       string `gorm:"size:20;not null;default:'Requested'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (WishlistItem) TableName() string { return "book_wishlist" }
