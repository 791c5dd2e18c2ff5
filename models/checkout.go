package models

import "time"

const CheckoutTable = "checkouts"

// Checkout status values, derived from return_date and due_date. Status is
// never stored; drift from the source of truth is impossible.
const (
	CheckoutOpen     = "Checked Out"
	CheckoutReturned = "Returned"
	CheckoutOverdue  = "Overdue"
)

// Checkout is a loan of one copy to one borrower. due_date is fixed at
// creation (checkout_date + due_days) and never recomputed.
type Checkout struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	CopyID     string `gorm:"type:uuid;index;not null" json:"copy_id"`
	BorrowerID string `gorm:"type:uuid;index;not null" json:"borrower_id"`
	UserID     string `gorm:"type:uuid;index;not null" json:"user_id"`

	CheckoutDate time.Time  `gorm:"index;not null" json:"checkout_date"`
	DueDate      time.Time  `gorm:"not null" json:"due_date"`
	ReturnDate   *time.Time `gorm:"index" json:"return_date"`
	Notes        string     `gorm:"size:500" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Checkout) TableName() string { return CheckoutTable }

// Status reports the two-way lifecycle state.
func (c *Checkout) Status() string {
	if c.ReturnDate != nil {
		return CheckoutReturned
	}
	return CheckoutOpen
}

// StatusAt reports the three-way history state as of now.
func (c *Checkout) StatusAt(now time.Time) string {
	if c.ReturnDate != nil {
		return CheckoutReturned
	}
	if c.DueDate.Before(now) {
		return CheckoutOverdue
	}
	return CheckoutOpen
}

// OverdueAt reports whether the loan is outstanding past its due date.
func (c *Checkout) OverdueAt(now time.Time) bool {
	return c.ReturnDate == nil && c.DueDate.Before(now)
}

// DurationDays is the whole days between checkout and return, or checkout
// and now while the loan is still open.
func (c *Checkout) DurationDays(now time.Time) int {
	end := now
	if c.ReturnDate != nil {
		end = *c.ReturnDate
	}
	d := end.Sub(c.CheckoutDate)
	if d < 0 {
		return 0
	}
	return int(d.Hours() / 24)
}
