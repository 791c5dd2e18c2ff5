package models

import "time"

// Follow-up status values. Any value may follow any other; staff drive the
// workflow by hand.
const (
	FollowUpPending   = "Pending"
	FollowUpContacted = "Contacted"
	FollowUpResolved  = "Resolved"
	FollowUpEscalated = "Escalated"
)

// FollowUp is an outreach task attached to a checkout. Its lifecycle is
// independent of the checkout's unless the auto-resolve policy is enabled.
type FollowUp struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	CheckoutID string `gorm:"type:uuid;index;not null" json:"checkout_id"`
	UserID     string `gorm:"type:uuid;index;not null" json:"user_id"`

	Reason          string     `gorm:"size:500;not null" json:"reason"`
	Status          string     `gorm:"size:20;not null;default:'Pending'" json:"status"`
	ContactedDate   *time.Time `json:"contacted_date"`
	ResolutionNotes string     `gorm:"size:1000" json:"resolution_notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (FollowUp) TableName() string { return "follow_ups" }

// Open reports whether the task still needs attention.
func (f *FollowUp) Open() bool { return f.Status != FollowUpResolved }
