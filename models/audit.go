package models

import "time"

// Audit actions recorded by the lending engine.
const (
	AuditCheckoutCreated = "checkout.created"
	AuditCheckoutReturn  = "checkout.returned"
	AuditCheckoutDeleted = "checkout.deleted"
)

// AuditEntry records who did what to which circulation record.
type AuditEntry struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	ActorID    string `gorm:"type:uuid;index" json:"actor_id"`
	ActorEmail string `gorm:"size:255" json:"actor_email"`
	Action     string `gorm:"size:40;not null" json:"action"`
	CheckoutID string `gorm:"type:uuid;index" json:"checkout_id"`
	Note       string `gorm:"size:255" json:"note"`

	CreatedAt time.Time `json:"created_at"`
}

func (AuditEntry) TableName() string { return "circulation_audit" }
