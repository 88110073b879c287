package models

import "time"

// AuditLog is an append-only history entry for a case mutation. Rows are never
// updated or deleted once written.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	CaseType string `gorm:"size:20;not null;index:idx_case_history" json:"case_type"` // "primary", "appeal", "supreme"
	CaseID   uint   `gorm:"not null;index:idx_case_history" json:"case_id"`

	Action string `gorm:"size:50;not null" json:"action"` // "created", "updated", "escalated" etc.

	// Before/after snapshots as JSON; the literal "null" when absent.
	OldData string `gorm:"type:jsonb" json:"old_data"`
	NewData string `gorm:"type:jsonb" json:"new_data"`

	// Actor; nil for unauthenticated system actions.
	UserID *uint `json:"user_id"`
	User   *User `json:"-"`
}
