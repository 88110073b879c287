package models

import (
	"time"

	"gorm.io/gorm"
)

// CourtSession is a scheduled hearing for a case in any tier.
type CourtSession struct {
	gorm.Model
	CaseType string `gorm:"size:20;not null;index:idx_session_case" json:"case_type"`
	CaseID   uint   `gorm:"not null;index:idx_session_case" json:"case_id"`

	SessionDate time.Time `gorm:"not null" json:"session_date"`
	Room        string    `gorm:"size:100" json:"room"`
	Notes       string    `gorm:"type:text" json:"notes"`
	Result      string    `gorm:"type:text" json:"result"` // filled after the hearing
}
