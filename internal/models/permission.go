package models

import "gorm.io/gorm"

// Permission is one row of a user's module grid. At most one row exists per
// (user, module) pair; writes go through an upsert on the composite key.
type Permission struct {
	gorm.Model
	UserID uint   `gorm:"not null;uniqueIndex:idx_user_module" json:"user_id"`
	Module string `gorm:"size:50;not null;uniqueIndex:idx_user_module" json:"module"`

	// Enabled hides the whole module when false, regardless of the flags below.
	Enabled bool `gorm:"not null;default:false" json:"enabled"`
	View    bool `json:"view"`
	Add     bool `json:"add"`
	Edit    bool `json:"edit"`
	Delete  bool `json:"delete"`
}
