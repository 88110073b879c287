package models

import "gorm.io/gorm"

// Document is file metadata attached to exactly one case in one tier.
// DocumentableType/DocumentableID form the owning-case reference. Several rows
// may share one FilePath: escalation copies rows, never file bytes, so the
// stored file must outlive every row that references it.
type Document struct {
	gorm.Model
	Name         string `gorm:"size:255;not null" json:"name"`
	OriginalName string `gorm:"size:255" json:"original_name"`
	FilePath     string `gorm:"size:500;not null" json:"file_path"`
	FileSize     int64  `json:"file_size"`
	MimeType     string `gorm:"size:100" json:"mime_type"`
	Description  string `gorm:"type:text" json:"description"`

	UploadedByID uint  `json:"uploaded_by_id"`
	UploadedBy   *User `json:"-"`

	DocumentableType string `gorm:"size:20;not null;index:idx_documentable" json:"documentable_type"`
	DocumentableID   uint   `gorm:"not null;index:idx_documentable" json:"documentable_id"`
}
