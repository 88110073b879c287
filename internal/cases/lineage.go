package cases

import (
	"fmt"

	"courtflow/internal/models"

	"gorm.io/gorm"
)

// Propagator copies document metadata from a case to its escalation target.
// Only rows are duplicated: the new rows alias the same stored file path, so
// file bytes must never be removed while any row still references them.
type Propagator struct {
	db *gorm.DB
}

func NewPropagator(db *gorm.DB) *Propagator {
	return &Propagator{db: db}
}

// Propagate duplicates every document owned by the source case onto the target
// case and returns the number of rows created. The direction must be a valid
// escalation. The batch runs in a single transaction, so a mid-batch failure
// leaves the target case without partial copies.
//
// There is no dedup key: running Propagate twice for the same pair copies the
// documents twice. Callers needing exactly-once must check the target's
// document count first.
func (p *Propagator) Propagate(sourceType Tier, sourceID uint, targetType Tier, targetID uint) (int, error) {
	if err := ValidateEscalation(sourceType, targetType); err != nil {
		return 0, err
	}

	var docs []models.Document
	if err := p.db.
		Where("documentable_type = ? AND documentable_id = ?", sourceType, sourceID).
		Find(&docs).Error; err != nil {
		return 0, fmt.Errorf("loading documents of %s case %d: %w", sourceType, sourceID, err)
	}
	if len(docs) == 0 {
		return 0, nil
	}

	copied := 0
	err := p.db.Transaction(func(tx *gorm.DB) error {
		for _, doc := range docs {
			dup := models.Document{
				Name:         doc.Name,
				OriginalName: doc.OriginalName,
				FilePath:     doc.FilePath, // same bytes, new row
				FileSize:     doc.FileSize,
				MimeType:     doc.MimeType,
				Description:  doc.Description,
				UploadedByID: doc.UploadedByID, // original uploader preserved

				DocumentableType: string(targetType),
				DocumentableID:   targetID,
			}
			if err := tx.Create(&dup).Error; err != nil {
				return fmt.Errorf("copying document %d (%d of %d done): %w", doc.ID, copied, len(docs), err)
			}
			copied++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return copied, nil
}

// CopyPrimaryToAppeal propagates documents for a primary -> appeal escalation.
func (p *Propagator) CopyPrimaryToAppeal(primaryID, appealID uint) (int, error) {
	return p.Propagate(TierPrimary, primaryID, TierAppeal, appealID)
}

// CopyAppealToSupreme propagates documents for an appeal -> supreme escalation.
func (p *Propagator) CopyAppealToSupreme(appealID, supremeID uint) (int, error) {
	return p.Propagate(TierAppeal, appealID, TierSupreme, supremeID)
}
