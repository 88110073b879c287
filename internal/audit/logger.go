package audit

import (
	"encoding/json"
	"fmt"

	"courtflow/internal/models"

	"gorm.io/gorm"
)

// Logger appends immutable history entries for case mutations. It never reads
// existing entries to decide what to write, never diffs snapshots, and never
// updates or deletes rows.
type Logger struct {
	db *gorm.DB
}

func NewLogger(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

// Record appends one entry and returns it. Snapshots are opaque to the logger
// and marshalled as-is; nil becomes the JSON null literal so the jsonb columns
// stay valid. actorID is nil for unauthenticated system actions.
func (l *Logger) Record(caseType string, caseID uint, action string, oldData, newData any, actorID *uint) (*models.AuditLog, error) {
	entry := models.AuditLog{
		CaseType: caseType,
		CaseID:   caseID,
		Action:   action,
		OldData:  marshalSnapshot(oldData),
		NewData:  marshalSnapshot(newData),
		UserID:   actorID,
	}
	if err := l.db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("recording audit entry for %s case %d: %w", caseType, caseID, err)
	}
	return &entry, nil
}

func marshalSnapshot(v any) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

// History returns the case's entries newest first, ordered by creation time
// with id as tie-breaker so the order is total and pagination stays stable.
// limit <= 0 returns everything.
func (l *Logger) History(caseType string, caseID uint, limit, offset int) ([]models.AuditLog, error) {
	q := l.db.
		Where("case_type = ? AND case_id = ?", caseType, caseID).
		Order("created_at desc, id desc")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var entries []models.AuditLog
	if err := q.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("loading history for %s case %d: %w", caseType, caseID, err)
	}
	return entries, nil
}
