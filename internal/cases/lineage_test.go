package cases

import (
	"errors"
	"fmt"
	"testing"

	"courtflow/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Document{}))
	return db
}

func seedDocuments(t *testing.T, db *gorm.DB, tier Tier, caseID uint, n int) []models.Document {
	t.Helper()
	docs := make([]models.Document, 0, n)
	for i := 1; i <= n; i++ {
		doc := models.Document{
			Name:         fmt.Sprintf("exhibit-%d", i),
			OriginalName: fmt.Sprintf("exhibit-%d.pdf", i),
			FilePath:     fmt.Sprintf("uploads/%s-%d-%d.pdf", tier, caseID, i),
			FileSize:     int64(1000 * i),
			MimeType:     "application/pdf",
			Description:  "scanned filing",
			UploadedByID: 42,

			DocumentableType: string(tier),
			DocumentableID:   caseID,
		}
		require.NoError(t, db.Create(&doc).Error)
		docs = append(docs, doc)
	}
	return docs
}

func TestPropagateCopiesRows(t *testing.T) {
	db := testDB(t)
	originals := seedDocuments(t, db, TierPrimary, 1, 3)

	copied, err := NewPropagator(db).Propagate(TierPrimary, 1, TierAppeal, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, copied)

	var copies []models.Document
	require.NoError(t, db.
		Where("documentable_type = ? AND documentable_id = ?", TierAppeal, 5).
		Order("id asc").
		Find(&copies).Error)
	require.Len(t, copies, 3)

	for i, cp := range copies {
		orig := originals[i]
		assert.NotEqual(t, orig.ID, cp.ID, "copy must be a brand-new row")
		assert.Equal(t, orig.FilePath, cp.FilePath, "file bytes are aliased, not duplicated")
		assert.Equal(t, orig.Name, cp.Name)
		assert.Equal(t, orig.OriginalName, cp.OriginalName)
		assert.Equal(t, orig.FileSize, cp.FileSize)
		assert.Equal(t, orig.MimeType, cp.MimeType)
		assert.Equal(t, orig.Description, cp.Description)
		assert.Equal(t, orig.UploadedByID, cp.UploadedByID, "original uploader is preserved")
		assert.Equal(t, string(TierAppeal), cp.DocumentableType)
		assert.Equal(t, uint(5), cp.DocumentableID)
	}

	// source rows untouched
	var sourceCount int64
	require.NoError(t, db.Model(&models.Document{}).
		Where("documentable_type = ? AND documentable_id = ?", TierPrimary, 1).
		Count(&sourceCount).Error)
	assert.EqualValues(t, 3, sourceCount)
}

func TestPropagateEmptySource(t *testing.T) {
	db := testDB(t)

	copied, err := NewPropagator(db).Propagate(TierAppeal, 9, TierSupreme, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, copied)

	var count int64
	require.NoError(t, db.Model(&models.Document{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestPropagateRejectsInvalidDirection(t *testing.T) {
	db := testDB(t)
	seedDocuments(t, db, TierSupreme, 1, 2)

	p := NewPropagator(db)

	var orderErr *TierOrderError

	_, err := p.Propagate(TierSupreme, 1, TierAppeal, 2)
	require.Error(t, err)
	assert.True(t, errors.As(err, &orderErr))

	_, err = p.Propagate(TierPrimary, 1, TierSupreme, 2)
	require.Error(t, err)
	assert.True(t, errors.As(err, &orderErr))

	_, err = p.Propagate(TierAppeal, 1, TierAppeal, 2)
	require.Error(t, err)
	assert.True(t, errors.As(err, &orderErr))

	// nothing was written
	var count int64
	require.NoError(t, db.Model(&models.Document{}).
		Where("documentable_type = ?", TierAppeal).
		Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestPropagateIsAtLeastOnce(t *testing.T) {
	db := testDB(t)
	seedDocuments(t, db, TierPrimary, 1, 2)

	p := NewPropagator(db)

	copied, err := p.CopyPrimaryToAppeal(1, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, copied)

	// no dedup key: a second run duplicates the already-copied rows
	copied, err = p.CopyPrimaryToAppeal(1, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, copied)

	var count int64
	require.NoError(t, db.Model(&models.Document{}).
		Where("documentable_type = ? AND documentable_id = ?", TierAppeal, 5).
		Count(&count).Error)
	assert.EqualValues(t, 4, count)
}

func TestCopyAppealToSupreme(t *testing.T) {
	db := testDB(t)
	seedDocuments(t, db, TierAppeal, 3, 1)

	copied, err := NewPropagator(db).CopyAppealToSupreme(3, 8)
	require.NoError(t, err)
	assert.Equal(t, 1, copied)

	var cp models.Document
	require.NoError(t, db.
		Where("documentable_type = ? AND documentable_id = ?", TierSupreme, 8).
		First(&cp).Error)
	assert.Equal(t, string(TierSupreme), cp.DocumentableType)
}
