package audit

import (
	"encoding/json"
	"testing"
	"time"

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
	require.NoError(t, db.AutoMigrate(&models.AuditLog{}))
	return db
}

func TestRecordAndHistory(t *testing.T) {
	db := testDB(t)
	logger := NewLogger(db)

	actor := uint(12)
	entry, err := logger.Record("primary", 7, "updated",
		map[string]any{"status": "active"},
		map[string]any{"status": "closed"},
		&actor,
	)
	require.NoError(t, err)
	assert.NotZero(t, entry.ID)

	history, err := logger.History("primary", 7, 0, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)

	first := history[0]
	assert.Equal(t, "updated", first.Action)
	require.NotNil(t, first.UserID)
	assert.Equal(t, actor, *first.UserID)

	var oldData, newData map[string]any
	require.NoError(t, json.Unmarshal([]byte(first.OldData), &oldData))
	require.NoError(t, json.Unmarshal([]byte(first.NewData), &newData))
	assert.Equal(t, "active", oldData["status"])
	assert.Equal(t, "closed", newData["status"])
}

func TestRecordNilSnapshotsAndActor(t *testing.T) {
	db := testDB(t)

	entry, err := NewLogger(db).Record("appeal", 3, "created", nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "null", entry.OldData)
	assert.Equal(t, "null", entry.NewData)
	assert.Nil(t, entry.UserID)
}

func TestHistoryNewestFirstWithStableTieBreak(t *testing.T) {
	db := testDB(t)
	logger := NewLogger(db)

	earlier := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	later := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	// two entries share a timestamp; id must break the tie, descending
	for _, e := range []models.AuditLog{
		{CaseType: "primary", CaseID: 1, Action: "created", OldData: "null", NewData: "null", CreatedAt: earlier},
		{CaseType: "primary", CaseID: 1, Action: "updated", OldData: "null", NewData: "null", CreatedAt: later},
		{CaseType: "primary", CaseID: 1, Action: "escalated", OldData: "null", NewData: "null", CreatedAt: later},
	} {
		require.NoError(t, db.Create(&e).Error)
	}

	history, err := logger.History("primary", 1, 0, 0)
	require.NoError(t, err)
	require.Len(t, history, 3)

	assert.Equal(t, "escalated", history[0].Action)
	assert.Equal(t, "updated", history[1].Action)
	assert.Equal(t, "created", history[2].Action)
	assert.Greater(t, history[0].ID, history[1].ID)
}

func TestHistoryPaging(t *testing.T) {
	db := testDB(t)
	logger := NewLogger(db)

	for i := 0; i < 5; i++ {
		_, err := logger.Record("supreme", 4, "updated", nil, nil, nil)
		require.NoError(t, err)
	}

	page1, err := logger.History("supreme", 4, 2, 0)
	require.NoError(t, err)
	require.Len(t, page1, 2)

	page2, err := logger.History("supreme", 4, 2, 2)
	require.NoError(t, err)
	require.Len(t, page2, 2)

	page3, err := logger.History("supreme", 4, 2, 4)
	require.NoError(t, err)
	require.Len(t, page3, 1)

	// pages never overlap thanks to the total order
	assert.Greater(t, page1[1].ID, page2[0].ID)
	assert.Greater(t, page2[1].ID, page3[0].ID)
}

func TestHistoryScopedToOneCase(t *testing.T) {
	db := testDB(t)
	logger := NewLogger(db)

	_, err := logger.Record("primary", 1, "created", nil, nil, nil)
	require.NoError(t, err)
	_, err = logger.Record("appeal", 1, "created", nil, nil, nil)
	require.NoError(t, err)
	_, err = logger.Record("primary", 2, "created", nil, nil, nil)
	require.NoError(t, err)

	history, err := logger.History("primary", 1, 0, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "primary", history[0].CaseType)
	assert.EqualValues(t, 1, history[0].CaseID)
}
