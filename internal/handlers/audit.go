package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"courtflow/internal/audit"
	"courtflow/internal/database"

	"github.com/gin-gonic/gin"
)

type historyEntry struct {
	ID        uint            `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Action    string          `json:"action"`
	OldData   json.RawMessage `json:"old_data"`
	NewData   json.RawMessage `json:"new_data"`
	UserID    *uint           `json:"user_id"`
}

// CaseHistory returns a page of a case's audit trail, newest first.
func CaseHistory(c *gin.Context) {
	tier, ok := pathTier(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	limit := 50
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= 200 {
		limit = l
	}
	offset := 0
	if o, err := strconv.Atoi(c.Query("offset")); err == nil && o > 0 {
		offset = o
	}

	entries, err := audit.NewLogger(database.DB).History(string(tier), id, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}

	out := make([]historyEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, historyEntry{
			ID:        e.ID,
			CreatedAt: e.CreatedAt,
			Action:    e.Action,
			OldData:   json.RawMessage(e.OldData),
			NewData:   json.RawMessage(e.NewData),
			UserID:    e.UserID,
		})
	}
	c.JSON(http.StatusOK, out)
}
