package handlers

import (
	"log"
	"net/http"
	"strconv"

	"courtflow/internal/audit"
	"courtflow/internal/cases"
	"courtflow/internal/database"
	"courtflow/internal/models"

	"github.com/gin-gonic/gin"
)

func currentUser(c *gin.Context) (models.User, bool) {
	uVal, ok := c.Get("CurrentUser")
	if !ok {
		return models.User{}, false
	}
	u, ok := uVal.(models.User)
	return u, ok
}

// actorID returns the current user's id for audit attribution, nil when the
// mutation was not triggered by an authenticated user.
func actorID(c *gin.Context) *uint {
	if u, ok := currentUser(c); ok {
		id := u.ID
		return &id
	}
	return nil
}

// pathTier parses the :type route parameter; writes a 400 on failure.
func pathTier(c *gin.Context) (cases.Tier, bool) {
	tier, err := cases.ParseTier(c.Param("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return tier, true
}

// pathID parses a numeric route parameter; writes a 400 on failure.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// recordCaseAudit appends a history entry for an already-applied mutation.
// A failed write does not undo the mutation; it is surfaced as a 500 so the
// caller knows the history is incomplete.
func recordCaseAudit(c *gin.Context, caseType string, caseID uint, action string, oldData, newData any) bool {
	logger := audit.NewLogger(database.DB)
	if _, err := logger.Record(caseType, caseID, action, oldData, newData, actorID(c)); err != nil {
		log.Printf("audit write failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record audit entry"})
		return false
	}
	return true
}
