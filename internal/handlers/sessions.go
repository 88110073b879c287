package handlers

import (
	"net/http"
	"time"

	"courtflow/internal/database"
	"courtflow/internal/models"

	"github.com/gin-gonic/gin"
)

type sessionForm struct {
	SessionDate time.Time `json:"session_date" binding:"required"`
	Room        string    `json:"room"`
	Notes       string    `json:"notes"`
	Result      string    `json:"result"`
}

func ListCaseSessions(c *gin.Context) {
	tier, ok := pathTier(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var list []models.CourtSession
	err := database.DB.
		Where("case_type = ? AND case_id = ?", tier, id).
		Order("session_date asc").
		Find(&list).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load sessions"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func CreateCaseSession(c *gin.Context) {
	tier, ok := pathTier(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := database.DB.First(tier.Model(), id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "case not found"})
		return
	}

	var form sessionForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_date is required"})
		return
	}

	sess := models.CourtSession{
		CaseType:    string(tier),
		CaseID:      id,
		SessionDate: form.SessionDate,
		Room:        form.Room,
		Notes:       form.Notes,
		Result:      form.Result,
	}
	if err := database.DB.Create(&sess).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	if !recordCaseAudit(c, string(tier), id, "session_scheduled", nil, sess) {
		return
	}
	c.JSON(http.StatusCreated, sess)
}

func UpdateCourtSession(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var sess models.CourtSession
	if err := database.DB.First(&sess, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	var form sessionForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_date is required"})
		return
	}

	old := sess
	sess.SessionDate = form.SessionDate
	sess.Room = form.Room
	sess.Notes = form.Notes
	sess.Result = form.Result
	if err := database.DB.Save(&sess).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update session"})
		return
	}

	if !recordCaseAudit(c, sess.CaseType, sess.CaseID, "session_updated", old, sess) {
		return
	}
	c.JSON(http.StatusOK, sess)
}

func DeleteCourtSession(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var sess models.CourtSession
	if err := database.DB.First(&sess, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	if err := database.DB.Delete(&sess).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete session"})
		return
	}

	if !recordCaseAudit(c, sess.CaseType, sess.CaseID, "session_cancelled", sess, nil) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
