package handlers

import (
	"errors"
	"net/http"

	"courtflow/internal/access"
	"courtflow/internal/database"
	"courtflow/internal/models"

	"github.com/gin-gonic/gin"
)

func GetUserPermissions(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	grid, err := access.NewEvaluator(database.DB).ListPermissions(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load permissions"})
		return
	}
	c.JSON(http.StatusOK, grid)
}

// ReplaceUserPermissions upserts the modules mentioned in the body and leaves
// the rest of the grid alone.
func ReplaceUserPermissions(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	var grid map[string]access.FlagsInput
	if err := c.ShouldBindJSON(&grid); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed permission grid"})
		return
	}

	ev := access.NewEvaluator(database.DB)
	if err := ev.ReplacePermissions(userID, grid); err != nil {
		var vErr *access.ValidationError
		status := http.StatusInternalServerError
		if errors.As(err, &vErr) {
			status = http.StatusBadRequest
		}
		// module entries are independent; some may have been applied
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	updated, err := ev.ListPermissions(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load permissions"})
		return
	}
	c.JSON(http.StatusOK, updated)
}
