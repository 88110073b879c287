package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"courtflow/internal/cases"
	"courtflow/internal/database"
	"courtflow/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type caseForm struct {
	CaseNumber string            `json:"case_number" binding:"required"`
	CaseYear   int               `json:"case_year"`
	Subject    string            `json:"subject"`
	Plaintiff  string            `json:"plaintiff"`
	Defendant  string            `json:"defendant"`
	CourtName  string            `json:"court_name"`
	JudgeName  string            `json:"judge_name"`
	Status     models.CaseStatus `json:"status"`
	Notes      string            `json:"notes"`
}

func (f *caseForm) valid() bool {
	switch f.Status {
	case "", models.CaseOpen, models.CaseInReview, models.CaseClosed:
		return true
	}
	return false
}

func (f *caseForm) details() models.CaseDetails {
	status := f.Status
	if status == "" {
		status = models.CaseOpen
	}
	return models.CaseDetails{
		CaseNumber: f.CaseNumber,
		CaseYear:   f.CaseYear,
		Subject:    f.Subject,
		Plaintiff:  f.Plaintiff,
		Defendant:  f.Defendant,
		CourtName:  f.CourtName,
		JudgeName:  f.JudgeName,
		Status:     status,
		Notes:      f.Notes,
	}
}

// List cases of one tier, with optional status / year filters.
func ListCases(c *gin.Context) {
	tier, ok := pathTier(c)
	if !ok {
		return
	}

	dbq := database.DB.Order("created_at desc")
	if s := c.Query("status"); s != "" {
		dbq = dbq.Where("status = ?", s)
	}
	if y := c.Query("year"); y != "" {
		if yr, err := strconv.Atoi(y); err == nil && yr > 0 {
			dbq = dbq.Where("case_year = ?", yr)
		}
	}

	switch tier {
	case cases.TierPrimary:
		var list []models.PrimaryCase
		if err := dbq.Find(&list).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cases"})
			return
		}
		c.JSON(http.StatusOK, list)
	case cases.TierAppeal:
		var list []models.AppealCase
		if err := dbq.Find(&list).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cases"})
			return
		}
		c.JSON(http.StatusOK, list)
	case cases.TierSupreme:
		var list []models.SupremeCase
		if err := dbq.Find(&list).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cases"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func CreateCase(c *gin.Context) {
	tier, ok := pathTier(c)
	if !ok {
		return
	}

	var form caseForm
	if err := c.ShouldBindJSON(&form); err != nil || !form.valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed case payload"})
		return
	}

	var created any
	var id uint
	switch tier {
	case cases.TierPrimary:
		cc := models.PrimaryCase{CaseDetails: form.details()}
		if err := database.DB.Create(&cc).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create case"})
			return
		}
		created, id = cc, cc.ID
	case cases.TierAppeal:
		cc := models.AppealCase{CaseDetails: form.details()}
		if err := database.DB.Create(&cc).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create case"})
			return
		}
		created, id = cc, cc.ID
	case cases.TierSupreme:
		cc := models.SupremeCase{CaseDetails: form.details()}
		if err := database.DB.Create(&cc).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create case"})
			return
		}
		created, id = cc, cc.ID
	}

	if !recordCaseAudit(c, string(tier), id, "created", nil, created) {
		return
	}
	c.JSON(http.StatusCreated, created)
}

func GetCase(c *gin.Context) {
	tier, ok := pathTier(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	entity := tier.Model()
	if err := database.DB.First(entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "case not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load case"})
		return
	}
	c.JSON(http.StatusOK, entity)
}

func UpdateCase(c *gin.Context) {
	tier, ok := pathTier(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var form caseForm
	if err := c.ShouldBindJSON(&form); err != nil || !form.valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed case payload"})
		return
	}

	switch tier {
	case cases.TierPrimary:
		var cc models.PrimaryCase
		if err := database.DB.First(&cc, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "case not found"})
			return
		}
		old := cc
		cc.CaseDetails = form.details()
		if err := database.DB.Save(&cc).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update case"})
			return
		}
		if !recordCaseAudit(c, string(tier), cc.ID, "updated", old, cc) {
			return
		}
		c.JSON(http.StatusOK, cc)
	case cases.TierAppeal:
		var cc models.AppealCase
		if err := database.DB.First(&cc, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "case not found"})
			return
		}
		old := cc
		cc.CaseDetails = form.details()
		if err := database.DB.Save(&cc).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update case"})
			return
		}
		if !recordCaseAudit(c, string(tier), cc.ID, "updated", old, cc) {
			return
		}
		c.JSON(http.StatusOK, cc)
	case cases.TierSupreme:
		var cc models.SupremeCase
		if err := database.DB.First(&cc, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "case not found"})
			return
		}
		old := cc
		cc.CaseDetails = form.details()
		if err := database.DB.Save(&cc).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update case"})
			return
		}
		if !recordCaseAudit(c, string(tier), cc.ID, "updated", old, cc) {
			return
		}
		c.JSON(http.StatusOK, cc)
	}
}

func DeleteCase(c *gin.Context) {
	tier, ok := pathTier(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	entity := tier.Model()
	if err := database.DB.First(entity, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "case not found"})
		return
	}

	if err := database.DB.Delete(entity).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete case"})
		return
	}

	if !recordCaseAudit(c, string(tier), id, "deleted", entity, nil) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// EscalateCase creates the continuation record in the next tier, copies the
// source case's documents onto it and records the escalation. The direction is
// fixed by the source tier; the registry check still runs so a bad direction
// can never reach the propagator.
func EscalateCase(c *gin.Context) {
	tier, ok := pathTier(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	target := tier.Next()
	if target == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "a supreme case cannot be escalated further"})
		return
	}
	if err := cases.ValidateEscalation(tier, target); err != nil {
		var orderErr *cases.TierOrderError
		if errors.As(err, &orderErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": orderErr.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var created any
	var newID uint
	switch tier {
	case cases.TierPrimary:
		var src models.PrimaryCase
		if err := database.DB.First(&src, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "case not found"})
			return
		}
		dst := models.AppealCase{CaseDetails: src.CaseDetails, PrimaryCaseID: &src.ID}
		dst.Status = models.CaseOpen
		if err := database.DB.Create(&dst).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create appeal case"})
			return
		}
		created, newID = dst, dst.ID
	case cases.TierAppeal:
		var src models.AppealCase
		if err := database.DB.First(&src, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "case not found"})
			return
		}
		dst := models.SupremeCase{CaseDetails: src.CaseDetails, AppealCaseID: &src.ID}
		dst.Status = models.CaseOpen
		if err := database.DB.Create(&dst).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create supreme case"})
			return
		}
		created, newID = dst, dst.ID
	}

	copied, err := cases.NewPropagator(database.DB).Propagate(tier, id, target, newID)
	if err != nil {
		// the new case exists; documents can be re-propagated by retrying
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to copy documents: " + err.Error()})
		return
	}

	if !recordCaseAudit(c, string(tier), id, "escalated", nil, gin.H{
		"target_type":      target,
		"target_id":        newID,
		"documents_copied": copied,
	}) {
		return
	}
	if !recordCaseAudit(c, string(target), newID, "created", nil, created) {
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"case":             created,
		"documents_copied": copied,
	})
}
