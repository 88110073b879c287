package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"courtflow/internal/database"
	"courtflow/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UploadDir is where uploaded files land; set from config by the router.
var UploadDir = "./uploads"

func ListCaseDocuments(c *gin.Context) {
	tier, ok := pathTier(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var docs []models.Document
	err := database.DB.
		Where("documentable_type = ? AND documentable_id = ?", tier, id).
		Order("created_at desc").
		Find(&docs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load documents"})
		return
	}
	c.JSON(http.StatusOK, docs)
}

func UploadDocument(c *gin.Context) {
	tier, ok := pathTier(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	// a document always has an owning case
	if err := database.DB.First(tier.Model(), id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "case not found"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	name := c.PostForm("name")
	if name == "" {
		name = fileHeader.Filename
	}

	if err := os.MkdirAll(UploadDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to prepare upload dir"})
		return
	}

	stored := uuid.New().String() + filepath.Ext(fileHeader.Filename)
	path := filepath.Join(UploadDir, stored)
	if err := c.SaveUploadedFile(fileHeader, path); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}

	var uploadedBy uint
	if u, ok := currentUser(c); ok {
		uploadedBy = u.ID
	}

	doc := models.Document{
		Name:         name,
		OriginalName: fileHeader.Filename,
		FilePath:     path,
		FileSize:     fileHeader.Size,
		MimeType:     fileHeader.Header.Get("Content-Type"),
		Description:  c.PostForm("description"),
		UploadedByID: uploadedBy,

		DocumentableType: string(tier),
		DocumentableID:   id,
	}
	if err := database.DB.Create(&doc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save document"})
		return
	}

	if !recordCaseAudit(c, string(tier), id, "document_uploaded", nil, doc) {
		return
	}
	c.JSON(http.StatusCreated, doc)
}

func DownloadDocument(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var doc models.Document
	if err := database.DB.First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load document"})
		return
	}

	c.FileAttachment(doc.FilePath, doc.OriginalName)
}

// DeleteDocument removes the metadata row only. The stored file stays in
// place: rows created by escalation alias the same path, so file bytes must
// outlive any single row.
func DeleteDocument(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var doc models.Document
	if err := database.DB.First(&doc, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
		return
	}

	if err := database.DB.Delete(&doc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete document"})
		return
	}

	if !recordCaseAudit(c, doc.DocumentableType, doc.DocumentableID, "document_deleted", doc, nil) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
