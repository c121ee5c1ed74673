package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	documentsService "nyayamitra/services/documents"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DocumentHandler serves the case-document endpoints.
type DocumentHandler struct {
	DocumentService documentsService.DocumentService
}

// UploadHandler handles POST /api/documents. Expects multipart form fields
// "caseNumber" and "file".
func (h *DocumentHandler) UploadHandler(c *gin.Context) {
	logger := getLogger(c)
	uploaderEmail := c.GetString("userEmail")

	caseNumber, err := strconv.Atoi(c.PostForm("caseNumber"))
	if err != nil || caseNumber <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid case number"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file"})
		return
	}

	tmpPath := filepath.Join(os.TempDir(), filepath.Base(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		logger.Error("Failed to stage upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to stage upload"})
		return
	}
	defer os.Remove(tmpPath)

	doc, err := h.DocumentService.Upload(c.Request.Context(), uploaderEmail, caseNumber, tmpPath, fileHeader.Filename)
	if err != nil {
		logger.Error("Document upload failed",
			zap.Int("caseNumber", caseNumber), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// ListHandler handles GET /api/documents/case/:number.
func (h *DocumentHandler) ListHandler(c *gin.Context) {
	number, ok := caseNumberParam(c)
	if !ok {
		return
	}
	docs, err := h.DocumentService.ListForCase(number)
	if err != nil {
		getLogger(c).Error("Failed to list documents",
			zap.Int("caseNumber", number), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list documents"})
		return
	}
	c.JSON(http.StatusOK, docs)
}

// DownloadHandler handles GET /api/documents/:id/url.
func (h *DocumentHandler) DownloadHandler(c *gin.Context) {
	documentID := c.Param("id")
	url, err := h.DocumentService.DownloadURL(c.Request.Context(), documentID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// DeleteHandler handles DELETE /api/documents/:id.
func (h *DocumentHandler) DeleteHandler(c *gin.Context) {
	uploaderEmail := c.GetString("userEmail")
	documentID := c.Param("id")

	if err := h.DocumentService.Remove(c.Request.Context(), uploaderEmail, documentID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Document deleted"})
}
