package handlers

import (
	"net/http"

	resourceRepo "nyayamitra/database/repository/resource"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ResourceHandler serves the IPC reference endpoints.
type ResourceHandler struct {
	ResourceRepo resourceRepo.ResourceRepository
}

// ListSectionsHandler handles GET /api/resources/ipc.
func (h *ResourceHandler) ListSectionsHandler(c *gin.Context) {
	sections, err := h.ResourceRepo.GetAll()
	if err != nil {
		getLogger(c).Error("Failed to list IPC sections", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list IPC sections"})
		return
	}
	c.JSON(http.StatusOK, sections)
}

// GetSectionHandler handles GET /api/resources/ipc/:section.
func (h *ResourceHandler) GetSectionHandler(c *gin.Context) {
	section := c.Param("section")
	s, err := h.ResourceRepo.GetBySection(section)
	if err != nil {
		getLogger(c).Error("Failed to fetch IPC section",
			zap.String("section", section), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch IPC section"})
		return
	}
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "IPC section not found"})
		return
	}
	c.JSON(http.StatusOK, s)
}
