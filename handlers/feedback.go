package handlers

import (
	"net/http"
	"time"

	feedbackService "nyayamitra/services/feedback"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FeedbackHandler serves the court-feedback endpoints.
type FeedbackHandler struct {
	FeedbackService feedbackService.FeedbackService
}

type postFeedbackRequest struct {
	CaseNumber  int    `json:"caseNumber" binding:"required"`
	Feedback    string `json:"feedback" binding:"required"`
	HearingDate string `json:"hearingDate" binding:"required"`
}

// PostFeedbackHandler handles POST /api/feedback.
func (h *FeedbackHandler) PostFeedbackHandler(c *gin.Context) {
	judgeEmail := c.GetString("userEmail")

	var req postFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	hearingDate, err := time.Parse("2006-01-02", req.HearingDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "hearingDate must be YYYY-MM-DD"})
		return
	}

	fb, err := h.FeedbackService.PostFeedback(judgeEmail, req.CaseNumber, req.Feedback, hearingDate)
	if err != nil {
		getLogger(c).Error("Failed to post feedback",
			zap.Int("caseNumber", req.CaseNumber), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, fb)
}

// TimelineHandler handles GET /api/feedback/:number.
func (h *FeedbackHandler) TimelineHandler(c *gin.Context) {
	number, ok := caseNumberParam(c)
	if !ok {
		return
	}
	entries, err := h.FeedbackService.Timeline(number)
	if err != nil {
		getLogger(c).Error("Failed to fetch feedback timeline",
			zap.Int("caseNumber", number), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch feedback"})
		return
	}
	c.JSON(http.StatusOK, entries)
}
