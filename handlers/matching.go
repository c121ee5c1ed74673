package handlers

import (
	"errors"
	"net/http"

	"nyayamitra/services/matching"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MatchingHandler serves the aid-request workflow endpoints.
type MatchingHandler struct {
	MatchingService matching.MatchingService
}

// workflowStatus maps a typed workflow error onto an HTTP status.
func workflowStatus(err error) (int, bool) {
	var wfErr *matching.WorkflowError
	if !errors.As(err, &wfErr) {
		return 0, false
	}
	switch wfErr {
	case matching.ErrCaseNotFound, matching.ErrRequestNotFound:
		return http.StatusNotFound, true
	case matching.ErrNotCaseOwner, matching.ErrNotRequestProvider:
		return http.StatusForbidden, true
	case matching.ErrAlreadyRequested, matching.ErrRequestNotPending:
		return http.StatusConflict, true
	case matching.ErrNoFamilyEmail:
		return http.StatusUnprocessableEntity, true
	case matching.ErrNotificationFailed:
		return http.StatusBadGateway, true
	}
	return http.StatusInternalServerError, true
}

func respondWorkflowError(c *gin.Context, err error) {
	if status, ok := workflowStatus(err); ok {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	getLogger(c).Error("Matching workflow failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong, please try again"})
}

type requestAidRequest struct {
	CaseNumber    int    `json:"caseNumber" binding:"required"`
	ProviderEmail string `json:"providerEmail" binding:"required"`
}

// RequestAidHandler handles POST /api/matching/requests.
func (h *MatchingHandler) RequestAidHandler(c *gin.Context) {
	prisonerEmail := c.GetString("userEmail")

	var req requestAidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	created, err := h.MatchingService.RequestAid(prisonerEmail, req.CaseNumber, req.ProviderEmail)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// AcceptRequestHandler handles POST /api/matching/requests/:id/accept.
func (h *MatchingHandler) AcceptRequestHandler(c *gin.Context) {
	providerEmail := c.GetString("userEmail")
	requestID := c.Param("id")

	if err := h.MatchingService.AcceptRequest(providerEmail, requestID); err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Request accepted"})
}

// DeclineRequestHandler handles POST /api/matching/requests/:id/decline.
func (h *MatchingHandler) DeclineRequestHandler(c *gin.Context) {
	providerEmail := c.GetString("userEmail")
	requestID := c.Param("id")

	if err := h.MatchingService.DeclineRequest(providerEmail, requestID); err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Request declined"})
}

// ProviderRequestsHandler handles GET /api/matching/requests.
func (h *MatchingHandler) ProviderRequestsHandler(c *gin.Context) {
	providerEmail := c.GetString("userEmail")

	requests, err := h.MatchingService.ListRequestsForProvider(providerEmail)
	if err != nil {
		getLogger(c).Error("Failed to list provider requests",
			zap.String("provider", providerEmail), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list requests"})
		return
	}
	c.JSON(http.StatusOK, requests)
}
