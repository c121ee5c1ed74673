package handlers

import (
	"net/http"
	"strconv"
	"time"

	casesService "nyayamitra/services/cases"
	"nyayamitra/services/matching"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CaseHandler serves case submission, listing and judge endpoints.
type CaseHandler struct {
	CaseService     casesService.CaseService
	MatchingService matching.MatchingService
}

func caseNumberParam(c *gin.Context) (int, bool) {
	n, err := strconv.Atoi(c.Param("number"))
	if err != nil || n <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid case number"})
		return 0, false
	}
	return n, true
}

// SubmitCaseHandler handles POST /api/cases.
func (h *CaseHandler) SubmitCaseHandler(c *gin.Context) {
	logger := getLogger(c)
	prisonerEmail := c.GetString("userEmail")

	var input casesService.SubmitCaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	cs, err := h.CaseService.SubmitCase(prisonerEmail, input)
	if err != nil {
		logger.Error("Case submission failed", zap.String("prisoner", prisonerEmail), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, cs)
}

// MyCasesHandler handles GET /api/cases/mine. Cases come back most severe
// first, each with its status badge so the client renders without parsing.
func (h *CaseHandler) MyCasesHandler(c *gin.Context) {
	prisonerEmail := c.GetString("userEmail")

	cases, err := h.MatchingService.ListCasesForPrisoner(prisonerEmail)
	if err != nil {
		getLogger(c).Error("Failed to list cases",
			zap.String("prisoner", prisonerEmail), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list cases"})
		return
	}

	items := make([]gin.H, 0, len(cases))
	for _, cs := range cases {
		items = append(items, gin.H{
			"case":     cs,
			"legalAid": cs.LegalAid(),
			"badge":    matching.DeriveStatusBadge(cs.LegalAid()),
		})
	}
	c.JSON(http.StatusOK, items)
}

// GetCaseHandler handles GET /api/cases/:number.
func (h *CaseHandler) GetCaseHandler(c *gin.Context) {
	number, ok := caseNumberParam(c)
	if !ok {
		return
	}
	cs, err := h.CaseService.GetCase(number)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"case":     cs,
		"legalAid": cs.LegalAid(),
		"badge":    matching.DeriveStatusBadge(cs.LegalAid()),
	})
}

// JudgeCasesHandler handles GET /api/cases/assigned.
func (h *CaseHandler) JudgeCasesHandler(c *gin.Context) {
	judgeEmail := c.GetString("userEmail")

	cases, err := h.CaseService.ListForJudge(judgeEmail)
	if err != nil {
		getLogger(c).Error("Failed to list judge cases",
			zap.String("judge", judgeEmail), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list cases"})
		return
	}
	c.JSON(http.StatusOK, cases)
}

type trialDateRequest struct {
	TrialDate string `json:"trialDate" binding:"required"`
}

// SetTrialDateHandler handles PUT /api/cases/:number/trial-date.
func (h *CaseHandler) SetTrialDateHandler(c *gin.Context) {
	judgeEmail := c.GetString("userEmail")
	number, ok := caseNumberParam(c)
	if !ok {
		return
	}

	var req trialDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	date, err := time.Parse("2006-01-02", req.TrialDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "trialDate must be YYYY-MM-DD"})
		return
	}

	if err := h.CaseService.SetTrialDate(judgeEmail, number, date); err != nil {
		getLogger(c).Error("Failed to set trial date",
			zap.Int("caseNumber", number), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Trial date scheduled"})
}

// CalendarHandler handles GET /api/cases/calendar.
func (h *CaseHandler) CalendarHandler(c *gin.Context) {
	email := c.GetString("userEmail")
	role := c.GetString("userRole")

	cases, err := h.CaseService.Calendar(email, role)
	if err != nil {
		getLogger(c).Error("Failed to build calendar", zap.String("email", email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build calendar"})
		return
	}
	c.JSON(http.StatusOK, cases)
}
