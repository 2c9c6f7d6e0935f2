package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Cavista-Hackathon-2025/carepulse/services"
)

type SummaryController struct {
	svc *services.SummaryService
}

func NewSummaryController(svc *services.SummaryService) *SummaryController {
	return &SummaryController{svc: svc}
}

func (s *SummaryController) GenerateDaily(c *gin.Context) {
	summary, err := s.svc.GenerateDailySummary(c.Request.Context(), c.GetUint("userID"))
	if err != nil {
		respondSummaryError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "summary": summary})
}

func (s *SummaryController) GenerateWeekly(c *gin.Context) {
	summary, err := s.svc.GenerateWeeklySummary(c.Request.Context(), c.GetUint("userID"))
	if err != nil {
		respondSummaryError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "summary": summary})
}

func (s *SummaryController) List(c *gin.Context) {
	summaries, err := s.svc.ListSummaries(c.Request.Context(), c.GetUint("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load summaries"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "summaries": summaries})
}

func respondSummaryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoMeals):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "error": "No meals logged for this period"})
	case errors.Is(err, services.ErrMalformedSummary):
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Summary generation returned an unusable response"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Failed to generate summary"})
	}
}
