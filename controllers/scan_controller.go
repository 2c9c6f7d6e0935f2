package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Cavista-Hackathon-2025/carepulse/services"
)

type ScanController struct {
	svc *services.ScanService
}

func NewScanController(svc *services.ScanService) *ScanController {
	return &ScanController{svc: svc}
}

type FoodScanInput struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
	MimeType    string `json:"mime_type"`
	ImageURL    string `json:"image_url"`
}

func (s *ScanController) ScanFood(c *gin.Context) {
	var input FoodScanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if input.MimeType == "" {
		input.MimeType = "image/jpeg"
	}

	scan, err := s.svc.ScanFoodImage(c.Request.Context(), c.GetUint("userID"),
		input.ImageBase64, input.MimeType, input.ImageURL)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Failed to analyze food image"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "scan": scan})
}

type LabelScanInput struct {
	LabelText string `json:"label_text" binding:"required"`
}

func (s *ScanController) ScanLabel(c *gin.Context) {
	var input LabelScanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	result, err := s.svc.ScanFoodLabel(c.Request.Context(), c.GetUint("userID"), input.LabelText)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Failed to scan food label"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}

type ReportScanInput struct {
	ReportText string `json:"report_text" binding:"required"`
}

func (s *ScanController) ScanReport(c *gin.Context) {
	var input ReportScanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	result, err := s.svc.ScanHealthReport(c.Request.Context(), c.GetUint("userID"), input.ReportText)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Failed to analyze health report"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}

func (s *ScanController) History(c *gin.Context) {
	scans, err := s.svc.ScanHistory(c.Request.Context(), c.GetUint("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load scan history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "scans": scans})
}
