package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Cavista-Hackathon-2025/carepulse/utils"
)

type UploadController struct {
	uploader *utils.S3Uploader
}

func NewUploadController(uploader *utils.S3Uploader) *UploadController {
	return &UploadController{uploader: uploader}
}

// Upload accepts a multipart file field named "file".
func (u *UploadController) Upload(c *gin.Context) {
	if u.uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "Uploads not configured"})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing file"})
		return
	}
	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Unreadable file"})
		return
	}
	defer file.Close()

	url, err := u.uploader.Upload(c.Request.Context(), header.Filename,
		header.Header.Get("Content-Type"), file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Upload failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "url": url})
}

type Base64UploadInput struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// UploadBase64 accepts a data URI payload, for clients without multipart
// support.
func (u *UploadController) UploadBase64(c *gin.Context) {
	if u.uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "Uploads not configured"})
		return
	}

	var input Base64UploadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	url, err := u.uploader.UploadBase64Image(c.Request.Context(), input.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Upload failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "url": url})
}
