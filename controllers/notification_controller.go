package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Cavista-Hackathon-2025/carepulse/services"
)

type NotificationController struct {
	svc  *services.NotificationService
	push *services.PushService
}

func NewNotificationController(svc *services.NotificationService, push *services.PushService) *NotificationController {
	return &NotificationController{svc: svc, push: push}
}

func (n *NotificationController) List(c *gin.Context) {
	notifications, err := n.svc.List(c.Request.Context(), c.GetUint("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "notifications": notifications})
}

func (n *NotificationController) RegisterDevice(c *gin.Context) {
	if n.push == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "Push notifications not configured"})
		return
	}

	var req services.RegisterDeviceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	device, err := n.push.RegisterDevice(c.Request.Context(), c.GetUint("userID"), req.Platform, req.Token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Failed to register device"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "device": device})
}
