package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/app/services"
	"github.com/yigit/placementhub/internal/middleware"
)

// NotificationController handles the in-app notification feed
type NotificationController struct {
	notificationService *services.NotificationService
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService *services.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// List returns the caller's notifications, newest first
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param unread query bool false "Only unread notifications"
// @Success 200 {object} dto.APIResponse{data=[]models.Notification} "Notifications"
// @Router /notifications [get]
func (c *NotificationController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	unreadOnly := ctx.Query("unread") == "true"

	notifications, err := c.notificationService.List(ctx, userID, unreadOnly)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(notifications))
}

// UnreadCount returns how many notifications are unread
// @Summary Get unread notification count
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UnreadCountResponse} "Unread count"
// @Router /notifications/unread-count [get]
func (c *NotificationController) UnreadCount(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	count, err := c.notificationService.UnreadCount(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.UnreadCountResponse{Count: count}))
}

// MarkRead marks one of the caller's notifications as read
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} dto.APIResponse "Marked as read"
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Router /notifications/{id}/read [put]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	notificationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.notificationService.MarkRead(ctx, notificationID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Notification marked as read"))
}

// MarkAllRead marks every unread notification of the caller as read
// @Summary Mark all notifications as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Marked as read"
// @Router /notifications/read-all [put]
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	marked, err := c.notificationService.MarkAllRead(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"marked": marked}))
}
