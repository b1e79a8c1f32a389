// File: internal/notification/handler.go
package notification

import (
	"roadsuite_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for notification operations.
// All routes in this group require authentication.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	notificationGroup := router.Group("/notifications")
	notificationGroup.Use(authMW)
	{
		notificationGroup.GET("", h.getNotifications)
		notificationGroup.POST("/mark-all-read", h.markAllRead)
	}
}

func (h *Handler) getNotifications(c *gin.Context) {
	caller := common.GetCallerFromContext(c)
	if !caller.IsAuthenticated() {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	notifications, unread, err := h.service.GetRecentForUser(c.Request.Context(), caller.UserID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	common.RespondOK(c, "Notifications retrieved successfully.", gin.H{
		"notifications": notifications,
		"unread_count":  unread,
	})
}

func (h *Handler) markAllRead(c *gin.Context) {
	caller := common.GetCallerFromContext(c)
	if !caller.IsAuthenticated() {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	count, err := h.service.MarkAllRead(c.Request.Context(), caller.UserID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "All notifications marked as read.", gin.H{"marked_read": count})
}
