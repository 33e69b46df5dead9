package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/tripmarket/internal/cache"
	"github.com/d60-Lab/tripmarket/internal/middleware"
	"github.com/d60-Lab/tripmarket/pkg/response"
)

// UnreadMessages 未读消息角标
// @Summary 未读消息数（匿名返回 0）
// @Tags 未读
// @Produce json
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/unread/messages [get]
func (h *Handler) UnreadMessages(c *gin.Context) {
	userID := middleware.CurrentUser(c)
	if userID == "" {
		response.Success(c, gin.H{"unread_count": 0})
		return
	}
	n, err := h.badges.Get(c.Request.Context(), cache.CategoryMessages, userID, func(ctx context.Context) (int, error) {
		return h.unreadService.CountUnreadMessages(ctx, userID)
	})
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"unread_count": n})
}

// UnreadNotifications 未读通知角标
// @Summary 未读通知数（匿名返回 0）
// @Tags 未读
// @Produce json
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/unread/notifications [get]
func (h *Handler) UnreadNotifications(c *gin.Context) {
	userID := middleware.CurrentUser(c)
	if userID == "" {
		response.Success(c, gin.H{"unread_notifications": 0})
		return
	}
	n, err := h.badges.Get(c.Request.Context(), cache.CategoryNotifications, userID, func(ctx context.Context) (int, error) {
		return h.unreadService.CountUnreadNotifications(ctx, userID)
	})
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"unread_notifications": n})
}

// UnreadSummary 运营面板：按预订请求分组的未读明细，附各请求当前状态
// @Summary 未读汇总
// @Tags 未读
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 401 {object} response.Response
// @Router /api/v1/unread/summary [get]
func (h *Handler) UnreadSummary(c *gin.Context) {
	userID := middleware.CurrentUser(c)
	ctx := c.Request.Context()
	summary, err := h.unreadService.Summarize(ctx, userID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	ids := make([]string, 0, len(summary.MessageUnreadByRequest)+len(summary.StatusUnreadByRequest))
	for id := range summary.MessageUnreadByRequest {
		ids = append(ids, id)
	}
	for id := range summary.StatusUnreadByRequest {
		if _, dup := summary.MessageUnreadByRequest[id]; !dup {
			ids = append(ids, id)
		}
	}
	statuses, err := h.reqRepo.StatusesByIDs(ctx, ids)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{
		"total_unread":              summary.TotalUnread,
		"message_unread_by_request": summary.MessageUnreadByRequest,
		"status_unread_by_request":  summary.StatusUnreadByRequest,
		"request_status":            statuses,
	})
}

type ackRequest struct {
	Op             string `json:"op" binding:"required,oneof=markRead markAllRead"`
	NotificationID string `json:"notification_id"`
}

// AckNotifications 通知置已读
// @Summary 通知置已读（markRead / markAllRead，幂等）
// @Tags 未读
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ackRequest true "操作"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/notifications/ack [post]
func (h *Handler) AckNotifications(c *gin.Context) {
	var req ackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	userID := middleware.CurrentUser(c)
	ctx := c.Request.Context()
	switch req.Op {
	case "markRead":
		if req.NotificationID == "" {
			response.BadRequest(c, "notification_id is required for markRead")
			return
		}
		if err := h.unreadService.MarkRead(ctx, userID, req.NotificationID); err != nil {
			response.InternalError(c, err)
			return
		}
	case "markAllRead":
		if err := h.unreadService.MarkAllRead(ctx, userID); err != nil {
			response.InternalError(c, err)
			return
		}
	}
	response.Success(c, gin.H{"acknowledged": true})
}
