package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/tripmarket/internal/middleware"
	"github.com/d60-Lab/tripmarket/internal/service"
	"github.com/d60-Lab/tripmarket/pkg/response"
)

// ListConversations 刷新接口：当前用户全部会话
// @Summary 会话列表（轮询刷新端点）
// @Tags 会话
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 401 {object} response.Response
// @Router /api/v1/conversations [get]
func (h *Handler) ListConversations(c *gin.Context) {
	userID := middleware.CurrentUser(c)
	views, err := h.convService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"conversations": views})
}

// GetConversation 按公开标识加载会话（UUID 或短码）
// @Summary 会话详情
// @Tags 会话
// @Param public_id path string true "公开标识"
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/conversations/{public_id} [get]
func (h *Handler) GetConversation(c *gin.Context) {
	userID := middleware.CurrentUser(c)
	conv, err := h.convService.GetByPublicID(c.Request.Context(), userID, c.Param("public_id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConversationNotFound), errors.Is(err, service.ErrNotParticipant):
			// 非参与者与不存在同样返回 404，不泄露会话存在性
			response.NotFound(c, "conversation not found")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Success(c, conv)
}
