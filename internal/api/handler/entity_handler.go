package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/d60-Lab/tripmarket/pkg/publicid"
	"github.com/d60-Lab/tripmarket/pkg/response"
)

// GetListing 按公开标识加载商品
// @Summary 商品详情（UUID 或短码）
// @Tags 实体
// @Param public_id path string true "公开标识"
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/listings/{public_id} [get]
func (h *Handler) GetListing(c *gin.Context) {
	pred := publicid.Classify(c.Param("public_id"))
	listing, err := h.listingRepo.FindByPredicate(c.Request.Context(), pred)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "listing not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, listing)
}

// GetProfile 按公开标识加载用户主页
// @Summary 用户主页（UUID 或短码）
// @Tags 实体
// @Param public_id path string true "公开标识"
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/profiles/{public_id} [get]
func (h *Handler) GetProfile(c *gin.Context) {
	pred := publicid.Classify(c.Param("public_id"))
	user, err := h.userRepo.FindByPredicate(c.Request.Context(), pred)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "profile not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, user)
}
