package router

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/tripmarket/config"
	_ "github.com/d60-Lab/tripmarket/docs"
	"github.com/d60-Lab/tripmarket/internal/api/handler"
	"github.com/d60-Lab/tripmarket/internal/middleware"
)

// New 装配路由与中间件
func New(cfg *config.Config, h *handler.Handler) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.Recovery())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	if cfg.Trace.Enabled {
		r.Use(otelgin.Middleware("tripmarket"))
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))

	// 需要身份的接口
	authed := api.Group("")
	authed.Use(middleware.RequireAuth(cfg.JWT.Secret))
	{
		authed.GET("/conversations", h.ListConversations)
		authed.GET("/conversations/:public_id", h.GetConversation)
		authed.GET("/unread/summary", h.UnreadSummary)
		authed.POST("/notifications/ack", h.AckNotifications)
	}

	// 身份可选：匿名返回零计数
	optional := api.Group("")
	optional.Use(middleware.OptionalAuth(cfg.JWT.Secret))
	{
		optional.GET("/unread/messages", h.UnreadMessages)
		optional.GET("/unread/notifications", h.UnreadNotifications)
	}

	// 公开实体加载
	api.GET("/listings/:public_id", h.GetListing)
	api.GET("/profiles/:public_id", h.GetProfile)

	return r
}
