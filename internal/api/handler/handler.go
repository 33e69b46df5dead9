package handler

import (
	"github.com/d60-Lab/tripmarket/internal/cache"
	"github.com/d60-Lab/tripmarket/internal/repository"
	"github.com/d60-Lab/tripmarket/internal/service"
)

// Handler 聚合全部 HTTP 处理器依赖
type Handler struct {
	convService   service.ConversationService
	unreadService service.UnreadService
	listingRepo   repository.ListingRepository
	userRepo      repository.UserRepository
	reqRepo       repository.EventRequestRepository
	badges        *cache.BadgeCache
}

func New(convService service.ConversationService, unreadService service.UnreadService,
	listingRepo repository.ListingRepository, userRepo repository.UserRepository,
	reqRepo repository.EventRequestRepository, badges *cache.BadgeCache) *Handler {
	return &Handler{
		convService:   convService,
		unreadService: unreadService,
		listingRepo:   listingRepo,
		userRepo:      userRepo,
		reqRepo:       reqRepo,
		badges:        badges,
	}
}
