package service

import (
	"context"
	"fmt"

	"github.com/d60-Lab/tripmarket/internal/model"
	"github.com/d60-Lab/tripmarket/internal/repository"
)

// UnreadSummary 按通知类别与关联预订请求分组的未读统计
// 不变式：TotalUnread == 两个 map 计数之和；map 中不存在 0 值条目
type UnreadSummary struct {
	TotalUnread            int            `json:"total_unread"`
	MessageUnreadByRequest map[string]int `json:"message_unread_by_request"`
	StatusUnreadByRequest  map[string]int `json:"status_unread_by_request"`
}

// UnreadService 未读聚合服务
type UnreadService interface {
	// Summarize 扫描用户未读通知并按 kind/request_id 聚合（只读）
	Summarize(ctx context.Context, userID string) (*UnreadSummary, error)
	// CountUnreadMessages 统计用户全部会话中对端发来的未读消息数
	CountUnreadMessages(ctx context.Context, userID string) (int, error)
	// CountUnreadNotifications 未读通知总数（不过滤 kind，供角标展示）
	CountUnreadNotifications(ctx context.Context, userID string) (int, error)
	// MarkRead 单条通知置已读（幂等）
	MarkRead(ctx context.Context, userID, notificationID string) error
	// MarkAllRead 全部通知置已读（幂等）
	MarkAllRead(ctx context.Context, userID string) error
}

type unreadService struct {
	notifRepo   repository.NotificationRepository
	convRepo    repository.ConversationRepository
	invalidator *BadgeInvalidator
}

func NewUnreadService(notifRepo repository.NotificationRepository, convRepo repository.ConversationRepository, invalidator *BadgeInvalidator) UnreadService {
	return &unreadService{notifRepo: notifRepo, convRepo: convRepo, invalidator: invalidator}
}

func (s *unreadService) Summarize(ctx context.Context, userID string) (*UnreadSummary, error) {
	notifs, err := s.notifRepo.ListUnread(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list unread notifications: %w", err)
	}
	summary := &UnreadSummary{
		MessageUnreadByRequest: make(map[string]int),
		StatusUnreadByRequest:  make(map[string]int),
	}
	for _, n := range notifs {
		p, err := n.ParsePayload()
		if err != nil {
			// 单条损坏记录跳过，不阻断其余统计
			continue
		}
		if p.RequestID == "" {
			continue
		}
		switch p.Kind {
		case model.NotificationKindMessage:
			summary.MessageUnreadByRequest[p.RequestID]++
		case model.NotificationKindStatusUpdate:
			summary.StatusUnreadByRequest[p.RequestID]++
		default:
			// 未识别 kind 显式过滤，不计数
			continue
		}
		summary.TotalUnread++
	}
	return summary, nil
}

func (s *unreadService) CountUnreadMessages(ctx context.Context, userID string) (int, error) {
	convs, err := s.convRepo.ListForUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("list conversations: %w", err)
	}
	count := 0
	for _, c := range convs {
		for _, m := range c.Messages {
			// 本人发送的消息永不计入未读
			if m.SenderID != userID && m.ReadAt == nil {
				count++
			}
		}
	}
	return count, nil
}

func (s *unreadService) CountUnreadNotifications(ctx context.Context, userID string) (int, error) {
	cnt, err := s.notifRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return int(cnt), nil
}

func (s *unreadService) MarkRead(ctx context.Context, userID, notificationID string) error {
	if err := s.notifRepo.MarkRead(ctx, userID, notificationID); err != nil {
		return err
	}
	if s.invalidator != nil {
		s.invalidator.Enqueue(userID)
	}
	return nil
}

func (s *unreadService) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.notifRepo.MarkAllRead(ctx, userID); err != nil {
		return err
	}
	if s.invalidator != nil {
		s.invalidator.Enqueue(userID)
	}
	return nil
}
