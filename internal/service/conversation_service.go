package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/tripmarket/internal/model"
	"github.com/d60-Lab/tripmarket/internal/repository"
	"github.com/d60-Lab/tripmarket/pkg/publicid"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("user is not a participant")
	ErrSelfConversation     = errors.New("cannot start conversation with self")
)

// ConversationView 刷新接口返回的会话视图
type ConversationView struct {
	PublicID     string    `json:"public_id"`
	StarterID    string    `json:"starter_id"`
	RecipientID  string    `json:"recipient_id"`
	ListingID    string    `json:"listing_id"`
	LastMessage  string    `json:"last_message"`
	LastSenderID string    `json:"last_sender_id"`
	UnreadCount  int       `json:"unread_count"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ConversationService 会话服务
type ConversationService interface {
	// ListForUser 刷新接口：用户全部会话视图（按 updated_at 倒序）
	ListForUser(ctx context.Context, userID string) ([]ConversationView, error)
	// GetByPublicID 公开标识加载会话，校验参与者
	GetByPublicID(ctx context.Context, userID, publicID string) (*model.Conversation, error)
	// Start 两位不同用户围绕 listing 建立会话
	Start(ctx context.Context, starterID, recipientID, listingID, content string) (*model.Conversation, error)
	// SendMessage 追加消息（推进会话 updated_at）
	SendMessage(ctx context.Context, userID, publicID, content string) (*model.Message, error)
	// MarkRead 会话内对端消息全部置已读
	MarkRead(ctx context.Context, userID, publicID string) error
}

type conversationService struct {
	convRepo repository.ConversationRepository
}

func NewConversationService(convRepo repository.ConversationRepository) ConversationService {
	return &conversationService{convRepo: convRepo}
}

func (s *conversationService) ListForUser(ctx context.Context, userID string) ([]ConversationView, error) {
	convs, err := s.convRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	views := make([]ConversationView, 0, len(convs))
	for _, c := range convs {
		v := ConversationView{
			PublicID:    c.PublicID(),
			StarterID:   c.StarterID,
			RecipientID: c.RecipientID,
			ListingID:   c.ListingID,
			UpdatedAt:   c.UpdatedAt,
		}
		for _, m := range c.Messages {
			if m.SenderID != userID && m.ReadAt == nil {
				v.UnreadCount++
			}
		}
		if n := len(c.Messages); n > 0 {
			last := c.Messages[n-1]
			v.LastMessage = last.Content
			v.LastSenderID = last.SenderID
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *conversationService) GetByPublicID(ctx context.Context, userID, publicID string) (*model.Conversation, error) {
	conv, err := s.convRepo.FindByPredicate(ctx, publicid.Classify(publicID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	if !conv.HasParticipant(userID) {
		return nil, ErrNotParticipant
	}
	return conv, nil
}

func (s *conversationService) Start(ctx context.Context, starterID, recipientID, listingID, content string) (*model.Conversation, error) {
	if starterID == recipientID {
		return nil, ErrSelfConversation
	}
	return s.convRepo.Start(ctx, starterID, recipientID, listingID, content)
}

func (s *conversationService) SendMessage(ctx context.Context, userID, publicID, content string) (*model.Message, error) {
	conv, err := s.GetByPublicID(ctx, userID, publicID)
	if err != nil {
		return nil, err
	}
	return s.convRepo.AppendMessage(ctx, conv.ID, userID, content)
}

func (s *conversationService) MarkRead(ctx context.Context, userID, publicID string) error {
	conv, err := s.GetByPublicID(ctx, userID, publicID)
	if err != nil {
		return err
	}
	_, err = s.convRepo.MarkMessagesRead(ctx, conv.ID, userID)
	return err
}
