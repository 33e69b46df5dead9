package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/tripmarket/internal/model"
	"github.com/d60-Lab/tripmarket/pkg/publicid"
)

type ConversationRepository interface {
	// Start 首条消息建立会话（事务内建会话 + 消息）
	Start(ctx context.Context, starterID, recipientID, listingID, content string) (*model.Conversation, error)
	// AppendMessage 追加消息并推进会话 updated_at
	AppendMessage(ctx context.Context, conversationID, senderID, content string) (*model.Message, error)
	// ListForUser 取用户参与的全部会话（含消息，按 updated_at 倒序）
	ListForUser(ctx context.Context, userID string) ([]*model.Conversation, error)
	// FindByPredicate 按解析出的公开标识谓词查询
	FindByPredicate(ctx context.Context, pred publicid.Predicate) (*model.Conversation, error)
	// MarkMessagesRead 将对端发来的未读消息全部置已读（幂等）
	MarkMessagesRead(ctx context.Context, conversationID, readerID string) (int64, error)
}

type conversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) Start(ctx context.Context, starterID, recipientID, listingID, content string) (*model.Conversation, error) {
	now := time.Now()
	conv := &model.Conversation{
		ID:          uuid.New().String(),
		StarterID:   starterID,
		RecipientID: recipientID,
		ListingID:   listingID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(conv).Error; err != nil {
			return err
		}
		msg := &model.Message{
			ID:             uuid.New().String(),
			ConversationID: conv.ID,
			SenderID:       starterID,
			Content:        content,
			CreatedAt:      now,
		}
		return tx.Create(msg).Error
	})
	if err != nil {
		return nil, err
	}
	return conv, nil
}

func (r *conversationRepository) AppendMessage(ctx context.Context, conversationID, senderID, content string) (*model.Message, error) {
	now := time.Now()
	msg := &model.Message{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		CreatedAt:      now,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		// updated_at 只向前推进
		return tx.Model(&model.Conversation{}).
			Where("id = ? AND updated_at <= ?", conversationID, now).
			Update("updated_at", now).Error
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

func (r *conversationRepository) ListForUser(ctx context.Context, userID string) ([]*model.Conversation, error) {
	var res []*model.Conversation
	err := r.db.WithContext(ctx).
		Where("starter_id = ? OR recipient_id = ?", userID, userID).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Order("updated_at DESC").
		Find(&res).Error
	return res, err
}

func (r *conversationRepository) FindByPredicate(ctx context.Context, pred publicid.Predicate) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.db.WithContext(ctx).
		Where(pred.Field+" = ?", pred.Value).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&conv).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepository) MarkMessagesRead(ctx context.Context, conversationID, readerID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND read_at IS NULL", conversationID, readerID).
		Update("read_at", time.Now())
	return res.RowsAffected, res.Error
}
