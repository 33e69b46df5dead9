package model

import (
	"time"

	"github.com/d60-Lab/tripmarket/pkg/publicid"
)

// Conversation 双人会话（围绕一个 listing）
// 不变式：恰好两个不同参与者；updated_at 随消息追加单调不减
type Conversation struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ShortID     *string   `json:"short_id,omitempty" gorm:"type:varchar(32);uniqueIndex"`
	StarterID   string    `json:"starter_id" gorm:"type:varchar(36);index:idx_conv_starter;not null"`
	RecipientID string    `json:"recipient_id" gorm:"type:varchar(36);index:idx_conv_recipient;not null"`
	ListingID   string    `json:"listing_id" gorm:"type:varchar(36);index:idx_conv_listing;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"index"`
	Messages    []Message `json:"messages,omitempty" gorm:"foreignKey:ConversationID"`
}

func (Conversation) TableName() string { return "conversations" }

// PublicID 对外标识：已分配短码优先，否则由主键派生回退短码
func (c *Conversation) PublicID() string {
	if c.ShortID != nil && *c.ShortID != "" {
		return *c.ShortID
	}
	return publicid.DeriveShortID(c.ID)
}

// HasParticipant 判断用户是否为会话参与方
func (c *Conversation) HasParticipant(userID string) bool {
	return c.StarterID == userID || c.RecipientID == userID
}

// OtherParticipant 返回对端参与者
func (c *Conversation) OtherParticipant(userID string) string {
	if c.StarterID == userID {
		return c.RecipientID
	}
	return c.StarterID
}
