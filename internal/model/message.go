package model

import "time"

// Message 会话内单条消息，归属唯一会话
// read_at 置位后不再回退
type Message struct {
	ID             string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ConversationID string     `json:"conversation_id" gorm:"type:varchar(36);index:idx_msg_conv;not null"`
	SenderID       string     `json:"sender_id" gorm:"type:varchar(36);not null"`
	Content        string     `json:"content" gorm:"type:text"`
	CreatedAt      time.Time  `json:"created_at" gorm:"index"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
}

func (Message) TableName() string { return "messages" }
