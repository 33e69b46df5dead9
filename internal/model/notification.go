package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// 通知载荷已识别的 kind 取值
const (
	NotificationKindStatusUpdate = "status update"
	NotificationKindMessage      = "message"
)

// Notification 面向单个用户的事件通知
// read_at 只发生一次 null -> timestamp 迁移
type Notification struct {
	ID        string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string         `json:"user_id" gorm:"type:varchar(36);index:idx_notif_user;not null"`
	Payload   datatypes.JSON `json:"payload" gorm:"type:jsonb"`
	CreatedAt time.Time      `json:"created_at" gorm:"index"`
	ReadAt    *time.Time     `json:"read_at,omitempty"`
}

func (Notification) TableName() string { return "notifications" }

// NotificationPayload 载荷中本子系统关心的字段
type NotificationPayload struct {
	Kind      string `json:"kind"`
	RequestID string `json:"request_id,omitempty"`
}

// ParsePayload 解析载荷；损坏的 JSON 返回错误由调用方跳过
func (n *Notification) ParsePayload() (NotificationPayload, error) {
	var p NotificationPayload
	err := json.Unmarshal(n.Payload, &p)
	return p, err
}
