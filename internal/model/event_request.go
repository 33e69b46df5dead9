package model

import "time"

// EventRequest 预订请求（通知计数按其 ID 分组）
type EventRequest struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ListingID   string    `json:"listing_id" gorm:"type:varchar(36);index:idx_request_listing;not null"`
	RequesterID string    `json:"requester_id" gorm:"type:varchar(36);index:idx_request_requester;not null"`
	Status      int8      `json:"status" gorm:"index;not null;default:0"` // 0:pending, 1:accepted, 2:declined, 3:paid, 4:cancelled
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (EventRequest) TableName() string { return "event_requests" }

// EventRequestStatus 预订请求状态常量
const (
	RequestStatusPending   = 0
	RequestStatusAccepted  = 1
	RequestStatusDeclined  = 2
	RequestStatusPaid      = 3
	RequestStatusCancelled = 4
)
