package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/tripmarket/internal/model"
)

// EventRequestRepository 预订请求仓储接口
type EventRequestRepository interface {
	// Create 创建预订请求
	Create(ctx context.Context, req *model.EventRequest) error

	// GetByID 根据请求ID查询
	GetByID(ctx context.Context, id string) (*model.EventRequest, error)

	// ListByRequester 按请求人查询列表
	ListByRequester(ctx context.Context, requesterID string, limit int) ([]*model.EventRequest, error)

	// UpdateStatus 更新请求状态
	UpdateStatus(ctx context.Context, id string, status int8) error

	// StatusesByIDs 批量查询请求状态（面板未读明细用）
	StatusesByIDs(ctx context.Context, ids []string) (map[string]int8, error)

	// Count 统计请求数量
	Count(ctx context.Context) (int64, error)
}

type eventRequestRepository struct {
	db *gorm.DB
}

func NewEventRequestRepository(db *gorm.DB) EventRequestRepository {
	return &eventRequestRepository{db: db}
}

func (r *eventRequestRepository) Create(ctx context.Context, req *model.EventRequest) error {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *eventRequestRepository) GetByID(ctx context.Context, id string) (*model.EventRequest, error) {
	var req model.EventRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *eventRequestRepository) ListByRequester(ctx context.Context, requesterID string, limit int) ([]*model.EventRequest, error) {
	var reqs []*model.EventRequest
	err := r.db.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Limit(limit).
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *eventRequestRepository) StatusesByIDs(ctx context.Context, ids []string) (map[string]int8, error) {
	res := make(map[string]int8, len(ids))
	if len(ids) == 0 {
		return res, nil
	}
	var rows []model.EventRequest
	if err := r.db.WithContext(ctx).Select("id", "status").Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		res[row.ID] = row.Status
	}
	return res, nil
}

func (r *eventRequestRepository) UpdateStatus(ctx context.Context, id string, status int8) error {
	return r.db.WithContext(ctx).
		Model(&model.EventRequest{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *eventRequestRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.EventRequest{}).Count(&count).Error
	return count, err
}
