package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/tripmarket/internal/model"
	"github.com/d60-Lab/tripmarket/pkg/publicid"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	FindByPredicate(ctx context.Context, pred publicid.Predicate) (*model.User, error)
}

type userRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) FindByPredicate(ctx context.Context, pred publicid.Predicate) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where(pred.Field+" = ?", pred.Value).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
