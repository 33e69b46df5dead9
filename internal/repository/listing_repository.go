package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/tripmarket/internal/model"
	"github.com/d60-Lab/tripmarket/pkg/publicid"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *model.Listing) error
	FindByPredicate(ctx context.Context, pred publicid.Predicate) (*model.Listing, error)
}

type listingRepository struct{ db *gorm.DB }

func NewListingRepository(db *gorm.DB) ListingRepository { return &listingRepository{db: db} }

func (r *listingRepository) Create(ctx context.Context, listing *model.Listing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

func (r *listingRepository) FindByPredicate(ctx context.Context, pred publicid.Predicate) (*model.Listing, error) {
	var l model.Listing
	if err := r.db.WithContext(ctx).Where(pred.Field+" = ?", pred.Value).First(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}
