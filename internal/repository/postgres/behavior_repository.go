package postgres

import (
	"context"
	"fmt"

	"smartCanteen/business/segmentation"
	"smartCanteen/domain"

	"gorm.io/gorm"
)

type BehaviorRepository struct {
	DB *gorm.DB
}

var _ segmentation.BehaviorRepository = (*BehaviorRepository)(nil)

func NewBehaviorRepository(db *gorm.DB) *BehaviorRepository {
	return &BehaviorRepository{DB: db}
}

func (r *BehaviorRepository) SaveEvent(ctx context.Context, event domain.BehaviorEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(&event).Error; err != nil {
		return fmt.Errorf("failed to save behavior event: %w", err)
	}

	return nil
}

// CountActionsByMerchant aggregates one merchant's events into
// (user, action, count) cells database-side. Users with no events for the
// merchant produce no rows at all.
func (r *BehaviorRepository) CountActionsByMerchant(ctx context.Context, merchantID uint) ([]domain.ActionCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var counts []domain.ActionCount
	err := r.DB.WithContext(ctx).
		Model(&domain.BehaviorEvent{}).
		Select("user_id, action_type, COUNT(*) AS count").
		Where("merchant_id = ?", merchantID).
		Group("user_id, action_type").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate behavior events: %w", err)
	}

	return counts, nil
}
