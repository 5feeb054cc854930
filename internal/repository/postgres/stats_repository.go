package postgres

import (
	"context"
	"fmt"

	"smartCanteen/business/merchant"
	"smartCanteen/domain"

	"gorm.io/gorm"
)

// StatsRepository serves the merchant dashboard aggregates.
type StatsRepository struct {
	DB       *gorm.DB
	tierRepo *PriceTierRepository
}

var _ merchant.StatsRepository = (*StatsRepository)(nil)

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{
		DB:       db,
		tierRepo: NewPriceTierRepository(db),
	}
}

func (r *StatsRepository) TopItems(ctx context.Context, merchantID uint, limit int) ([]domain.ItemSales, error) {
	var sales []domain.ItemSales
	err := r.DB.WithContext(ctx).
		Model(&domain.OrderItem{}).
		Select("menu_items.name AS name, SUM(order_items.quantity) AS quantity").
		Joins("JOIN menu_items ON menu_items.id = order_items.menu_item_id").
		Where("menu_items.merchant_id = ?", merchantID).
		Group("menu_items.name").
		Order("quantity DESC").
		Limit(limit).
		Scan(&sales).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query top items: %w", err)
	}

	return sales, nil
}

func (r *StatsRepository) TierDistribution(ctx context.Context, merchantID uint) ([]domain.TierCount, error) {
	return r.tierRepo.TierDistribution(ctx, merchantID)
}
