package postgres

import (
	"context"
	"fmt"

	"smartCanteen/business/pricing"
	"smartCanteen/business/segmentation"
	"smartCanteen/domain"

	"gorm.io/gorm"
)

type PriceTierRepository struct {
	DB *gorm.DB
}

var (
	_ segmentation.PriceTierRepository = (*PriceTierRepository)(nil)
	_ pricing.TierRepository           = (*PriceTierRepository)(nil)
)

func NewPriceTierRepository(db *gorm.DB) *PriceTierRepository {
	return &PriceTierRepository{DB: db}
}

const tierInsertBatchSize = 500

// ReplaceAll swaps the whole table inside one transaction: either the new
// tier set becomes visible atomically or the previous one stays intact.
// Readers never observe a cleared-but-unrepopulated table.
func (r *PriceTierRepository) ReplaceAll(ctx context.Context, tiers []domain.PriceTier) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&domain.PriceTier{}).Error; err != nil {
			return fmt.Errorf("clear price tiers: %w", err)
		}

		if len(tiers) == 0 {
			return nil
		}

		if err := tx.CreateInBatches(tiers, tierInsertBatchSize).Error; err != nil {
			return fmt.Errorf("insert price tiers: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace price tiers: %w", err)
	}

	return nil
}

func (r *PriceTierRepository) GetTier(ctx context.Context, userID, merchantID uint) (int, bool, error) {
	var row domain.PriceTier
	err := r.DB.WithContext(ctx).
		First(&row, "user_id = ? AND merchant_id = ?", userID, merchantID).Error
	if err == gorm.ErrRecordNotFound {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to query price tier: %w", err)
	}

	return row.Tier, true, nil
}

func (r *PriceTierRepository) TierDistribution(ctx context.Context, merchantID uint) ([]domain.TierCount, error) {
	var counts []domain.TierCount
	err := r.DB.WithContext(ctx).
		Model(&domain.PriceTier{}).
		Select("tier, COUNT(*) AS count").
		Where("merchant_id = ?", merchantID).
		Group("tier").
		Order("tier").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query tier distribution: %w", err)
	}

	return counts, nil
}
