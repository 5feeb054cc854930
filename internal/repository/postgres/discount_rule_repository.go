package postgres

import (
	"context"
	"fmt"

	"smartCanteen/business/pricing"
	"smartCanteen/domain"

	"gorm.io/gorm"
)

type DiscountRuleRepository struct {
	DB *gorm.DB
}

var _ pricing.DiscountRuleRepository = (*DiscountRuleRepository)(nil)

func NewDiscountRuleRepository(db *gorm.DB) *DiscountRuleRepository {
	return &DiscountRuleRepository{DB: db}
}

func (r *DiscountRuleRepository) GetMultiplier(ctx context.Context, merchantID uint, tier int) (float64, bool, error) {
	var row domain.DiscountRule
	err := r.DB.WithContext(ctx).
		First(&row, "merchant_id = ? AND tier = ?", merchantID, tier).Error
	if err == gorm.ErrRecordNotFound {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to query discount rule: %w", err)
	}

	return row.Multiplier, true, nil
}

func (r *DiscountRuleRepository) ListByMerchant(ctx context.Context, merchantID uint) ([]domain.DiscountRule, error) {
	var rules []domain.DiscountRule
	err := r.DB.WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		Order("tier").
		Find(&rules).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list discount rules: %w", err)
	}

	return rules, nil
}

func (r *DiscountRuleRepository) ReplaceForMerchant(ctx context.Context, merchantID uint, rules []domain.DiscountRule) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("merchant_id = ?", merchantID).Delete(&domain.DiscountRule{}).Error; err != nil {
			return fmt.Errorf("clear discount rules: %w", err)
		}

		if len(rules) == 0 {
			return nil
		}

		if err := tx.Create(&rules).Error; err != nil {
			return fmt.Errorf("insert discount rules: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace discount rules: %w", err)
	}

	return nil
}
