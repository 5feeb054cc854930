package postgres

import (
	"context"

	"smartCanteen/business/segmentation"
	"smartCanteen/domain"

	"gorm.io/gorm"
)

type MerchantRepository struct {
	DB *gorm.DB
}

var _ segmentation.MerchantRepository = (*MerchantRepository)(nil)

func NewMerchantRepository(db *gorm.DB) *MerchantRepository {
	return &MerchantRepository{DB: db}
}

func (r *MerchantRepository) Create(ctx context.Context, merchant *domain.Merchant) error {
	return r.DB.WithContext(ctx).Create(merchant).Error
}

func (r *MerchantRepository) FindByID(ctx context.Context, id uint) (domain.Merchant, error) {
	var merchant domain.Merchant
	err := r.DB.WithContext(ctx).First(&merchant, "id = ?", id).Error
	if err != nil {
		return domain.Merchant{}, err
	}

	return merchant, nil
}

func (r *MerchantRepository) FindByEmail(ctx context.Context, email string) (domain.Merchant, error) {
	var merchant domain.Merchant
	err := r.DB.WithContext(ctx).First(&merchant, "email = ?", email).Error
	if err != nil {
		return domain.Merchant{}, err
	}

	return merchant, nil
}

func (r *MerchantRepository) FindAll(ctx context.Context) ([]domain.Merchant, error) {
	var merchants []domain.Merchant
	err := r.DB.WithContext(ctx).Order("id").Find(&merchants).Error
	if err != nil {
		return nil, err
	}

	return merchants, nil
}
