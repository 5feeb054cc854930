package postgres

import (
	"context"
	"errors"

	"smartCanteen/domain"

	"gorm.io/gorm"
)

type MenuItemRepository struct {
	DB *gorm.DB
}

func NewMenuItemRepository(db *gorm.DB) *MenuItemRepository {
	return &MenuItemRepository{DB: db}
}

func (r *MenuItemRepository) Create(ctx context.Context, item *domain.MenuItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *MenuItemRepository) FindByID(ctx context.Context, id uint) (domain.MenuItem, error) {
	var item domain.MenuItem
	err := r.DB.WithContext(ctx).First(&item, "id = ?", id).Error
	if err != nil {
		return domain.MenuItem{}, err
	}

	return item, nil
}

func (r *MenuItemRepository) FindByMerchant(ctx context.Context, merchantID uint) ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	err := r.DB.WithContext(ctx).Where("merchant_id = ?", merchantID).Order("id").Find(&items).Error
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *MenuItemRepository) Update(ctx context.Context, item *domain.MenuItem) error {
	row := r.DB.WithContext(ctx).Where("id = ?", item.ID).Updates(item)
	if row.Error != nil {
		return row.Error
	}
	if row.RowsAffected == 0 {
		return errors.New("menu item not found")
	}

	return nil
}

func (r *MenuItemRepository) Delete(ctx context.Context, id uint) error {
	row := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&domain.MenuItem{})
	if row.Error != nil {
		return row.Error
	}
	if row.RowsAffected == 0 {
		return errors.New("menu item not found")
	}

	return nil
}
