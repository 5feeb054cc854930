package postgres

import (
	"context"
	"errors"

	"smartCanteen/domain"

	"gorm.io/gorm"
)

type OrdersRepository struct {
	DB *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{DB: db}
}

func (r *OrdersRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *OrdersRepository) FindByUser(ctx context.Context, userID uint) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.DB.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *OrdersRepository) FindByMerchant(ctx context.Context, merchantID uint) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.DB.WithContext(ctx).
		Preload("Items").
		Where("merchant_id = ?", merchantID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *OrdersRepository) FindByID(ctx context.Context, orderID uint) (domain.Order, error) {
	var order domain.Order
	err := r.DB.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", orderID).Error
	if err != nil {
		return domain.Order{}, err
	}

	return order, nil
}

func (r *OrdersRepository) UpdateStatus(ctx context.Context, orderID uint, status string) error {
	row := r.DB.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ?", orderID).
		Update("status", status)
	if row.Error != nil {
		return row.Error
	}
	if row.RowsAffected == 0 {
		return errors.New("order not found")
	}

	return nil
}
