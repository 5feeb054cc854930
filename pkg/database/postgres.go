package database

import (
	"fmt"
	"smartCanteen/domain"
	"smartCanteen/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitPostgres(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	err = db.AutoMigrate(
		&domain.User{},
		&domain.Merchant{},
		&domain.MenuItem{},
		&domain.Order{},
		&domain.OrderItem{},
		&domain.BehaviorEvent{},
		&domain.PriceTier{},
		&domain.DiscountRule{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}
