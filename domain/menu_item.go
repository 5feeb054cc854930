package domain

import "time"

type MenuItem struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	MerchantID uint    `gorm:"column:merchant_id;not null;index" json:"merchant_id"`
	Name       string  `gorm:"column:name;not null" json:"name"`
	BasePrice  float64 `gorm:"column:base_price;type:numeric;not null" json:"base_price"`
	ImageURL   string  `gorm:"column:image_url" json:"image_url"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (MenuItem) TableName() string {
	return "menu_items"
}
