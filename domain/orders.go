package domain

import "time"

const (
	OrderStatusPending   = "PENDING"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
)

type Order struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	UserID     uint        `gorm:"column:user_id;not null;index" json:"user_id"`
	MerchantID uint        `gorm:"column:merchant_id;not null;index" json:"merchant_id"`
	Status     string      `gorm:"column:status;default:PENDING" json:"status"`
	TotalPrice float64     `gorm:"column:total_price;type:numeric;not null" json:"total_price"`
	Items      []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// FinalPriceEach records the personalized unit price at order time, after
// the tier multiplier was applied.
type OrderItem struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	OrderID        uint    `gorm:"column:order_id;not null;index" json:"order_id"`
	MenuItemID     uint    `gorm:"column:menu_item_id;not null" json:"menu_item_id"`
	Quantity       int     `gorm:"column:quantity;not null;default:1" json:"quantity"`
	FinalPriceEach float64 `gorm:"column:final_price_each;type:numeric;not null" json:"final_price_each"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// ItemSales is a per-item aggregate used by the merchant stats endpoint.
type ItemSales struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}
