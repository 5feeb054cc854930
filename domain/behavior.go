package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ActionViewItem    = "view_item"
	ActionAddToCart   = "add_to_cart"
	ActionOrderPlaced = "order_placed"
)

// BehaviorEvent is an append-only interaction fact. Written by the API layer
// on views/carts/orders, read back only by the segmentation pipeline.
type BehaviorEvent struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	UserID     uint              `gorm:"column:user_id;not null;index:idx_behavior_merchant_user" json:"user_id"`
	MerchantID uint              `gorm:"column:merchant_id;not null;index:idx_behavior_merchant_user" json:"merchant_id"`
	ActionType string            `gorm:"column:action_type;not null" json:"action_type"`
	Context    datatypes.JSONMap `gorm:"column:context;type:jsonb" json:"context"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (BehaviorEvent) TableName() string {
	return "behavior_events"
}

// ActionCount is one cell of the per-merchant user/action aggregation that
// feeds the pipeline.
type ActionCount struct {
	UserID     uint   `json:"user_id"`
	ActionType string `json:"action_type"`
	Count      int    `json:"count"`
}
