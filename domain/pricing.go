package domain

import "time"

// PriceTier is the pipeline's output: the 1-5 price sensitivity level of one
// (user, merchant) pair. The whole table is replaced on every pipeline run.
type PriceTier struct {
	UserID     uint      `gorm:"column:user_id;primaryKey" json:"user_id"`
	MerchantID uint      `gorm:"column:merchant_id;primaryKey" json:"merchant_id"`
	Tier       int       `gorm:"column:tier;not null" json:"tier"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (PriceTier) TableName() string {
	return "price_tiers"
}

// DiscountRule maps a tier to the multiplier a merchant wants applied to
// base prices for users in that tier. Owned by merchants, read-only to the
// pricing core.
type DiscountRule struct {
	MerchantID uint    `gorm:"column:merchant_id;primaryKey" json:"merchant_id"`
	Tier       int     `gorm:"column:tier;primaryKey" json:"tier"`
	Multiplier float64 `gorm:"column:multiplier;type:numeric;not null;default:1.0" json:"multiplier"`
}

func (DiscountRule) TableName() string {
	return "discount_rules"
}

// PipelineResult is returned to whoever triggered a pipeline run.
type PipelineResult struct {
	Success            bool   `json:"success"`
	RunID              string `json:"run_id"`
	TiersWritten       int    `json:"tiers_written"`
	MerchantsProcessed int    `json:"merchants_processed"`
	MerchantsSkipped   int    `json:"merchants_skipped"`
	Message            string `json:"message,omitempty"`
	Error              string `json:"error,omitempty"`
}

// PricedItem is one menu item with its personalized final price.
type PricedItem struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	ImageURL   string  `json:"image_url"`
	BasePrice  float64 `json:"base_price"`
	FinalPrice float64 `json:"final_price"`
}

// MenuQuote is the batch resolver output: every item priced for one
// (user, merchant) pair plus the tier and multiplier that were applied, so
// the client can render a "you are paying 95% of list" indicator.
type MenuQuote struct {
	Tier          int          `json:"tier"`
	Multiplier    float64      `json:"multiplier"`
	DiscountLabel string       `json:"discount_label"`
	Items         []PricedItem `json:"items"`
}

// TierCount is one slice of a merchant's tier distribution.
type TierCount struct {
	Tier  int `json:"tier"`
	Count int `json:"count"`
}
