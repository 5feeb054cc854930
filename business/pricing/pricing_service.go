package pricing

import (
	"context"
	"fmt"
	"math"

	"smartCanteen/domain"
	"smartCanteen/pkg/metrics"
)

const (
	// DefaultTier is applied to users never scored by the pipeline.
	DefaultTier = 1
	// DefaultMultiplier is applied when a merchant has no rule for a tier.
	DefaultMultiplier = 1.0
)

// ---- Repository interfaces ----

type TierRepository interface {
	// GetTier reports (tier, found). A miss is not an error.
	GetTier(ctx context.Context, userID, merchantID uint) (int, bool, error)
}

type DiscountRuleRepository interface {
	// GetMultiplier reports (multiplier, found). A miss is not an error.
	GetMultiplier(ctx context.Context, merchantID uint, tier int) (float64, bool, error)
}

// ---- Usecase / Service ----

// PricingService turns the pipeline's tiers plus merchant discount rules
// into concrete prices. It is stateless; every resolution is a fresh lookup
// against current tier and rule state.
type PricingService struct {
	tierRepo TierRepository
	ruleRepo DiscountRuleRepository
}

func NewPricingService(tierRepo TierRepository, ruleRepo DiscountRuleRepository) *PricingService {
	return &PricingService{
		tierRepo: tierRepo,
		ruleRepo: ruleRepo,
	}
}

// Lookup resolves the tier and multiplier for one (user, merchant) pair.
// Missing rows resolve to the documented defaults and are invisible to the
// caller; only storage failures surface as errors.
func (s *PricingService) Lookup(ctx context.Context, userID, merchantID uint) (int, float64, error) {
	tier, found, err := s.tierRepo.GetTier(ctx, userID, merchantID)
	if err != nil {
		return 0, 0, fmt.Errorf("lookup price tier: %w", err)
	}
	if !found {
		tier = DefaultTier
		metrics.PriceDefaultTierTotal.Inc()
	}

	multiplier, found, err := s.ruleRepo.GetMultiplier(ctx, merchantID, tier)
	if err != nil {
		return 0, 0, fmt.Errorf("lookup discount rule: %w", err)
	}
	if !found {
		multiplier = DefaultMultiplier
	}

	metrics.PriceResolutionsTotal.Inc()

	return tier, multiplier, nil
}

// ResolvePrice returns the final price of a single item for one
// (user, merchant) pair.
func (s *PricingService) ResolvePrice(ctx context.Context, userID, merchantID uint, basePrice float64) (float64, error) {
	_, multiplier, err := s.Lookup(ctx, userID, merchantID)
	if err != nil {
		return 0, err
	}

	return basePrice * multiplier, nil
}

// QuoteItems prices every given item for one (user, merchant) pair with a
// single tier/rule lookup, and reports the tier and multiplier used so the
// caller can show a "you are paying X% of list price" indicator.
func (s *PricingService) QuoteItems(ctx context.Context, userID, merchantID uint, items []domain.MenuItem) (domain.MenuQuote, error) {
	tier, multiplier, err := s.Lookup(ctx, userID, merchantID)
	if err != nil {
		return domain.MenuQuote{}, err
	}

	quote := domain.MenuQuote{
		Tier:          tier,
		Multiplier:    multiplier,
		DiscountLabel: fmt.Sprintf("%d%%", int(math.Round(multiplier*100))),
		Items:         make([]domain.PricedItem, 0, len(items)),
	}

	for _, item := range items {
		quote.Items = append(quote.Items, domain.PricedItem{
			ID:         item.ID,
			Name:       item.Name,
			ImageURL:   item.ImageURL,
			BasePrice:  item.BasePrice,
			FinalPrice: item.BasePrice * multiplier,
		})
	}

	return quote, nil
}
