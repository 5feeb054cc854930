package merchant

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"smartCanteen/domain"
	"smartCanteen/pkg/logger"
	"smartCanteen/pkg/utils"

	"github.com/go-playground/validator/v10"
)

// MerchantRepository contract interface
type MerchantRepository interface {
	Create(ctx context.Context, merchant *domain.Merchant) error
	FindByID(ctx context.Context, id uint) (domain.Merchant, error)
	FindByEmail(ctx context.Context, email string) (domain.Merchant, error)
	FindAll(ctx context.Context) ([]domain.Merchant, error)
}

// DiscountRuleRepository contract interface
type DiscountRuleRepository interface {
	ListByMerchant(ctx context.Context, merchantID uint) ([]domain.DiscountRule, error)
	// ReplaceForMerchant swaps the merchant's whole rule set in one
	// transaction.
	ReplaceForMerchant(ctx context.Context, merchantID uint, rules []domain.DiscountRule) error
}

// StatsRepository contract interface
type StatsRepository interface {
	TopItems(ctx context.Context, merchantID uint, limit int) ([]domain.ItemSales, error)
	TierDistribution(ctx context.Context, merchantID uint) ([]domain.TierCount, error)
}

type MerchantService struct {
	merchantRepo MerchantRepository
	validate     *validator.Validate
	ruleRepo     DiscountRuleRepository
	statsRepo    StatsRepository
}

const (
	RoleMerchant = "merchant"

	tokenTTL     = 24 * time.Hour
	topItemLimit = 5
)

func NewMerchantService(
	merchantRepo MerchantRepository,
	validate *validator.Validate,
	ruleRepo DiscountRuleRepository,
	statsRepo StatsRepository,
) *MerchantService {
	return &MerchantService{
		merchantRepo: merchantRepo,
		validate:     validate,
		ruleRepo:     ruleRepo,
		statsRepo:    statsRepo,
	}
}

func (s *MerchantService) Register(ctx context.Context, merchant *domain.Merchant) (domain.Merchant, error) {
	if err := s.validate.Var(merchant.Email, "required,email"); err != nil {
		logger.Error("Invalid merchant email format", err)
		return domain.Merchant{}, errors.New("invalid email format")
	}

	if err := s.validate.Var(merchant.Password, "required,min=6"); err != nil {
		logger.Error("Invalid merchant password", err)
		return domain.Merchant{}, errors.New("password must be at least 6 characters")
	}

	if merchant.Name == "" {
		return domain.Merchant{}, errors.New("merchant name is required")
	}

	existing, err := s.merchantRepo.FindByEmail(ctx, strings.ToLower(merchant.Email))
	if err == nil && existing.ID > 0 {
		logger.Error("Merchant email already exists")
		return domain.Merchant{}, errors.New("email already exists")
	}

	passwordHash, err := utils.HashPassword(merchant.Password)
	if err != nil {
		logger.Error("Failed to hash merchant password", err)
		return domain.Merchant{}, errors.New("failed to hash password")
	}

	newMerchant := domain.Merchant{
		Email:    strings.ToLower(merchant.Email),
		Password: passwordHash,
		Name:     merchant.Name,
		Location: merchant.Location,
		ImageURL: merchant.ImageURL,
	}

	if err := s.merchantRepo.Create(ctx, &newMerchant); err != nil {
		logger.Error("Failed to create merchant", err)
		return domain.Merchant{}, errors.New("failed to create merchant")
	}

	newMerchant.Password = ""

	return newMerchant, nil
}

func (s *MerchantService) Login(ctx context.Context, email, password string) (string, domain.Merchant, error) {
	merchant, err := s.merchantRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("Merchant not found", err)
		return "", domain.Merchant{}, errors.New("invalid email or password")
	}

	if !utils.CheckPassword(merchant.Password, password) {
		return "", domain.Merchant{}, errors.New("invalid email or password")
	}

	token, err := utils.GenerateJWT(merchant.ID, RoleMerchant, tokenTTL)
	if err != nil {
		logger.Error("Failed to generate merchant token", err)
		return "", domain.Merchant{}, errors.New("failed to generate token")
	}

	merchant.Password = ""

	return token, merchant, nil
}

func (s *MerchantService) GetAllMerchants(ctx context.Context) ([]domain.Merchant, error) {
	merchants, err := s.merchantRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range merchants {
		merchants[i].Password = ""
	}

	return merchants, nil
}

// ListRules returns the merchant's discount rules sorted by tier. An empty
// list is a valid state: all tiers then price at the default multiplier.
func (s *MerchantService) ListRules(ctx context.Context, merchantID uint) ([]domain.DiscountRule, error) {
	rules, err := s.ruleRepo.ListByMerchant(ctx, merchantID)
	if err != nil {
		return nil, fmt.Errorf("list discount rules: %w", err)
	}

	sort.Slice(rules, func(i, j int) bool { return rules[i].Tier < rules[j].Tier })

	return rules, nil
}

// ReplaceRules validates and swaps the merchant's rule set. At most one
// rule per tier; tiers outside 1..5 and non-positive multipliers are
// rejected.
func (s *MerchantService) ReplaceRules(ctx context.Context, merchantID uint, rules []domain.DiscountRule) error {
	seen := make(map[int]bool, len(rules))
	for _, rule := range rules {
		if rule.Tier < 1 || rule.Tier > 5 {
			return fmt.Errorf("invalid tier %d: must be between 1 and 5", rule.Tier)
		}
		if rule.Multiplier <= 0 {
			return fmt.Errorf("invalid multiplier %v for tier %d: must be positive", rule.Multiplier, rule.Tier)
		}
		if seen[rule.Tier] {
			return fmt.Errorf("duplicate rule for tier %d", rule.Tier)
		}
		seen[rule.Tier] = true
	}

	for i := range rules {
		rules[i].MerchantID = merchantID
	}

	if err := s.ruleRepo.ReplaceForMerchant(ctx, merchantID, rules); err != nil {
		return fmt.Errorf("replace discount rules: %w", err)
	}

	return nil
}

type MerchantStats struct {
	TopItems         []domain.ItemSales `json:"top_items"`
	TierDistribution []domain.TierCount `json:"tier_distribution"`
}

func (s *MerchantService) GetStats(ctx context.Context, merchantID uint) (MerchantStats, error) {
	topItems, err := s.statsRepo.TopItems(ctx, merchantID, topItemLimit)
	if err != nil {
		return MerchantStats{}, fmt.Errorf("load top items: %w", err)
	}

	tierDist, err := s.statsRepo.TierDistribution(ctx, merchantID)
	if err != nil {
		return MerchantStats{}, fmt.Errorf("load tier distribution: %w", err)
	}

	return MerchantStats{
		TopItems:         topItems,
		TierDistribution: tierDist,
	}, nil
}
