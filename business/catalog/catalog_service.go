package catalog

import (
	"context"
	"errors"
	"fmt"

	"smartCanteen/domain"
)

// MenuItemRepository contract interface
type MenuItemRepository interface {
	Create(ctx context.Context, item *domain.MenuItem) error
	FindByID(ctx context.Context, id uint) (domain.MenuItem, error)
	FindByMerchant(ctx context.Context, merchantID uint) ([]domain.MenuItem, error)
	Update(ctx context.Context, item *domain.MenuItem) error
	Delete(ctx context.Context, id uint) error
}

// PriceQuoter is the runtime pricing resolver, called once per listing.
type PriceQuoter interface {
	QuoteItems(ctx context.Context, userID, merchantID uint, items []domain.MenuItem) (domain.MenuQuote, error)
}

type CatalogService struct {
	itemRepo MenuItemRepository
	quoter   PriceQuoter
}

func NewCatalogService(itemRepo MenuItemRepository, quoter PriceQuoter) *CatalogService {
	return &CatalogService{
		itemRepo: itemRepo,
		quoter:   quoter,
	}
}

// GetPersonalizedMenu lists a merchant's items priced for the given user.
func (s *CatalogService) GetPersonalizedMenu(ctx context.Context, userID, merchantID uint) (domain.MenuQuote, error) {
	items, err := s.itemRepo.FindByMerchant(ctx, merchantID)
	if err != nil {
		return domain.MenuQuote{}, fmt.Errorf("load menu items: %w", err)
	}

	return s.quoter.QuoteItems(ctx, userID, merchantID, items)
}

func (s *CatalogService) CreateItem(ctx context.Context, item *domain.MenuItem) error {
	if item.Name == "" {
		return errors.New("item name is required")
	}
	if item.BasePrice < 0 {
		return errors.New("base price must be non-negative")
	}

	return s.itemRepo.Create(ctx, item)
}

func (s *CatalogService) UpdateItem(ctx context.Context, merchantID uint, item *domain.MenuItem) error {
	existing, err := s.itemRepo.FindByID(ctx, item.ID)
	if err != nil {
		return err
	}
	if existing.MerchantID != merchantID {
		return errors.New("item does not belong to this merchant")
	}
	if item.BasePrice < 0 {
		return errors.New("base price must be non-negative")
	}

	item.MerchantID = merchantID

	return s.itemRepo.Update(ctx, item)
}

func (s *CatalogService) DeleteItem(ctx context.Context, merchantID, itemID uint) error {
	existing, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return err
	}
	if existing.MerchantID != merchantID {
		return errors.New("item does not belong to this merchant")
	}

	return s.itemRepo.Delete(ctx, itemID)
}
