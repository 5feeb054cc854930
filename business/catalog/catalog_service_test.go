package catalog

import (
	"context"
	"errors"
	"testing"

	"smartCanteen/domain"
)

type fakeItemRepo struct {
	items   map[uint]domain.MenuItem
	deleted []uint
}

func (f *fakeItemRepo) Create(ctx context.Context, item *domain.MenuItem) error {
	item.ID = uint(len(f.items) + 1)
	if f.items == nil {
		f.items = make(map[uint]domain.MenuItem)
	}
	f.items[item.ID] = *item
	return nil
}

func (f *fakeItemRepo) FindByID(ctx context.Context, id uint) (domain.MenuItem, error) {
	item, ok := f.items[id]
	if !ok {
		return domain.MenuItem{}, errors.New("menu item not found")
	}
	return item, nil
}

func (f *fakeItemRepo) FindByMerchant(ctx context.Context, merchantID uint) ([]domain.MenuItem, error) {
	var out []domain.MenuItem
	for _, item := range f.items {
		if item.MerchantID == merchantID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeItemRepo) Update(ctx context.Context, item *domain.MenuItem) error {
	f.items[item.ID] = *item
	return nil
}

func (f *fakeItemRepo) Delete(ctx context.Context, id uint) error {
	delete(f.items, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeQuoter struct {
	lastUser     uint
	lastMerchant uint
	lastItems    []domain.MenuItem
}

func (f *fakeQuoter) QuoteItems(ctx context.Context, userID, merchantID uint, items []domain.MenuItem) (domain.MenuQuote, error) {
	f.lastUser = userID
	f.lastMerchant = merchantID
	f.lastItems = items
	return domain.MenuQuote{Tier: 2, Multiplier: 0.95}, nil
}

func TestGetPersonalizedMenu(t *testing.T) {
	itemRepo := &fakeItemRepo{items: map[uint]domain.MenuItem{
		1: {ID: 1, MerchantID: 3, Name: "Soto", BasePrice: 7},
		2: {ID: 2, MerchantID: 9, Name: "Bakso", BasePrice: 6},
	}}
	quoter := &fakeQuoter{}

	svc := NewCatalogService(itemRepo, quoter)

	quote, err := svc.GetPersonalizedMenu(context.Background(), 5, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Tier != 2 {
		t.Errorf("quote tier = %d, want 2", quote.Tier)
	}
	if quoter.lastUser != 5 || quoter.lastMerchant != 3 {
		t.Errorf("quoter called with user=%d merchant=%d", quoter.lastUser, quoter.lastMerchant)
	}
	if len(quoter.lastItems) != 1 || quoter.lastItems[0].Name != "Soto" {
		t.Errorf("quoter must only see the merchant's own items: %v", quoter.lastItems)
	}
}

func TestCreateItemValidation(t *testing.T) {
	svc := NewCatalogService(&fakeItemRepo{}, &fakeQuoter{})

	if err := svc.CreateItem(context.Background(), &domain.MenuItem{Name: "", BasePrice: 5}); err == nil {
		t.Error("expected error for empty name")
	}
	if err := svc.CreateItem(context.Background(), &domain.MenuItem{Name: "Soto", BasePrice: -1}); err == nil {
		t.Error("expected error for negative price")
	}
}

func TestUpdateItemRejectsForeignMerchant(t *testing.T) {
	itemRepo := &fakeItemRepo{items: map[uint]domain.MenuItem{
		1: {ID: 1, MerchantID: 3, Name: "Soto", BasePrice: 7},
	}}
	svc := NewCatalogService(itemRepo, &fakeQuoter{})

	err := svc.UpdateItem(context.Background(), 9, &domain.MenuItem{ID: 1, Name: "Soto", BasePrice: 8})
	if err == nil {
		t.Error("expected ownership error")
	}

	if err := svc.UpdateItem(context.Background(), 3, &domain.MenuItem{ID: 1, Name: "Soto", BasePrice: 8}); err != nil {
		t.Errorf("owner update failed: %v", err)
	}
	if itemRepo.items[1].BasePrice != 8 {
		t.Errorf("price not updated: %v", itemRepo.items[1])
	}
}

func TestDeleteItemRejectsForeignMerchant(t *testing.T) {
	itemRepo := &fakeItemRepo{items: map[uint]domain.MenuItem{
		1: {ID: 1, MerchantID: 3, Name: "Soto", BasePrice: 7},
	}}
	svc := NewCatalogService(itemRepo, &fakeQuoter{})

	if err := svc.DeleteItem(context.Background(), 9, 1); err == nil {
		t.Error("expected ownership error")
	}
	if err := svc.DeleteItem(context.Background(), 3, 1); err != nil {
		t.Errorf("owner delete failed: %v", err)
	}
	if len(itemRepo.deleted) != 1 || itemRepo.deleted[0] != 1 {
		t.Errorf("item not deleted: %v", itemRepo.deleted)
	}
}
