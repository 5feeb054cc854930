package orders

import (
	"context"
	"errors"
	"math"
	"testing"

	"smartCanteen/domain"
)

type fakeOrdersRepo struct {
	created *domain.Order
	byID    map[uint]domain.Order
	status  map[uint]string
}

func (f *fakeOrdersRepo) CreateOrder(ctx context.Context, order *domain.Order) error {
	order.ID = 100
	f.created = order
	return nil
}

func (f *fakeOrdersRepo) FindByUser(ctx context.Context, userID uint) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.byID {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrdersRepo) FindByMerchant(ctx context.Context, merchantID uint) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.byID {
		if o.MerchantID == merchantID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrdersRepo) FindByID(ctx context.Context, orderID uint) (domain.Order, error) {
	o, ok := f.byID[orderID]
	if !ok {
		return domain.Order{}, errors.New("order not found")
	}
	return o, nil
}

func (f *fakeOrdersRepo) UpdateStatus(ctx context.Context, orderID uint, status string) error {
	if f.status == nil {
		f.status = make(map[uint]string)
	}
	f.status[orderID] = status
	return nil
}

type fakeItemRepo struct {
	items []domain.MenuItem
}

func (f *fakeItemRepo) FindByMerchant(ctx context.Context, merchantID uint) ([]domain.MenuItem, error) {
	return f.items, nil
}

type fakeResolver struct {
	tier       int
	multiplier float64
}

func (f *fakeResolver) Lookup(ctx context.Context, userID, merchantID uint) (int, float64, error) {
	return f.tier, f.multiplier, nil
}

type fakeBehaviorRepo struct {
	events []domain.BehaviorEvent
}

func (f *fakeBehaviorRepo) SaveEvent(ctx context.Context, event domain.BehaviorEvent) error {
	f.events = append(f.events, event)
	return nil
}

func TestCreateOrderAppliesMultiplier(t *testing.T) {
	orderRepo := &fakeOrdersRepo{}
	itemRepo := &fakeItemRepo{items: []domain.MenuItem{
		{ID: 1, MerchantID: 2, Name: "Nasi Goreng", BasePrice: 10},
		{ID: 2, MerchantID: 2, Name: "Es Teh", BasePrice: 4},
	}}
	behaviorRepo := &fakeBehaviorRepo{}

	svc := NewOrdersService(orderRepo, itemRepo, &fakeResolver{tier: 3, multiplier: 0.9}, behaviorRepo)

	receipt, err := svc.CreateOrder(context.Background(), 7, 2, []OrderLine{
		{MenuItemID: 1, Quantity: 2},
		{MenuItemID: 2, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if receipt.Tier != 3 || receipt.Multiplier != 0.9 {
		t.Errorf("receipt tier/multiplier = %d/%v, want 3/0.9", receipt.Tier, receipt.Multiplier)
	}

	order := orderRepo.created
	if order == nil {
		t.Fatal("order was not persisted")
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(order.Items))
	}
	if math.Abs(order.Items[0].FinalPriceEach-9.0) > 1e-9 {
		t.Errorf("line 1 unit price = %v, want 9.0", order.Items[0].FinalPriceEach)
	}
	if math.Abs(order.Items[1].FinalPriceEach-3.6) > 1e-9 {
		t.Errorf("line 2 unit price = %v, want 3.6", order.Items[1].FinalPriceEach)
	}
	if math.Abs(order.TotalPrice-21.6) > 1e-9 {
		t.Errorf("total = %v, want 21.6", order.TotalPrice)
	}
	if order.Status != domain.OrderStatusPending {
		t.Errorf("status = %q, want PENDING", order.Status)
	}
}

func TestCreateOrderLogsOrderPlacedEvent(t *testing.T) {
	behaviorRepo := &fakeBehaviorRepo{}
	itemRepo := &fakeItemRepo{items: []domain.MenuItem{{ID: 1, BasePrice: 5}}}

	svc := NewOrdersService(&fakeOrdersRepo{}, itemRepo, &fakeResolver{tier: 1, multiplier: 1}, behaviorRepo)

	_, err := svc.CreateOrder(context.Background(), 7, 2, []OrderLine{{MenuItemID: 1, Quantity: 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(behaviorRepo.events) != 1 {
		t.Fatalf("expected 1 behavior event, got %d", len(behaviorRepo.events))
	}
	ev := behaviorRepo.events[0]
	if ev.ActionType != domain.ActionOrderPlaced || ev.UserID != 7 || ev.MerchantID != 2 {
		t.Errorf("unexpected event: %+v", ev)
	}
}

func TestCreateOrderUnknownItem(t *testing.T) {
	itemRepo := &fakeItemRepo{items: []domain.MenuItem{{ID: 1, BasePrice: 5}}}
	svc := NewOrdersService(&fakeOrdersRepo{}, itemRepo, &fakeResolver{tier: 1, multiplier: 1}, &fakeBehaviorRepo{})

	_, err := svc.CreateOrder(context.Background(), 7, 2, []OrderLine{{MenuItemID: 99, Quantity: 1}})
	if err == nil {
		t.Error("expected error for unknown menu item")
	}
}

func TestCreateOrderRequiresLines(t *testing.T) {
	svc := NewOrdersService(&fakeOrdersRepo{}, &fakeItemRepo{}, &fakeResolver{tier: 1, multiplier: 1}, &fakeBehaviorRepo{})

	_, err := svc.CreateOrder(context.Background(), 7, 2, nil)
	if err == nil {
		t.Error("expected error for empty order")
	}
}

func TestGetOrderChecksOwnership(t *testing.T) {
	orderRepo := &fakeOrdersRepo{byID: map[uint]domain.Order{
		5: {ID: 5, UserID: 1},
	}}
	svc := NewOrdersService(orderRepo, &fakeItemRepo{}, &fakeResolver{}, &fakeBehaviorRepo{})

	if _, err := svc.GetOrder(context.Background(), 5, 1); err != nil {
		t.Errorf("owner must see the order: %v", err)
	}
	if _, err := svc.GetOrder(context.Background(), 5, 2); err == nil {
		t.Error("non-owner must not see the order")
	}
}

func TestGetMerchantOrders(t *testing.T) {
	orderRepo := &fakeOrdersRepo{byID: map[uint]domain.Order{
		1: {ID: 1, UserID: 7, MerchantID: 2},
		2: {ID: 2, UserID: 8, MerchantID: 2},
		3: {ID: 3, UserID: 7, MerchantID: 5},
	}}
	svc := NewOrdersService(orderRepo, &fakeItemRepo{}, &fakeResolver{}, &fakeBehaviorRepo{})

	merchantOrders, err := svc.GetMerchantOrders(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(merchantOrders) != 2 {
		t.Fatalf("expected 2 orders for merchant 2, got %d", len(merchantOrders))
	}
	for _, o := range merchantOrders {
		if o.MerchantID != 2 {
			t.Errorf("order %d belongs to merchant %d", o.ID, o.MerchantID)
		}
	}
}

func TestUpdateOrderStatusValidation(t *testing.T) {
	orderRepo := &fakeOrdersRepo{byID: map[uint]domain.Order{
		1: {ID: 1, UserID: 7, MerchantID: 2},
	}}
	svc := NewOrdersService(orderRepo, &fakeItemRepo{}, &fakeResolver{}, &fakeBehaviorRepo{})

	if err := svc.UpdateOrderStatus(context.Background(), 1, 2, "SHIPPED"); err == nil {
		t.Error("expected error for unknown status")
	}
	if err := svc.UpdateOrderStatus(context.Background(), 1, 9, domain.OrderStatusCompleted); err == nil {
		t.Error("expected error for foreign merchant")
	}
	if err := svc.UpdateOrderStatus(context.Background(), 1, 2, domain.OrderStatusCompleted); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if orderRepo.status[1] != domain.OrderStatusCompleted {
		t.Errorf("status not persisted: %v", orderRepo.status)
	}
}
