package orders

import (
	"context"
	"errors"
	"fmt"

	"smartCanteen/domain"
	"smartCanteen/pkg/logger"
)

// OrdersRepository contract interface
type OrdersRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	FindByUser(ctx context.Context, userID uint) ([]domain.Order, error)
	FindByMerchant(ctx context.Context, merchantID uint) ([]domain.Order, error)
	FindByID(ctx context.Context, orderID uint) (domain.Order, error)
	UpdateStatus(ctx context.Context, orderID uint, status string) error
}

// MenuItemRepository contract interface
type MenuItemRepository interface {
	FindByMerchant(ctx context.Context, merchantID uint) ([]domain.MenuItem, error)
}

// PriceResolver resolves the personalized multiplier once per order.
type PriceResolver interface {
	Lookup(ctx context.Context, userID, merchantID uint) (tier int, multiplier float64, err error)
}

// BehaviorRepository records the order_placed event that closes the
// behavioral feedback loop.
type BehaviorRepository interface {
	SaveEvent(ctx context.Context, event domain.BehaviorEvent) error
}

type OrdersService struct {
	orderRepo    OrdersRepository
	itemRepo     MenuItemRepository
	resolver     PriceResolver
	behaviorRepo BehaviorRepository
}

func NewOrdersService(
	orderRepo OrdersRepository,
	itemRepo MenuItemRepository,
	resolver PriceResolver,
	behaviorRepo BehaviorRepository,
) *OrdersService {
	return &OrdersService{
		orderRepo:    orderRepo,
		itemRepo:     itemRepo,
		resolver:     resolver,
		behaviorRepo: behaviorRepo,
	}
}

type OrderLine struct {
	MenuItemID uint `json:"menu_item_id" validate:"required"`
	Quantity   int  `json:"quantity" validate:"required,min=1"`
}

type OrderReceipt struct {
	Order      domain.Order `json:"order"`
	Tier       int          `json:"tier"`
	Multiplier float64      `json:"multiplier"`
}

// CreateOrder prices every line with the user's current tier multiplier,
// persists the order and writes the order_placed behavior event. The
// multiplier is resolved once and applied uniformly to all lines, since
// tiers are per (user, merchant), not per item.
func (s *OrdersService) CreateOrder(ctx context.Context, userID, merchantID uint, lines []OrderLine) (OrderReceipt, error) {
	if len(lines) == 0 {
		return OrderReceipt{}, errors.New("order must contain at least one item")
	}

	tier, multiplier, err := s.resolver.Lookup(ctx, userID, merchantID)
	if err != nil {
		return OrderReceipt{}, err
	}

	items, err := s.itemRepo.FindByMerchant(ctx, merchantID)
	if err != nil {
		return OrderReceipt{}, fmt.Errorf("load menu items: %w", err)
	}

	priceByID := make(map[uint]float64, len(items))
	for _, item := range items {
		priceByID[item.ID] = item.BasePrice
	}

	order := domain.Order{
		UserID:     userID,
		MerchantID: merchantID,
		Status:     domain.OrderStatusPending,
	}

	total := 0.0
	for _, line := range lines {
		basePrice, ok := priceByID[line.MenuItemID]
		if !ok {
			return OrderReceipt{}, fmt.Errorf("menu item %d not found for merchant %d", line.MenuItemID, merchantID)
		}

		finalPrice := basePrice * multiplier
		order.Items = append(order.Items, domain.OrderItem{
			MenuItemID:     line.MenuItemID,
			Quantity:       line.Quantity,
			FinalPriceEach: finalPrice,
		})
		total += finalPrice * float64(line.Quantity)
	}
	order.TotalPrice = total

	if err := s.orderRepo.CreateOrder(ctx, &order); err != nil {
		return OrderReceipt{}, fmt.Errorf("create order: %w", err)
	}

	// the order itself is behavioral input for the next pipeline run
	event := domain.BehaviorEvent{
		UserID:     userID,
		MerchantID: merchantID,
		ActionType: domain.ActionOrderPlaced,
	}
	if err := s.behaviorRepo.SaveEvent(ctx, event); err != nil {
		// the order is already committed; losing one log entry only delays
		// the user's next rescoring
		logger.Error("Failed to log order_placed event", err)
	}

	logger.Info("order_created",
		"order_id", order.ID,
		"user_id", userID,
		"merchant_id", merchantID,
		"tier", tier,
		"multiplier", multiplier,
		"total", total,
	)

	return OrderReceipt{
		Order:      order,
		Tier:       tier,
		Multiplier: multiplier,
	}, nil
}

func (s *OrdersService) GetUserOrders(ctx context.Context, userID uint) ([]domain.Order, error) {
	return s.orderRepo.FindByUser(ctx, userID)
}

// GetMerchantOrders lists the incoming orders a merchant has to fulfil.
func (s *OrdersService) GetMerchantOrders(ctx context.Context, merchantID uint) ([]domain.Order, error) {
	return s.orderRepo.FindByMerchant(ctx, merchantID)
}

func (s *OrdersService) GetOrder(ctx context.Context, orderID, userID uint) (domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if order.UserID != userID {
		return domain.Order{}, errors.New("order not found")
	}

	return order, nil
}

func (s *OrdersService) UpdateOrderStatus(ctx context.Context, orderID, merchantID uint, status string) error {
	switch status {
	case domain.OrderStatusPending, domain.OrderStatusCompleted, domain.OrderStatusCancelled:
	default:
		return fmt.Errorf("invalid order status: %s", status)
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.MerchantID != merchantID {
		return errors.New("order does not belong to this merchant")
	}

	return s.orderRepo.UpdateStatus(ctx, orderID, status)
}
