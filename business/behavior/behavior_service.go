package behavior

import (
	"context"
	"fmt"

	"smartCanteen/domain"

	"gorm.io/datatypes"
)

// BehaviorRepository contract interface
type BehaviorRepository interface {
	SaveEvent(ctx context.Context, event domain.BehaviorEvent) error
}

type BehaviorService struct {
	behaviorRepo BehaviorRepository
}

func NewBehaviorService(behaviorRepo BehaviorRepository) *BehaviorService {
	return &BehaviorService{behaviorRepo: behaviorRepo}
}

var clientActions = map[string]bool{
	domain.ActionViewItem:  true,
	domain.ActionAddToCart: true,
}

// LogEvent records a client-side interaction. order_placed is written only
// by the orders service, never accepted from clients directly.
func (s *BehaviorService) LogEvent(ctx context.Context, userID, merchantID uint, actionType string, eventCtx map[string]any) error {
	if !clientActions[actionType] {
		return fmt.Errorf("unknown action type: %s", actionType)
	}

	event := domain.BehaviorEvent{
		UserID:     userID,
		MerchantID: merchantID,
		ActionType: actionType,
	}
	if eventCtx != nil {
		event.Context = datatypes.JSONMap(eventCtx)
	}

	return s.behaviorRepo.SaveEvent(ctx, event)
}
