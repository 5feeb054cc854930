package behavior

import (
	"context"
	"testing"

	"smartCanteen/domain"
)

type fakeBehaviorRepo struct {
	events []domain.BehaviorEvent
}

func (f *fakeBehaviorRepo) SaveEvent(ctx context.Context, event domain.BehaviorEvent) error {
	f.events = append(f.events, event)
	return nil
}

func TestLogEventAcceptsClientActions(t *testing.T) {
	repo := &fakeBehaviorRepo{}
	svc := NewBehaviorService(repo)

	for _, action := range []string{domain.ActionViewItem, domain.ActionAddToCart} {
		if err := svc.LogEvent(context.Background(), 1, 2, action, nil); err != nil {
			t.Errorf("action %q rejected: %v", action, err)
		}
	}
	if len(repo.events) != 2 {
		t.Errorf("expected 2 events, got %d", len(repo.events))
	}
}

func TestLogEventRejectsOrderPlaced(t *testing.T) {
	svc := NewBehaviorService(&fakeBehaviorRepo{})

	// order_placed is only written server-side by the orders flow
	if err := svc.LogEvent(context.Background(), 1, 2, domain.ActionOrderPlaced, nil); err == nil {
		t.Error("expected order_placed to be rejected from clients")
	}
}

func TestLogEventRejectsUnknownAction(t *testing.T) {
	svc := NewBehaviorService(&fakeBehaviorRepo{})

	if err := svc.LogEvent(context.Background(), 1, 2, "scrolled", nil); err == nil {
		t.Error("expected unknown action to be rejected")
	}
}

func TestLogEventKeepsContext(t *testing.T) {
	repo := &fakeBehaviorRepo{}
	svc := NewBehaviorService(repo)

	err := svc.LogEvent(context.Background(), 1, 2, domain.ActionViewItem, map[string]any{"item_id": 9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.events[0].Context["item_id"] != 9 {
		t.Errorf("context not stored: %v", repo.events[0].Context)
	}
}
