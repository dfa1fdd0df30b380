package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcherInvokesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	calls := 0
	d.Subscribe(EventComplaintStatusChanged, func(ctx context.Context, e Event) error {
		calls++
		if e.ComplaintID != "c-1" {
			t.Errorf("unexpected complaint id %q", e.ComplaintID)
		}
		return nil
	})
	d.Subscribe(EventComplaintCreated, func(ctx context.Context, e Event) error {
		t.Error("handler for unrelated event type invoked")
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventComplaintStatusChanged, ComplaintID: "c-1"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if calls != 1 {
		t.Fatalf("handler invoked %d times, want 1", calls)
	}
}

func TestDispatcherHandlerErrorDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher()
	second := false
	d.Subscribe(EventComplaintStatusChanged, func(ctx context.Context, e Event) error {
		return errors.New("delivery failed")
	})
	d.Subscribe(EventComplaintStatusChanged, func(ctx context.Context, e Event) error {
		second = true
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventComplaintStatusChanged}); err != nil {
		t.Fatalf("publish returned error: %v", err)
	}
	if !second {
		t.Error("second handler not invoked after first failed")
	}
}
