// pkg/event/event_test.go
package event

import (
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// TestNewEventBus tests the creation of a new event bus
func TestNewEventBus_Creation_ReturnsInitializedBus(t *testing.T) {
	bus := NewEventBus()

	if bus == nil {
		t.Fatal("NewEventBus() returned nil")
	}

	if bus.handlers == nil {
		t.Error("handlers map not initialized")
	}

	if bus.nextID != 1 {
		t.Errorf("expected nextID to be 1, got %d", bus.nextID)
	}
}

// TestBaseEvent tests the BaseEvent functionality
func TestBaseEvent_GetType_ReturnsCorrectType(t *testing.T) {
	tests := []struct {
		name      string
		eventType Type
		source    interface{}
	}{
		{
			name:      "Jumped event",
			eventType: Jumped,
			source:    "test_source",
		},
		{
			name:      "GlideStarted event",
			eventType: GlideStarted,
			source:    123,
		},
		{
			name:      "Empty source",
			eventType: Landed,
			source:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := &BaseEvent{
				EventType: tt.eventType,
				Source:    tt.source,
			}

			if event.GetType() != tt.eventType {
				t.Errorf("GetType() = %v, want %v", event.GetType(), tt.eventType)
			}

			if event.GetSource() != tt.source {
				t.Errorf("GetSource() = %v, want %v", event.GetSource(), tt.source)
			}
		})
	}
}

func TestBusSubscribe_ReturnsIncreasingIDs(t *testing.T) {
	bus := NewEventBus()

	first := bus.Subscribe(Jumped, func(Event) {})
	second := bus.Subscribe(Landed, func(Event) {})

	if first == 0 || second == 0 {
		t.Fatalf("subscription IDs must be non-zero, got %d and %d", first, second)
	}
	if second <= first {
		t.Errorf("expected increasing IDs, got %d then %d", first, second)
	}
	if bus.HandlerCount(Jumped) != 1 || bus.HandlerCount(Landed) != 1 {
		t.Errorf("unexpected handler counts: jumped=%d landed=%d",
			bus.HandlerCount(Jumped), bus.HandlerCount(Landed))
	}
}

func TestBusPublish_DeliversInSubscriptionOrder(t *testing.T) {
	bus := NewEventBus()

	var order []int
	for i := 0; i < 3; i++ {
		i := i
		bus.Subscribe(GlideStarted, func(Event) { order = append(order, i) })
	}
	bus.Subscribe(GlideStopped, func(Event) { t.Error("handler for another type was called") })

	bus.Publish(&BaseEvent{EventType: GlideStarted})

	if len(order) != 3 {
		t.Fatalf("expected 3 deliveries, got %d", len(order))
	}
	for i, got := range order {
		if got != i {
			t.Errorf("delivery %d went to handler %d", i, got)
		}
	}
}

func TestBusPublish_NoSubscribers(t *testing.T) {
	bus := NewEventBus()
	// Must not panic.
	bus.Publish(&BaseEvent{EventType: GlideRequested})
}

func TestBusUnsubscribe(t *testing.T) {
	tests := []struct {
		name      string
		eventType Type
		useValid  bool
		want      bool
	}{
		{"existing subscription", Jumped, true, true},
		{"unknown ID", Jumped, false, false},
		{"wrong type", Landed, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := NewEventBus()
			called := false
			id := bus.Subscribe(Jumped, func(Event) { called = true })

			if !tt.useValid {
				id += 100
			}
			if got := bus.Unsubscribe(tt.eventType, id); got != tt.want {
				t.Errorf("Unsubscribe() = %v, want %v", got, tt.want)
			}

			bus.Publish(&BaseEvent{EventType: Jumped})
			if called == tt.want {
				t.Errorf("handler called = %v after Unsubscribe() = %v", called, tt.want)
			}
		})
	}
}

func TestBusPublish_HandlerMayUnsubscribeItself(t *testing.T) {
	bus := NewEventBus()

	calls := 0
	var id SubscriptionID
	id = bus.Subscribe(Landed, func(Event) {
		calls++
		bus.Unsubscribe(Landed, id)
	})

	bus.Publish(&BaseEvent{EventType: Landed})
	bus.Publish(&BaseEvent{EventType: Landed})

	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestBus_ConcurrentSubscribeAndPublish(t *testing.T) {
	bus := NewEventBus()

	var mu sync.Mutex
	received := 0
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Subscribe(Jumped, func(Event) {
				mu.Lock()
				received++
				mu.Unlock()
			})
			bus.Publish(&BaseEvent{EventType: Jumped})
		}()
	}
	wg.Wait()

	if bus.HandlerCount(Jumped) != 10 {
		t.Errorf("expected 10 handlers, got %d", bus.HandlerCount(Jumped))
	}
	if received < 10 {
		t.Errorf("expected at least 10 deliveries, got %d", received)
	}
}

func TestNewLocomotionEvent(t *testing.T) {
	velocity := mgl64.Vec3{1, -2, 3}
	source := "controller"

	e := NewLocomotionEvent(GlideStarted, source, "gliding", velocity)

	if e.GetType() != GlideStarted {
		t.Errorf("GetType() = %v, want %v", e.GetType(), GlideStarted)
	}
	if e.GetSource() != source {
		t.Errorf("GetSource() = %v, want %v", e.GetSource(), source)
	}
	if e.Phase != "gliding" {
		t.Errorf("Phase = %q, want gliding", e.Phase)
	}
	if e.Velocity != velocity {
		t.Errorf("Velocity = %v, want %v", e.Velocity, velocity)
	}

	var _ Event = e
}
