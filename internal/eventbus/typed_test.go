package eventbus

import "testing"

type runEvent struct {
	ID     string
	Profit int
}

func TestTypedBusPublishSubscribe(t *testing.T) {
	bus := NewTyped[runEvent]()
	ch := bus.Subscribe()
	bus.Publish(runEvent{ID: "r1", Profit: 142})
	v := <-ch
	if v.ID != "r1" || v.Profit != 142 {
		t.Fatalf("unexpected event %+v", v)
	}
	bus.Unsubscribe(ch)
}

func TestTypedBusClose(t *testing.T) {
	bus := NewTyped[int]()
	ch1 := bus.Subscribe()
	ch2 := bus.Subscribe()
	bus.Close()
	if _, ok := <-ch1; ok {
		t.Fatalf("expected ch1 closed")
	}
	if _, ok := <-ch2; ok {
		t.Fatalf("expected ch2 closed")
	}
	bus.Publish(1)
	if ch := bus.Subscribe(); ch != nil {
		if _, ok := <-ch; ok {
			t.Fatalf("subscribe after close should return a closed channel")
		}
	}
}

func TestTypedBusUnsubscribeAfterClose(t *testing.T) {
	bus := NewTyped[float64]()
	ch := bus.Subscribe()
	bus.Close()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panic on Unsubscribe after Close: %v", r)
		}
	}()
	bus.Unsubscribe(ch)
}

func TestTypedBusDropsWhenFull(t *testing.T) {
	bus := NewTypedWithBuffer[int](1)
	ch := bus.Subscribe()
	bus.Publish(1)
	bus.Publish(2)
	if got := <-ch; got != 1 {
		t.Fatalf("expected first event, got %d", got)
	}
	if bus.Dropped() != 1 {
		t.Fatalf("expected 1 dropped delivery, got %d", bus.Dropped())
	}
}
