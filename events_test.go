package canopy

import "testing"

func TestPublishOrder(t *testing.T) {
	var bus EventBus
	var got []int
	for i := 0; i < 3; i++ {
		bus.Subscribe("e", NewListener(func(Event) { got = append(got, i) }), nil)
	}
	bus.Publish("e", 7, "payload")
	if len(got) != 3 || got[0] != 0 || got[1] != 1 || got[2] != 2 {
		t.Errorf("order = %v, want [0 1 2]", got)
	}
}

func TestPublishDeliversEvent(t *testing.T) {
	var bus EventBus
	var got Event
	bus.Subscribe("e", NewListener(func(e Event) { got = e }), nil)
	bus.Publish("e", 7, "payload")
	if got.Name != "e" || got.Source != 7 || got.Data != "payload" {
		t.Errorf("event = %+v", got)
	}
}

func TestPublishWithoutListeners(t *testing.T) {
	var bus EventBus
	bus.Publish("nothing", 0, nil)
}

func TestSubscribeDuplicatePanics(t *testing.T) {
	var bus EventBus
	l := NewListener(func(Event) {})
	bus.Subscribe("e", l, nil)
	expectPanic(t, "already registered", func() { bus.Subscribe("e", l, nil) })

	// The same listener may serve a different name.
	bus.Subscribe("f", l, nil)
}

func TestSubscribeNilPanics(t *testing.T) {
	var bus EventBus
	expectPanic(t, "not invocable", func() { bus.Subscribe("e", nil, nil) })
	expectPanic(t, "not invocable", func() { bus.Subscribe("e", NewListener(nil), nil) })
}

func TestUnsubscribe(t *testing.T) {
	var bus EventBus
	calls := 0
	l := NewListener(func(Event) { calls++ })
	bus.Subscribe("e", l, nil)
	bus.Unsubscribe("e", l)
	bus.Unsubscribe("e", l)
	bus.Publish("e", 0, nil)
	if calls != 0 {
		t.Errorf("calls = %d, want 0", calls)
	}
	if bus.Listening("e", l) {
		t.Error("Listening after Unsubscribe")
	}
}

func TestOwnerTeardown(t *testing.T) {
	var source, owner EventBus
	calls := 0
	l := NewListener(func(Event) { calls++ })
	source.Subscribe("e", l, &owner)
	source.Publish("e", 0, nil)

	owner.Teardown()
	source.Publish("e", 0, nil)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if source.ListenerCount("e") != 0 {
		t.Errorf("ListenerCount = %d, want 0", source.ListenerCount("e"))
	}
}

func TestForgetKeepsSubscription(t *testing.T) {
	var source, owner EventBus
	l := NewListener(func(Event) {})
	source.Subscribe("e", l, &owner)
	owner.Forget(&source, "e", l)
	owner.Teardown()
	if !source.Listening("e", l) {
		t.Error("forgotten subscription removed by Teardown")
	}
}

func TestSubscribeDuringDispatchIsQueued(t *testing.T) {
	var bus EventBus
	lateCalls := 0
	late := NewListener(func(Event) { lateCalls++ })
	first := NewListener(func(Event) {
		if !bus.Listening("e", late) && !bus.hasListener("e", late) {
			bus.Subscribe("e", late, nil)
		}
	})
	bus.Subscribe("e", first, nil)

	bus.Publish("e", 0, nil)
	if lateCalls != 0 {
		t.Errorf("late listener ran in the dispatch that added it: %d", lateCalls)
	}
	if !bus.Listening("e", late) {
		t.Fatal("queued subscription not applied after dispatch")
	}

	bus.Publish("e", 0, nil)
	if lateCalls != 1 {
		t.Errorf("late listener calls = %d, want 1", lateCalls)
	}
}

func TestUnsubscribeDuringDispatchIsQueued(t *testing.T) {
	var bus EventBus
	var order []string
	var second *Listener
	first := NewListener(func(Event) {
		order = append(order, "first")
		bus.Unsubscribe("e", second)
	})
	second = NewListener(func(Event) { order = append(order, "second") })
	bus.Subscribe("e", first, nil)
	bus.Subscribe("e", second, nil)

	bus.Publish("e", 0, nil)
	if len(order) != 2 {
		t.Errorf("order = %v, want both listeners in the current dispatch", order)
	}
	if bus.Listening("e", second) {
		t.Error("queued unsubscribe not applied")
	}
}

func TestDuplicateDetectionSeesQueuedOps(t *testing.T) {
	var bus EventBus
	l := NewListener(func(Event) {})
	trigger := NewListener(func(Event) {
		bus.Subscribe("x", l, nil)
		expectPanic(t, "already registered", func() { bus.Subscribe("x", l, nil) })
	})
	bus.Subscribe("x", trigger, nil)
	bus.Publish("x", 0, nil)
}

func TestNestedPublishFlushesAtOutermost(t *testing.T) {
	var bus EventBus
	added := NewListener(func(Event) {})
	bus.Subscribe("outer", NewListener(func(Event) {
		bus.Publish("inner", 0, nil)
		if bus.Listening("inner", added) {
			t.Error("queued op flushed by the inner Publish")
		}
	}), nil)
	bus.Subscribe("inner", NewListener(func(Event) {
		if !bus.hasListener("inner", added) {
			bus.Subscribe("inner", added, nil)
		}
	}), nil)

	bus.Publish("outer", 0, nil)
	if !bus.Listening("inner", added) {
		t.Error("queued op not applied after outermost Publish")
	}
}

func TestTeardownDuringDispatchStopsDelivery(t *testing.T) {
	var bus EventBus
	var got []int
	bus.Subscribe("e", NewListener(func(Event) {
		got = append(got, 1)
		bus.Teardown()
	}), nil)
	bus.Subscribe("e", NewListener(func(Event) { got = append(got, 2) }), nil)

	bus.Publish("e", 0, nil)
	if len(got) != 1 {
		t.Errorf("delivered = %v, want [1]", got)
	}
	if bus.dispatching != 0 {
		t.Errorf("dispatching = %d, want 0", bus.dispatching)
	}

	bus.Subscribe("e", NewListener(func(Event) { got = append(got, 3) }), nil)
	bus.Publish("e", 0, nil)
	if len(got) != 2 || got[1] != 3 {
		t.Errorf("after re-subscribe delivered = %v, want [1 3]", got)
	}
}
