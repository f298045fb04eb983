package bus

import "testing"

func TestPublishReachesAllSubscribers(t *testing.T) {
	b := New()
	first := 0
	second := 0
	b.Subscribe(func() { first++ })
	b.Subscribe(func() { second++ })

	b.Publish()

	if first != 1 || second != 1 {
		t.Fatalf("listener calls = %d/%d, want 1/1", first, second)
	}
}

func TestUnsubscribedListenerIsNotInvoked(t *testing.T) {
	b := New()
	stale := 0
	live := 0
	unsubscribe := b.Subscribe(func() { stale++ })
	b.Subscribe(func() { live++ })

	unsubscribe()
	unsubscribe() // idempotent
	b.Publish()

	if stale != 0 {
		t.Fatalf("unsubscribed listener invoked %d times", stale)
	}
	if live != 1 {
		t.Fatalf("remaining listener invoked %d times, want 1", live)
	}
}

func TestDeliveryOrderFollowsSubscriptionOrder(t *testing.T) {
	b := New()
	var order []int
	b.Subscribe(func() { order = append(order, 1) })
	b.Subscribe(func() { order = append(order, 2) })
	b.Subscribe(func() { order = append(order, 3) })

	b.Publish()

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("delivery order = %v, want [1 2 3]", order)
	}
}

func TestPanickingListenerDoesNotBlockOthers(t *testing.T) {
	b := New()
	after := 0
	b.Subscribe(func() { panic("listener failure") })
	b.Subscribe(func() { after++ })

	b.Publish()

	if after != 1 {
		t.Fatalf("listener after panic invoked %d times, want 1", after)
	}
}

func TestSubscribeDuringPublishDoesNotFireInSameTurn(t *testing.T) {
	b := New()
	added := 0
	b.Subscribe(func() {
		b.Subscribe(func() { added++ })
	})

	b.Publish()
	if added != 0 {
		t.Fatalf("listener added mid-publish fired %d times in the same turn", added)
	}

	b.Publish()
	if added != 1 {
		t.Fatalf("listener added mid-publish fired %d times on next publish, want 1", added)
	}
}
