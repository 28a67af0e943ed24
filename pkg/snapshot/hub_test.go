package snapshot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// memNotifier is an in-process Notifier for tests.
type memNotifier struct {
	mu   sync.Mutex
	subs map[string][]chan struct{}
}

func newMemNotifier() *memNotifier {
	return &memNotifier{subs: make(map[string][]chan struct{})}
}

func (n *memNotifier) Publish(ctx context.Context, channel string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs[channel] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return nil
}

func (n *memNotifier) Listen(ctx context.Context, channel string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	n.subs[channel] = append(n.subs[channel], ch)
	n.mu.Unlock()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			n.mu.Lock()
			live := n.subs[channel][:0]
			for _, c := range n.subs[channel] {
				if c != ch {
					live = append(live, c)
				}
			}
			n.subs[channel] = live
			n.mu.Unlock()
			close(ch)
		})
	}
	return ch, stop
}

func collect(t *testing.T) (func(interface{}), func() []interface{}) {
	t.Helper()
	var mu sync.Mutex
	var got []interface{}
	record := func(v interface{}) {
		mu.Lock()
		got = append(got, v)
		mu.Unlock()
	}
	read := func() []interface{} {
		mu.Lock()
		defer mu.Unlock()
		cp := make([]interface{}, len(got))
		copy(cp, got)
		return cp
	}
	return record, read
}

func TestSubscribeDeliversInitialSnapshot(t *testing.T) {
	hub := NewHub(newMemNotifier())
	fetch := func(ctx context.Context) (interface{}, error) { return "v1", nil }
	record, read := collect(t)

	h, err := hub.Subscribe(context.Background(), "c1", KindCatalog, fetch, record)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	defer h.Close()

	got := read()
	if len(got) != 1 || got[0] != "v1" {
		t.Errorf("initial delivery = %v, want [v1]", got)
	}
}

func TestSubscribeRedeliversOnNotify(t *testing.T) {
	hub := NewHub(newMemNotifier())

	var mu sync.Mutex
	version := "v1"
	fetch := func(ctx context.Context) (interface{}, error) {
		mu.Lock()
		defer mu.Unlock()
		return version, nil
	}
	record, read := collect(t)

	h, err := hub.Subscribe(context.Background(), "c1", KindRoster, fetch, record)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	defer h.Close()

	mu.Lock()
	version = "v2"
	mu.Unlock()
	if err := hub.NotifyChanged(context.Background(), "c1", KindRoster); err != nil {
		t.Fatalf("NotifyChanged() error = %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		got := read()
		if len(got) >= 2 {
			if got[len(got)-1] != "v2" {
				t.Errorf("redelivery = %v, want v2 last", got)
			}
			return
		}
		select {
		case <-deadline:
			t.Fatalf("no redelivery after notify, got %v", got)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestNotifyIsScopedToCourseAndKind(t *testing.T) {
	hub := NewHub(newMemNotifier())
	fetch := func(ctx context.Context) (interface{}, error) { return "snap", nil }
	record, read := collect(t)

	h, err := hub.Subscribe(context.Background(), "c1", KindCatalog, fetch, record)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	defer h.Close()

	hub.NotifyChanged(context.Background(), "c2", KindCatalog) // other course
	hub.NotifyChanged(context.Background(), "c1", KindRoster)  // other kind
	time.Sleep(50 * time.Millisecond)

	if got := read(); len(got) != 1 {
		t.Errorf("got %d deliveries, want only the initial one: %v", len(got), got)
	}
}

func TestClosedHandleNeverFires(t *testing.T) {
	notifier := newMemNotifier()
	hub := NewHub(notifier)
	fetch := func(ctx context.Context) (interface{}, error) { return "snap", nil }
	record, read := collect(t)

	h, err := hub.Subscribe(context.Background(), "c1", KindCatalog, fetch, record)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	h.Close()
	before := len(read())

	// Notifications after Close must never reach the callback.
	hub.NotifyChanged(context.Background(), "c1", KindCatalog)
	time.Sleep(50 * time.Millisecond)

	if after := len(read()); after != before {
		t.Errorf("callback fired after Close: %d deliveries before, %d after", before, after)
	}

	// Close is idempotent.
	h.Close()
}

func TestSubscribeFetchFailure(t *testing.T) {
	hub := NewHub(newMemNotifier())
	fetch := func(ctx context.Context) (interface{}, error) {
		return nil, errors.New("backend down")
	}

	h, err := hub.Subscribe(context.Background(), "c1", KindCatalog, fetch, func(interface{}) {
		t.Error("callback fired despite failed initial fetch")
	})
	if err == nil {
		h.Close()
		t.Fatal("Subscribe() succeeded, want initial fetch error")
	}
}
