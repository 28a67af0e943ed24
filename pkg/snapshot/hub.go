// Package snapshot replaces ad hoc register-callback subscriptions with
// explicit, cancellable handles. Every change notification triggers a fresh
// pull of the full snapshot; there is no delta protocol.
package snapshot

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"
)

// Kind identifies which subtree of course data a subscription tracks.
type Kind string

const (
	KindCatalog Kind = "catalog"
	KindRoster  Kind = "roster"
	KindContent Kind = "content"
)

// Fetch pulls the current full snapshot for a subscription.
type Fetch func(ctx context.Context) (interface{}, error)

// Notifier fans change notifications out across process boundaries.
// Production uses Redis pub/sub; tests use an in-process implementation.
type Notifier interface {
	Publish(ctx context.Context, channel string) error
	// Listen returns a channel that receives one value per notification
	// and a stop function releasing the underlying subscription.
	Listen(ctx context.Context, channel string) (<-chan struct{}, func())
}

// RedisNotifier implements Notifier on Redis pub/sub.
type RedisNotifier struct {
	Client *redis.Client
}

func NewRedisNotifier(rdb *redis.Client) *RedisNotifier {
	return &RedisNotifier{Client: rdb}
}

func (n *RedisNotifier) Publish(ctx context.Context, channel string) error {
	return n.Client.Publish(ctx, channel, "1").Err()
}

func (n *RedisNotifier) Listen(ctx context.Context, channel string) (<-chan struct{}, func()) {
	sub := n.Client.Subscribe(ctx, channel)
	out := make(chan struct{}, 1)

	go func() {
		defer close(out)
		for range sub.Channel() {
			select {
			case out <- struct{}{}:
			default: // a pending pull already covers this change
			}
		}
	}()

	return out, func() { sub.Close() }
}

// Handle is a single active subscription. Close tears it down and
// guarantees the callback never fires afterwards.
type Handle struct {
	mu     sync.Mutex
	closed bool
	stop   func()
	done   chan struct{}
}

func (h *Handle) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	h.mu.Unlock()

	h.stop()
	<-h.done
}

// deliver invokes fn unless the handle has been closed. The callback runs
// under the handle lock so Close cannot return while a delivery is in
// flight.
func (h *Handle) deliver(fn func(interface{}), v interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	fn(v)
}

// Hub creates subscriptions keyed by (course, kind).
type Hub struct {
	notifier Notifier
}

func NewHub(notifier Notifier) *Hub {
	return &Hub{notifier: notifier}
}

func channelFor(courseID string, kind Kind) string {
	return fmt.Sprintf("lms:changed:%s:%s", kind, courseID)
}

// NotifyChanged signals every subscriber of (courseID, kind) to re-pull.
func (hub *Hub) NotifyChanged(ctx context.Context, courseID string, kind Kind) error {
	return hub.notifier.Publish(ctx, channelFor(courseID, kind))
}

// Subscribe delivers the current snapshot immediately, then again after
// every change notification, until the handle is closed. Callers changing
// course keys must Close the old handle before subscribing anew so a stale
// snapshot can never overwrite state for a different key.
func (hub *Hub) Subscribe(ctx context.Context, courseID string, kind Kind, fetch Fetch, fn func(interface{})) (*Handle, error) {
	notifications, stop := hub.notifier.Listen(ctx, channelFor(courseID, kind))

	h := &Handle{
		stop: stop,
		done: make(chan struct{}),
	}

	initial, err := fetch(ctx)
	if err != nil {
		stop()
		close(h.done)
		return nil, err
	}
	h.deliver(fn, initial)

	go func() {
		defer close(h.done)
		for range notifications {
			v, err := fetch(ctx)
			if err != nil {
				// Stale-but-consistent beats crashed: skip this delivery,
				// the next notification retries the pull.
				continue
			}
			h.deliver(fn, v)
		}
	}()

	return h, nil
}
