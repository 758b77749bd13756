package dispatcher

import (
	"log/slog"
	"sync"

	portssvc "github.com/workhive/workhive_backend/internal/core/ports/services"
)

// subscriberBuffer bounds each subscriber channel. A subscriber that falls
// further behind than this misses events and recovers by re-polling the
// notification store.
const subscriberBuffer = 16

// Dispatcher fans state-change events out to live subscribers keyed by order
// id and by recipient user id. It is an explicit, constructed instance whose
// lifecycle belongs to the serving process; nothing here is package-global.
//
// Delivery is best-effort at-most-once: Publish never blocks, and events for
// full or absent channels are dropped. There is no replay log.
type Dispatcher struct {
	mu        sync.RWMutex
	closed    bool
	orderSubs map[string]map[chan portssvc.Event]struct{}
	userSubs  map[string]map[chan portssvc.Event]struct{}
	logger    *slog.Logger
}

var _ portssvc.EventBus = (*Dispatcher)(nil)

// New creates a Dispatcher. logger may be nil.
func New(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		orderSubs: make(map[string]map[chan portssvc.Event]struct{}),
		userSubs:  make(map[string]map[chan portssvc.Event]struct{}),
		logger:    logger,
	}
}

// Publish delivers evt to live subscribers without blocking the caller.
func (d *Dispatcher) Publish(evt portssvc.Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}
	if evt.OrderID != "" {
		d.send(d.orderSubs[evt.OrderID], evt)
	}
	if evt.RecipientID != "" {
		d.send(d.userSubs[evt.RecipientID], evt)
	}
}

func (d *Dispatcher) send(subs map[chan portssvc.Event]struct{}, evt portssvc.Event) {
	for ch := range subs {
		select {
		case ch <- evt:
		default:
			// Subscriber is not keeping up; the event is dropped.
			d.logger.Debug("dropped event for slow subscriber",
				slog.String("kind", string(evt.Kind)),
				slog.String("order_id", evt.OrderID))
		}
	}
}

// SubscribeOrder registers for events about one order.
func (d *Dispatcher) SubscribeOrder(orderID string) (<-chan portssvc.Event, func()) {
	return d.subscribe(d.orderSubs, orderID)
}

// SubscribeUser registers for events addressed to one recipient.
func (d *Dispatcher) SubscribeUser(userID string) (<-chan portssvc.Event, func()) {
	return d.subscribe(d.userSubs, userID)
}

func (d *Dispatcher) subscribe(registry map[string]map[chan portssvc.Event]struct{}, key string) (<-chan portssvc.Event, func()) {
	ch := make(chan portssvc.Event, subscriberBuffer)

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	subs, ok := registry[key]
	if !ok {
		subs = make(map[chan portssvc.Event]struct{})
		registry[key] = subs
	}
	subs[ch] = struct{}{}
	d.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			subs, ok := registry[key]
			if !ok {
				return // Close already tore the registry down
			}
			if _, present := subs[ch]; !present {
				return
			}
			delete(subs, ch)
			if len(subs) == 0 {
				delete(registry, key)
			}
			close(ch)
		})
	}
	return ch, cancel
}

// Close drops all subscriptions and closes their channels. Publish becomes a
// no-op afterwards.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	for key, subs := range d.orderSubs {
		for ch := range subs {
			close(ch)
		}
		delete(d.orderSubs, key)
	}
	for key, subs := range d.userSubs {
		for ch := range subs {
			close(ch)
		}
		delete(d.userSubs, key)
	}
}
