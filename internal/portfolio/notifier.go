package portfolio

import "sync"

// Notifier broadcasts a zero-payload change signal to any number of
// subscribers. Listeners must re-fetch the document through the service;
// the signal intentionally carries no data. Delivery order across
// subscribers is unspecified, but every save/reset happens-before the
// notification it raises.
type Notifier struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan struct{}
}

// NewNotifier constructs a Notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]chan struct{})}
}

// Subscribe registers a listener. The returned channel receives one signal
// per change (coalesced when the listener lags); cancel removes the
// subscription and must be called to avoid leaking it.
func (n *Notifier) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.subs[id] = ch
	n.mu.Unlock()

	cancel := func() {
		n.mu.Lock()
		delete(n.subs, id)
		n.mu.Unlock()
	}
	return ch, cancel
}

// Notify signals all current subscribers without blocking. A subscriber
// with an undelivered signal pending is not signaled again.
func (n *Notifier) Notify() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
