package server

import "sync"

// notifier fans out mapping reloads to /events listeners. Each listener
// receives the generation of the newest snapshot; a slow listener only ever
// sees the latest value.
type notifier struct {
	mu        sync.RWMutex
	listeners map[chan uint64]struct{}
}

func newNotifier() *notifier {
	return &notifier{listeners: make(map[chan uint64]struct{})}
}

// subscribe returns a channel receiving snapshot generations. Call
// unsubscribe when done.
func (n *notifier) subscribe() chan uint64 {
	ch := make(chan uint64, 1)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

func (n *notifier) unsubscribe(ch chan uint64) {
	n.mu.Lock()
	delete(n.listeners, ch)
	n.mu.Unlock()
	close(ch)
}

// broadcast never blocks; a pending value is replaced by gen.
func (n *notifier) broadcast(gen uint64) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch := range n.listeners {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- gen:
		default:
		}
	}
}

func (n *notifier) count() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}
