package runtime

import "sync"

// Notifier wakes watchers of a key after a write committed on it.
// Signals coalesce: a watcher that has not consumed the previous signal gets
// a single pending one.
type Notifier struct {
	mu       sync.Mutex
	watchers map[string]map[*Watch]struct{}
}

type Watch struct {
	c chan struct{}
}

func (w *Watch) C() <-chan struct{} { return w.c }

func NewNotifier() *Notifier {
	return &Notifier{watchers: make(map[string]map[*Watch]struct{})}
}

func (n *Notifier) Watch(key string) *Watch {
	n.mu.Lock()
	defer n.mu.Unlock()
	w := &Watch{c: make(chan struct{}, 1)}
	if _, ok := n.watchers[key]; !ok {
		n.watchers[key] = make(map[*Watch]struct{})
	}
	n.watchers[key][w] = struct{}{}
	return w
}

// Unwatch removes the watcher and drops the key once nobody listens to it.
func (n *Notifier) Unwatch(key string, w *Watch) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if set, ok := n.watchers[key]; ok {
		delete(set, w)
		if len(set) == 0 {
			delete(n.watchers, key)
		}
	}
}

func (n *Notifier) Notify(key string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for w := range n.watchers[key] {
		select {
		case w.c <- struct{}{}:
		default:
		}
	}
}
