package persistence

import "sync"

// CompactionListener is notified after every successful full rewrite of
// the datafile, including the self-healing compaction at the end of a
// load. Collaborators use it for cache invalidation or monitoring.
//
// Listeners run synchronously on the goroutine that performed the
// compaction and must not call back into the coordinator.
type CompactionListener func()

// compactionNotifier fans a completion event out to every subscriber.
type compactionNotifier struct {
	mu        sync.Mutex
	listeners []CompactionListener
}

func (n *compactionNotifier) subscribe(l CompactionListener) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listeners = append(n.listeners, l)
}

func (n *compactionNotifier) notify() {
	n.mu.Lock()
	listeners := make([]CompactionListener, len(n.listeners))
	copy(listeners, n.listeners)
	n.mu.Unlock()

	for _, l := range listeners {
		l()
	}
}
