package persistence

import (
	"context"
	"sync"
	"time"
)

// MinAutocompactionInterval is the floor applied to requested
// autocompaction intervals. Smaller requests are clamped, not rejected.
var MinAutocompactionInterval = 5 * time.Second

type autocompactor struct {
	mu     sync.Mutex
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// StartAutocompaction begins a recurring compaction schedule with the
// given interval, clamped to MinAutocompactionInterval. A running
// schedule is replaced. The ticker goroutine runs each compaction
// synchronously in its own loop, so the same timer never overlaps itself;
// owners that serialize operations should route the work through
// Options.CompactExec.
func (p *Persistence) StartAutocompaction(interval time.Duration) {
	if interval < MinAutocompactionInterval {
		interval = MinAutocompactionInterval
	}

	p.StopAutocompaction()

	p.ac.mu.Lock()
	defer p.ac.mu.Unlock()

	stopCh := make(chan struct{})
	p.ac.stopCh = stopCh
	p.ac.wg.Add(1)

	go func() {
		defer p.ac.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				if !p.working() {
					continue
				}
				run := func() {
					if err := p.Compact(context.Background()); err != nil {
						p.logger.LogCompaction(context.Background(), p.opts.Filename, 0, err)
					}
				}
				if p.opts.CompactExec != nil {
					p.opts.CompactExec(run)
				} else {
					run()
				}
			}
		}
	}()
}

// StopAutocompaction cancels the schedule and waits for the ticker
// goroutine to exit. It is idempotent and safe to call repeatedly; an
// in-flight compaction runs to completion first, preserving the
// no-torn-rewrite property.
func (p *Persistence) StopAutocompaction() {
	p.ac.mu.Lock()
	stopCh := p.ac.stopCh
	p.ac.stopCh = nil
	p.ac.mu.Unlock()

	if stopCh == nil {
		return
	}
	close(stopCh)
	p.ac.wg.Wait()
}

// working reports whether the coordinator is in a state the schedule may
// fire in.
func (p *Persistence) working() bool {
	switch p.Status() {
	case StatusReady, StatusCompacting, StatusAppending:
		return true
	default:
		return false
	}
}
