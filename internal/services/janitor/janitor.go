// Package janitor reaps expired uploads and cached analysis artifacts.
//
// Go Pattern: A background goroutine with a ticker plus context-cancel
// shutdown. Start spawns the loop, Stop cancels its context and waits for
// it to exit — the same lifecycle shape as a worker pool, just with one
// goroutine and a clock instead of a job queue.
package janitor

import (
	"context"
	"log"
	"sync"
	"time"
)

// Sweepable is anything that can delete entries older than a cutoff.
// Both the document store and the artifact cache implement it.
type Sweepable interface {
	Sweep(cutoff time.Time) (int, error)
}

// Janitor periodically applies the retention policy.
type Janitor struct {
	targets  []Sweepable
	ttl      time.Duration
	interval time.Duration

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a janitor. A zero ttl disables reaping entirely — Start
// becomes a no-op and artifacts are kept forever.
func New(ttl, interval time.Duration, targets ...Sweepable) *Janitor {
	ctx, cancel := context.WithCancel(context.Background())
	return &Janitor{
		targets:  targets,
		ttl:      ttl,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start launches the sweep loop.
func (j *Janitor) Start() {
	if j.ttl <= 0 {
		log.Println("⚠️  Retention disabled (RETENTION_TTL=0); uploads and analyses are kept forever")
		return
	}

	log.Printf("🧹 Retention janitor started (ttl=%s, sweep every %s)", j.ttl, j.interval)
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		for {
			select {
			case <-j.ctx.Done():
				return
			case <-ticker.C:
				j.sweepOnce(time.Now())
			}
		}
	}()
}

// Stop cancels the loop and waits for it to finish.
func (j *Janitor) Stop() {
	j.cancel()
	j.wg.Wait()
}

// sweepOnce applies the cutoff to every target. Sweep failures are logged
// and skipped — a failed sweep just means the entry gets another chance on
// the next tick.
func (j *Janitor) sweepOnce(now time.Time) {
	cutoff := now.Add(-j.ttl)
	total := 0
	for _, target := range j.targets {
		removed, err := target.Sweep(cutoff)
		if err != nil {
			log.Printf("⚠️  Retention sweep failed: %v", err)
			continue
		}
		total += removed
	}
	if total > 0 {
		log.Printf("🧹 Retention sweep removed %d expired entries", total)
	}
}

// SweepNow runs one immediate sweep with the given clock value. Exposed so
// the policy is testable without waiting for a tick.
func (j *Janitor) SweepNow(now time.Time) {
	if j.ttl <= 0 {
		return
	}
	j.sweepOnce(now)
}
