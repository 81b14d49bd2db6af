package service

import (
	"context"
	"sync"
)

// ─────────────────────────────────────────────────────────────
// RunningGuard — single-flight guard for named tasks
// ─────────────────────────────────────────────────────────────

// RunningGuard ensures only one instance of a named task runs at a time.
// Used to keep backup runs from overlapping and to reject a second import
// while one is in flight.
//
// The zero value is ready to use.
type RunningGuard struct {
	mu     sync.Mutex
	active map[string]struct{}
	wg     sync.WaitGroup
}

// Acquire marks task as running and returns a release func. When the task is
// already in flight it returns (nil, false). The release func is safe to call
// more than once; only the first call takes effect.
func (g *RunningGuard) Acquire(task string) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.active == nil {
		g.active = make(map[string]struct{})
	}
	if _, busy := g.active[task]; busy {
		return nil, false
	}
	g.active[task] = struct{}{}
	g.wg.Add(1)

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.active, task)
			g.mu.Unlock()
			g.wg.Done()
		})
	}, true
}

// WaitAll blocks until every acquired task has been released or ctx is
// cancelled.
func (g *RunningGuard) WaitAll(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}
