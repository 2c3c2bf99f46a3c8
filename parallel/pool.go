// Package parallel runs closures on a fixed set of worker goroutines.
package parallel

import (
	"runtime"
	"sync"
)

type (
	WorkerFunc func(func())
	WaitFunc   func(done bool)
	CancelFunc func()
)

// Pool is a fixed size worker pool. With a single worker, Do runs the
// task inline.
type Pool struct {
	wg      sync.WaitGroup
	workers int
	Do      WorkerFunc
	Wait    WaitFunc
	Cancel  CancelFunc
}

// Start launches numWorkers goroutines, or GOMAXPROCS of them when
// numWorkers < 1.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		workers: numWorkers,
		Do: func(f func()) {
			f()
		},
		Wait:   func(bool) {},
		Cancel: func() {},
	}

	if numWorkers > 1 {
		workChan := make(chan func(), numWorkers)

		for range numWorkers {
			pool.wg.Go(func() {
				for f := range workChan {
					f()
				}
			})
		}

		// tasks queued for a later Wait(false) are tracked separately from
		// the workers so a pool can be waited on more than once
		var pending sync.WaitGroup
		pool.Do = func(f func()) {
			pending.Add(1)
			workChan <- func() {
				defer pending.Done()
				f()
			}
		}

		pool.Wait = func(done bool) {
			pending.Wait()
			if done {
				pool.Cancel()
				pool.wg.Wait()
			}
		}
		pool.Cancel = sync.OnceFunc(func() { close(workChan) })
	}

	return pool
}

// Workers is the number of goroutines serving the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// Rows splits [0, height) into bands, one per worker, runs fn on each band
// and returns once all of them finished. The pool stays usable.
func (p *Pool) Rows(height int, fn func(y0, y1 int)) {
	if height <= 0 {
		return
	}
	bands := min(p.workers, height)
	step := (height + bands - 1) / bands

	var wg sync.WaitGroup
	for y0 := 0; y0 < height; y0 += step {
		y1 := min(y0+step, height)
		wg.Add(1)
		p.Do(func() {
			defer wg.Done()
			fn(y0, y1)
		})
	}
	wg.Wait()
}
