package parallel

import (
	"sync/atomic"
	"testing"
)

func TestPoolRunsEveryTask(t *testing.T) {
	for _, workers := range []int{0, 1, 4} {
		pool := Start(workers)
		var count atomic.Int64
		for range 100 {
			pool.Do(func() { count.Add(1) })
		}
		pool.Wait(true)
		if got := count.Load(); got != 100 {
			t.Errorf("workers=%d: ran %d tasks, want 100", workers, got)
		}
	}
}

func TestPoolWaitTwice(t *testing.T) {
	pool := Start(3)
	var count atomic.Int64
	for range 10 {
		pool.Do(func() { count.Add(1) })
	}
	pool.Wait(false)
	if got := count.Load(); got != 10 {
		t.Fatalf("after first wait: %d", got)
	}
	for range 10 {
		pool.Do(func() { count.Add(1) })
	}
	pool.Wait(true)
	if got := count.Load(); got != 20 {
		t.Fatalf("after second wait: %d", got)
	}
}

func TestRowsCoversEveryRow(t *testing.T) {
	for _, workers := range []int{1, 3, 8} {
		pool := Start(workers)
		for _, height := range []int{0, 1, 7, 100} {
			hits := make([]atomic.Int32, height)
			pool.Rows(height, func(y0, y1 int) {
				for y := y0; y < y1; y++ {
					hits[y].Add(1)
				}
			})
			for y := range hits {
				if n := hits[y].Load(); n != 1 {
					t.Errorf("workers=%d height=%d: row %d visited %d times", workers, height, y, n)
				}
			}
		}
		pool.Wait(true)
	}
}

func TestWorkers(t *testing.T) {
	pool := Start(5)
	defer pool.Wait(true)
	if got := pool.Workers(); got != 5 {
		t.Errorf("got %d workers", got)
	}

	auto := Start(0)
	defer auto.Wait(true)
	if got := auto.Workers(); got < 1 {
		t.Errorf("got %d workers", got)
	}
}
