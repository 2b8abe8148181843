package worker

import (
	"testing"

	"github.com/shareboost/rewards-engine/internal/testing/leaktest"
)

func TestPool_StopReleasesWorkers(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	pool := NewPool(4, 16)
	pool.Start()

	var executed int32
	for i := 0; i < 8; i++ {
		pool.Enqueue(&testJob{executed: &executed})
	}

	pool.Stop()

	checker.Check(1)
}
