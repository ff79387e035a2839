package worker_test

import (
	"strconv"
	"testing"

	"github.com/remaimber-it/imagequiz/internal/worker"
)

func TestPool_RunsAllJobs(t *testing.T) {
	pool := worker.NewPool[int](3, 2)

	go func() {
		for i := 0; i < 50; i++ {
			n := i
			pool.Submit(strconv.Itoa(n), func() int { return n * n })
		}
		pool.Close()
	}()

	seen := make(map[string]int)
	for res := range pool.Results() {
		seen[res.JobID] = res.Output
	}

	if len(seen) != 50 {
		t.Fatalf("expected 50 results, got %d", len(seen))
	}
	if seen["7"] != 49 {
		t.Errorf("expected job 7 to yield 49, got %d", seen["7"])
	}
}

func TestPool_CloseTwice(t *testing.T) {
	pool := worker.NewPool[string](0, 0)
	pool.Close()
	pool.Close()

	if _, ok := <-pool.Results(); ok {
		t.Error("expected results to be closed with no jobs")
	}
}
