package libdep

import (
	"context"
	"sync"
)

// scanJob is one module for a scan worker, with the slot its result goes
// into.
type scanJob struct {
	index  int
	module string
}

// scanModules scans modules with the Engine's worker count and returns
// their dependencies in the order given. Workers share the scanner: each
// module's result is private to its worker until the pool drains.
func (e *Engine) scanModules(ctx context.Context, modules []string, policy ScanPolicy) []*Dependencies {
	out := make([]*Dependencies, len(modules))
	if len(modules) == 0 {
		return out
	}
	s := e.scanner()

	numWorkers := min(e.workers, len(modules))
	if numWorkers <= 1 {
		for i, m := range modules {
			out[i] = s.scanModule(ctx, m, policy)
		}
		return out
	}

	jobs := make(chan scanJob, len(modules))
	for i, m := range modules {
		jobs <- scanJob{index: i, module: m}
	}
	close(jobs)

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				out[job.index] = s.scanModule(ctx, job.module, policy)
			}
		}()
	}
	wg.Wait()
	return out
}
