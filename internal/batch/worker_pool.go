// Package batch coordinates concurrent processing of independent image jobs
// and tracks their shared progress.
package batch

import (
	"runtime"
	"sync"
)

// WorkerPool runs submitted jobs on a fixed number of goroutines. A job that
// times out internally still returns from its function, so the worker slot
// is always released.
type WorkerPool struct {
	workers  int
	jobQueue chan func()
	wg       sync.WaitGroup
	once     sync.Once
	closed   sync.Once
}

// NewWorkerPool creates a pool with the given concurrency. Non-positive
// worker counts default to the number of CPUs.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &WorkerPool{
		workers:  workers,
		jobQueue: make(chan func(), workers*2),
	}
}

// Start launches the workers. Safe to call more than once.
func (wp *WorkerPool) Start() {
	wp.once.Do(func() {
		for i := 0; i < wp.workers; i++ {
			go wp.worker()
		}
	})
}

func (wp *WorkerPool) worker() {
	for job := range wp.jobQueue {
		job()
		wp.wg.Done()
	}
}

// Submit queues a job. Blocks when the queue is full.
func (wp *WorkerPool) Submit(job func()) {
	wp.wg.Add(1)
	wp.jobQueue <- job
}

// Wait blocks until every submitted job has finished.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// Close shuts down the pool. Submitted jobs still drain.
func (wp *WorkerPool) Close() {
	wp.closed.Do(func() {
		close(wp.jobQueue)
	})
}
