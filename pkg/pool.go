package dirmerklehash

import "runtime"

// WorkerPool bounds the number of goroutines a walk may have hashing or
// expanding directories at once. The pool is constructed by the caller and
// passed into NewWalker, scoping its lifetime to the invocations that use
// it; there is no process-wide shared pool.
//
// Admission is a token bucket. Directory fan-out takes a token per child it
// wants to run concurrently and falls back to running the child inline on
// the parent's goroutine when none is available, so deep trees never
// deadlock waiting for workers that are themselves waiting.
type WorkerPool struct {
	tokens chan struct{}
}

// NewWorkerPool creates a pool admitting up to size concurrent workers.
// A size of zero or less selects the logical CPU count.
func NewWorkerPool(size int) *WorkerPool {
	if size <= 0 {
		size = runtime.NumCPU()
	}

	pool := &WorkerPool{
		tokens: make(chan struct{}, size),
	}
	for i := 0; i < size; i++ {
		pool.tokens <- struct{}{}
	}
	return pool
}

// Size returns the pool's admission limit.
func (p *WorkerPool) Size() int {
	return cap(p.tokens)
}

// Acquire takes a token, blocking until one is available.
func (p *WorkerPool) Acquire() {
	<-p.tokens
}

// TryAcquire takes a token if one is immediately available.
func (p *WorkerPool) TryAcquire() bool {
	select {
	case <-p.tokens:
		return true
	default:
		return false
	}
}

// Release returns a token to the pool.
func (p *WorkerPool) Release() {
	p.tokens <- struct{}{}
}
