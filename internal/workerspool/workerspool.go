// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package workerspool rations the goroutines the elementwise engine fans
// chunked work out to.
//
// The pool does not keep persistent workers: it admits short-lived goroutines
// up to a soft parallelism target. Chunk tasks are CPU-bound and never block
// each other, so a small multiple of the target is enough slack to keep every
// core busy while earlier chunks retire.
package workerspool

import (
	"runtime"
	"sync"
)

// Pool admits tasks up to a soft parallelism target.
//
// A target of 0 disables parallelism (tasks run inline); a negative target
// removes the limit entirely.
type Pool struct {
	maxParallelism int
	mu             sync.Mutex
	cond           sync.Cond // Signaled whenever numRunning decreases.
	numRunning     int
}

// New returns a Pool with the default parallelism target of runtime.NumCPU().
func New() *Pool {
	p := &Pool{}
	p.maxParallelism = runtime.NumCPU()
	p.cond = sync.Cond{L: &p.mu}
	return p
}

// IsEnabled reports whether parallelism is enabled (the target is not 0).
func (p *Pool) IsEnabled() bool {
	return p.maxParallelism != 0
}

// IsUnlimited reports whether the goroutine admission is unlimited (negative
// target).
func (p *Pool) IsUnlimited() bool {
	return p.maxParallelism < 0
}

// MaxParallelism returns the soft parallelism target. The goroutine limit is a
// small multiple of it. 0 means parallelism is disabled, negative means
// unlimited.
func (p *Pool) MaxParallelism() int {
	return p.maxParallelism
}

// SetMaxParallelism changes the target. Only call it while no tasks are
// running; changing it mid-flight leaves admission accounting undefined.
func (p *Pool) SetMaxParallelism(maxParallelism int) {
	p.maxParallelism = maxParallelism
}

// Admitting a little beyond the target keeps cores busy while finished tasks
// are still signaling their exit.
const goroutineToParallelismRatio = 2

// lockedIsFull reports whether admission is exhausted. Callers must hold p.mu.
func (p *Pool) lockedIsFull() bool {
	if p.maxParallelism == 0 {
		return true
	} else if p.maxParallelism < 0 {
		return false
	}
	return p.numRunning >= goroutineToParallelismRatio*p.maxParallelism
}

// lockedStart runs task in a goroutine tracked by numRunning. Callers must
// hold p.mu.
func (p *Pool) lockedStart(task func()) {
	p.numRunning++
	go func() {
		task()
		p.mu.Lock()
		p.numRunning--
		p.cond.Signal()
		p.mu.Unlock()
	}()
}

// WaitToStart blocks until the pool admits the task, then runs it in its own
// goroutine and returns. With parallelism disabled it runs the task inline
// and returns only when the task finished; don't lean on concurrency between
// tasks if the pool may be disabled.
func (p *Pool) WaitToStart(task func()) {
	if p.IsUnlimited() {
		go task()
		return
	} else if p.maxParallelism == 0 {
		task()
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for p.lockedIsFull() {
		p.cond.Wait()
	}
	p.lockedStart(task)
}

// StartIfAvailable runs the task in its own goroutine if the pool has room,
// and reports whether it did. The caller owns synchronizing with the task's
// completion.
func (p *Pool) StartIfAvailable(task func()) bool {
	if p.IsUnlimited() {
		go task()
		return true
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lockedIsFull() {
		return false
	}
	p.lockedStart(task)
	return true
}

// Saturate runs task once per parallelism slot, concurrently, and waits for
// all instances to return. With parallelism disabled it runs the task once,
// inline; with unlimited parallelism it runs a full admission's worth of
// instances.
func (p *Pool) Saturate(task func()) {
	n := p.maxParallelism
	if n == 0 {
		task()
		return
	}
	if n < 0 {
		n = goroutineToParallelismRatio * runtime.NumCPU()
	}
	var wg sync.WaitGroup
	wg.Add(n)
	for range n {
		go func() {
			defer wg.Done()
			task()
		}()
	}
	wg.Wait()
}
