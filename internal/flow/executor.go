package flow

import (
	"sync"
	"time"
)

// Executor runs the controller's asynchronous work.
type Executor interface {
	// Go runs fn asynchronously.
	Go(fn func())
	// AfterFunc runs fn after d. The returned stop function prevents fn
	// from running if it has not started and reports whether it did so.
	AfterFunc(d time.Duration, fn func()) (stop func() bool)
}

// GoExecutor runs work on goroutines and timers and can wait for
// everything it started.
type GoExecutor struct {
	wg sync.WaitGroup
}

func (e *GoExecutor) Go(fn func()) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		fn()
	}()
}

func (e *GoExecutor) AfterFunc(d time.Duration, fn func()) func() bool {
	e.wg.Add(1)
	t := time.AfterFunc(d, func() {
		defer e.wg.Done()
		fn()
	})
	return func() bool {
		if t.Stop() {
			e.wg.Done()
			return true
		}
		return false
	}
}

// Wait blocks until all work started by Go and AfterFunc has finished or
// been stopped.
func (e *GoExecutor) Wait() {
	e.wg.Wait()
}

// ManualExecutor queues work until the test releases it, so completions
// can be delivered after a cancel or restart. Timers ignore their delay
// and queue like any other task.
type ManualExecutor struct {
	mu    sync.Mutex
	tasks []*manualTask
}

type manualTask struct {
	fn      func()
	stopped bool
}

func (m *ManualExecutor) Go(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = append(m.tasks, &manualTask{fn: fn})
}

func (m *ManualExecutor) AfterFunc(_ time.Duration, fn func()) func() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	task := &manualTask{fn: fn}
	m.tasks = append(m.tasks, task)
	return func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		if task.stopped || task.fn == nil {
			return false
		}
		task.stopped = true
		return true
	}
}

// Pending returns the number of queued tasks that have not been stopped.
func (m *ManualExecutor) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.tasks {
		if !t.stopped {
			n++
		}
	}
	return n
}

// RunNext runs the oldest queued task and reports whether one ran.
// Stopped tasks are dropped without running.
func (m *ManualExecutor) RunNext() bool {
	for {
		m.mu.Lock()
		if len(m.tasks) == 0 {
			m.mu.Unlock()
			return false
		}
		task := m.tasks[0]
		m.tasks = m.tasks[1:]
		if task.stopped {
			m.mu.Unlock()
			continue
		}
		fn := task.fn
		task.fn = nil
		m.mu.Unlock()

		fn()
		return true
	}
}

// RunAll runs tasks, including ones queued while running, until the
// queue is empty, and returns how many ran.
func (m *ManualExecutor) RunAll() int {
	n := 0
	for m.RunNext() {
		n++
	}
	return n
}
