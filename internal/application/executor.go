package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	ErrExecutorStopped = errors.New("executor stopped")
	errExecutorRunning = errors.New("executor is already running")
)

// Executor runs closures one at a time on a single goroutine. Every piece of
// coordinator state is only touched from inside a closure passed to Do.
type Executor struct {
	mu       sync.RWMutex
	running  bool
	tasks    chan task
	stopChan chan struct{}
	done     chan struct{}

	postMu sync.Mutex
	posted []func()
	wake   chan struct{}
}

type task struct {
	fn       func()
	response chan *taskPanic
}

type taskPanic struct {
	value any
}

func NewExecutor() *Executor {
	return &Executor{
		tasks:    make(chan task, 64),
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
		wake:     make(chan struct{}, 1),
	}
}

func (e *Executor) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		return errExecutorRunning
	}
	select {
	case <-e.stopChan:
		return ErrExecutorStopped
	default:
	}

	e.running = true
	go e.loop()

	return nil
}

// Stop waits for the closure in flight, if any, and rejects everything after.
func (e *Executor) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	close(e.stopChan)
	e.mu.Unlock()

	<-e.done
}

func (e *Executor) IsRunning() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.running
}

// Do queues fn and blocks until it has run. ctx only bounds the wait for a
// queue slot: once fn starts it runs to completion. A panic inside fn is
// re-raised on the calling goroutine. Calling Do from inside fn deadlocks.
func (e *Executor) Do(ctx context.Context, fn func()) error {
	if !e.IsRunning() {
		return ErrExecutorStopped
	}

	t := task{fn: fn, response: make(chan *taskPanic, 1)}
	select {
	case e.tasks <- t:
	case <-e.stopChan:
		return ErrExecutorStopped
	case <-ctx.Done():
		return fmt.Errorf("queue task: %w", ctx.Err())
	}

	select {
	case p := <-t.response:
		if p != nil {
			panic(p.value)
		}
		return nil
	case <-e.done:
		// The loop may have finished this task right before exiting.
		select {
		case p := <-t.response:
			if p != nil {
				panic(p.value)
			}
			return nil
		default:
			return ErrExecutorStopped
		}
	}
}

// Post queues fn without waiting for it, so it is safe to call from inside a
// closure already running on the executor. Posted closures run in order and
// before any Do queued after them. There is no caller to re-raise a panic on,
// so a panicking posted closure takes the worker down.
func (e *Executor) Post(fn func()) error {
	if !e.IsRunning() {
		return ErrExecutorStopped
	}

	e.postMu.Lock()
	e.posted = append(e.posted, fn)
	e.postMu.Unlock()

	select {
	case e.wake <- struct{}{}:
	default:
	}
	return nil
}

func (e *Executor) loop() {
	defer close(e.done)

	for {
		select {
		case <-e.stopChan:
			return
		case <-e.wake:
			e.drainPosted()
		case t := <-e.tasks:
			e.drainPosted()
			t.response <- run(t.fn)
		}
	}
}

func (e *Executor) drainPosted() {
	e.postMu.Lock()
	fns := e.posted
	e.posted = nil
	e.postMu.Unlock()

	for _, fn := range fns {
		if p := run(fn); p != nil {
			panic(p.value)
		}
	}
}

func run(fn func()) (p *taskPanic) {
	defer func() {
		if r := recover(); r != nil {
			p = &taskPanic{value: r}
		}
	}()

	fn()
	return nil
}
