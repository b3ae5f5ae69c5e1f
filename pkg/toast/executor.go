package toast

import "sync"

// Executor runs scheduler work one function at a time in submission order.
// Execute must not block. It reports whether fn was accepted; work refused
// by a stopped executor never runs.
type Executor interface {
	Execute(fn func()) bool
}

// Inline runs work on the calling goroutine. Work submitted while another
// function is running is queued and run once that function returns, so
// callbacks never re-enter the scheduler.
type Inline struct {
	mu      sync.Mutex
	running bool
	pending []func()
}

func (e *Inline) Execute(fn func()) bool {
	e.mu.Lock()
	e.pending = append(e.pending, fn)
	if e.running {
		e.mu.Unlock()
		return true
	}
	e.running = true

	for len(e.pending) > 0 {
		next := e.pending[0]
		e.pending[0] = nil
		e.pending = e.pending[1:]
		e.mu.Unlock()
		next()
		e.mu.Lock()
	}
	e.running = false
	e.mu.Unlock()
	return true
}

// Loop runs work on a dedicated goroutine with an unbounded FIFO.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	closed bool
	wake   chan struct{}
	done   chan struct{}
}

// NewLoop starts a loop goroutine. Stop it with Close.
func NewLoop() *Loop {
	l := &Loop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go l.run()
	return l
}

// Execute queues fn. It returns false once Close has been called.
func (l *Loop) Execute(fn func()) bool {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
	l.signal()
	return true
}

// Close runs the work queued so far and stops the goroutine.
// It must not be called from work running on the loop.
func (l *Loop) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
	l.signal()
	<-l.done
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		l.mu.Lock()
		batch := l.queue
		l.queue = nil
		closed := l.closed
		l.mu.Unlock()

		for _, fn := range batch {
			fn()
		}
		if len(batch) > 0 {
			continue
		}
		if closed {
			return
		}
		<-l.wake
	}
}
