// Package scheduler delivers best-effort, fire-and-forget reflection
// triggers: completing a task schedules an evening prompt that the UI picks
// up later. Delivery is non-blocking; a slow or absent consumer drops events
// rather than stalling the engine.
package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidTriggerTime = errors.New("scheduler: invalid trigger time")
	ErrStopped            = errors.New("scheduler: engine stopped")
)

type Kind string

const (
	KindEveningReflection Kind = "evening-reflection"
	KindChallengeReview   Kind = "challenge-review"
)

// ReflectionEvent asks the consumer to prompt the user for a reflection on
// the referenced task or challenge.
type ReflectionEvent struct {
	ID        string
	SubjectID string
	Kind      Kind
	Prompt    string
	TriggerAt time.Time
}

type eventHeap []ReflectionEvent

func (h eventHeap) Len() int            { return len(h) }
func (h eventHeap) Less(i, j int) bool  { return h[i].TriggerAt.Before(h[j].TriggerAt) }
func (h eventHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x any)         { *h = append(*h, x.(ReflectionEvent)) }
func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

type Engine struct {
	mu      sync.Mutex
	pending eventHeap
	out     chan ReflectionEvent
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	now     func() time.Time
	started bool
	stopped bool
	dropped uint64
}

type Option func(*Engine)

// WithClock substitutes the time source. Test hook.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(bufferSize int, opts ...Option) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	e := &Engine{
		pending: make(eventHeap, 0),
		out:     make(chan ReflectionEvent, bufferSize),
		wakeup:  make(chan struct{}, 1),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// C is the delivery channel. Closed after Stop drains the loop.
func (e *Engine) C() <-chan ReflectionEvent {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.pending)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

// Schedule queues an event. Events with a past trigger time fire on the next
// loop pass.
func (e *Engine) Schedule(ev ReflectionEvent) error {
	if ev.TriggerAt.IsZero() {
		return ErrInvalidTriggerTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrStopped
	}

	heap.Push(&e.pending, ev)
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
	return nil
}

// Dropped counts events lost to a full delivery channel.
func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

// Pending reports how many events are queued but not yet due.
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pending)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, ok := e.peek()
		if !ok {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := next.TriggerAt.Sub(e.now())
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			for _, ev := range e.popDue(e.now()) {
				select {
				case e.out <- ev:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			stopTimer(timer)
			return
		}
	}
}

func (e *Engine) peek() (ReflectionEvent, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.pending) == 0 {
		return ReflectionEvent{}, false
	}
	return e.pending[0], true
}

func (e *Engine) popDue(now time.Time) []ReflectionEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	due := make([]ReflectionEvent, 0)
	for len(e.pending) > 0 && !e.pending[0].TriggerAt.After(now) {
		due = append(due, heap.Pop(&e.pending).(ReflectionEvent))
	}
	return due
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
