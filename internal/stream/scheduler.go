package stream

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Scheduler runs callbacks on a single loop.
type Scheduler interface {
	Now() time.Time
	// Post queues fn to run on the loop. Safe to call from any goroutine.
	Post(fn func())
	// AfterFunc runs fn on the loop once d has elapsed. The returned stop
	// function keeps fn from running if it has not run yet; call it from the
	// loop.
	AfterFunc(d time.Duration, fn func()) (stop func())
}

// Loop is a real-time scheduler. Posted callbacks are read from Events by
// exactly one consumer, either Run or a UI update loop.
type Loop struct {
	events chan func()
	done   chan struct{}
	once   sync.Once
}

// NewLoop creates a loop whose queue holds up to buffer callbacks
func NewLoop(buffer int) *Loop {
	return &Loop{
		events: make(chan func(), buffer),
		done:   make(chan struct{}),
	}
}

func (l *Loop) Now() time.Time { return time.Now() }

// Post queues fn. After Close it is dropped.
func (l *Loop) Post(fn func()) {
	select {
	case <-l.done:
		return
	default:
	}
	select {
	case <-l.done:
	case l.events <- fn:
	}
}

func (l *Loop) AfterFunc(d time.Duration, fn func()) func() {
	var stopped atomic.Bool
	t := time.AfterFunc(d, func() {
		l.Post(func() {
			if !stopped.Load() {
				fn()
			}
		})
	})
	return func() {
		stopped.Store(true)
		t.Stop()
	}
}

// Events returns the queue of posted callbacks.
func (l *Loop) Events() <-chan func() {
	return l.events
}

// Done is closed by Close.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Run executes posted callbacks until ctx ends or the loop is closed.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.events:
			fn()
		}
	}
}

// Close stops accepting callbacks and releases blocked posters.
func (l *Loop) Close() {
	l.once.Do(func() { close(l.done) })
}

// VirtualScheduler runs callbacks against a manually advanced clock.
type VirtualScheduler struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*virtualTimer
	queue  []func()
}

type virtualTimer struct {
	due     time.Time
	seq     int
	fn      func()
	stopped bool
}

// NewVirtualScheduler creates a scheduler whose clock starts at the Unix epoch
func NewVirtualScheduler() *VirtualScheduler {
	return &VirtualScheduler{now: time.Unix(0, 0).UTC()}
}

func (s *VirtualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *VirtualScheduler) Post(fn func()) {
	s.mu.Lock()
	s.queue = append(s.queue, fn)
	s.mu.Unlock()
}

func (s *VirtualScheduler) AfterFunc(d time.Duration, fn func()) func() {
	s.mu.Lock()
	s.seq++
	t := &virtualTimer{due: s.now.Add(d), seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		t.stopped = true
		s.mu.Unlock()
	}
}

// Flush runs posted callbacks, including ones they post, until none remain.
func (s *VirtualScheduler) Flush() {
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.mu.Unlock()
			return
		}
		fn := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()
		fn()
	}
}

// Advance moves the clock forward by d, running due timers in order and
// flushing posted callbacks after each.
func (s *VirtualScheduler) Advance(d time.Duration) {
	s.Flush()
	s.mu.Lock()
	target := s.now.Add(d)
	s.mu.Unlock()
	for {
		s.mu.Lock()
		t := s.popDue(target)
		if t == nil {
			s.now = target
			s.mu.Unlock()
			break
		}
		s.now = t.due
		s.mu.Unlock()
		t.fn()
		s.Flush()
	}
	s.Flush()
}

// Pending returns the number of timers that have not fired or been stopped.
func (s *VirtualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// popDue removes and returns the earliest live timer due by target.
// Callers hold s.mu.
func (s *VirtualScheduler) popDue(target time.Time) *virtualTimer {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	s.timers = live
	sort.SliceStable(s.timers, func(i, j int) bool {
		if s.timers[i].due.Equal(s.timers[j].due) {
			return s.timers[i].seq < s.timers[j].seq
		}
		return s.timers[i].due.Before(s.timers[j].due)
	})
	if len(s.timers) == 0 || s.timers[0].due.After(target) {
		return nil
	}
	t := s.timers[0]
	s.timers = s.timers[1:]
	return t
}
