package stream

// Subject is both an observer and a multicast observable. It is not safe for
// concurrent use; drive it from the scheduler loop.
type Subject[T any] struct {
	observers []*subjectObserver[T]
	stopped   bool
	err       error
}

type subjectObserver[T any] struct {
	obs Observer[T]
	sub *Subscription
}

// NewSubject creates a subject with no observers
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{}
}

// Next delivers v to every current observer.
func (s *Subject[T]) Next(v T) {
	if s.stopped {
		return
	}
	for _, so := range s.snapshot() {
		if !so.sub.Closed() {
			so.obs.Next(v)
		}
	}
}

// Error terminates the subject and every current observer.
func (s *Subject[T]) Error(err error) {
	if s.stopped {
		return
	}
	s.stopped = true
	s.err = err
	observers := s.snapshot()
	s.observers = nil
	for _, so := range observers {
		so.obs.Error(err)
	}
}

// Complete terminates the subject and every current observer.
func (s *Subject[T]) Complete() {
	if s.stopped {
		return
	}
	s.stopped = true
	observers := s.snapshot()
	s.observers = nil
	for _, so := range observers {
		so.obs.Complete()
	}
}

// Observers returns the number of live observers.
func (s *Subject[T]) Observers() int {
	return len(s.observers)
}

// Observable exposes the subject as a read-only observable.
func (s *Subject[T]) Observable() Observable[T] {
	return Create(s.attach)
}

func (s *Subject[T]) attach(o Observer[T], sub *Subscription) {
	if s.stopped {
		s.terminate(o)
		return
	}
	so := &subjectObserver[T]{obs: o, sub: sub}
	s.observers = append(s.observers, so)
	sub.Add(func() { s.remove(so) })
}

func (s *Subject[T]) terminate(o Observer[T]) {
	if s.err != nil {
		o.Error(s.err)
		return
	}
	o.Complete()
}

func (s *Subject[T]) remove(target *subjectObserver[T]) {
	for i, so := range s.observers {
		if so == target {
			s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
			return
		}
	}
}

func (s *Subject[T]) snapshot() []*subjectObserver[T] {
	return append([]*subjectObserver[T](nil), s.observers...)
}

// BehaviorSubject holds a current value and emits it to every new observer.
type BehaviorSubject[T any] struct {
	Subject[T]
	value T
}

// NewBehaviorSubject creates a subject whose current value is initial
func NewBehaviorSubject[T any](initial T) *BehaviorSubject[T] {
	return &BehaviorSubject[T]{value: initial}
}

// Value returns the current value.
func (b *BehaviorSubject[T]) Value() T {
	return b.value
}

// Next stores v as the current value and delivers it.
func (b *BehaviorSubject[T]) Next(v T) {
	if b.stopped {
		return
	}
	b.value = v
	b.Subject.Next(v)
}

// Observable exposes the subject; observers receive the current value first.
func (b *BehaviorSubject[T]) Observable() Observable[T] {
	return Create(func(o Observer[T], sub *Subscription) {
		if b.stopped {
			b.terminate(o)
			return
		}
		b.attach(o, sub)
		o.Next(b.value)
	})
}

// ReplaySubject replays up to size past values to every new observer.
type ReplaySubject[T any] struct {
	Subject[T]
	size   int
	buffer []T
}

// NewReplaySubject creates a replay subject bounded to size values
func NewReplaySubject[T any](size int) *ReplaySubject[T] {
	if size < 1 {
		size = 1
	}
	return &ReplaySubject[T]{size: size}
}

// Next records v and delivers it.
func (r *ReplaySubject[T]) Next(v T) {
	if r.stopped {
		return
	}
	r.buffer = append(r.buffer, v)
	if len(r.buffer) > r.size {
		r.buffer = r.buffer[len(r.buffer)-r.size:]
	}
	r.Subject.Next(v)
}

// Observable exposes the subject; observers receive the buffered values first.
func (r *ReplaySubject[T]) Observable() Observable[T] {
	return Create(func(o Observer[T], sub *Subscription) {
		replay := append([]T(nil), r.buffer...)
		if r.stopped {
			for _, v := range replay {
				o.Next(v)
			}
			r.terminate(o)
			return
		}
		r.attach(o, sub)
		for _, v := range replay {
			if sub.Closed() {
				return
			}
			o.Next(v)
		}
	})
}
