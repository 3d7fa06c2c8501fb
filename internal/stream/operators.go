package stream

import "time"

// Map transforms every value with fn.
func Map[T, R any](src Observable[T], fn func(T) R) Observable[R] {
	return Create(func(o Observer[R], sub *Subscription) {
		forward(src, sub, Observer[T]{
			Next:     func(v T) { o.Next(fn(v)) },
			Error:    o.Error,
			Complete: o.Complete,
		})
	})
}

// Scan emits the running fold of the source, starting from seed.
func Scan[T, A any](src Observable[T], fn func(acc A, v T) A, seed A) Observable[A] {
	return Create(func(o Observer[A], sub *Subscription) {
		acc := seed
		forward(src, sub, Observer[T]{
			Next: func(v T) {
				acc = fn(acc, v)
				o.Next(acc)
			},
			Error:    o.Error,
			Complete: o.Complete,
		})
	})
}

// DistinctUntilChanged drops values equal to the previously emitted one.
func DistinctUntilChanged[T comparable](src Observable[T]) Observable[T] {
	return Create(func(o Observer[T], sub *Subscription) {
		var last T
		seen := false
		forward(src, sub, Observer[T]{
			Next: func(v T) {
				if seen && v == last {
					return
				}
				seen = true
				last = v
				o.Next(v)
			},
			Error:    o.Error,
			Complete: o.Complete,
		})
	})
}

// Filter passes only values for which pred is true.
func (o Observable[T]) Filter(pred func(T) bool) Observable[T] {
	return Create(func(out Observer[T], sub *Subscription) {
		forward(o, sub, Observer[T]{
			Next: func(v T) {
				if pred(v) {
					out.Next(v)
				}
			},
			Error:    out.Error,
			Complete: out.Complete,
		})
	})
}

// StartWith emits values before the source's own.
func (o Observable[T]) StartWith(values ...T) Observable[T] {
	return Create(func(out Observer[T], sub *Subscription) {
		for _, v := range values {
			if sub.Closed() {
				return
			}
			out.Next(v)
		}
		forward(o, sub, out)
	})
}

// Take emits the first n values and completes.
func (o Observable[T]) Take(n int) Observable[T] {
	return Create(func(out Observer[T], sub *Subscription) {
		if n <= 0 {
			out.Complete()
			return
		}
		count := 0
		forward(o, sub, Observer[T]{
			Next: func(v T) {
				count++
				out.Next(v)
				if count >= n {
					out.Complete()
				}
			},
			Error:    out.Error,
			Complete: out.Complete,
		})
	})
}

// Tap calls fn for every value without altering the stream.
func (o Observable[T]) Tap(fn func(T)) Observable[T] {
	return Create(func(out Observer[T], sub *Subscription) {
		forward(o, sub, Observer[T]{
			Next: func(v T) {
				fn(v)
				out.Next(v)
			},
			Error:    out.Error,
			Complete: out.Complete,
		})
	})
}

// Debounce emits a value only after d has passed without a newer one. A
// pending value is flushed when the source completes.
func (o Observable[T]) Debounce(sched Scheduler, d time.Duration) Observable[T] {
	return Create(func(out Observer[T], sub *Subscription) {
		var (
			pending T
			has     bool
			stop    func()
		)
		cancel := func() {
			if stop != nil {
				stop()
				stop = nil
			}
		}
		sub.Add(cancel)
		forward(o, sub, Observer[T]{
			Next: func(v T) {
				cancel()
				pending, has = v, true
				stop = sched.AfterFunc(d, func() {
					stop = nil
					if !has {
						return
					}
					v := pending
					var zero T
					pending, has = zero, false
					out.Next(v)
				})
			},
			Error: func(err error) {
				cancel()
				out.Error(err)
			},
			Complete: func() {
				cancel()
				if has {
					has = false
					out.Next(pending)
				}
				out.Complete()
			},
		})
	})
}

// SwitchMap projects every source value to an inner observable and mirrors
// only the most recent one; the previous inner subscription is released as
// soon as a new value arrives.
func SwitchMap[T, R any](src Observable[T], project func(T) Observable[R]) Observable[R] {
	return Create(func(o Observer[R], sub *Subscription) {
		var (
			inner       *Subscription
			generation  int
			innerActive bool
			outerDone   bool
		)
		sub.Add(func() {
			if inner != nil {
				inner.Unsubscribe()
			}
		})
		forward(src, sub, Observer[T]{
			Next: func(v T) {
				generation++
				id := generation
				if inner != nil {
					inner.Unsubscribe()
					inner = nil
				}
				innerActive = true
				s := project(v).SubscribeWith(Observer[R]{
					Next: func(r R) {
						if id == generation {
							o.Next(r)
						}
					},
					Error: func(err error) {
						if id == generation {
							o.Error(err)
						}
					},
					Complete: func() {
						if id != generation {
							return
						}
						innerActive = false
						if outerDone {
							o.Complete()
						}
					},
				})
				switch {
				case id != generation:
					s.Unsubscribe()
				case !s.Closed():
					inner = s
				}
			},
			Error: o.Error,
			Complete: func() {
				outerDone = true
				if !innerActive {
					o.Complete()
				}
			},
		})
	})
}

// Merge interleaves the values of all sources and completes when every source
// has completed.
func Merge[T any](sources ...Observable[T]) Observable[T] {
	return Create(func(o Observer[T], sub *Subscription) {
		remaining := len(sources)
		if remaining == 0 {
			o.Complete()
			return
		}
		for _, src := range sources {
			forward(src, sub, Observer[T]{
				Next:  o.Next,
				Error: o.Error,
				Complete: func() {
					remaining--
					if remaining == 0 {
						o.Complete()
					}
				},
			})
		}
	})
}

// CatchError replaces a failed source with the observable returned by handler.
func (o Observable[T]) CatchError(handler func(error) Observable[T]) Observable[T] {
	return Create(func(out Observer[T], sub *Subscription) {
		forward(o, sub, Observer[T]{
			Next:     out.Next,
			Complete: out.Complete,
			Error: func(err error) {
				forward(handler(err), sub, out)
			},
		})
	})
}
