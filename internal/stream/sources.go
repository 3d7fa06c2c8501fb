package stream

import "context"

// Of emits values in order and completes.
func Of[T any](values ...T) Observable[T] {
	return Create(func(o Observer[T], sub *Subscription) {
		for _, v := range values {
			if sub.Closed() {
				return
			}
			o.Next(v)
		}
		o.Complete()
	})
}

// Empty completes without emitting.
func Empty[T any]() Observable[T] {
	return Create(func(o Observer[T], _ *Subscription) {
		o.Complete()
	})
}

// Never neither emits nor terminates.
func Never[T any]() Observable[T] {
	return Create(func(Observer[T], *Subscription) {})
}

// Throw fails immediately with err.
func Throw[T any](err error) Observable[T] {
	return Create(func(o Observer[T], _ *Subscription) {
		o.Error(err)
	})
}

// FromAsync runs fn on its own goroutine and posts the outcome to sched.
// Unsubscribing cancels fn's context; an outcome arriving after that is
// discarded.
func FromAsync[T any](sched Scheduler, fn func(ctx context.Context) (T, error)) Observable[T] {
	return Create(func(o Observer[T], sub *Subscription) {
		ctx, cancel := context.WithCancel(context.Background())
		sub.Add(cancel)
		go func() {
			v, err := fn(ctx)
			sched.Post(func() {
				if sub.Closed() {
					return
				}
				if err != nil {
					o.Error(err)
					return
				}
				o.Next(v)
				o.Complete()
			})
		}()
	})
}
