package stream

// latest tracks which inputs of a combine-latest have produced a value.
type latest struct {
	has       []bool
	seen      int
	completed int
}

func newLatest(n int) *latest {
	return &latest{has: make([]bool, n)}
}

// set marks input i as having a value and reports whether all inputs do.
func (l *latest) set(i int) bool {
	if !l.has[i] {
		l.has[i] = true
		l.seen++
	}
	return l.seen == len(l.has)
}

// complete marks input i as done and reports whether the combination is
// finished: either every input completed or i completed without a value.
func (l *latest) complete(i int) bool {
	l.completed++
	return !l.has[i] || l.completed == len(l.has)
}

// CombineLatest2 emits fn of the latest values once both sources have
// emitted, and again on every later emission from either.
func CombineLatest2[A, B, R any](a Observable[A], b Observable[B], fn func(A, B) R) Observable[R] {
	return Create(func(o Observer[R], sub *Subscription) {
		l := newLatest(2)
		var (
			va A
			vb B
		)
		emit := func(i int) {
			if l.set(i) {
				o.Next(fn(va, vb))
			}
		}
		done := func(i int) func() {
			return func() {
				if l.complete(i) {
					o.Complete()
				}
			}
		}
		forward(a, sub, Observer[A]{Next: func(v A) { va = v; emit(0) }, Error: o.Error, Complete: done(0)})
		forward(b, sub, Observer[B]{Next: func(v B) { vb = v; emit(1) }, Error: o.Error, Complete: done(1)})
	})
}

// CombineLatest4 is CombineLatest2 over four sources.
func CombineLatest4[A, B, C, D, R any](a Observable[A], b Observable[B], c Observable[C], d Observable[D], fn func(A, B, C, D) R) Observable[R] {
	return Create(func(o Observer[R], sub *Subscription) {
		l := newLatest(4)
		var (
			va A
			vb B
			vc C
			vd D
		)
		emit := func(i int) {
			if l.set(i) {
				o.Next(fn(va, vb, vc, vd))
			}
		}
		done := func(i int) func() {
			return func() {
				if l.complete(i) {
					o.Complete()
				}
			}
		}
		forward(a, sub, Observer[A]{Next: func(v A) { va = v; emit(0) }, Error: o.Error, Complete: done(0)})
		forward(b, sub, Observer[B]{Next: func(v B) { vb = v; emit(1) }, Error: o.Error, Complete: done(1)})
		forward(c, sub, Observer[C]{Next: func(v C) { vc = v; emit(2) }, Error: o.Error, Complete: done(2)})
		forward(d, sub, Observer[D]{Next: func(v D) { vd = v; emit(3) }, Error: o.Error, Complete: done(3)})
	})
}
