package stream

// Share multicasts the source to all concurrent subscribers. The source is
// connected on the first subscription and released when the last one leaves
// or the source terminates; a later subscriber reconnects.
func (o Observable[T]) Share() Observable[T] {
	var (
		subject *Subject[T]
		conn    *Subscription
		refs    int
	)
	reset := func(s *Subject[T]) {
		if subject == s {
			subject = nil
			conn = nil
		}
	}
	return Create(func(out Observer[T], sub *Subscription) {
		s := subject
		first := s == nil
		if first {
			s = NewSubject[T]()
			subject = s
		}
		refs++
		forward(s.Observable(), sub, out)
		sub.Add(func() {
			refs--
			if refs == 0 && subject == s {
				c := conn
				reset(s)
				if c != nil {
					c.Unsubscribe()
				}
			}
		})
		if !first {
			return
		}
		c := o.SubscribeWith(Observer[T]{
			Next: s.Next,
			Error: func(err error) {
				reset(s)
				s.Error(err)
			},
			Complete: func() {
				reset(s)
				s.Complete()
			},
		})
		if subject == s {
			conn = c
		} else {
			c.Unsubscribe()
		}
	})
}

// ShareReplay multicasts the source and replays the last n values to every
// new subscriber. Once connected the source stays connected; an error
// resets it so the next subscriber reconnects.
func (o Observable[T]) ShareReplay(n int) Observable[T] {
	return o.shareReplay(n, nil)
}

// ShareReplayUntil is ShareReplay with the connection owned by owner. When
// owner is unsubscribed the source is released and subscribers complete.
func (o Observable[T]) ShareReplayUntil(n int, owner *Subscription) Observable[T] {
	return o.shareReplay(n, owner)
}

func (o Observable[T]) shareReplay(n int, owner *Subscription) Observable[T] {
	var subject *ReplaySubject[T]
	return Create(func(out Observer[T], sub *Subscription) {
		s := subject
		first := s == nil
		if first {
			s = NewReplaySubject[T](n)
			subject = s
		}
		forward(s.Observable(), sub, out)
		if !first {
			return
		}
		conn := o.SubscribeWith(Observer[T]{
			Next: s.Next,
			Error: func(err error) {
				if subject == s {
					subject = nil
				}
				s.Error(err)
			},
			Complete: s.Complete,
		})
		if owner != nil {
			owner.Add(func() {
				conn.Unsubscribe()
				if subject == s {
					subject = nil
				}
				s.Complete()
			})
		}
	})
}
