package stream

import (
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Stream is a multicast push channel. Values pushed with Next are delivered
// to every current subscriber synchronously, in subscription order, on the
// caller's goroutine.
//
// A broadcast stream (NewBroadcast) additionally replays its most recently
// emitted value to each new subscriber at subscribe time, which makes it
// suitable for carrying state: a late subscriber immediately observes the
// current value. An action stream (NewAction) performs no replay; a fresh
// subscriber only receives future emissions, which makes it suitable as a
// dispatch entry point.
//
// Stream is safe for concurrent use. Delivery happens outside the internal
// lock, so subscribers may subscribe, release, or push further values from
// within a callback without deadlocking.
type Stream[T any] struct {
	mu       sync.Mutex
	subs     []*subscriber[T]
	last     T
	hasLast  bool
	replay   bool
	emitting bool
	pending  []T
	logger   *slog.Logger
}

type subscriber[T any] struct {
	id       uuid.UUID
	fn       func(T)
	released bool // guarded by the stream's mutex
}

// NewBroadcast creates a stream that replays its last emitted value to new
// subscribers.
func NewBroadcast[T any](opts ...Option) *Stream[T] {
	return newStream[T](true, opts)
}

// NewAction creates a stream without replay, conventionally used as an
// action channel: producers push payloads with Next and reducers subscribe.
func NewAction[T any](opts ...Option) *Stream[T] {
	return newStream[T](false, opts)
}

func newStream[T any](replay bool, opts []Option) *Stream[T] {
	cfg := options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Stream[T]{
		replay: replay,
		logger: cfg.logger,
	}
}

// Next delivers v to all current subscribers in subscription order.
//
// When Next is called from within a subscriber callback of the same stream,
// the nested value is queued and delivered after the current emission has
// been fully delivered, so every subscriber observes every value in the
// order the values were pushed.
func (s *Stream[T]) Next(v T) {
	s.mu.Lock()
	if s.emitting {
		s.pending = append(s.pending, v)
		s.mu.Unlock()
		return
	}
	s.emitting = true
	s.mu.Unlock()

	s.deliver(v)

	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.emitting = false
			s.mu.Unlock()
			return
		}
		v = s.pending[0]
		s.pending = s.pending[1:]
		s.mu.Unlock()
		s.deliver(v)
	}
}

func (s *Stream[T]) deliver(v T) {
	s.mu.Lock()
	if s.replay {
		// Recorded before delivery so a subscriber added from within a
		// callback replays the value currently being delivered instead of
		// the previous one.
		s.last = v
		s.hasLast = true
	}
	snapshot := make([]*subscriber[T], len(s.subs))
	copy(snapshot, s.subs)
	s.mu.Unlock()

	for _, sub := range snapshot {
		s.mu.Lock()
		released := sub.released
		s.mu.Unlock()
		if released {
			continue
		}
		s.invoke(sub, v)
	}
}

// invoke runs a single subscriber callback, isolating panics so one faulty
// subscriber cannot prevent delivery to the rest.
func (s *Stream[T]) invoke(sub *subscriber[T], v T) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("stream subscriber panicked",
				slog.String("subscription_id", sub.id.String()),
				slog.Any("panic", r))
		}
	}()
	sub.fn(v)
}

// Subscribe registers fn for future emissions and returns a releasable
// handle. On a broadcast stream with at least one prior emission, fn is
// invoked synchronously with the last value before Subscribe returns.
//
// A subscriber added during an active emission does not receive the
// in-flight delivery pass; on broadcast streams it observes that value
// through replay instead.
func (s *Stream[T]) Subscribe(fn func(T)) *Subscription {
	if fn == nil {
		return &Subscription{}
	}

	sub := &subscriber[T]{id: uuid.New(), fn: fn}

	s.mu.Lock()
	s.subs = append(s.subs, sub)
	replay := s.replay && s.hasLast
	last := s.last
	s.mu.Unlock()

	if replay {
		s.invoke(sub, last)
	}

	return &Subscription{release: func() { s.remove(sub.id) }}
}

func (s *Stream[T]) remove(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subs {
		if sub.id == id {
			sub.released = true
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

// Last returns the value a new subscriber would receive through replay.
// The second return value reports whether such a value exists; it is always
// false for action streams.
func (s *Stream[T]) Last() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.hasLast
}

// Len returns the number of active subscribers.
func (s *Stream[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
