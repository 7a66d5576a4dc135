package store

import (
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/bytenik/reactive-state/core/stream"
)

// Reducer computes the next state from the current state and an action
// payload. Reducers must be pure: the returned value fully replaces the
// state they were applied to.
type Reducer func(state, payload any) any

// Selector derives a value from a state. Selectors must be pure reads.
type Selector func(state any) any

// Store is an observable state container. A Store owns (or, for slices,
// views) a single authoritative state value, exposes derived broadcast
// streams through Select, and mutates state only through reducers bound to
// action channels with AddReducer.
type Store interface {
	// State returns the current state value. Pure read.
	State() any

	// Select returns a broadcast stream of sel applied to every state,
	// starting with the state current at the time of the call. A nil
	// selector selects the state itself.
	Select(sel Selector) *stream.Stream[any]

	// AddReducer binds reduce to the action channel: each payload pushed
	// into action produces reduce(currentState, payload) as the new state,
	// followed by an emission on every derived stream. Releasing the
	// returned handle stops this binding only; other bindings and the
	// current state are unaffected.
	//
	// A dispatch triggered from within a reducer (a reducer pushing into an
	// action channel synchronously) is queued and applied after the current
	// dispatch completes, strictly in call order.
	AddReducer(action *stream.Stream[any], reduce Reducer) *stream.Subscription

	// Slice returns a view Store scoped to one key of this store's state,
	// which must be a map[string]any wherever a value exists. The optional
	// default value is observed while the parent has no value at key.
	Slice(key string, defaultValue ...any) Store
}

// New creates a root store owning initial as its state.
func New(initial any, opts ...Option) Store {
	cfg := options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &rootStore{
		state:    initial,
		changes:  stream.NewBroadcast[any](stream.WithLogger(cfg.logger)),
		bindings: make(map[uuid.UUID]*stream.Subscription),
		logger:   cfg.logger,
	}
	// Seed the changes stream so Select replays the initial state.
	s.changes.Next(initial)
	return s
}

type rootStore struct {
	mu          sync.Mutex
	state       any
	changes     *stream.Stream[any]
	bindings    map[uuid.UUID]*stream.Subscription
	dispatching bool
	queue       []pendingDispatch
	logger      *slog.Logger
}

type pendingDispatch struct {
	reduce  Reducer
	payload any
}

func (s *rootStore) State() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *rootStore) Select(sel Selector) *stream.Stream[any] {
	return derive(s.changes, sel, s.logger)
}

func (s *rootStore) AddReducer(action *stream.Stream[any], reduce Reducer) *stream.Subscription {
	if action == nil || reduce == nil {
		return &stream.Subscription{}
	}

	id := uuid.New()
	sub := action.Subscribe(func(payload any) {
		s.dispatch(reduce, payload)
	})

	s.mu.Lock()
	s.bindings[id] = sub
	s.mu.Unlock()

	return stream.NewSubscription(func() {
		sub.Release()
		s.mu.Lock()
		delete(s.bindings, id)
		s.mu.Unlock()
	})
}

func (s *rootStore) Slice(key string, defaultValue ...any) Store {
	return newSlice(s, key, defaultValue, s.logger)
}

// dispatch applies a reducer and publishes the new state. Dispatches are
// serialized per store: a dispatch arriving while another is being applied
// (re-entrant or concurrent) is queued and applied afterwards, so state
// transitions and their emissions happen strictly in call order.
func (s *rootStore) dispatch(reduce Reducer, payload any) {
	s.mu.Lock()
	s.queue = append(s.queue, pendingDispatch{reduce: reduce, payload: payload})
	if s.dispatching {
		s.mu.Unlock()
		return
	}
	s.dispatching = true
	s.mu.Unlock()

	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.dispatching = false
			s.mu.Unlock()
			return
		}
		next := s.queue[0]
		s.queue = s.queue[1:]
		state := s.state
		s.mu.Unlock()

		newState, ok := s.apply(next.reduce, state, next.payload)
		if !ok {
			continue
		}

		s.mu.Lock()
		s.state = newState
		s.mu.Unlock()

		// State is replaced before the emission, so the root stream and
		// every live slice observe the same snapshot.
		s.changes.Next(newState)
	}
}

// apply runs the reducer, isolating panics so a faulty reducer leaves the
// state untouched instead of wedging the dispatch queue.
func (s *rootStore) apply(reduce Reducer, state, payload any) (newState any, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("reducer panicked", slog.Any("panic", r))
			ok = false
		}
	}()
	return reduce(state, payload), true
}

// derive wires a fresh broadcast stream that applies sel to every value of
// src, including the replayed current value.
func derive(src *stream.Stream[any], sel Selector, logger *slog.Logger) *stream.Stream[any] {
	if sel == nil {
		sel = func(state any) any { return state }
	}
	out := stream.NewBroadcast[any](stream.WithLogger(logger))
	src.Subscribe(func(state any) {
		out.Next(sel(state))
	})
	return out
}
