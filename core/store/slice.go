package store

import (
	"log/slog"
	"reflect"
	"sync"

	"github.com/bytenik/reactive-state/core/stream"
)

// sliceStore is a view Store scoped to one key of a parent's state. It has
// no storage of its own: reads project the parent's current state, and
// writes delegate to the parent through a structural merge that leaves
// sibling keys untouched. A slice is a full Store and can be sliced again.
type sliceStore struct {
	parent Store
	key    string
	def    any
	hasDef bool

	changes *stream.Stream[any]
	logger  *slog.Logger

	mu          sync.Mutex
	lastEmitted any
	hasEmitted  bool
}

func newSlice(parent Store, key string, defaultValue []any, logger *slog.Logger) *sliceStore {
	s := &sliceStore{
		parent:  parent,
		key:     key,
		changes: stream.NewBroadcast[any](stream.WithLogger(logger)),
		logger:  logger,
	}
	if len(defaultValue) > 0 {
		s.def = defaultValue[0]
		s.hasDef = true
	}

	// The parent's replay delivers the current state synchronously, which
	// produces the slice's initial emission (the value at key, or the
	// default when absent). Creating a slice never mutates the parent.
	parent.Select(nil).Subscribe(s.project)

	return s
}

// project emits the sub-value for every parent state whose value at key
// differs from the last emitted one. The deduplication guarantees exactly
// one slice emission per distinct sub-value and prevents a feedback loop
// when a value written through the slice comes back around unchanged.
func (s *sliceStore) project(parentState any) {
	v := s.valueAt(parentState)

	s.mu.Lock()
	if s.hasEmitted && reflect.DeepEqual(v, s.lastEmitted) {
		s.mu.Unlock()
		return
	}
	s.lastEmitted = v
	s.hasEmitted = true
	s.mu.Unlock()

	s.changes.Next(v)
}

func (s *sliceStore) valueAt(parentState any) any {
	if m, ok := parentState.(map[string]any); ok {
		if v, present := m[s.key]; present {
			return v
		}
	}
	if s.hasDef {
		return s.def
	}
	return nil
}

func (s *sliceStore) State() any {
	return s.valueAt(s.parent.State())
}

func (s *sliceStore) Select(sel Selector) *stream.Stream[any] {
	return derive(s.changes, sel, s.logger)
}

// AddReducer binds reduce to the action channel against this slice's
// sub-state. The reducer receives and returns the sub-value; the result is
// merged into the parent state in the same synchronous step, with sibling
// keys preserved by reference.
func (s *sliceStore) AddReducer(action *stream.Stream[any], reduce Reducer) *stream.Subscription {
	if action == nil || reduce == nil {
		return &stream.Subscription{}
	}
	return s.parent.AddReducer(action, func(parentState, payload any) any {
		child := s.valueAt(parentState)
		return s.merge(parentState, reduce(child, payload))
	})
}

// merge returns a shallow copy of the parent state with only this slice's
// key replaced. Sibling values keep their identity. A parent state that is
// not a map yet is replaced by a fresh single-key map.
func (s *sliceStore) merge(parentState, value any) any {
	m, ok := parentState.(map[string]any)
	if !ok {
		return map[string]any{s.key: value}
	}
	merged := make(map[string]any, len(m)+1)
	for k, v := range m {
		merged[k] = v
	}
	merged[s.key] = value
	return merged
}

func (s *sliceStore) Slice(key string, defaultValue ...any) Store {
	return newSlice(s, key, defaultValue, s.logger)
}
