package connect

import (
	"context"
	"io"
	"log/slog"

	"github.com/a-h/templ"

	"github.com/bytenik/reactive-state/core/store"
	"github.com/bytenik/reactive-state/core/stream"
)

// Props is the property record a component is rendered from. Precedence
// between owner-supplied and store-derived properties is decided by key
// presence, not value: an owner key that is present with a nil value still
// shadows the derived value for that key.
type Props map[string]any

// Component builds a renderable templ component from a property record.
type Component func(props Props) templ.Component

// Releasable is anything with an idempotent Release operation, typically a
// stream.Subscription or a resolver-owned resource handle.
type Releasable interface {
	Release()
}

// Resolution is what a Resolver derives from a store. All fields are
// optional; the zero value means "derive nothing from the store; render
// with owner-supplied properties only".
type Resolution struct {
	// Props is a stream of store-derived property records. Each emission
	// replaces the derived side of the rendered properties.
	Props *stream.Stream[Props]

	// Actions maps property names to dispatch targets; see ActionMap.
	Actions ActionMap

	// Cleanup is released exactly once when the instance unmounts.
	Cleanup Releasable
}

// Resolver derives a Resolution from the ambient store. It is invoked at
// most once per mount, and not at all when no store is available.
type Resolver func(s store.Store) Resolution

// Connected is a component wired to a resolver. Connect itself performs no
// work; resolution happens on Mount.
type Connected struct {
	component Component
	resolver  Resolver
	store     store.Store
	logger    *slog.Logger
}

// ConnectOption configures a Connected component.
type ConnectOption func(*Connected)

// WithStore injects the store explicitly, bypassing the context lookup on
// Mount. Useful in tests and in hosts without a provider in scope.
func WithStore(s store.Store) ConnectOption {
	return func(c *Connected) {
		c.store = s
	}
}

// WithLogger configures structured logging for the connected component's
// derived streams. Defaults to a discard logger.
func WithLogger(logger *slog.Logger) ConnectOption {
	return func(c *Connected) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Connect wraps component so that its rendered properties are derived from
// a store through resolver, with owner-supplied properties taking
// precedence per key.
func Connect(component Component, resolver Resolver, opts ...ConnectOption) *Connected {
	c := &Connected{
		component: component,
		resolver:  resolver,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mount resolves the component against the ambient store and returns a
// renderable Instance.
//
// The store is taken from the WithStore option when set, otherwise from ctx
// (see NewContext). When no store is available the resolver is not invoked
// and the instance renders from owner properties alone; this is not an
// error. An invalid action map entry is a configuration error and fails
// Mount immediately.
func (c *Connected) Mount(ctx context.Context, owner Props) (*Instance, error) {
	inst := &Instance{
		component: c.component,
		owner:     cloneProps(owner),
		updates:   stream.NewBroadcast[Props](stream.WithLogger(c.logger)),
	}

	s := c.store
	if s == nil {
		if ambient, ok := FromContext(ctx); ok {
			s = ambient
		}
	}
	if s == nil || c.resolver == nil {
		inst.recompute()
		return inst, nil
	}

	res := c.resolver(s)

	actions, err := resolveActions(res.Actions)
	if err != nil {
		if res.Cleanup != nil {
			res.Cleanup.Release()
		}
		return nil, err
	}
	inst.actions = actions
	inst.cleanup = res.Cleanup

	if res.Props != nil {
		// Replays the stream's current value synchronously, so the first
		// recompute below already sees the derived side.
		inst.propsSub = res.Props.Subscribe(func(p Props) {
			inst.setDerived(p)
		})
	}

	inst.recompute()
	return inst, nil
}

func cloneProps(p Props) Props {
	if p == nil {
		return nil
	}
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
