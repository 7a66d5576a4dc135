package connect

import (
	"context"

	"github.com/bytenik/reactive-state/core/store"
)

type storeCtx struct{}

// NewContext returns a context carrying s as the ambient store for
// descendant connected components. This is the store provider: the core
// store engine itself knows nothing about contexts.
func NewContext(ctx context.Context, s store.Store) context.Context {
	return context.WithValue(ctx, storeCtx{}, s)
}

// FromContext extracts the ambient store from the context.
// The second return value is false when no provider is in scope.
func FromContext(ctx context.Context) (store.Store, bool) {
	s, ok := ctx.Value(storeCtx{}).(store.Store)
	return s, ok
}
