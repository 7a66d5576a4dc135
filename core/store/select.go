package store

import "github.com/bytenik/reactive-state/core/stream"

// SelectTyped is a type-safe wrapper around Store.Select for callers that
// know the selector's result type.
//
// Example:
//
//	messages := store.SelectTyped(s, func(state any) string {
//		return state.(map[string]any)["message"].(string)
//	})
//	messages.Subscribe(func(msg string) { ... })
func SelectTyped[R any](s Store, sel func(state any) R) *stream.Stream[R] {
	out := stream.NewBroadcast[R]()
	s.Select(func(state any) any { return sel(state) }).Subscribe(func(v any) {
		out.Next(v.(R))
	})
	return out
}
