// Package reactive is the index for a reactive application-state library:
// an observable, hierarchical state container plus a binding layer that
// connects it to templ-rendered components.
//
// # Package Organization
//
//	github.com/bytenik/reactive-state/core/stream  - multicast push channels: broadcast streams with last-value replay and action channels
//	github.com/bytenik/reactive-state/core/store   - observable state container with dynamic reducer registration and key-scoped slices
//	github.com/bytenik/reactive-state/core/connect - binding layer deriving component props and callbacks from a store
//	github.com/bytenik/reactive-state/core/logger  - slog construction presets and nil-safe attribute helpers
//
// # Data Flow
//
// Producers push payloads into action channels; reducers registered with
// AddReducer transform the store's root state; the broadcast stream inside
// the store (and every live slice) re-emits the new state synchronously;
// connected components re-merge their rendered properties and the host
// re-renders.
//
// See examples/todo for a complete application wiring a store, slices,
// action channels and a connected templ component behind an HTTP server
// with live websocket updates.
//
// # Getting Documentation
//
// For detailed documentation on any package, use the go doc command:
//
//	go doc github.com/bytenik/reactive-state/core/store
//	go doc -all github.com/bytenik/reactive-state/core/connect
package reactive
