// Package store provides a hierarchical, observable state container with
// dynamic reducer registration and key-scoped slices.
//
// A root store owns a single state value. Reducers bound with AddReducer
// transform that value in response to payloads pushed into action channels,
// and every derived stream created with Select re-emits the new state
// synchronously, in subscription order.
//
// # Slices
//
// A slice is a store scoped to one key of a map-shaped parent state. It is
// a pure view: reads project the parent's current value, writes merge into
// the parent in the same synchronous step with sibling keys preserved by
// reference, and a slice can be sliced again.
//
//	s := store.New(map[string]any{"message": "initialMessage"})
//	message := s.Slice("message")
//
//	setMessage := stream.NewAction[any]()
//	handle := message.AddReducer(setMessage, func(state, payload any) any {
//		return payload
//	})
//	defer handle.Release()
//
//	setMessage.Next("Message1")
//	// message.State() == "Message1"
//	// s.State()       == map[string]any{"message": "Message1"}
//
// # Dispatch Semantics
//
// Dispatches are serialized per root store. A reducer that synchronously
// pushes into another action channel queues a nested dispatch, which is
// applied after the current one completes, strictly in call order. State is
// always replaced wholesale before any emission, so the root stream and
// every live slice observe a mutually consistent snapshot.
package store
