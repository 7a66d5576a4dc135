// Package stream provides the multicast push channels underlying all state
// propagation in the library: broadcast streams that replay their last value
// to new subscribers, and action streams used as dispatch entry points.
//
// # Delivery Semantics
//
// Emission is synchronous: Next delivers to every subscriber on the caller's
// goroutine, in subscription order, before returning. A panic in one
// subscriber is isolated and logged; delivery to the remaining subscribers
// continues. Re-entrant emission from within a callback is permitted and
// processed strictly in call order.
//
// # Basic Usage
//
//	state := stream.NewBroadcast[string]()
//	state.Next("ready")
//
//	// Replays "ready" immediately, then receives future values.
//	sub := state.Subscribe(func(v string) {
//		fmt.Println(v)
//	})
//	defer sub.Release()
//
// Action channels carry no replay value:
//
//	clicks := stream.NewAction[int]()
//	clicks.Subscribe(func(n int) { ... }) // future emissions only
//	clicks.Next(1)
package stream
