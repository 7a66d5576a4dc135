// Package connect is the binding layer between the store engine and
// templ-rendered components: it derives a component's input properties and
// event callbacks from a store, with deterministic precedence rules and
// lifecycle-bound subscription cleanup.
//
// # Lifecycle
//
// Connect wraps a component factory with a resolver; Mount resolves it
// against the ambient store and returns a renderable Instance; Unmount
// releases everything the mount wired up.
//
//	view := func(props connect.Props) templ.Component {
//		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
//			_, err := fmt.Fprintf(w, "<p>%v</p>", props["message"])
//			return err
//		})
//	}
//
//	setMessage := stream.NewAction[any]()
//	connected := connect.Connect(view, func(s store.Store) connect.Resolution {
//		return connect.Resolution{
//			Props: store.SelectTyped(s, func(state any) connect.Props {
//				return connect.Props{"message": state.(map[string]any)["message"]}
//			}),
//			Actions: connect.ActionMap{"onSend": setMessage},
//		}
//	})
//
//	ctx := connect.NewContext(context.Background(), s)
//	inst, err := connected.Mount(ctx, connect.Props{"title": "Inbox"})
//	defer inst.Unmount()
//
// # Precedence
//
// Owner-supplied properties always win per individual key; presence, not
// value, decides. Store-derived properties and action wrappers fill in only
// the keys the owner did not supply. When no store provider is in scope the
// resolver is never invoked and the component renders from owner properties
// alone, which is the defined fallback rather than an error.
package connect
