package connect_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bytenik/reactive-state/core/connect"
	"github.com/bytenik/reactive-state/core/store"
	"github.com/bytenik/reactive-state/core/stream"
)

// messageView renders the "message" prop, standing in for any wrapped
// component in these tests.
func messageView(props connect.Props) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, "<p>%v</p>", props["message"])
		return err
	})
}

func render(t *testing.T, inst *connect.Instance) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, inst.Render(context.Background(), &buf))
	return buf.String()
}

func TestConnect_WithoutStore(t *testing.T) {
	t.Parallel()

	t.Run("renders owner props and never invokes the resolver", func(t *testing.T) {
		t.Parallel()

		resolved := false
		clicked := 0
		connected := connect.Connect(messageView, func(store.Store) connect.Resolution {
			resolved = true
			return connect.Resolution{}
		})

		inst, err := connected.Mount(context.Background(), connect.Props{
			"message": "Barfoos",
			"onClick": func() { clicked++ },
		})
		require.NoError(t, err)
		defer inst.Unmount()

		assert.False(t, resolved, "absent store means no resolver invocation")
		assert.Equal(t, "<p>Barfoos</p>", render(t, inst))

		inst.Props()["onClick"].(func())()
		assert.Equal(t, 1, clicked)
	})

	t.Run("unmount is safe without a full resolution", func(t *testing.T) {
		t.Parallel()

		connected := connect.Connect(messageView, nil)
		inst, err := connected.Mount(context.Background(), nil)
		require.NoError(t, err)

		require.NotPanics(t, func() {
			inst.Unmount()
			inst.Unmount()
		})
	})
}

func TestConnect_DerivedProps(t *testing.T) {
	t.Parallel()

	newMessageStore := func() store.Store {
		return store.New(map[string]any{"message": "fromStore"})
	}

	resolver := func(s store.Store) connect.Resolution {
		return connect.Resolution{
			Props: store.SelectTyped(s, func(state any) connect.Props {
				return connect.Props{"message": state.(map[string]any)["message"]}
			}),
		}
	}

	t.Run("derived props fill in keys the owner did not supply", func(t *testing.T) {
		t.Parallel()

		s := newMessageStore()
		connected := connect.Connect(messageView, resolver, connect.WithStore(s))

		inst, err := connected.Mount(context.Background(), nil)
		require.NoError(t, err)
		defer inst.Unmount()

		assert.Equal(t, "<p>fromStore</p>", render(t, inst))
	})

	t.Run("owner key wins even when its value is nil", func(t *testing.T) {
		t.Parallel()

		s := newMessageStore()
		connected := connect.Connect(messageView, resolver, connect.WithStore(s))

		inst, err := connected.Mount(context.Background(), connect.Props{"message": nil})
		require.NoError(t, err)
		defer inst.Unmount()

		assert.Equal(t, "<p><nil></p>", render(t, inst), "presence, not value, decides precedence")
	})

	t.Run("store updates re-merge and flow to the rendered output", func(t *testing.T) {
		t.Parallel()

		s := newMessageStore()
		set := stream.NewAction[any]()
		s.Slice("message").AddReducer(set, func(_, payload any) any { return payload })

		connected := connect.Connect(messageView, resolver, connect.WithStore(s))
		inst, err := connected.Mount(context.Background(), nil)
		require.NoError(t, err)
		defer inst.Unmount()

		updates := 0
		inst.Updates().Subscribe(func(connect.Props) { updates++ })

		set.Next("changed")

		assert.Equal(t, "<p>changed</p>", render(t, inst))
		assert.GreaterOrEqual(t, updates, 2, "replay plus the store-driven re-merge")
	})

	t.Run("owner updates do not re-invoke the resolver", func(t *testing.T) {
		t.Parallel()

		s := newMessageStore()
		resolutions := 0
		connected := connect.Connect(messageView, func(s store.Store) connect.Resolution {
			resolutions++
			return resolver(s)
		}, connect.WithStore(s))

		inst, err := connected.Mount(context.Background(), nil)
		require.NoError(t, err)
		defer inst.Unmount()

		require.Equal(t, 1, resolutions)
		assert.Equal(t, "<p>fromStore</p>", render(t, inst))

		inst.SetOwner(connect.Props{"message": "ownerSide"})
		assert.Equal(t, "<p>ownerSide</p>", render(t, inst))
		assert.Equal(t, 1, resolutions, "resolver runs at most once per mount")

		inst.SetOwner(nil)
		assert.Equal(t, "<p>fromStore</p>", render(t, inst), "derived side is still live")
	})

	t.Run("store is looked up from the context provider", func(t *testing.T) {
		t.Parallel()

		s := newMessageStore()
		connected := connect.Connect(messageView, resolver)

		ctx := connect.NewContext(context.Background(), s)
		inst, err := connected.Mount(ctx, nil)
		require.NoError(t, err)
		defer inst.Unmount()

		assert.Equal(t, "<p>fromStore</p>", render(t, inst))
	})
}

func TestConnect_ActionMap(t *testing.T) {
	t.Parallel()

	t.Run("channel target republishes the first argument", func(t *testing.T) {
		t.Parallel()

		s := store.New(map[string]any{})
		ch := stream.NewAction[any]()

		var got []any
		ch.Subscribe(func(v any) { got = append(got, v) })

		connected := connect.Connect(messageView, func(store.Store) connect.Resolution {
			return connect.Resolution{Actions: connect.ActionMap{"onSend": ch}}
		}, connect.WithStore(s))

		inst, err := connected.Mount(context.Background(), nil)
		require.NoError(t, err)
		defer inst.Unmount()

		inst.Props()["onSend"].(func(...any))("payload", "ignored")
		require.Equal(t, []any{"payload"}, got, "exactly one emission carrying the first argument")

		inst.Props()["onSend"].(func(...any))()
		assert.Equal(t, []any{"payload", nil}, got)
	})

	t.Run("function target is called with the same arguments", func(t *testing.T) {
		t.Parallel()

		s := store.New(map[string]any{})
		var got []string
		target := func(msg string) { got = append(got, msg) }

		connected := connect.Connect(messageView, func(store.Store) connect.Resolution {
			return connect.Resolution{Actions: connect.ActionMap{"onSave": target}}
		}, connect.WithStore(s))

		inst, err := connected.Mount(context.Background(), nil)
		require.NoError(t, err)
		defer inst.Unmount()

		inst.Props()["onSave"].(func(...any))("hello")
		assert.Equal(t, []string{"hello"}, got)
	})

	t.Run("nil target leaves the owner callback unmodified", func(t *testing.T) {
		t.Parallel()

		s := store.New(map[string]any{})
		clicked := 0
		owner := func() { clicked++ }

		connected := connect.Connect(messageView, func(store.Store) connect.Resolution {
			return connect.Resolution{Actions: connect.ActionMap{"onClick": nil}}
		}, connect.WithStore(s))

		inst, err := connected.Mount(context.Background(), connect.Props{"onClick": owner})
		require.NoError(t, err)
		defer inst.Unmount()

		inst.Props()["onClick"].(func())()
		assert.Equal(t, 1, clicked)
	})

	t.Run("non-function non-channel target fails at mount time", func(t *testing.T) {
		t.Parallel()

		s := store.New(map[string]any{})
		connected := connect.Connect(messageView, func(store.Store) connect.Resolution {
			return connect.Resolution{Actions: connect.ActionMap{"onClick": 42}}
		}, connect.WithStore(s))

		inst, err := connected.Mount(context.Background(), nil)
		require.ErrorIs(t, err, connect.ErrInvalidActionTarget)
		assert.Contains(t, err.Error(), "onClick")
		assert.Nil(t, inst)
	})

	t.Run("cleanup is released when the action map is invalid", func(t *testing.T) {
		t.Parallel()

		s := store.New(map[string]any{})
		released := 0
		connected := connect.Connect(messageView, func(store.Store) connect.Resolution {
			return connect.Resolution{
				Actions: connect.ActionMap{"bad": "not a target"},
				Cleanup: stream.NewSubscription(func() { released++ }),
			}
		}, connect.WithStore(s))

		_, err := connected.Mount(context.Background(), nil)
		require.ErrorIs(t, err, connect.ErrInvalidActionTarget)
		assert.Equal(t, 1, released)
	})
}

func TestConnect_Cleanup(t *testing.T) {
	t.Parallel()

	t.Run("unmount releases the cleanup handle exactly once", func(t *testing.T) {
		t.Parallel()

		s := store.New(map[string]any{})
		released := 0
		connected := connect.Connect(messageView, func(store.Store) connect.Resolution {
			return connect.Resolution{
				Cleanup: stream.NewSubscription(func() { released++ }),
			}
		}, connect.WithStore(s))

		inst, err := connected.Mount(context.Background(), nil)
		require.NoError(t, err)

		inst.Unmount()
		inst.Unmount()

		assert.Equal(t, 1, released)
	})

	t.Run("unmount releases the props subscription", func(t *testing.T) {
		t.Parallel()

		s := store.New(map[string]any{"message": "a"})
		set := stream.NewAction[any]()
		s.Slice("message").AddReducer(set, func(_, payload any) any { return payload })

		connected := connect.Connect(messageView, func(s store.Store) connect.Resolution {
			return connect.Resolution{
				Props: store.SelectTyped(s, func(state any) connect.Props {
					return connect.Props{"message": state.(map[string]any)["message"]}
				}),
			}
		}, connect.WithStore(s))

		inst, err := connected.Mount(context.Background(), nil)
		require.NoError(t, err)

		inst.Unmount()
		set.Next("b")

		assert.Equal(t, "<p>a</p>", render(t, inst), "a released subscription receives nothing further")
	})
}

func TestConnect_EmptyResolution(t *testing.T) {
	t.Parallel()

	s := store.New(map[string]any{})
	connected := connect.Connect(messageView, func(store.Store) connect.Resolution {
		return connect.Resolution{}
	}, connect.WithStore(s))

	inst, err := connected.Mount(context.Background(), connect.Props{"message": "ownerOnly"})
	require.NoError(t, err)
	defer inst.Unmount()

	assert.Equal(t, "<p>ownerOnly</p>", render(t, inst))
}
