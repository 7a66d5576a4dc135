package connect

import (
	"context"
	"io"
	"sync"

	"github.com/bytenik/reactive-state/core/stream"
)

// Instance is a mounted connected component. It implements the templ
// component contract, so it can be rendered anywhere a templ.Component is
// accepted, and it re-merges its rendered properties whenever the derived
// props stream emits.
type Instance struct {
	mu        sync.Mutex
	component Component
	owner     Props
	derived   Props
	actions   map[string]func(args ...any)
	merged    Props

	propsSub *stream.Subscription
	cleanup  Releasable
	unmount  sync.Once

	updates *stream.Stream[Props]
}

// Render renders the wrapped component with the current merged properties.
func (i *Instance) Render(ctx context.Context, w io.Writer) error {
	i.mu.Lock()
	component := i.component
	props := i.merged
	i.mu.Unlock()

	if component == nil {
		return nil
	}
	c := component(props)
	if c == nil {
		return nil
	}
	return c.Render(ctx, w)
}

// Props returns a copy of the currently rendered property record.
func (i *Instance) Props() Props {
	i.mu.Lock()
	defer i.mu.Unlock()
	return cloneProps(i.merged)
}

// Updates is a broadcast stream of the merged property record; it replays
// the current record and emits on every change, so a host can re-render
// synchronously whenever the store side or the owner side moves.
func (i *Instance) Updates() *stream.Stream[Props] {
	return i.updates
}

// SetOwner replaces the owner-supplied side of the property merge. The
// resolver is not re-invoked: only the owner side changes, the store side
// keeps flowing through the existing subscription.
func (i *Instance) SetOwner(owner Props) {
	i.mu.Lock()
	i.owner = cloneProps(owner)
	i.mu.Unlock()
	i.recompute()
}

// Unmount releases the derived props subscription and the resolver's
// cleanup handle. It is idempotent and safe on instances that mounted
// without a store.
func (i *Instance) Unmount() {
	i.unmount.Do(func() {
		i.propsSub.Release()
		if i.cleanup != nil {
			i.cleanup.Release()
		}
	})
}

func (i *Instance) setDerived(p Props) {
	i.mu.Lock()
	i.derived = cloneProps(p)
	i.mu.Unlock()
	i.recompute()
}

// recompute rebuilds the rendered property record: derived values first,
// action wrappers over those, owner-supplied keys last. Owner precedence is
// by key presence, so an owner key holding nil still wins.
func (i *Instance) recompute() {
	i.mu.Lock()
	merged := make(Props, len(i.derived)+len(i.actions)+len(i.owner))
	for k, v := range i.derived {
		merged[k] = v
	}
	for k, fn := range i.actions {
		merged[k] = fn
	}
	for k, v := range i.owner {
		merged[k] = v
	}
	i.merged = merged
	i.mu.Unlock()

	i.updates.Next(merged)
}
