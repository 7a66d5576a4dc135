package stream

import "sync"

// Subscription is a releasable handle to a registered subscriber.
// The zero value is a valid no-op handle.
type Subscription struct {
	once    sync.Once
	release func()
}

// NewSubscription wraps an arbitrary release function in a handle with the
// same idempotency guarantees as stream subscriptions. It is used by
// higher-level packages that compose several releases behind one handle.
func NewSubscription(release func()) *Subscription {
	return &Subscription{release: release}
}

// Release removes the subscriber from its stream. It is idempotent and
// never panics, even when called multiple times, on a nil handle, or after
// the stream itself is no longer referenced.
func (s *Subscription) Release() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		if s.release != nil {
			s.release()
		}
	})
}
