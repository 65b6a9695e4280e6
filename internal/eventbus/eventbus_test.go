package eventbus

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesSubscribers(t *testing.T) {
	t.Parallel()

	bus := New(nil)
	defer bus.Close()

	var got atomic.Value
	bus.Subscribe(EventRedirect, func(e DomainEvent) {
		got.Store(e)
	})

	bus.Publish(RedirectEvent{URL: "/search?q=x"})

	require.Eventually(t, func() bool {
		e, ok := got.Load().(RedirectEvent)
		return ok && e.URL == "/search?q=x"
	}, time.Second, 5*time.Millisecond)
}

func TestSubscribersAreFilteredByType(t *testing.T) {
	t.Parallel()

	bus := New(nil)
	defer bus.Close()

	var redirects, invites atomic.Int32
	bus.Subscribe(EventRedirect, func(DomainEvent) { redirects.Add(1) })
	bus.Subscribe(EventInviteSent, func(DomainEvent) { invites.Add(1) })

	bus.Publish(RedirectEvent{URL: "/x"})
	bus.Publish(RedirectEvent{URL: "/y"})

	require.Eventually(t, func() bool { return redirects.Load() == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(0), invites.Load(), "other event types must not leak over")
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	t.Parallel()

	bus := New(nil)
	defer bus.Close()

	var first, second atomic.Int32
	unsubFirst := bus.Subscribe(EventInviteSent, func(DomainEvent) { first.Add(1) })
	bus.Subscribe(EventInviteSent, func(DomainEvent) { second.Add(1) })

	bus.Publish(InviteSentEvent{TeamID: 1, Invitee: "a"})
	require.Eventually(t, func() bool { return second.Load() == 1 }, time.Second, 5*time.Millisecond)

	unsubFirst()
	bus.Publish(InviteSentEvent{TeamID: 1, Invitee: "b"})
	require.Eventually(t, func() bool { return second.Load() == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), first.Load(), "only the remaining subscriber should fire")
}

func TestPanickingHandlerDoesNotKillTheBus(t *testing.T) {
	t.Parallel()

	bus := New(nil)
	defer bus.Close()

	var delivered atomic.Int32
	bus.Subscribe(EventError, func(DomainEvent) { panic("handler bug") })
	bus.Subscribe(EventError, func(DomainEvent) { delivered.Add(1) })

	bus.Publish(ErrorEvent{Message: "boom"})
	bus.Publish(ErrorEvent{Message: "boom again"})

	require.Eventually(t, func() bool { return delivered.Load() == 2 }, time.Second, 5*time.Millisecond,
		"dispatch should survive a panicking handler")
}

func TestCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	bus := New(nil)
	bus.Close()
	assert.NotPanics(t, func() { bus.Close() })
}

func TestNoDispatchAfterCloseReturns(t *testing.T) {
	t.Parallel()

	bus := New(nil)

	var delivered atomic.Int32
	bus.Subscribe(EventError, func(DomainEvent) { delivered.Add(1) })

	bus.Close()
	bus.Publish(ErrorEvent{Message: "late"})

	// shutdown code tears down handler targets right after Close, so a
	// handler firing here would be a use-after-close
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), delivered.Load(), "no handler may fire once Close has returned")
}
