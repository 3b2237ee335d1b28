package core

import (
	"testing"
	"time"

	"github.com/automoto/puckduel/shared/messages"
	"github.com/automoto/puckduel/shared/netconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, c *fakeConn) any {
	t.Helper()
	select {
	case msg := <-c.recv:
		return msg
	case <-time.After(time.Second):
		t.Fatalf("%s received nothing", c.id)
		return nil
	}
}

func TestHubRoutesBySeat(t *testing.T) {
	h := NewHub(8)
	defer h.Close()
	a, b := newFakeConn("a"), newFakeConn("b")
	h.Attach(netconfig.Seat1, a)
	h.Attach(netconfig.Seat2, b)

	h.SendTo(netconfig.Seat2, messages.PositionsReset{})
	assert.Equal(t, messages.PositionsReset{}, receive(t, b))

	h.BroadcastExcept(netconfig.Seat1, messages.PlayerRemoved{Seat: netconfig.Seat1})
	assert.Equal(t, messages.PlayerRemoved{Seat: netconfig.Seat1}, receive(t, b))

	h.Broadcast(messages.ScoreUpdated{Score1: 1})
	assert.Equal(t, messages.ScoreUpdated{Score1: 1}, receive(t, a))
	assert.Equal(t, messages.ScoreUpdated{Score1: 1}, receive(t, b))
	assert.Len(t, a.messages(), 1)
	assert.Equal(t, 2, h.Connected())
}

func TestHubDetachStopsDelivery(t *testing.T) {
	h := NewHub(8)
	a := newFakeConn("a")
	h.Attach(netconfig.Seat1, a)
	h.Detach(netconfig.Seat1)
	h.Detach(netconfig.Seat1)

	h.Broadcast(messages.PositionsReset{})
	h.SendTo(netconfig.Seat1, messages.PositionsReset{})

	assert.Zero(t, h.Connected())
	assert.Never(t, func() bool { return len(a.messages()) > 0 }, 50*time.Millisecond, 5*time.Millisecond)
}

func TestHubSendConn(t *testing.T) {
	h := NewHub(0)
	c := newFakeConn("lobby")
	h.SendConn(c, messages.Joined{Reason: ReasonLobbyFull})
	assert.Equal(t, messages.Joined{Reason: ReasonLobbyFull}, receive(t, c))
}

// blockingConn never completes a send until released.
type blockingConn struct {
	release chan struct{}
}

func (c *blockingConn) ID() string { return "slow" }
func (c *blockingConn) Send(any) error {
	<-c.release
	return nil
}
func (c *blockingConn) Close() error { return nil }

func TestHubDropsWhenQueueFull(t *testing.T) {
	h := NewHub(2)
	slow := &blockingConn{release: make(chan struct{})}
	h.Attach(netconfig.Seat1, slow)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			h.Broadcast(messages.PositionsReset{})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.FailNow(t, "broadcast blocked on a slow connection")
	}
	close(slow.release)
	h.Close()
}

func TestHubBoundsDirectSends(t *testing.T) {
	h := NewHub(0)
	defer h.Close()
	slow := &blockingConn{release: make(chan struct{})}
	for i := 0; i < maxDirectSends; i++ {
		h.SendConn(slow, messages.Joined{Reason: ReasonLobbyFull})
	}

	c := newFakeConn("late")
	h.SendConn(c, messages.Joined{Reason: ReasonLobbyFull})
	assert.Never(t, func() bool { return len(c.messages()) > 0 }, 50*time.Millisecond, 5*time.Millisecond)

	close(slow.release)
	assert.Eventually(t, func() bool { return len(h.direct) == 0 }, time.Second, 5*time.Millisecond)
	h.SendConn(c, messages.Joined{Reason: ReasonLobbyFull})
	assert.Equal(t, messages.Joined{Reason: ReasonLobbyFull}, receive(t, c))
}
