package core

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/automoto/puckduel/config"
	"github.com/automoto/puckduel/shared/gamemath"
	"github.com/automoto/puckduel/shared/messages"
	"github.com/automoto/puckduel/shared/netconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	return NewServer(Options{Name: "test table", Physics: config.DefaultPhysics(), QueueSize: 64})
}

func TestServerHandleJoinAndLeave(t *testing.T) {
	s := newTestServer()
	defer s.hub.Close()
	a, b, c := newFakeConn("a"), newFakeConn("b"), newFakeConn("c")

	s.handle(a, messages.JoinRequest{})
	s.handle(a, messages.JoinRequest{})
	s.handle(b, messages.JoinRequest{})
	s.handle(c, messages.JoinRequest{})

	assert.Equal(t, 2, s.PlayerCount())
	assert.Equal(t, netconfig.Seat1, s.sessions["a"])
	assert.Equal(t, netconfig.Seat2, s.sessions["b"])
	_, seated := s.sessions["c"]
	assert.False(t, seated)

	s.drop(a)
	s.drop(a)
	assert.Equal(t, 1, s.PlayerCount())

	s.handle(c, messages.JoinRequest{})
	assert.Equal(t, netconfig.Seat1, s.sessions["c"])
}

func TestServerRoutesInputBySeat(t *testing.T) {
	s := newTestServer()
	defer s.hub.Close()
	a, stranger := newFakeConn("a"), newFakeConn("x")

	s.handle(stranger, messages.MoveInput{DX: 1})
	s.handle(a, messages.JoinRequest{})
	s.handle(a, messages.PointerInput{X: 40, Y: 50})
	s.handle(a, messages.JoltInput{PointerX: 200, PointerY: 200})

	entry, ok := s.game.World().Player(netconfig.Seat1)
	require.True(t, ok)
	p := viewPlayer(t, s.game, netconfig.Seat1)
	assert.NotNil(t, entry)
	assert.Equal(t, 200.0, p.state.PointerX)
	assert.False(t, p.state.CanJolt)
	assert.InDelta(t, 15, p.vel.SpeedX, 1e-9)
}

func TestServerLoopEndToEnd(t *testing.T) {
	s := newTestServer()
	s.StartLoop()
	defer s.Stop()

	a := newFakeConn("a")
	s.Dispatch(a, messages.JoinRequest{PlayerName: "alice"})
	assert.Eventually(t, func() bool { return s.PlayerCount() == 1 }, time.Second, 5*time.Millisecond)

	joined := receive(t, a)
	assert.Equal(t, messages.Joined{Success: true, Seat: netconfig.Seat1, Message: "You are Player 1"}, joined)

	assert.Eventually(t, func() bool {
		for _, m := range a.messages() {
			if _, ok := m.(messages.PlayerMoved); ok {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond, "ticks should broadcast player positions")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	diag, err := s.Diagnostics(ctx)
	require.NoError(t, err)
	assert.Equal(t, "test table", diag.Name)
	assert.Equal(t, 1, diag.Players)
	assert.Equal(t, netconfig.TickRate, diag.TickRate)
	require.Len(t, diag.State.Players, 1)

	s.Disconnect(a)
	assert.Eventually(t, func() bool { return s.PlayerCount() == 0 }, time.Second, 5*time.Millisecond)
}

func TestDiagnosticsHandler(t *testing.T) {
	s := newTestServer()
	s.StartLoop()
	defer s.Stop()

	rr := httptest.NewRecorder()
	s.DiagnosticsHandler()(rr, httptest.NewRequest(http.MethodGet, "/diagnostics", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var diag Diagnostics
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&diag))
	assert.Equal(t, "waiting", diag.State.MatchState)
	assert.Equal(t, 300.0, diag.State.Puck.X)

	rr = httptest.NewRecorder()
	s.HealthHandler()(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, "ok", rr.Body.String())
}

func TestDiagnosticsAfterStop(t *testing.T) {
	s := newTestServer()
	s.StartLoop()
	s.Stop()

	_, err := s.Diagnostics(context.Background())
	assert.ErrorIs(t, err, ErrStopped)
	assert.False(t, s.loop.Post(func() {}))
}

func TestServerZeroPhysicsUsesDefaults(t *testing.T) {
	s := NewServer(Options{Name: "x"})
	defer s.hub.Close()
	assert.Equal(t, config.Physics, s.game.tuning)

	bad := config.DefaultPhysics()
	bad.CombinedMass = 0
	s2 := NewServer(Options{Name: "y", Physics: bad})
	defer s2.hub.Close()
	assert.Equal(t, config.DefaultPhysics(), s2.game.tuning)

	a, b := newFakeConn("a"), newFakeConn("b")
	s.handle(a, messages.JoinRequest{})
	s.handle(b, messages.JoinRequest{})
	placePlayer(s.game, netconfig.Seat1, 300, 300)
	placePlayer(s.game, netconfig.Seat2, 310, 300)
	s.handle(a, messages.JoltInput{PointerX: 400, PointerY: 300})
	s.game.Tick()

	for _, seat := range netconfig.Seats {
		p := viewPlayer(t, s.game, seat)
		assert.True(t, gamemath.Finite(p.pos.X, p.pos.Y, p.vel.SpeedX, p.vel.SpeedY), "%s went non-finite", seat)
	}
}

func TestDiagnosticsHonoursDeadlineWhenInboxFull(t *testing.T) {
	s := newTestServer()
	defer s.hub.Close()
	for i := 0; i < inboxSize; i++ {
		require.True(t, s.loop.Post(func() {}))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	done := make(chan error, 1)
	go func() {
		_, err := s.Diagnostics(ctx)
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(time.Second):
		require.FailNow(t, "diagnostics blocked past its deadline")
	}
	s.loop.Stop()
}
