package core

import "time"

// Scheduler arranges for fn to run on the game loop after d. The returned
// func cancels the call if it has not started yet.
type Scheduler func(d time.Duration, fn func()) (cancel func())

type pendingTimer struct {
	token uint64
	stop  func()
}

func (t *pendingTimer) active() bool {
	return t.token != 0
}

func (t *pendingTimer) cancel() {
	if t.stop != nil {
		t.stop()
	}
	*t = pendingTimer{}
}

// fires reports whether a callback armed with token is still current, and
// disarms the timer if so.
func (t *pendingTimer) fires(token uint64) bool {
	if t.token == 0 || t.token != token {
		return false
	}
	*t = pendingTimer{}
	return true
}

// arm cancels any pending call and schedules fn under a fresh token. fn
// receives the token it was armed with.
func (g *Game) arm(t *pendingTimer, d time.Duration, fn func(token uint64)) {
	t.cancel()
	g.nextToken++
	token := g.nextToken
	t.token = token
	t.stop = g.schedule(d, func() { fn(token) })
}
