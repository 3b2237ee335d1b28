package core

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

const inboxSize = 256

// ErrStopped is returned when the loop is no longer accepting commands.
var ErrStopped = errors.New("game loop stopped")

// GameLoop is the single goroutine that owns the Game. Message handlers and
// timer callbacks reach the game only by posting commands to its inbox, so
// each command and each tick runs to completion on its own.
type GameLoop struct {
	game     *Game
	tickRate int
	inbox    chan func()
	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

func NewGameLoop(game *Game, tickRate int) *GameLoop {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &GameLoop{
		game:     game,
		tickRate: tickRate,
		inbox:    make(chan func(), inboxSize),
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (g *GameLoop) Run() {
	defer close(g.done)
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	log.Printf("[loop] started at %d ticks/second", g.tickRate)

	for {
		select {
		case <-g.stopChan:
			log.Println("[loop] stopped")
			return
		case cmd := <-g.inbox:
			cmd()
		case <-ticker.C:
			g.tick()
		}
	}
}

// Post queues cmd for the loop goroutine. It reports false once the loop has
// stopped.
func (g *GameLoop) Post(cmd func()) bool {
	return g.PostContext(context.Background(), cmd) == nil
}

// PostContext is Post that gives up when ctx ends while the inbox is full.
func (g *GameLoop) PostContext(ctx context.Context, cmd func()) error {
	select {
	case <-g.stopChan:
		return ErrStopped
	default:
	}
	select {
	case g.inbox <- cmd:
		return nil
	case <-g.stopChan:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Schedule is a Scheduler whose callbacks run on the loop goroutine.
func (g *GameLoop) Schedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, func() { g.Post(fn) })
	return func() { t.Stop() }
}

// Stop ends Run. Safe to call more than once.
func (g *GameLoop) Stop() {
	g.stopOnce.Do(func() { close(g.stopChan) })
}

// Done is closed when Run returns.
func (g *GameLoop) Done() <-chan struct{} {
	return g.done
}

func (g *GameLoop) tick() {
	g.game.Tick()
}
