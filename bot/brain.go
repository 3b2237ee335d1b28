// Package bot plays one seat from a client's View: chase the puck, carry it
// toward the opponent goal, shoot inside range and jolt at a nearby holder.
package bot

import (
	"github.com/automoto/puckduel/config"
	"github.com/automoto/puckduel/network"
	"github.com/automoto/puckduel/shared/gamemath"
	"github.com/automoto/puckduel/shared/messages"
	"github.com/automoto/puckduel/shared/netconfig"
)

// joltInterval is the minimum frames between jolt attempts; the server
// cooldown is one second.
const joltInterval = netconfig.TickRate

// Action is what the bot sends for one decision. Move and Pointer are always
// sent; a nil Shoot or Jolt sends nothing.
type Action struct {
	Move    messages.MoveInput
	Pointer messages.PointerInput
	Shoot   *messages.ShootInput
	Jolt    *messages.JoltInput
}

// Brain makes decisions at the pace of its difficulty.
type Brain struct {
	cfg       config.BotDifficultyConfig
	frame     int
	lastJolt  int
	lastFrame uint64
}

func NewBrain(difficulty config.BotDifficulty) *Brain {
	return &Brain{
		cfg:      config.Bot.Difficulties[difficulty],
		lastJolt: -joltInterval,
	}
}

// Decide is called once per client frame. It returns false on frames where
// the bot is still "reacting" or has nothing to act on.
func (b *Brain) Decide(v network.View) (Action, bool) {
	b.frame++
	if b.cfg.ReactionDelay > 1 && b.frame%b.cfg.ReactionDelay != 0 {
		return Action{}, false
	}
	me, ok := v.Me()
	if !ok {
		return Action{}, false
	}

	goalX, goalY := opponentGoal(v.Seat)
	puck := v.Puck

	if puck.HeldBy == v.Seat {
		act := Action{
			Move:    moveToward(me.X, me.Y, goalX, goalY),
			Pointer: messages.PointerInput{X: goalX, Y: goalY},
		}
		if gamemath.Distance(puck.X, puck.Y, goalX, goalY) <= b.cfg.ShotRange {
			vx, vy := gamemath.CalculateShotVelocity(puck.X, puck.Y, goalX, goalY, b.cfg.ShotSpeed)
			act.Shoot = &messages.ShootInput{VX: vx, VY: vy}
		}
		return act, true
	}

	act := Action{
		Move:    moveToward(me.X, me.Y, puck.X, puck.Y),
		Pointer: messages.PointerInput{X: puck.X, Y: puck.Y},
	}
	opponentHolds := puck.HeldBy == v.Seat.Opponent()
	if opponentHolds && b.cfg.JoltRange > 0 && b.frame-b.lastJolt >= joltInterval &&
		gamemath.Distance(me.X, me.Y, puck.X, puck.Y) <= b.cfg.JoltRange {
		act.Jolt = &messages.JoltInput{PointerX: puck.X, PointerY: puck.Y}
		b.lastJolt = b.frame
	}
	return act, true
}

// opponentGoal is the centre of the goal mouth the seat attacks.
func opponentGoal(seat netconfig.Seat) (x, y float64) {
	y = (netconfig.GoalTop + netconfig.GoalBottom) / 2
	if netconfig.AttackDirection(seat) > 0 {
		return netconfig.ArenaWidth, y
	}
	return 0, y
}

func moveToward(fromX, fromY, toX, toY float64) messages.MoveInput {
	dx, dy, ok := gamemath.CalculateAimDirection(fromX, fromY, toX, toY)
	if !ok {
		return messages.MoveInput{}
	}
	limit := config.Physics.MaxIntent
	return messages.MoveInput{DX: dx * limit, DY: dy * limit}
}
