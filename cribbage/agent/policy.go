package agent

import (
	"context"
	"fmt"

	"cribbage-lite/card"
	"cribbage-lite/cribbage"
)

// Engine is the part of the game engine a policy may touch. Clone must
// return a fully independent copy: stepping the clone is never visible in
// the original.
type Engine interface {
	State() cribbage.State
	Step(a cribbage.Action) (cribbage.StepResult, error)
	Clone() Engine
}

// Sandbox is an engine that can be set up mid-deal for a rollout.
type Sandbox interface {
	Engine
	ResetHand(dealer cribbage.Seat) error
	SetHand(seat cribbage.Seat, cards []card.Card) error
	RemoveFromStock(cards ...card.Card) error
	DealFromStock(seat cribbage.Seat, n int) error
}

// SandboxFactory creates a fresh sandbox for one rollout.
type SandboxFactory func(players int, seed int64) (Sandbox, error)

// Oracle scores a retained hand. Implementations must be safe for
// concurrent use; the planner scores from several workers at once.
type Oracle interface {
	Score(cards []card.Card) int
}

// Policy is one way of playing. Policies keep per-hand state (the discard
// memo) and must not be shared between seats.
type Policy interface {
	Name() string
	ChooseDiscard(ctx context.Context, eng Engine) (card.Card, error)
	ChoosePlay(ctx context.Context, eng Engine) (card.Card, error)
}

// PolicyFactory builds a fresh policy, e.g. one per seat per rollout.
type PolicyFactory func(seed int64) Policy

// Act asks p for the action the seat on turn should take. The show needs no
// decision and yields an empty action.
func Act(ctx context.Context, p Policy, eng Engine) (cribbage.Action, error) {
	st := eng.State()
	a := cribbage.Action{Seat: st.Turn, Card: card.CardInvalid}

	var err error
	switch st.Phase {
	case cribbage.PhaseDiscard:
		a.Card, err = p.ChooseDiscard(ctx, eng)
	case cribbage.PhasePeg:
		a.Card, err = p.ChoosePlay(ctx, eng)
	}
	if err != nil {
		return cribbage.Action{}, fmt.Errorf("%s: %w", p.Name(), err)
	}
	return a, nil
}

type gameEngine struct {
	*cribbage.Game
}

// FromGame adapts a concrete game to Engine.
func FromGame(g *cribbage.Game) Engine {
	return gameEngine{g}
}

func (e gameEngine) Clone() Engine {
	return gameEngine{e.Game.Clone()}
}

type gameSandbox struct {
	*cribbage.Game
}

func (s gameSandbox) Clone() Engine {
	return gameSandbox{s.Game.Clone()}
}

// NewGameSandbox is the default SandboxFactory, backed by cribbage.Game.
func NewGameSandbox(players int, seed int64) (Sandbox, error) {
	g, err := cribbage.NewGame(cribbage.Config{Players: players, Seed: seed})
	if err != nil {
		return nil, err
	}
	return gameSandbox{g}, nil
}

func defaultOracle(o Oracle) Oracle {
	if o == nil {
		return cribbage.Oracle{}
	}
	return o
}
