package agent

import (
	"context"
	"fmt"

	"cribbage-lite/card"
	"cribbage-lite/cribbage"
)

// Rollout builds the isolated hands the planner simulates. Cards the planner
// cannot see are dealt uniformly from whatever is left in the deck.
type Rollout struct {
	Factory SandboxFactory
}

// Build returns a sandbox at the start of the discard phase: seat holds
// hand, dealer is pinned, and every other seat holds len(hand) cards drawn
// from the remaining stock. Each seed yields an independent deal.
func (r Rollout) Build(ctx context.Context, seat cribbage.Seat, hand []card.Card, dealer cribbage.Seat, players int, seed int64) (Sandbox, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	factory := r.Factory
	if factory == nil {
		factory = NewGameSandbox
	}

	sb, err := factory(players, seed)
	if err != nil {
		return nil, fmt.Errorf("new sandbox: %w", err)
	}
	if err := sb.ResetHand(dealer); err != nil {
		return nil, fmt.Errorf("reset hand: %w", err)
	}
	if err := sb.SetHand(seat, hand); err != nil {
		return nil, fmt.Errorf("set hand: %w", err)
	}
	if err := sb.RemoveFromStock(hand...); err != nil {
		return nil, fmt.Errorf("remove held cards: %w", err)
	}
	for s := 0; s < players; s++ {
		if cribbage.Seat(s) == seat {
			continue
		}
		if err := sb.DealFromStock(cribbage.Seat(s), len(hand)); err != nil {
			return nil, fmt.Errorf("deal seat %d: %w", s, err)
		}
	}
	return sb, nil
}
