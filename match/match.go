package match

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"cribbage-lite/cribbage"
	"cribbage-lite/cribbage/agent"
)

// HandRecord is the ledger of one hand: points per seat split by where they
// were scored, and the cumulative scores once the hand was over.
type HandRecord struct {
	Round   int           `yaml:"round"`
	Dealer  cribbage.Seat `yaml:"dealer"`
	Discard []int         `yaml:"discard"`
	Peg     []int         `yaml:"peg"`
	Show    []int         `yaml:"show"`
	Scores  []int         `yaml:"scores"`
	Done    bool          `yaml:"done,omitempty"`
}

func newHandRecord(st cribbage.State) HandRecord {
	return HandRecord{
		Round:   st.Round,
		Dealer:  st.Dealer,
		Discard: make([]int, st.Players),
		Peg:     make([]int, st.Players),
		Show:    make([]int, st.Players),
	}
}

// Total is everything seat scored during the hand.
func (h HandRecord) Total(seat cribbage.Seat) int {
	return h.Discard[seat] + h.Peg[seat] + h.Show[seat]
}

// Differential is seat's hand total minus the best of the other seats.
func (h HandRecord) Differential(seat cribbage.Seat) int {
	best := 0
	first := true
	for s := range h.Discard {
		if cribbage.Seat(s) == seat {
			continue
		}
		if t := h.Total(cribbage.Seat(s)); first || t > best {
			best, first = t, false
		}
	}
	return h.Total(seat) - best
}

func (h *HandRecord) credit(res cribbage.StepResult) {
	switch res.Phase {
	case cribbage.PhaseDiscard:
		h.Discard[res.Seat] += res.Points
	case cribbage.PhasePeg:
		h.Peg[res.Seat] += res.Points
	case cribbage.PhaseShow:
		h.Show[res.Seat] += res.Points
	}
}

type Result struct {
	Players []string      `yaml:"players"`
	Hands   []HandRecord  `yaml:"hands"`
	Scores  []int         `yaml:"scores"`
	Winner  cribbage.Seat `yaml:"winner"`
}

// Play drives game to its end, asking policies[seat] for every decision.
// The game must already be reset.
func Play(ctx context.Context, game *cribbage.Game, policies []agent.Policy) (*Result, error) {
	logger := zerolog.Ctx(ctx)
	eng := agent.FromGame(game)

	st := eng.State()
	if len(policies) != st.Players {
		return nil, fmt.Errorf("need %d policies, got %d", st.Players, len(policies))
	}

	res := &Result{Players: make([]string, len(policies)), Winner: cribbage.AnySeat}
	for i, p := range policies {
		res.Players[i] = p.Name()
	}

	hand := newHandRecord(st)
	for !st.Ended {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		a, err := agent.Act(ctx, policies[st.Turn], eng)
		if err != nil {
			return nil, fmt.Errorf("round %d seat %d: %w", st.Round, st.Turn, err)
		}
		step, err := eng.Step(a)
		if err != nil {
			return nil, fmt.Errorf("round %d seat %d step %+v: %w", st.Round, st.Turn, a, err)
		}
		hand.credit(step)

		next := eng.State()
		if step.Done || next.Round != st.Round {
			hand.Scores = next.Scores
			hand.Done = step.Done
			res.Hands = append(res.Hands, hand)
			logger.Debug().
				Int("round", hand.Round).
				Int("dealer", int(hand.Dealer)).
				Ints("scores", hand.Scores).
				Int("diff", hand.Differential(0)).
				Msg("hand complete")
			hand = newHandRecord(next)
		}
		st = next
	}

	res.Scores = st.Scores
	res.Winner = st.Winner
	return res, nil
}
