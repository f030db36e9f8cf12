package agent

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"testing"

	"cribbage-lite/card"
	"cribbage-lite/cribbage"
)

func mustCards(t *testing.T, s string) []card.Card {
	t.Helper()
	cards, err := card.ParseList(strings.Fields(s))
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return cards
}

// hashOracle gives every card set a fixed, order-independent score.
type hashOracle struct{}

func (hashOracle) Score(cards []card.Card) int {
	sorted := slices.Clone(cards)
	slices.Sort(sorted)
	h := 17
	for _, c := range sorted {
		h = (h*31 + int(c)) % 1000003
	}
	return h % 97
}

// countingOracle records every distinct set it was asked to score.
type countingOracle struct {
	mu    sync.Mutex
	calls int
	seen  map[string]int
}

func (o *countingOracle) Score(cards []card.Card) int {
	sorted := slices.Clone(cards)
	slices.Sort(sorted)
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.seen == nil {
		o.seen = make(map[string]int)
	}
	o.calls++
	o.seen[card.CardList(sorted).String()]++
	return 0
}

// stubEngine serves a fixed state and pays fixed rewards per card.
type stubEngine struct {
	st      cribbage.State
	rewards map[card.Card]int
	err     error
	steps   *int
}

func (s *stubEngine) State() cribbage.State { return s.st }

func (s *stubEngine) Step(a cribbage.Action) (cribbage.StepResult, error) {
	if s.steps != nil {
		*s.steps++
	}
	if s.err != nil {
		return cribbage.StepResult{}, s.err
	}
	return cribbage.StepResult{Seat: a.Seat, Points: s.rewards[a.Card], Phase: s.st.Phase}, nil
}

func (s *stubEngine) Clone() Engine {
	c := *s
	return &c
}

func discardState(hand []card.Card) cribbage.State {
	return cribbage.State{
		Phase:   cribbage.PhaseDiscard,
		Players: 2,
		Dealer:  1,
		Turn:    0,
		Hands:   [][]card.Card{hand, nil},
	}
}

// pairRecorder collects the forced discard pairs seen by scriptSandbox.
type pairRecorder struct {
	mu     sync.Mutex
	builds int
	pairs  map[string]int
}

func (r *pairRecorder) build() {
	r.mu.Lock()
	r.builds++
	r.mu.Unlock()
}

func (r *pairRecorder) add(a, b card.Card) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pairs == nil {
		r.pairs = make(map[string]int)
	}
	r.pairs[fmt.Sprintf("%v %v", a, b)]++
}

// scriptSandbox ends the hand as soon as seat 0 has laid away two cards and
// pays payoff(a, b) to seat 0 (negative values go to seat 1).
type scriptSandbox struct {
	dealer   cribbage.Seat
	hands    [][]card.Card
	discards []card.Card
	payoff   func(a, b card.Card) int
	fail     func(a, b card.Card) bool
	rec      *pairRecorder
}

func scriptFactory(rec *pairRecorder, payoff func(a, b card.Card) int, fail func(a, b card.Card) bool) SandboxFactory {
	return func(players int, seed int64) (Sandbox, error) {
		if rec != nil {
			rec.build()
		}
		return &scriptSandbox{payoff: payoff, fail: fail, rec: rec}, nil
	}
}

func (s *scriptSandbox) State() cribbage.State {
	return cribbage.State{
		Phase:   cribbage.PhaseDiscard,
		Players: 2,
		Dealer:  s.dealer,
		Turn:    0,
		Hands:   s.hands,
	}
}

func (s *scriptSandbox) Step(a cribbage.Action) (cribbage.StepResult, error) {
	if a.Seat != 0 {
		return cribbage.StepResult{}, cribbage.ErrOutOfTurn
	}
	s.discards = append(s.discards, a.Card)
	if len(s.discards) < 2 {
		return cribbage.StepResult{Seat: 0, Phase: cribbage.PhaseDiscard}, nil
	}
	x, y := s.discards[0], s.discards[1]
	if s.rec != nil {
		s.rec.add(x, y)
	}
	if s.fail != nil && s.fail(x, y) {
		return cribbage.StepResult{}, cribbage.ErrIllegalPlay
	}
	res := cribbage.StepResult{Seat: 0, Kind: cribbage.ScoreShow, Phase: cribbage.PhaseShow, Done: true}
	if v := s.payoff(x, y); v >= 0 {
		res.Points = v
	} else {
		res.Seat, res.Points = 1, -v
	}
	return res, nil
}

func (s *scriptSandbox) Clone() Engine {
	c := *s
	c.discards = slices.Clone(s.discards)
	return &c
}

func (s *scriptSandbox) ResetHand(dealer cribbage.Seat) error {
	s.dealer = dealer
	s.hands = make([][]card.Card, 2)
	s.discards = nil
	return nil
}

func (s *scriptSandbox) SetHand(seat cribbage.Seat, cards []card.Card) error {
	s.hands[seat] = slices.Clone(cards)
	return nil
}

func (s *scriptSandbox) RemoveFromStock(cards ...card.Card) error { return nil }

func (s *scriptSandbox) DealFromStock(seat cribbage.Seat, n int) error { return nil }
