package cribbage

import (
	"math/rand/v2"

	"cribbage-lite/card"
)

// State is a deep copy of the game as seen from outside. Mutating it never
// affects the game it came from.
type State struct {
	Round   int
	Phase   Phase
	Players int
	Dealer  Seat
	Turn    Seat
	Ended   bool
	Winner  Seat

	Hands   [][]card.Card
	Kept    [][]card.Card
	Crib    []card.Card
	Starter card.Card
	Stock   []card.Card
	Scores  []int

	PegCount int
	PegSeq   []card.Card
	Legal    []card.Card
}

// Hand returns the cards held by the seat on turn.
func (s State) Hand() []card.Card {
	if s.Turn < 0 || int(s.Turn) >= len(s.Hands) {
		return nil
	}
	return s.Hands[s.Turn]
}

func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()

	st := State{
		Round:    g.round,
		Phase:    g.phase,
		Players:  g.cfg.Players,
		Dealer:   g.dealer,
		Turn:     g.turn,
		Ended:    g.ended,
		Winner:   g.winner,
		Hands:    make([][]card.Card, len(g.hands)),
		Kept:     make([][]card.Card, len(g.kept)),
		Crib:     g.crib.Clone(),
		Starter:  g.starter,
		Stock:    g.stock.Clone(),
		Scores:   append([]int(nil), g.scores...),
		PegCount: g.pegCount,
		PegSeq:   g.pegSeq.Clone(),
		Legal:    g.legalLocked(),
	}
	for i := range g.hands {
		st.Hands[i] = g.hands[i].Clone()
	}
	for i := range g.kept {
		st.Kept[i] = g.kept[i].Clone()
	}
	return st
}

// Clone returns an independent copy of the game, random source included, so
// the copy deals the same future cards as the original would.
func (g *Game) Clone() *Game {
	g.mu.Lock()
	defer g.mu.Unlock()

	src := *g.src
	ng := &Game{
		cfg:             g.cfg,
		src:             &src,
		started:         g.started,
		ended:           g.ended,
		winner:          g.winner,
		scores:          append([]int(nil), g.scores...),
		round:           g.round,
		phase:           g.phase,
		dealer:          g.dealer,
		turn:            g.turn,
		hands:           make([]card.CardList, len(g.hands)),
		kept:            make([]card.CardList, len(g.kept)),
		crib:            g.crib.Clone(),
		starter:         g.starter,
		stock:           g.stock.Clone(),
		pegCount:        g.pegCount,
		pegSeq:          g.pegSeq.Clone(),
		showStep:        g.showStep,
		overridePending: g.overridePending,
	}
	ng.rng = rand.New(ng.src)
	for i := range g.hands {
		ng.hands[i] = g.hands[i].Clone()
	}
	for i := range g.kept {
		ng.kept[i] = g.kept[i].Clone()
	}
	if g.cfg.DeckOverride != nil {
		ng.cfg.DeckOverride = append([]card.Card(nil), g.cfg.DeckOverride...)
	}
	return ng
}
