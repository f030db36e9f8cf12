package cribbage

import "cribbage-lite/card"

func (g *Game) validSeat(s Seat) bool {
	return s >= 0 && int(s) < g.cfg.Players
}

func (g *Game) next(s Seat) Seat {
	return Seat((int(s) + 1) % g.cfg.Players)
}

// nextSeat walks the table once starting left of from (from itself is
// checked last) and returns the first seat accepted by ok.
func (g *Game) nextSeat(from Seat, ok func(Seat) bool) Seat {
	for i := 1; i <= g.cfg.Players; i++ {
		s := Seat((int(from) + i) % g.cfg.Players)
		if ok(s) {
			return s
		}
	}
	return AnySeat
}

func (g *Game) mustDiscard(s Seat) bool {
	return g.hands[s].Count() > keepSize
}

func (g *Game) holdsCards(s Seat) bool {
	return g.hands[s].Count() > 0
}

func (g *Game) canPlay(s Seat) bool {
	for _, c := range g.hands[s] {
		if g.pegCount+c.PipValue() <= pegLimit {
			return true
		}
	}
	return false
}

func (g *Game) legalLocked() []card.Card {
	if g.phase != PhasePeg || !g.validSeat(g.turn) {
		return nil
	}
	var out []card.Card
	for _, c := range g.hands[g.turn] {
		if g.pegCount+c.PipValue() <= pegLimit {
			out = append(out, c)
		}
	}
	return out
}
