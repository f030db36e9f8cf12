package agent

import (
	"context"
	"fmt"
	"math"

	"cribbage-lite/card"
	"cribbage-lite/cribbage"
)

// Greedy keeps the four cards the oracle likes best and pegs for the
// largest immediate score.
type Greedy struct {
	Oracle Oracle
	memo   Memo
}

func NewGreedy(o Oracle) *Greedy {
	return &Greedy{Oracle: defaultOracle(o)}
}

func (g *Greedy) Name() string { return "Greedy" }

// ChooseDiscard returns one card to lay away. For a six-card hand the best
// pair is chosen once; the first card is returned and the second is held for
// the next request.
func (g *Greedy) ChooseDiscard(_ context.Context, eng Engine) (card.Card, error) {
	hand := eng.State().Hand()
	if c, ok := g.memo.popHeld(hand); ok {
		return c, nil
	}

	switch len(hand) {
	case 6:
		i, j := BestPair(g.oracle(), hand)
		g.memo.Push(hand[j])
		return hand[i], nil
	case 5:
		return hand[BestSingle(g.oracle(), hand)], nil
	}
	return card.CardInvalid, &HandSizeError{Size: len(hand)}
}

func (g *Greedy) ChoosePlay(_ context.Context, eng Engine) (card.Card, error) {
	return greedyPlay(eng)
}

func (g *Greedy) oracle() Oracle {
	if g.Oracle == nil {
		g.Oracle = cribbage.Oracle{}
	}
	return g.Oracle
}

// DiscardPairs lists the 15 position pairs (i < j) of a six-card hand in
// lexicographic order.
func DiscardPairs() [][2]int {
	out := make([][2]int, 0, 15)
	for i := 0; i < 5; i++ {
		for j := i + 1; j < 6; j++ {
			out = append(out, [2]int{i, j})
		}
	}
	return out
}

// BestPair returns the positions of the pair whose removal leaves the
// highest scoring four cards. The first maximum wins.
func BestPair(o Oracle, hand []card.Card) (int, int) {
	best, bi, bj := math.MinInt, 0, 1
	for _, p := range DiscardPairs() {
		score := o.Score(card.CardList(hand).Without(hand[p[0]], hand[p[1]]))
		if score > best {
			best, bi, bj = score, p[0], p[1]
		}
	}
	return bi, bj
}

// BestSingle returns the position of the card whose removal leaves the
// highest scoring four cards.
func BestSingle(o Oracle, hand []card.Card) int {
	best, bi := math.MinInt, 0
	for i := range hand {
		score := o.Score(card.CardList(hand).Without(hand[i]))
		if score > best {
			best, bi = score, i
		}
	}
	return bi
}

// greedyPlay steps every legal card on a clone and keeps the one that scores
// most for the acting seat. With nothing to gain it dumps the highest card.
func greedyPlay(eng Engine) (card.Card, error) {
	st := eng.State()
	if len(st.Legal) == 0 {
		return card.CardInvalid, ErrNoLegalPlay
	}

	best, bestReward := card.CardInvalid, 0
	for _, c := range st.Legal {
		res, err := eng.Clone().Step(cribbage.Action{Seat: st.Turn, Card: c})
		if err != nil {
			return card.CardInvalid, fmt.Errorf("lookahead %v: %w", c, err)
		}
		if res.Seat != st.Turn {
			continue
		}
		if res.Points > bestReward {
			best, bestReward = c, res.Points
		}
	}
	if bestReward == 0 {
		return highest(st.Legal), nil
	}
	return best, nil
}

func highest(cards []card.Card) card.Card {
	top := card.CardInvalid
	for _, c := range cards {
		if top == card.CardInvalid || c.RankValue() > top.RankValue() {
			top = c
		}
	}
	return top
}

func lowest(cards []card.Card) card.Card {
	bottom := card.CardInvalid
	for _, c := range cards {
		if bottom == card.CardInvalid || c.RankValue() < bottom.RankValue() {
			bottom = c
		}
	}
	return bottom
}
