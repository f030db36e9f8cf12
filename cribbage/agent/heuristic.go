package agent

import (
	"context"
	"math"
	"math/rand/v2"

	"lukechampine.com/frand"

	"cribbage-lite/card"
)

// Random picks uniformly from the hand when discarding and from the legal
// cards when pegging.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a Random policy; seed 0 draws one from the system.
func NewRandom(seed int64) *Random {
	s := uint64(seed)
	if s == 0 {
		s = frand.Uint64n(math.MaxUint64)
	}
	return &Random{rng: rand.New(rand.NewPCG(s, s>>1))}
}

func (r *Random) Name() string { return "Random" }

func (r *Random) ChooseDiscard(_ context.Context, eng Engine) (card.Card, error) {
	hand := eng.State().Hand()
	if len(hand) == 0 {
		return card.CardInvalid, &HandSizeError{Size: 0}
	}
	return hand[r.rng.IntN(len(hand))], nil
}

func (r *Random) ChoosePlay(_ context.Context, eng Engine) (card.Card, error) {
	legal := eng.State().Legal
	if len(legal) == 0 {
		return card.CardInvalid, ErrNoLegalPlay
	}
	return legal[r.rng.IntN(len(legal))], nil
}

// HighCard always lays away and plays its highest card.
type HighCard struct{}

func (HighCard) Name() string { return "High Card" }

func (HighCard) ChooseDiscard(_ context.Context, eng Engine) (card.Card, error) {
	hand := eng.State().Hand()
	if len(hand) == 0 {
		return card.CardInvalid, &HandSizeError{Size: 0}
	}
	return highest(hand), nil
}

func (HighCard) ChoosePlay(_ context.Context, eng Engine) (card.Card, error) {
	legal := eng.State().Legal
	if len(legal) == 0 {
		return card.CardInvalid, ErrNoLegalPlay
	}
	return highest(legal), nil
}

// LowCard always lays away and plays its lowest card.
type LowCard struct{}

func (LowCard) Name() string { return "Low Card" }

func (LowCard) ChooseDiscard(_ context.Context, eng Engine) (card.Card, error) {
	hand := eng.State().Hand()
	if len(hand) == 0 {
		return card.CardInvalid, &HandSizeError{Size: 0}
	}
	return lowest(hand), nil
}

func (LowCard) ChoosePlay(_ context.Context, eng Engine) (card.Card, error) {
	legal := eng.State().Legal
	if len(legal) == 0 {
		return card.CardInvalid, ErrNoLegalPlay
	}
	return lowest(legal), nil
}
