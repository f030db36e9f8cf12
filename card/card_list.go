package card

import (
	"math/rand/v2"
	"strings"
)

type CardList []Card

func (ds *CardList) Init(cards []Card) {
	*ds = make([]Card, len(cards))
	copy(*ds, cards)
}

// Count 获取总牌数
func (ds CardList) Count() int {
	return len(ds)
}

// Shuffle permutes the list in place with the given source.
func (ds CardList) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(ds), func(i, j int) {
		ds[i], ds[j] = ds[j], ds[i]
	})
}

func (ds *CardList) Add(cards ...Card) {
	*ds = append(*ds, cards...)
}

// PopCard takes the top card, or returns CardInvalid when the list is empty.
func (ds *CardList) PopCard() Card {
	if ds.Count() == 0 {
		return CardInvalid
	}
	c := (*ds)[0]
	*ds = (*ds)[1:]
	return c
}

func (ds *CardList) PopCards(size int) ([]Card, bool) {
	if size > ds.Count() {
		return nil, false
	}
	cards := make([]Card, size)
	copy(cards, (*ds)[:size])
	*ds = (*ds)[size:]
	return cards, true
}

// Remove deletes the first occurrence of c, keeping order.
func (ds *CardList) Remove(c Card) bool {
	idx := ds.IndexOf(c)
	if idx < 0 {
		return false
	}
	*ds = append((*ds)[:idx:idx], (*ds)[idx+1:]...)
	return true
}

func (ds CardList) IndexOf(c Card) int {
	for i, cc := range ds {
		if cc == c {
			return i
		}
	}
	return -1
}

func (ds CardList) Contains(c Card) bool {
	return ds.IndexOf(c) >= 0
}

// Clone returns an independent copy; nil stays nil.
func (ds CardList) Clone() CardList {
	if ds == nil {
		return nil
	}
	out := make(CardList, len(ds))
	copy(out, ds)
	return out
}

// Without returns a copy of ds with every card in drop removed.
func (ds CardList) Without(drop ...Card) CardList {
	out := make(CardList, 0, len(ds))
	for _, c := range ds {
		keep := true
		for _, d := range drop {
			if c == d {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, c)
		}
	}
	return out
}

func (ds CardList) String() string {
	parts := make([]string, len(ds))
	for i, c := range ds {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
