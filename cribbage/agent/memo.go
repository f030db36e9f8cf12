package agent

import "cribbage-lite/card"

// Memo holds the second card of a paired discard between the two requests
// of one hand.
type Memo struct {
	card    card.Card
	pending bool
}

func (m *Memo) Push(c card.Card) {
	m.card = c
	m.pending = true
}

// Pop returns and clears the pending card.
func (m *Memo) Pop() (card.Card, bool) {
	if !m.pending {
		return card.CardInvalid, false
	}
	c := m.card
	m.Clear()
	return c, true
}

func (m *Memo) Pending() bool { return m.pending }

func (m *Memo) Clear() {
	m.card = card.CardInvalid
	m.pending = false
}

// popHeld pops the pending card if it is still in hand. A card that left the
// hand belongs to an earlier deal and is dropped.
func (m *Memo) popHeld(hand []card.Card) (card.Card, bool) {
	c, ok := m.Pop()
	if !ok || !card.CardList(hand).Contains(c) {
		return card.CardInvalid, false
	}
	return c, true
}
