package agent

import (
	"testing"

	"cribbage-lite/card"
)

func TestMemo(t *testing.T) {
	var m Memo
	if m.Pending() {
		t.Fatalf("zero memo should be empty")
	}
	if _, ok := m.Pop(); ok {
		t.Fatalf("pop on empty memo should fail")
	}

	m.Push(card.CardHeart5)
	if !m.Pending() {
		t.Fatalf("expected pending card")
	}
	c, ok := m.Pop()
	if !ok || c != card.CardHeart5 {
		t.Fatalf("expected 5h, got %v %v", c, ok)
	}
	if _, ok := m.Pop(); ok {
		t.Fatalf("memo is read-once")
	}

	m.Push(card.CardClub9)
	m.Clear()
	if m.Pending() {
		t.Fatalf("Clear left a pending card")
	}
}

func TestMemo_DropsCardFromEarlierDeal(t *testing.T) {
	var m Memo
	m.Push(card.CardSpadeK)
	if _, ok := m.popHeld([]card.Card{card.CardHeart2, card.CardHeart3}); ok {
		t.Fatalf("card not in hand must not be returned")
	}
	if m.Pending() {
		t.Fatalf("stale card should be dropped")
	}
}
