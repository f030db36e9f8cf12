package cribbage

import (
	"fmt"

	"cribbage-lite/card"
)

type Config struct {
	// Players is 2 or 3 (default 2).
	Players int
	// WinScore ends the game as soon as a seat reaches it (default 121).
	WinScore int

	// RNG seed (0 => entropy)
	Seed int64

	// ForcedDealer pins the first dealer on Reset(AnySeat).
	ForcedDealer *Seat
	// DeckOverride replaces the shuffle of the first hand; cards are dealt
	// from the front.
	DeckOverride []card.Card
}

func (c *Config) applyDefaults() {
	if c.Players == 0 {
		c.Players = 2
	}
	if c.WinScore == 0 {
		c.WinScore = defaultScore
	}
}

func (c Config) validate() error {
	if c.Players != 2 && c.Players != 3 {
		return fmt.Errorf("Players must be 2 or 3, got %d", c.Players)
	}
	if c.WinScore <= 0 {
		return fmt.Errorf("WinScore must be > 0")
	}
	if c.ForcedDealer != nil && (*c.ForcedDealer < 0 || int(*c.ForcedDealer) >= c.Players) {
		return fmt.Errorf("forced dealer seat %d out of range", *c.ForcedDealer)
	}
	if c.DeckOverride != nil {
		if len(c.DeckOverride) != deckSize {
			return fmt.Errorf("deck override must have %d cards, got %d", deckSize, len(c.DeckOverride))
		}
		seen := make(map[card.Card]struct{}, deckSize)
		for _, cc := range c.DeckOverride {
			if !cc.Valid() {
				return fmt.Errorf("deck override has invalid card %#x", byte(cc))
			}
			if _, ok := seen[cc]; ok {
				return fmt.Errorf("deck override has duplicate card %v", cc)
			}
			seen[cc] = struct{}{}
		}
	}
	return nil
}
