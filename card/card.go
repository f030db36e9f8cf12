package card

import (
	"fmt"
	"strings"
)

// Card is a single playing card.
//
// Encoding: high nibble is the suit (0:Spade, 1:Heart, 2:Club, 3:Diamond),
// low nibble is the rank (1:A, 2..10, 11:J, 12:Q, 13:K).
type Card byte

const rankChars = "?A23456789TJQK"

// New builds a card from a suit and a rank in 1..13.
func New(s Suit, rank int) (Card, error) {
	if s > Diamond {
		return CardInvalid, fmt.Errorf("invalid suit: %d", s)
	}
	if rank < 1 || rank > 13 {
		return CardInvalid, fmt.Errorf("invalid rank: %d", rank)
	}
	return Card(byte(s)<<4 | byte(rank)), nil
}

func (c Card) String() string {
	if !c.Valid() {
		return "--"
	}
	return string(rankChars[c.Rank()]) + c.Suit().Letter()
}

// Valid reports whether c encodes a real card.
func (c Card) Valid() bool {
	r := c & 0x0F
	return c != CardInvalid && c.Suit() <= Diamond && r >= 1 && r <= 13
}

// Rank returns 1..13 (A=1, K=13), or 0 for an invalid card.
func (c Card) Rank() byte {
	if c == CardInvalid {
		return 0
	}
	return byte(c & 0x0F)
}

// Suit returns the suit nibble.
func (c Card) Suit() Suit {
	return Suit(c >> 4)
}

// RankValue is the ordering value used by high/low card heuristics.
func (c Card) RankValue() int {
	return int(c.Rank())
}

// PipValue is the counting value: aces count 1, faces count 10.
func (c Card) PipValue() int {
	r := int(c.Rank())
	if r > 10 {
		return 10
	}
	return r
}

func (c Card) IsJack() bool {
	return c.Rank() == 11
}

// Parse converts strings such as "As", "Td", "10h" or "qc" into a Card.
func Parse(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return CardInvalid, fmt.Errorf("invalid card string: %q", s)
	}

	var suit Suit
	switch s[len(s)-1] {
	case 's', 'S':
		suit = Spade
	case 'h', 'H':
		suit = Heart
	case 'c', 'C':
		suit = Club
	case 'd', 'D':
		suit = Diamond
	default:
		return CardInvalid, fmt.Errorf("invalid suit: %c", s[len(s)-1])
	}

	rankStr := strings.ToUpper(s[:len(s)-1])
	if rankStr == "10" {
		rankStr = "T"
	}
	if len(rankStr) != 1 {
		return CardInvalid, fmt.Errorf("invalid rank: %s", rankStr)
	}
	idx := strings.IndexByte(rankChars, rankStr[0])
	if idx < 1 {
		return CardInvalid, fmt.Errorf("invalid rank: %s", rankStr)
	}
	return New(suit, idx)
}

// ParseList parses every entry, failing on the first bad one.
func ParseList(items []string) ([]Card, error) {
	out := make([]Card, 0, len(items))
	for _, it := range items {
		c, err := Parse(it)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
