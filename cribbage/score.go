package cribbage

import "cribbage-lite/card"

// Oracle scores an arbitrary set of cards as a hand with no starter.
// It is the default scorer for discard heuristics.
type Oracle struct{}

func (Oracle) Score(cards []card.Card) int {
	return ScoreHand(cards, card.CardInvalid, false)
}

// ScoreHand counts a show hand. starter may be card.CardInvalid, in which
// case only the held cards are counted. crib tightens the flush rule.
func ScoreHand(hand []card.Card, starter card.Card, crib bool) int {
	all := make([]card.Card, 0, len(hand)+1)
	all = append(all, hand...)
	if starter.Valid() {
		all = append(all, starter)
	}

	points := scoreFifteens(all) + scorePairs(all) + scoreRuns(all)
	points += scoreFlush(hand, starter, crib)
	if starter.Valid() {
		for _, c := range hand {
			if c.IsJack() && c.Suit() == starter.Suit() {
				points++ // nobs
				break
			}
		}
	}
	return points
}

func scoreFifteens(cards []card.Card) int {
	n := len(cards)
	count := 0
	for mask := 1; mask < 1<<n; mask++ {
		sum := 0
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				sum += cards[i].PipValue()
			}
		}
		if sum == 15 {
			count++
		}
	}
	return 2 * count
}

func scorePairs(cards []card.Card) int {
	points := 0
	for i := 0; i < len(cards)-1; i++ {
		for j := i + 1; j < len(cards); j++ {
			if cards[i].Rank() == cards[j].Rank() {
				points += 2
			}
		}
	}
	return points
}

func scoreRuns(cards []card.Card) int {
	var counts [14]int
	for _, c := range cards {
		counts[c.Rank()]++
	}
	points := 0
	for r := 1; r <= 13; {
		if counts[r] == 0 {
			r++
			continue
		}
		length, combos := 0, 1
		for r <= 13 && counts[r] > 0 {
			length++
			combos *= counts[r]
			r++
		}
		if length >= 3 {
			points += length * combos
		}
	}
	return points
}

func scoreFlush(hand []card.Card, starter card.Card, crib bool) int {
	if len(hand) < keepSize {
		return 0
	}
	suit := hand[0].Suit()
	for _, c := range hand[1:] {
		if c.Suit() != suit {
			return 0
		}
	}
	switch {
	case starter.Valid() && starter.Suit() == suit:
		return len(hand) + 1
	case crib:
		return 0
	}
	return len(hand)
}

// PegPoints scores the last card of an in-progress peg sequence.
// Go and last-card points are the engine's concern.
func PegPoints(seq []card.Card) int {
	if len(seq) == 0 {
		return 0
	}
	points := 0
	total := 0
	for _, c := range seq {
		total += c.PipValue()
	}
	if total == 15 || total == pegLimit {
		points += 2
	}

	last := seq[len(seq)-1].Rank()
	same := 1
	for i := len(seq) - 2; i >= 0 && seq[i].Rank() == last; i-- {
		same++
	}
	switch same {
	case 2:
		points += 2
	case 3:
		points += 6
	case 4:
		points += 12
	}

	for n := len(seq); n >= 3; n-- {
		if isRun(seq[len(seq)-n:]) {
			points += n
			break
		}
	}
	return points
}

func isRun(cards []card.Card) bool {
	var seen [14]bool
	lo, hi := 14, 0
	for _, c := range cards {
		r := int(c.Rank())
		if seen[r] {
			return false
		}
		seen[r] = true
		lo = min(lo, r)
		hi = max(hi, r)
	}
	return hi-lo == len(cards)-1
}
