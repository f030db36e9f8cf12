package replay

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"cribbage-lite/card"
	"cribbage-lite/cribbage"
)

const (
	deckSize  = 52
	keptCards = 4
	cribCards = 4
)

type normalizedAction struct {
	phase cribbage.Phase
	seat  cribbage.Seat
	card  card.Card
}

type normalizedSpec struct {
	players int
	dealer  cribbage.Seat
	names   []string
	hands   [][]card.Card
	deck    []card.Card
	actions []normalizedAction
	seed    int64
}

func normalizeSpec(spec HandSpec) (normalizedSpec, error) {
	var out normalizedSpec
	out.players = spec.Players
	if out.players == 0 {
		out.players = 2
	}
	if out.players != 2 && out.players != 3 {
		return out, &ReplayError{StepIndex: -1, Reason: "invalid_players", Message: "players must be 2 or 3"}
	}
	if spec.Dealer < 0 || spec.Dealer >= out.players {
		return out, &ReplayError{StepIndex: -1, Reason: "invalid_dealer", Message: "dealer out of range"}
	}
	out.dealer = cribbage.Seat(spec.Dealer)
	out.seed = seedFromSpec(spec.RNG)

	out.names = make([]string, out.players)
	out.hands = make([][]card.Card, out.players)
	seenSeat := make(map[int]struct{}, len(spec.Seats))
	handSize := cribbage.HandSize(out.players)
	for i, seat := range spec.Seats {
		if seat.Seat < 0 || seat.Seat >= out.players {
			return out, &ReplayError{StepIndex: -1, Reason: "invalid_seat", Message: fmt.Sprintf("seat %d out of range", i)}
		}
		if _, exists := seenSeat[seat.Seat]; exists {
			return out, &ReplayError{StepIndex: -1, Reason: "duplicate_seat", Message: fmt.Sprintf("duplicate seat %d", seat.Seat)}
		}
		seenSeat[seat.Seat] = struct{}{}

		hand, err := parseCards(seat.Hand)
		if err != nil {
			return out, &ReplayError{StepIndex: -1, Reason: "invalid_card", Message: fmt.Sprintf("seat %d: %v", seat.Seat, err)}
		}
		if len(hand) != 0 && len(hand) != handSize {
			return out, &ReplayError{
				StepIndex: -1,
				Reason:    "invalid_hand_size",
				Message:   fmt.Sprintf("seat %d holds %d cards, want %d", seat.Seat, len(hand), handSize),
			}
		}
		out.hands[seat.Seat] = hand
		out.names[seat.Seat] = strings.TrimSpace(seat.Name)
	}
	for i := range out.names {
		if out.names[i] == "" {
			out.names[i] = fmt.Sprintf("P%d", i)
		}
	}

	starter := card.CardInvalid
	if s := strings.TrimSpace(spec.Starter); s != "" {
		c, err := card.Parse(s)
		if err != nil {
			return out, &ReplayError{StepIndex: -1, Reason: "invalid_card", Message: fmt.Sprintf("starter: %v", err)}
		}
		starter = c
	}

	constraints, err := buildSlotConstraints(out.players, out.dealer, out.hands, starter)
	if err != nil {
		return out, err
	}
	out.deck, err = parseOrBuildDeck(spec.Deck, constraints, out.seed)
	if err != nil {
		return out, err
	}

	out.actions = make([]normalizedAction, 0, len(spec.Actions))
	for i, a := range spec.Actions {
		phase, err := parsePhaseName(a.Phase)
		if err != nil {
			return out, &ReplayError{StepIndex: int32(i), Reason: "invalid_phase", Message: err.Error()}
		}
		if a.Seat < 0 || a.Seat >= out.players {
			return out, &ReplayError{StepIndex: int32(i), Reason: "invalid_action_seat", Message: fmt.Sprintf("seat %d not at the table", a.Seat)}
		}
		na := normalizedAction{phase: phase, seat: cribbage.Seat(a.Seat), card: card.CardInvalid}
		if phase != cribbage.PhaseShow {
			c, err := card.Parse(a.Card)
			if err != nil {
				return out, &ReplayError{StepIndex: int32(i), Reason: "invalid_card", Message: err.Error()}
			}
			na.card = c
		} else if strings.TrimSpace(a.Card) != "" {
			return out, &ReplayError{StepIndex: int32(i), Reason: "invalid_action", Message: "show actions carry no card"}
		}
		out.actions = append(out.actions, na)
	}
	return out, nil
}

func parseCards(items []string) ([]card.Card, error) {
	if len(items) == 0 {
		return nil, nil
	}
	return card.ParseList(items)
}

// buildSlotConstraints maps deck positions to required cards. Cards are dealt
// one at a time starting left of the dealer; in a three-handed game one card
// tops up the crib before the starter is cut.
func buildSlotConstraints(players int, dealer cribbage.Seat, hands [][]card.Card, starter card.Card) (map[int]card.Card, error) {
	handSize := cribbage.HandSize(players)
	constraints := make(map[int]card.Card, players*handSize+1)
	used := make(map[card.Card]struct{}, players*handSize+1)

	for k := 0; k < players; k++ {
		seat := (int(dealer) + 1 + k) % players
		for round, c := range hands[seat] {
			if err := assignConstraint(constraints, used, round*players+k, c); err != nil {
				return nil, err
			}
		}
	}
	if starter.Valid() {
		topUp := cribCards - players*(handSize-keptCards)
		if err := assignConstraint(constraints, used, players*handSize+topUp, starter); err != nil {
			return nil, err
		}
	}
	return constraints, nil
}

func assignConstraint(constraints map[int]card.Card, used map[card.Card]struct{}, slot int, c card.Card) error {
	if _, ok := used[c]; ok {
		return &ReplayError{
			StepIndex: -1,
			Reason:    "duplicate_card",
			Message:   fmt.Sprintf("card %s appears multiple times", c.String()),
		}
	}
	constraints[slot] = c
	used[c] = struct{}{}
	return nil
}

func parseOrBuildDeck(deck []string, constraints map[int]card.Card, seed int64) ([]card.Card, error) {
	if len(deck) > 0 {
		if len(deck) != deckSize {
			return nil, &ReplayError{
				StepIndex: -1,
				Reason:    "invalid_deck",
				Message:   fmt.Sprintf("deck must have %d cards, got %d", deckSize, len(deck)),
			}
		}
		out, err := card.ParseList(deck)
		if err != nil {
			return nil, &ReplayError{StepIndex: -1, Reason: "invalid_card", Message: fmt.Sprintf("deck: %v", err)}
		}
		seen := make(map[card.Card]struct{}, deckSize)
		for i, c := range out {
			if _, ok := seen[c]; ok {
				return nil, &ReplayError{StepIndex: -1, Reason: "duplicate_card", Message: fmt.Sprintf("deck[%d] repeats %s", i, c)}
			}
			seen[c] = struct{}{}
		}
		for slot, c := range constraints {
			if out[slot] != c {
				return nil, &ReplayError{
					StepIndex: -1,
					Reason:    "deck_constraint_mismatch",
					Message:   fmt.Sprintf("deck[%d] is %s but the hands need %s", slot, out[slot], c),
				}
			}
		}
		return out, nil
	}

	fixed := make([]card.Card, 0, len(constraints))
	for _, c := range constraints {
		fixed = append(fixed, c)
	}
	rest := card.CardList(card.FullDeck()).Without(fixed...)
	rest.Shuffle(rand.New(rand.NewPCG(uint64(seed), uint64(seed))))

	out := make([]card.Card, deckSize)
	next := 0
	for slot := range out {
		if c, ok := constraints[slot]; ok {
			out[slot] = c
			continue
		}
		out[slot] = rest[next]
		next++
	}
	return out, nil
}

func parsePhaseName(raw string) (cribbage.Phase, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "discard", "deal":
		return cribbage.PhaseDiscard, nil
	case "peg", "play":
		return cribbage.PhasePeg, nil
	case "show", "count":
		return cribbage.PhaseShow, nil
	}
	return 0, fmt.Errorf("unknown phase %q", raw)
}

func seedFromSpec(rng *RNGSpec) int64 {
	if rng == nil {
		return 0
	}
	return rng.Seed
}
