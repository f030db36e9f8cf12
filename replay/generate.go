package replay

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"cribbage-lite/card"
	"cribbage-lite/cribbage"
)

const tapeVersion = 1

// ParseHandSpec reads a HandSpec from YAML (or JSON, which YAML accepts).
func ParseHandSpec(data []byte) (HandSpec, error) {
	var spec HandSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return spec, &ReplayError{StepIndex: -1, Reason: "invalid_spec", Message: err.Error()}
	}
	return spec, nil
}

// BuildGame returns a game positioned at the start of the discard phase with
// exactly the hands the spec names. Actions in the spec are not applied.
func BuildGame(spec HandSpec) (*cribbage.Game, error) {
	ns, err := normalizeSpec(spec)
	if err != nil {
		return nil, err
	}
	return buildGame(ns)
}

func buildGame(ns normalizedSpec) (*cribbage.Game, error) {
	dealer := ns.dealer
	game, err := cribbage.NewGame(cribbage.Config{
		Players:      ns.players,
		Seed:         ns.seed,
		ForcedDealer: &dealer,
		DeckOverride: ns.deck,
	})
	if err != nil {
		return nil, &ReplayError{StepIndex: -1, Reason: "engine_init_failed", Message: err.Error()}
	}
	if err := game.Reset(cribbage.AnySeat); err != nil {
		return nil, &ReplayError{StepIndex: -1, Reason: "reset_failed", Message: err.Error()}
	}
	return game, nil
}

// GenerateTape replays the spec's actions and records what happened. The
// tape stops at the end of the hand or of the game.
func GenerateTape(spec HandSpec) (*Tape, error) {
	ns, err := normalizeSpec(spec)
	if err != nil {
		return nil, err
	}
	game, err := buildGame(ns)
	if err != nil {
		return nil, err
	}

	b := &tapeBuilder{}
	start := game.State()
	b.add(Event{Type: "handStart", Seat: int(start.Dealer), Scores: start.Scores})
	for seat, hand := range start.Hands {
		b.add(Event{Type: "deal", Seat: seat, Cards: cardStrings(hand)})
	}

	finished := false
	for stepIdx, action := range ns.actions {
		if finished {
			return nil, &ReplayError{
				StepIndex: int32(stepIdx),
				Reason:    "no_action_expected",
				Message:   "hand is already complete; no further actions are allowed",
			}
		}

		before := game.State()
		if before.Phase != action.phase {
			return nil, &ReplayError{
				StepIndex: int32(stepIdx),
				Reason:    "phase_mismatch",
				Message:   fmt.Sprintf("expected phase %s, got %s", before.Phase, action.phase),
				Expected:  expectedFor(before),
			}
		}
		if before.Turn != action.seat {
			return nil, &ReplayError{
				StepIndex: int32(stepIdx),
				Reason:    "out_of_turn",
				Message:   fmt.Sprintf("expected seat %d, got %d", before.Turn, action.seat),
				Expected:  expectedFor(before),
			}
		}
		if !isLegal(before, action.card) {
			return nil, &ReplayError{
				StepIndex: int32(stepIdx),
				Reason:    "illegal_action",
				Message:   fmt.Sprintf("%s is not legal for seat %d in %s", action.card, action.seat, before.Phase),
				Expected:  expectedFor(before),
			}
		}

		res, err := game.Step(cribbage.Action{Seat: action.seat, Card: action.card})
		if err != nil {
			return nil, &ReplayError{
				StepIndex: int32(stepIdx),
				Reason:    "action_apply_failed",
				Message:   err.Error(),
				Expected:  expectedFor(before),
			}
		}
		after := game.State()
		b.addStep(before, after, action, res)

		switch {
		case res.Done:
			b.add(Event{Type: "gameEnd", Seat: int(after.Winner), Scores: after.Scores})
			finished = true
		case after.Round != before.Round:
			b.add(Event{Type: "handEnd", Seat: int(before.Dealer), Scores: after.Scores})
			finished = true
		}
	}

	return &Tape{
		TapeVersion: tapeVersion,
		Players:     ns.players,
		Dealer:      int(ns.dealer),
		Names:       ns.names,
		Events:      b.events,
	}, nil
}

func isLegal(st cribbage.State, c card.Card) bool {
	switch st.Phase {
	case cribbage.PhaseDiscard:
		return card.CardList(st.Hand()).Contains(c)
	case cribbage.PhasePeg:
		return card.CardList(st.Legal).Contains(c)
	}
	return c == card.CardInvalid
}

func expectedFor(st cribbage.State) *ExpectedState {
	return &ExpectedState{
		Seat:  int(st.Turn),
		Phase: st.Phase.String(),
		Hand:  cardStrings(st.Hand()),
		Legal: cardStrings(st.Legal),
		Count: st.PegCount,
	}
}

type tapeBuilder struct {
	seq    uint64
	events []Event
}

func (b *tapeBuilder) add(e Event) {
	b.seq++
	e.Seq = b.seq
	b.events = append(b.events, e)
}

func (b *tapeBuilder) addStep(before, after cribbage.State, action normalizedAction, res cribbage.StepResult) {
	seat := int(action.seat)
	switch before.Phase {
	case cribbage.PhaseDiscard:
		b.add(Event{Type: "discard", Seat: seat, Cards: cardStrings([]card.Card{action.card})})
		if !before.Starter.Valid() && after.Starter.Valid() {
			b.add(Event{Type: "starter", Seat: int(before.Dealer), Cards: cardStrings([]card.Card{after.Starter})})
		}
		if res.Kind == cribbage.ScoreHeels {
			b.add(Event{Type: "heels", Seat: int(res.Seat), Points: res.Points, Scores: after.Scores})
		}
	case cribbage.PhasePeg:
		b.add(Event{
			Type:   "play",
			Seat:   seat,
			Cards:  cardStrings([]card.Card{action.card}),
			Points: res.Points,
			Count:  before.PegCount + action.card.PipValue(),
			Scores: after.Scores,
		})
	case cribbage.PhaseShow:
		typ, cards := "show", before.Kept[seat]
		if res.Kind == cribbage.ScoreCrib {
			typ, cards = "crib", before.Crib
		}
		b.add(Event{Type: typ, Seat: int(res.Seat), Cards: cardStrings(cards), Points: res.Points, Scores: after.Scores})
	}
}

func cardStrings(cards []card.Card) []string {
	if len(cards) == 0 {
		return nil
	}
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
