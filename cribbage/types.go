package cribbage

import "cribbage-lite/card"

// Seat identifies a position at the table, 0-based.
type Seat int

// AnySeat asks Reset to pick the first dealer at random.
const AnySeat Seat = -1

// Phase 游戏阶段
type Phase byte

const (
	PhaseDiscard Phase = 0
	PhasePeg     Phase = 1
	PhaseShow    Phase = 2
)

var PhaseDictionary = map[Phase]string{
	PhaseDiscard: "discard",
	PhasePeg:     "peg",
	PhaseShow:    "show",
}

func (p Phase) String() string {
	if s, ok := PhaseDictionary[p]; ok {
		return s
	}
	return "unknown"
}

// Action is one phase-appropriate move: a card during Discard and Peg,
// card.CardInvalid during Show.
type Action struct {
	Seat Seat
	Card card.Card
}

// ScoreKind labels what a StepResult's points were scored for.
type ScoreKind byte

const (
	ScoreNone ScoreKind = iota
	ScoreHeels          // starter jack, dealer
	ScorePeg            // fifteens, pairs, runs, 31, go
	ScoreShow           // show
	ScoreCrib           // show, dealer
)

// StepResult reports the points attributable to one Step.
// Seat is the seat credited with Points; the engine credits the starter
// jack and the crib to the dealer regardless of who acted.
type StepResult struct {
	Seat   Seat
	Points int
	Kind   ScoreKind
	Phase  Phase // phase the action was taken in
	Done   bool  // the game has ended
}

const (
	cribSize     = 4
	keepSize     = 4
	pegLimit     = 31
	deckSize     = 52
	defaultScore = 121
)

// HandSize is the number of cards dealt to each seat.
func HandSize(players int) int {
	if players == 3 {
		return 5
	}
	return 6
}
