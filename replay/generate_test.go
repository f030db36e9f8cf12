package replay

import (
	"errors"
	"reflect"
	"testing"

	"cribbage-lite/card"
)

func baseHandSpec() HandSpec {
	return HandSpec{
		Players: 2,
		Dealer:  0,
		Seats: []SeatSpec{
			{Seat: 0, Name: "dealer", Hand: []string{"5s", "Jh", "Qd", "4d", "7c", "8c"}},
			{Seat: 1, Name: "pone", Hand: []string{"5h", "5d", "Th", "Ks", "2c", "3c"}},
		},
		Starter: "9s",
		Actions: []ActionSpec{
			{Phase: "discard", Seat: 1, Card: "2c"},
			{Phase: "discard", Seat: 0, Card: "7c"},
			{Phase: "discard", Seat: 1, Card: "3c"},
			{Phase: "discard", Seat: 0, Card: "8c"},
			{Phase: "peg", Seat: 1, Card: "Th"},
			{Phase: "peg", Seat: 0, Card: "5s"},
			{Phase: "peg", Seat: 1, Card: "5h"},
			{Phase: "peg", Seat: 0, Card: "Jh"},
			{Phase: "peg", Seat: 1, Card: "5d"},
			{Phase: "peg", Seat: 0, Card: "Qd"},
			{Phase: "peg", Seat: 1, Card: "Ks"},
			{Phase: "peg", Seat: 0, Card: "4d"},
			{Phase: "show", Seat: 1},
			{Phase: "show", Seat: 0},
			{Phase: "show", Seat: 0},
		},
		RNG: &RNGSpec{Seed: 3},
	}
}

func replayReason(t *testing.T, err error) *ReplayError {
	t.Helper()
	var replayErr *ReplayError
	if !errors.As(err, &replayErr) {
		t.Fatalf("expected ReplayError type, got %T (%v)", err, err)
	}
	return replayErr
}

func TestGenerateTape_IsDeterministic(t *testing.T) {
	spec := baseHandSpec()

	tapeA, err := GenerateTape(spec)
	if err != nil {
		t.Fatalf("GenerateTape A failed: %v", err)
	}
	tapeB, err := GenerateTape(spec)
	if err != nil {
		t.Fatalf("GenerateTape B failed: %v", err)
	}
	if !reflect.DeepEqual(tapeA, tapeB) {
		t.Fatalf("expected deterministic tape for the same HandSpec")
	}

	counts := make(map[string]int)
	for i, e := range tapeA.Events {
		counts[e.Type]++
		if e.Seq != uint64(i+1) {
			t.Fatalf("event %d has seq %d", i, e.Seq)
		}
	}
	want := map[string]int{
		"handStart": 1, "deal": 2, "discard": 4, "starter": 1,
		"play": 8, "show": 2, "crib": 1, "handEnd": 1,
	}
	if !reflect.DeepEqual(counts, want) {
		t.Fatalf("unexpected event counts %v", counts)
	}

	last := tapeA.Events[len(tapeA.Events)-1]
	if !reflect.DeepEqual(last.Scores, []int{15, 12}) {
		t.Fatalf("expected final scores [15 12], got %v", last.Scores)
	}
	if tapeA.Names[1] != "pone" {
		t.Fatalf("expected seat names to carry through, got %v", tapeA.Names)
	}
}

func TestGenerateTape_ReturnsReplayErrorOnOutOfTurnAction(t *testing.T) {
	spec := baseHandSpec()
	spec.Actions[0].Seat = 0
	spec.Actions[0].Card = "7c"

	_, err := GenerateTape(spec)
	replayErr := replayReason(t, err)
	if replayErr.Reason != "out_of_turn" {
		t.Fatalf("unexpected reason: %s", replayErr.Reason)
	}
	if replayErr.Expected == nil || replayErr.Expected.Seat != 1 {
		t.Fatalf("expected replay error to name seat 1, got %+v", replayErr.Expected)
	}
}

func TestGenerateTape_IllegalAction(t *testing.T) {
	spec := baseHandSpec()
	spec.Actions[0].Card = "7c"

	replayErr := replayReason(t, mustFail(GenerateTape(spec)))
	if replayErr.Reason != "illegal_action" || replayErr.StepIndex != 0 {
		t.Fatalf("unexpected error %+v", replayErr)
	}
	if len(replayErr.Expected.Hand) != 6 {
		t.Fatalf("expected the seat's hand in the error, got %v", replayErr.Expected.Hand)
	}
}

func TestGenerateTape_ActionAfterHandEnd(t *testing.T) {
	spec := baseHandSpec()
	spec.Actions = append(spec.Actions, ActionSpec{Phase: "discard", Seat: 0, Card: "As"})

	replayErr := replayReason(t, mustFail(GenerateTape(spec)))
	if replayErr.Reason != "no_action_expected" || replayErr.StepIndex != 15 {
		t.Fatalf("unexpected error %+v", replayErr)
	}
}

func TestNormalize_Rejects(t *testing.T) {
	cases := map[string]func(*HandSpec){
		"invalid_players": func(s *HandSpec) { s.Players = 4 },
		"invalid_dealer":  func(s *HandSpec) { s.Dealer = 2 },
		"duplicate_seat":  func(s *HandSpec) { s.Seats[1].Seat = 0 },
		"invalid_card":    func(s *HandSpec) { s.Seats[0].Hand[0] = "Zz" },
		"duplicate_card":  func(s *HandSpec) { s.Seats[1].Hand[0] = "5s" },
		"invalid_hand_size": func(s *HandSpec) {
			s.Seats[0].Hand = s.Seats[0].Hand[:5]
		},
		"invalid_phase": func(s *HandSpec) { s.Actions[0].Phase = "cut" },
		"invalid_deck":  func(s *HandSpec) { s.Deck = []string{"As"} },
	}
	for reason, mutate := range cases {
		spec := baseHandSpec()
		mutate(&spec)
		_, err := GenerateTape(spec)
		if got := replayReason(t, err).Reason; got != reason {
			t.Fatalf("expected %s, got %s", reason, got)
		}
	}
}

func TestBuildGame_InstallsHands(t *testing.T) {
	spec := baseHandSpec()
	game, err := BuildGame(spec)
	if err != nil {
		t.Fatalf("BuildGame err: %v", err)
	}
	st := game.State()
	for _, seat := range spec.Seats {
		want, _ := card.ParseList(seat.Hand)
		if !reflect.DeepEqual(st.Hands[seat.Seat], want) {
			t.Fatalf("seat %d: expected %v, got %v", seat.Seat, want, st.Hands[seat.Seat])
		}
	}
	if st.Dealer != 0 || st.Turn != 1 || len(st.Crib) != 0 {
		t.Fatalf("expected untouched discard phase, got dealer=%d turn=%d crib=%v", st.Dealer, st.Turn, st.Crib)
	}
}

func TestBuildGame_ThreePlayersPartial(t *testing.T) {
	spec, err := ParseHandSpec([]byte(`
players: 3
dealer: 2
seats:
  - seat: 0
    hand: [5h, 5d, 5c, Jd, 4s]
rng:
  seed: 9
`))
	if err != nil {
		t.Fatalf("ParseHandSpec err: %v", err)
	}
	game, err := BuildGame(spec)
	if err != nil {
		t.Fatalf("BuildGame err: %v", err)
	}
	st := game.State()
	want, _ := card.ParseList([]string{"5h", "5d", "5c", "Jd", "4s"})
	if !reflect.DeepEqual(st.Hands[0], want) {
		t.Fatalf("expected %v, got %v", want, st.Hands[0])
	}
	if len(st.Hands[1]) != 5 || len(st.Hands[2]) != 5 || st.Turn != 0 {
		t.Fatalf("unexpected deal: %v turn=%d", st.Hands, st.Turn)
	}
}

func mustFail(_ *Tape, err error) error {
	return err
}
