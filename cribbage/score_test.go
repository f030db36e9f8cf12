package cribbage

import (
	"strings"
	"testing"

	"cribbage-lite/card"
)

func mustCards(t *testing.T, s string) []card.Card {
	t.Helper()
	cards, err := card.ParseList(strings.Fields(s))
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return cards
}

func mustCard(t *testing.T, s string) card.Card {
	t.Helper()
	c, err := card.Parse(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return c
}

func TestScoreHand(t *testing.T) {
	cases := []struct {
		name    string
		hand    string
		starter string
		crib    bool
		want    int
	}{
		{"perfect", "5s 5h 5c Jd", "5d", false, 29},
		{"run and fifteen", "3s 4h 5c 6d", "", false, 6},
		{"double run", "3s 3h 4c 5d", "", false, 10},
		{"four flush", "2h 4h 6h 8h", "", false, 4},
		{"five flush", "2h 4h 6h 8h", "Kh", false, 5},
		{"four flush off starter", "2h 4h 6h 8h", "Ks", false, 4},
		{"crib five flush", "2h 4h 6h 8h", "Kh", true, 5},
		{"crib four flush", "2h 4h 6h 8h", "Ks", true, 0},
		{"nobs", "Jh 2s 4c 8d", "2h", false, 3},
		{"crib run", "2c 7c 3c 8c", "9s", true, 5},
	}
	for _, tc := range cases {
		starter := card.CardInvalid
		if tc.starter != "" {
			starter = mustCard(t, tc.starter)
		}
		got := ScoreHand(mustCards(t, tc.hand), starter, tc.crib)
		if got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestOracleScoresWithoutStarter(t *testing.T) {
	cards := mustCards(t, "5s 5h Tc Kd")
	if got := (Oracle{}).Score(cards); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
}

func TestPegPoints(t *testing.T) {
	cases := []struct {
		seq  string
		want int
	}{
		{"5h Td", 2},
		{"5h 5d", 2},
		{"5h 5d 5s", 8},
		{"3h 4d 5s", 3},
		{"4h 3d 5s", 3},
		{"Kh Qd 5s 6c", 2},
		{"2h 3d 2s", 0},
		{"7h 7d 7s 7c", 12},
		{"4h 2s 3c 5d 6h", 5},
	}
	for _, tc := range cases {
		if got := PegPoints(mustCards(t, tc.seq)); got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.seq, tc.want, got)
		}
	}
}
