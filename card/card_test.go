package card

import "testing"

func TestParse(t *testing.T) {
	cases := map[string]Card{
		"As":  CardSpadeA,
		"Td":  CardDiamondT,
		"10h": CardHeartT,
		"qc":  CardClubQ,
		"KD":  CardDiamondK,
	}
	for in, want := range cases {
		got, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q) err: %v", in, err)
		}
		if got != want {
			t.Fatalf("Parse(%q): expected %v, got %v", in, want, got)
		}
	}
	for _, bad := range []string{"", "A", "1s", "Ax", "11h"} {
		if _, err := Parse(bad); err == nil {
			t.Fatalf("Parse(%q): expected error", bad)
		}
	}
}

func TestValues(t *testing.T) {
	if CardHeartK.PipValue() != 10 || CardHeartK.RankValue() != 13 {
		t.Fatalf("king: pip=%d rank=%d", CardHeartK.PipValue(), CardHeartK.RankValue())
	}
	if CardClubA.PipValue() != 1 || CardClubA.RankValue() != 1 {
		t.Fatalf("ace: pip=%d rank=%d", CardClubA.PipValue(), CardClubA.RankValue())
	}
	if !CardSpadeJ.IsJack() || CardSpadeQ.IsJack() {
		t.Fatalf("IsJack mismatch")
	}
	if CardDiamond7.String() != "7d" || CardInvalid.String() != "--" {
		t.Fatalf("String mismatch: %s %s", CardDiamond7, CardInvalid)
	}
}

func TestFullDeck(t *testing.T) {
	deck := FullDeck()
	if len(deck) != 52 {
		t.Fatalf("expected 52 cards, got %d", len(deck))
	}
	seen := make(map[Card]bool)
	for _, c := range deck {
		if !c.Valid() || seen[c] {
			t.Fatalf("bad or duplicate card %v", c)
		}
		seen[c] = true
	}
}

func TestCardList_RemoveDoesNotAlias(t *testing.T) {
	base := CardList{CardSpadeA, CardHeart2, CardClub3, CardDiamond4}
	view := base[:2]
	clone := view.Clone()
	if !clone.Remove(CardSpadeA) {
		t.Fatalf("expected remove to succeed")
	}
	if base[0] != CardSpadeA || base[1] != CardHeart2 {
		t.Fatalf("remove on clone changed the source: %v", base)
	}
	if got := base.Without(CardHeart2, CardClub3); len(got) != 2 || got[1] != CardDiamond4 {
		t.Fatalf("Without: got %v", got)
	}
	rest := base.Clone()
	cards, ok := rest.PopCards(5)
	if ok || cards != nil {
		t.Fatalf("expected PopCards underflow")
	}
	if rest.Count() != 4 || base.Count() != 4 {
		t.Fatalf("underflow consumed cards: rest=%v base=%v", rest, base)
	}
}

func TestCardList_PopCardTakesTop(t *testing.T) {
	list := CardList{CardSpadeA, CardHeart2}
	if c := list.PopCard(); c != CardSpadeA {
		t.Fatalf("expected As first, got %v", c)
	}
	if c := list.PopCard(); c != CardHeart2 {
		t.Fatalf("expected 2h second, got %v", c)
	}
	if c := list.PopCard(); c != CardInvalid {
		t.Fatalf("expected CardInvalid from empty list, got %v", c)
	}
	if list.Count() != 0 {
		t.Fatalf("expected empty list, got %v", list)
	}
}
