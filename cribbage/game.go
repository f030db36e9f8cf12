package cribbage

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"

	"lukechampine.com/frand"

	"cribbage-lite/card"
)

type Game struct {
	cfg Config
	src *rand.PCG
	rng *rand.Rand

	mu sync.Mutex

	started bool
	ended   bool
	winner  Seat
	scores  []int

	// hand state
	round   int
	phase   Phase
	dealer  Seat
	turn    Seat
	hands   []card.CardList
	kept    []card.CardList // the four cards each seat carries into the show
	crib    card.CardList
	starter card.Card
	stock   card.CardList

	pegCount int
	pegSeq   card.CardList

	showStep        int
	overridePending bool
}

func NewGame(cfg Config) (*Game, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	seed := uint64(cfg.Seed)
	if seed == 0 {
		seed = frand.Uint64n(math.MaxUint64)
	}
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	g := &Game{
		cfg:    cfg,
		src:    src,
		rng:    rand.New(src),
		winner: AnySeat,
		dealer: AnySeat,
		turn:   AnySeat,
		scores: make([]int, cfg.Players),
		hands:  make([]card.CardList, cfg.Players),
		kept:   make([]card.CardList, cfg.Players),
	}
	return g, nil
}

// Players returns the seat count.
func (g *Game) Players() int { return g.cfg.Players }

// Reset starts a new game: scores are cleared and the first hand is dealt.
// dealer == AnySeat uses Config.ForcedDealer, or a random seat.
func (g *Game) Reset(dealer Seat) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if dealer == AnySeat {
		if g.cfg.ForcedDealer != nil {
			dealer = *g.cfg.ForcedDealer
		} else {
			dealer = Seat(g.rng.IntN(g.cfg.Players))
		}
	}
	if !g.validSeat(dealer) {
		return fmt.Errorf("invalid dealer seat %d", dealer)
	}

	g.started = true
	g.ended = false
	g.winner = AnySeat
	g.scores = make([]int, g.cfg.Players)
	g.round = 0
	g.overridePending = g.cfg.DeckOverride != nil
	g.startHandLocked(dealer)
	return nil
}

// ResetHand clears hands and crib, reshuffles a full deck into the stock and
// puts the game at the start of the discard phase without dealing.
// Cumulative scores are kept.
func (g *Game) ResetHand(dealer Seat) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.validSeat(dealer) {
		return fmt.Errorf("invalid dealer seat %d", dealer)
	}
	g.started = true
	g.ended = false
	g.winner = AnySeat
	g.resetHandLocked(dealer)
	return nil
}

// SetHand installs cards as the seat's hand during the discard phase.
func (g *Game) SetHand(seat Seat, cards []card.Card) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.validSeat(seat) {
		return fmt.Errorf("invalid seat %d", seat)
	}
	if g.phase != PhaseDiscard {
		return ErrInvalidState("hands can only be set before discarding")
	}
	for _, c := range cards {
		if !c.Valid() {
			return fmt.Errorf("invalid card %#x", byte(c))
		}
	}
	g.hands[seat] = card.CardList(cards).Clone()
	return nil
}

// RemoveFromStock takes the given cards out of the stock so they cannot be
// dealt again.
func (g *Game) RemoveFromStock(cards ...card.Card) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, c := range cards {
		if !g.stock.Remove(c) {
			return fmt.Errorf("card %v not in stock", c)
		}
	}
	return nil
}

// DealFromStock deals n cards from the top of the stock to seat.
func (g *Game) DealFromStock(seat Seat, n int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.validSeat(seat) {
		return fmt.Errorf("invalid seat %d", seat)
	}
	cards, ok := g.stock.PopCards(n)
	if !ok {
		return ErrInvalidState("stock underflow")
	}
	g.hands[seat].Add(cards...)
	return nil
}

// Step applies one action for the seat on turn and reports the points it
// scored.
func (g *Game) Step(a Action) (StepResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.started {
		return StepResult{}, ErrInvalidState("game not started")
	}
	if g.ended {
		return StepResult{}, ErrGameOver
	}
	if a.Seat != g.turn {
		return StepResult{}, ErrOutOfTurn
	}

	res := StepResult{Seat: a.Seat, Phase: g.phase}
	var err error
	switch g.phase {
	case PhaseDiscard:
		err = g.discardLocked(a.Card, &res)
	case PhasePeg:
		err = g.pegLocked(a.Card, &res)
	case PhaseShow:
		err = g.showLocked(a.Card, &res)
	default:
		err = ErrInvalidState(fmt.Sprintf("unknown phase %d", g.phase))
	}
	if err != nil {
		return StepResult{}, err
	}
	res.Done = g.ended
	return res, nil
}

func (g *Game) discardLocked(c card.Card, res *StepResult) error {
	hand := &g.hands[g.turn]
	if hand.Count() <= keepSize {
		return ErrInvalidState("seat has nothing left to discard")
	}
	if !hand.Remove(c) {
		return fmt.Errorf("discard %v: %w", c, ErrCardNotHeld)
	}
	g.crib.Add(c)

	if next := g.nextSeat(g.turn, g.mustDiscard); next != AnySeat {
		g.turn = next
		return nil
	}

	// three-handed crib is topped up from the stock
	for g.crib.Count() < cribSize {
		extra := g.stock.PopCard()
		if extra == card.CardInvalid {
			return ErrInvalidState("stock underflow filling crib")
		}
		g.crib.Add(extra)
	}
	g.starter = g.stock.PopCard()
	if g.starter == card.CardInvalid {
		return ErrInvalidState("stock underflow cutting starter")
	}
	for s := range g.hands {
		g.kept[s] = g.hands[s].Clone()
	}

	if g.starter.IsJack() {
		res.Seat = g.dealer
		res.Points = 2
		res.Kind = ScoreHeels
		g.awardLocked(g.dealer, 2)
	}

	g.phase = PhasePeg
	g.pegCount = 0
	g.pegSeq = nil
	g.turn = g.nextSeat(g.dealer, g.canPlay)
	return nil
}

func (g *Game) pegLocked(c card.Card, res *StepResult) error {
	hand := &g.hands[g.turn]
	if !hand.Contains(c) {
		return fmt.Errorf("play %v: %w", c, ErrCardNotHeld)
	}
	if g.pegCount+c.PipValue() > pegLimit {
		return fmt.Errorf("play %v on %d: %w", c, g.pegCount, ErrIllegalPlay)
	}

	hand.Remove(c)
	g.pegSeq.Add(c)
	g.pegCount += c.PipValue()
	points := PegPoints(g.pegSeq)
	if g.pegCount == pegLimit {
		g.resetCountLocked()
	}

	next := g.nextSeat(g.turn, g.canPlay)
	if next == AnySeat {
		// nobody can go on: go or last card
		if g.pegCount > 0 {
			points++
			g.resetCountLocked()
		}
		next = g.nextSeat(g.turn, g.holdsCards)
	}

	if points > 0 {
		res.Points = points
		res.Kind = ScorePeg
		g.awardLocked(g.turn, points)
	}

	if next == AnySeat {
		g.phase = PhaseShow
		g.showStep = 0
		g.turn = g.showSeat(0)
		return nil
	}
	g.turn = next
	return nil
}

func (g *Game) showLocked(c card.Card, res *StepResult) error {
	if c != card.CardInvalid {
		return ErrInvalidState("show takes no card")
	}

	if g.showStep < g.cfg.Players {
		res.Points = ScoreHand(g.kept[g.turn], g.starter, false)
		res.Kind = ScoreShow
		g.awardLocked(g.turn, res.Points)
	} else {
		res.Seat = g.dealer
		res.Points = ScoreHand(g.crib, g.starter, true)
		res.Kind = ScoreCrib
		g.awardLocked(g.dealer, res.Points)
	}
	g.showStep++

	if g.ended {
		return nil
	}
	if g.showStep <= g.cfg.Players {
		g.turn = g.showSeat(g.showStep)
		return nil
	}
	g.startHandLocked(g.next(g.dealer))
	return nil
}

// showSeat maps a show step to the seat that counts: left of the dealer
// first, the dealer last, then the dealer again for the crib.
func (g *Game) showSeat(step int) Seat {
	if step >= g.cfg.Players {
		return g.dealer
	}
	return Seat((int(g.dealer) + 1 + step) % g.cfg.Players)
}

func (g *Game) startHandLocked(dealer Seat) {
	g.resetHandLocked(dealer)
	if g.overridePending {
		g.stock.Init(g.cfg.DeckOverride)
		g.overridePending = false
	}
	size := HandSize(g.cfg.Players)
	for i := 0; i < size; i++ {
		for k := 1; k <= g.cfg.Players; k++ {
			seat := Seat((int(dealer) + k) % g.cfg.Players)
			c := g.stock.PopCard()
			if c == card.CardInvalid {
				panic("deck underflow")
			}
			g.hands[seat].Add(c)
		}
	}
}

func (g *Game) resetHandLocked(dealer Seat) {
	g.round++
	g.phase = PhaseDiscard
	g.dealer = dealer
	g.turn = g.next(dealer)
	g.hands = make([]card.CardList, g.cfg.Players)
	g.kept = make([]card.CardList, g.cfg.Players)
	g.crib = nil
	g.starter = card.CardInvalid
	g.pegSeq = nil
	g.pegCount = 0
	g.showStep = 0
	g.shuffle()
}

func (g *Game) shuffle() {
	g.stock.Init(card.FullDeck())
	g.stock.Shuffle(g.rng)
}

func (g *Game) resetCountLocked() {
	g.pegCount = 0
	g.pegSeq = nil
}

func (g *Game) awardLocked(seat Seat, points int) {
	if points <= 0 {
		return
	}
	g.scores[seat] += points
	if !g.ended && g.scores[seat] >= g.cfg.WinScore {
		g.ended = true
		g.winner = seat
	}
}
