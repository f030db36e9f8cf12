package agent

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"cribbage-lite/card"
	"cribbage-lite/cribbage"
)

const (
	defaultTrials = 10
	// a two-player hand takes well under a hundred steps
	maxTrialSteps = 512
	unsetMean     = -1000
)

type MonteCarloConfig struct {
	// Trials per discard pair (default 10).
	Trials int
	// Workers bounds concurrent rollouts (default runtime.NumCPU()).
	Workers int
	// Seed drives the per-trial seeds (0 => entropy).
	Seed int64

	Oracle Oracle
	// Factory builds rollout sandboxes (default NewGameSandbox).
	Factory SandboxFactory
	// Aux plays every undecided action inside a rollout, one instance per
	// seat per trial (default Greedy).
	Aux PolicyFactory

	// ZeroMeansUnset ranks a pair whose mean is exactly zero below every
	// other pair, as if its cell had never been filled.
	ZeroMeansUnset bool
}

func (c *MonteCarloConfig) applyDefaults() {
	if c.Trials <= 0 {
		c.Trials = defaultTrials
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	c.Oracle = defaultOracle(c.Oracle)
	if c.Factory == nil {
		c.Factory = NewGameSandbox
	}
	if c.Aux == nil {
		oracle := c.Oracle
		c.Aux = func(int64) Policy { return NewGreedy(oracle) }
	}
}

// MonteCarlo picks the discard pair with the best mean net differential over
// simulated hands. Pegging falls back to the greedy lookahead.
type MonteCarlo struct {
	cfg     MonteCarloConfig
	rng     *rand.Rand
	rollout Rollout
	memo    Memo
	last    *Plan
}

func NewMonteCarlo(cfg MonteCarloConfig) *MonteCarlo {
	cfg.applyDefaults()
	seed := uint64(cfg.Seed)
	if seed == 0 {
		seed = frand.Uint64n(math.MaxUint64)
	}
	return &MonteCarlo{
		cfg:     cfg,
		rng:     rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d)),
		rollout: Rollout{Factory: cfg.Factory},
	}
}

func (m *MonteCarlo) Name() string { return "Monte Carlo" }

// LastPlan returns the plan behind the most recent computed discard.
func (m *MonteCarlo) LastPlan() *Plan { return m.last }

func (m *MonteCarlo) ChooseDiscard(ctx context.Context, eng Engine) (card.Card, error) {
	hand := eng.State().Hand()
	if c, ok := m.memo.popHeld(hand); ok {
		return c, nil
	}
	if len(hand) == 5 {
		return hand[BestSingle(m.cfg.Oracle, hand)], nil
	}

	plan, err := m.Plan(ctx, eng)
	if err != nil {
		return card.CardInvalid, err
	}
	m.last = plan
	m.memo.Push(plan.Second)
	return plan.First, nil
}

func (m *MonteCarlo) ChoosePlay(_ context.Context, eng Engine) (card.Card, error) {
	return greedyPlay(eng)
}

// Plan is the outcome of one planning run. Stats[i][j] (i < j) holds the
// pair at hand positions i and j.
type Plan struct {
	Seat    cribbage.Seat
	Dealer  cribbage.Seat
	Hand    []card.Card
	Stats   [6][6]CandidateStats
	Best    [2]int
	First   card.Card
	Second  card.Card
	Elapsed time.Duration
}

// Candidates returns the number of pairs with at least one completed trial.
func (p *Plan) Candidates() int {
	n := 0
	for _, pr := range DiscardPairs() {
		if p.Stats[pr[0]][pr[1]].Valid {
			n++
		}
	}
	return n
}

// Plan evaluates all 15 discard pairs of the seat on turn. eng is only read
// and cloned; every trial runs in its own sandbox.
func (m *MonteCarlo) Plan(ctx context.Context, eng Engine) (*Plan, error) {
	start := time.Now()
	logger := zerolog.Ctx(ctx)

	st := eng.State()
	if st.Phase != cribbage.PhaseDiscard {
		return nil, cribbage.ErrInvalidState(fmt.Sprintf("planning discard in %v phase", st.Phase))
	}
	hand := card.CardList(st.Hand()).Clone()
	if len(hand) != 6 {
		return nil, &HandSizeError{Size: len(hand)}
	}
	seat, dealer, players := st.Turn, st.Dealer, st.Players

	pairs := DiscardPairs()
	trials := m.cfg.Trials
	// seeds are fixed before any worker starts so results do not depend on
	// scheduling
	seeds := make([]int64, len(pairs)*trials)
	for k := range seeds {
		seeds[k] = m.rng.Int64()
	}
	obs := make([]float64, len(seeds))
	done := make([]bool, len(seeds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.cfg.Workers)
	for k := range seeds {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p := pairs[k/trials]
			diff, err := m.trial(gctx, seat, hand, dealer, players, seeds[k], hand[p[0]], hand[p[1]])
			if err != nil {
				logger.Debug().Err(err).Str("pair", fmt.Sprintf("%v %v", hand[p[0]], hand[p[1]])).
					Int("trial", k%trials).Msg("trial aborted")
				return nil
			}
			obs[k], done[k] = diff, true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	plan := &Plan{Seat: seat, Dealer: dealer, Hand: hand}
	best := -1
	var bestMean float64
	for idx, p := range pairs {
		var sample []float64
		for t := 0; t < trials; t++ {
			if k := idx*trials + t; done[k] {
				sample = append(sample, obs[k])
			}
		}
		cs := summarize(sample)
		cs.First, cs.Second = hand[p[0]], hand[p[1]]
		plan.Stats[p[0]][p[1]] = cs

		if !cs.Valid {
			continue
		}
		score := cs.Mean
		if m.cfg.ZeroMeansUnset && score == 0 {
			score = unsetMean
		}
		if best < 0 || score > bestMean {
			best, bestMean = idx, score
		}
	}
	if best < 0 {
		return nil, ErrNoCandidate
	}

	plan.Best = pairs[best]
	plan.First, plan.Second = hand[plan.Best[0]], hand[plan.Best[1]]
	plan.Elapsed = time.Since(start)

	logger.Debug().
		Int("seat", int(seat)).
		Str("hand", hand.String()).
		Str("discard", fmt.Sprintf("%v %v", plan.First, plan.Second)).
		Float64("mean", plan.Stats[plan.Best[0]][plan.Best[1]].Mean).
		Int("trials", trials).
		Dur("elapsed", plan.Elapsed).
		Msg("monte carlo discard")
	return plan, nil
}

// trial plays one simulated hand with the planning seat's discards forced to
// a then b, and returns the planning seat's points minus everyone else's.
func (m *MonteCarlo) trial(ctx context.Context, seat cribbage.Seat, hand []card.Card, dealer cribbage.Seat, players int, seed int64, a, b card.Card) (float64, error) {
	sb, err := m.rollout.Build(ctx, seat, hand, dealer, players, seed)
	if err != nil {
		return 0, err
	}
	aux := make([]Policy, players)
	for s := range aux {
		aux[s] = m.cfg.Aux(seed + int64(s) + 1)
	}

	forced := []card.Card{a, b}
	diff := 0
	var prev cribbage.Phase
	for n := 0; ; n++ {
		if n >= maxTrialSteps {
			return 0, fmt.Errorf("trial did not finish in %d steps", maxTrialSteps)
		}
		st := sb.State()
		if n > 0 && prev == cribbage.PhaseShow && st.Phase == cribbage.PhaseDiscard {
			return float64(diff), nil
		}

		var act cribbage.Action
		if st.Phase == cribbage.PhaseDiscard && st.Turn == seat && len(forced) > 0 {
			act = cribbage.Action{Seat: seat, Card: forced[0]}
			forced = forced[1:]
		} else {
			act, err = Act(ctx, aux[st.Turn], sb)
			if err != nil {
				return 0, err
			}
		}

		res, err := sb.Step(act)
		if err != nil {
			return 0, fmt.Errorf("step %+v: %w", act, err)
		}
		diff += sign(creditedSeat(res, st.Dealer), seat) * res.Points
		if res.Done {
			return float64(diff), nil
		}
		prev = res.Phase
	}
}

// creditedSeat is the seat a result counts for. Heels and crib points belong
// to the dealer of the simulated hand.
func creditedSeat(res cribbage.StepResult, dealer cribbage.Seat) cribbage.Seat {
	switch res.Kind {
	case cribbage.ScoreHeels, cribbage.ScoreCrib:
		return dealer
	}
	return res.Seat
}

func sign(credited, planning cribbage.Seat) int {
	if credited == planning {
		return 1
	}
	return -1
}
