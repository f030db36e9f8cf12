package match

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"lukechampine.com/frand"

	"cribbage-lite/cribbage"
	"cribbage-lite/cribbage/agent"
)

type SeriesConfig struct {
	Games    int
	Seed     int64 // 0 => entropy
	WinScore int
	// Profiles seats the players; seat i plays Profiles[i].
	Profiles []agent.Profile
}

type SeriesResult struct {
	Profiles []string  `yaml:"profiles"`
	Games    int       `yaml:"games"`
	Wins     []int     `yaml:"wins"`
	Hands    int       `yaml:"hands"`
	MeanDiff float64   `yaml:"mean_diff"` // seat 0, per hand
	Results  []*Result `yaml:"-"`
}

// Series plays cfg.Games games with fresh policies each game. The first
// dealer rotates from game to game.
func Series(ctx context.Context, cfg SeriesConfig) (*SeriesResult, error) {
	logger := zerolog.Ctx(ctx)
	players := len(cfg.Profiles)
	if players != 2 && players != 3 {
		return nil, fmt.Errorf("series needs 2 or 3 profiles, got %d", players)
	}
	if cfg.Games <= 0 {
		return nil, fmt.Errorf("games must be > 0")
	}
	base := cfg.Seed
	if base == 0 {
		base = int64(frand.Uint64n(math.MaxInt64))
	}

	out := &SeriesResult{Games: cfg.Games, Wins: make([]int, players)}
	for _, p := range cfg.Profiles {
		out.Profiles = append(out.Profiles, p.Name)
	}

	var diffSum int
	for g := 0; g < cfg.Games; g++ {
		seed := base + int64(g)*7919
		dealer := cribbage.Seat(g % players)
		game, err := cribbage.NewGame(cribbage.Config{
			Players:      players,
			WinScore:     cfg.WinScore,
			Seed:         seed,
			ForcedDealer: &dealer,
		})
		if err != nil {
			return nil, err
		}
		if err := game.Reset(cribbage.AnySeat); err != nil {
			return nil, err
		}

		policies := make([]agent.Policy, players)
		for s, p := range cfg.Profiles {
			if policies[s], err = agent.New(p, seed+int64(s)+1); err != nil {
				return nil, err
			}
		}

		res, err := Play(ctx, game, policies)
		if err != nil {
			return nil, fmt.Errorf("game %d: %w", g, err)
		}
		out.Results = append(out.Results, res)
		out.Wins[res.Winner]++
		for _, h := range res.Hands {
			diffSum += h.Differential(0)
			out.Hands++
		}
		logger.Info().
			Int("game", g).
			Int("winner", int(res.Winner)).
			Ints("scores", res.Scores).
			Int("hands", len(res.Hands)).
			Msg("game over")
	}
	if out.Hands > 0 {
		out.MeanDiff = float64(diffSum) / float64(out.Hands)
	}
	return out, nil
}
