package agent

import (
	"fmt"
	"strings"
)

// Profile describes a configured player.
type Profile struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Kind    string `yaml:"kind"` // random | high | low | greedy | montecarlo
	Seed    int64  `yaml:"seed,omitempty"`
	Trials  int    `yaml:"trials,omitempty"`
	Workers int    `yaml:"workers,omitempty"`
	// ZeroMeansUnset selects the legacy tie handling of the planner.
	ZeroMeansUnset bool `yaml:"zero_means_unset,omitempty"`
}

// New builds a policy from p. seed is used when the profile pins none.
func New(p Profile, seed int64) (Policy, error) {
	if p.Seed != 0 {
		seed = p.Seed
	}
	switch strings.ToLower(p.Kind) {
	case "random":
		return NewRandom(seed), nil
	case "high":
		return HighCard{}, nil
	case "low":
		return LowCard{}, nil
	case "greedy":
		return NewGreedy(nil), nil
	case "montecarlo":
		return NewMonteCarlo(MonteCarloConfig{
			Trials:         p.Trials,
			Workers:        p.Workers,
			Seed:           seed,
			ZeroMeansUnset: p.ZeroMeansUnset,
		}), nil
	}
	return nil, fmt.Errorf("profile %q: unknown kind %q", p.ID, p.Kind)
}
