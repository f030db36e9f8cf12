package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"cribbage-lite/card"
	"cribbage-lite/cribbage/agent"
	"cribbage-lite/match"
	"cribbage-lite/replay"
)

const usage = `usage: cribsim <command> [flags]

commands:
  series   play games between two or three profiles
  advise   ask a profile which two cards to lay away
  replay   print the tape of a hand spec
  profiles list the known profiles
`

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	logger := newLogger(os.Getenv("CRIBSIM_LOG_LEVEL"))
	ctx := logger.WithContext(context.Background())

	reg := agent.DefaultRegistry()
	if path := os.Getenv("CRIBSIM_PROFILES"); path != "" {
		if err := reg.LoadFromFile(path); err != nil {
			logger.Fatal().Err(err).Str("path", path).Msg("load profiles")
		}
	}

	var err error
	switch os.Args[1] {
	case "series":
		err = runSeries(ctx, reg, os.Args[2:])
	case "advise":
		err = runAdvise(ctx, reg, os.Args[2:])
	case "replay":
		err = runReplay(os.Args[2:])
	case "profiles":
		err = emit(reg.All())
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		logger.Fatal().Err(err).Msg(os.Args[1])
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(lvl).With().Timestamp().Logger()
}

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func lookup(reg *agent.Registry, ids ...string) ([]agent.Profile, error) {
	out := make([]agent.Profile, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		p, ok := reg.Get(id)
		if !ok {
			return nil, fmt.Errorf("unknown profile %q", id)
		}
		out = append(out, p)
	}
	return out, nil
}

func runSeries(ctx context.Context, reg *agent.Registry, args []string) error {
	fs := flag.NewFlagSet("series", flag.ExitOnError)
	a := fs.String("a", "mc10", "profile for seat 0")
	b := fs.String("b", "greedy", "profile for seat 1")
	c := fs.String("c", "", "profile for seat 2 (three-handed)")
	games := fs.Int("games", envInt("CRIBSIM_GAMES", 10), "games to play")
	seed := fs.Int64("seed", 0, "series seed (0 = random)")
	win := fs.Int("win", 121, "winning score")
	hands := fs.Bool("hands", false, "print every hand ledger")
	if err := fs.Parse(args); err != nil {
		return err
	}

	profiles, err := lookup(reg, *a, *b, *c)
	if err != nil {
		return err
	}
	res, err := match.Series(ctx, match.SeriesConfig{
		Games:    *games,
		Seed:     *seed,
		WinScore: *win,
		Profiles: profiles,
	})
	if err != nil {
		return err
	}
	if *hands {
		if err := emit(res.Results); err != nil {
			return err
		}
	}
	return emit(res)
}

type advice struct {
	Profile    string         `yaml:"profile"`
	Seat       int            `yaml:"seat"`
	Hand       string         `yaml:"hand"`
	Discard    []string       `yaml:"discard"`
	Candidates []candidateRow `yaml:"candidates,omitempty"`
}

type candidateRow struct {
	Pair   string  `yaml:"pair"`
	Trials int     `yaml:"trials"`
	Mean   float64 `yaml:"mean"`
	P5     float64 `yaml:"p5"`
	P95    float64 `yaml:"p95"`
}

func runAdvise(ctx context.Context, reg *agent.Registry, args []string) error {
	fs := flag.NewFlagSet("advise", flag.ExitOnError)
	id := fs.String("profile", "mc100", "profile to ask")
	specPath := fs.String("spec", "", "hand spec (YAML or JSON)")
	trials := fs.Int("trials", 0, "override the profile's trial count")
	workers := fs.Int("workers", envInt("CRIBSIM_WORKERS", 0), "rollout workers (0 = all CPUs)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *specPath == "" {
		return fmt.Errorf("advise needs -spec")
	}

	profiles, err := lookup(reg, *id)
	if err != nil {
		return err
	}
	p := profiles[0]
	if *trials > 0 {
		p.Trials = *trials
	}
	if *workers > 0 {
		p.Workers = *workers
	}

	spec, err := loadSpec(*specPath)
	if err != nil {
		return err
	}
	game, err := replay.BuildGame(spec)
	if err != nil {
		return err
	}
	eng := agent.FromGame(game)
	st := eng.State()

	policy, err := agent.New(p, 0)
	if err != nil {
		return err
	}
	out := advice{Profile: p.Name, Seat: int(st.Turn), Hand: card.CardList(st.Hand()).String()}
	discards := len(st.Hand()) - 4
	for i := 0; i < discards; i++ {
		c, err := policy.ChooseDiscard(ctx, eng)
		if err != nil {
			return err
		}
		out.Discard = append(out.Discard, c.String())
	}

	if mc, ok := policy.(*agent.MonteCarlo); ok && mc.LastPlan() != nil {
		plan := mc.LastPlan()
		for _, pr := range agent.DiscardPairs() {
			cs := plan.Stats[pr[0]][pr[1]]
			if !cs.Valid {
				continue
			}
			out.Candidates = append(out.Candidates, candidateRow{
				Pair:   fmt.Sprintf("%v %v", cs.First, cs.Second),
				Trials: cs.Trials,
				Mean:   cs.Mean,
				P5:     cs.P5,
				P95:    cs.P95,
			})
		}
	}
	return emit(out)
}

func runReplay(args []string) error {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	specPath := fs.String("spec", "", "hand spec (YAML or JSON)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	spec, err := loadSpec(*specPath)
	if err != nil {
		return err
	}
	tape, err := replay.GenerateTape(spec)
	if err != nil {
		return err
	}
	return emit(tape)
}

func loadSpec(path string) (replay.HandSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return replay.HandSpec{}, fmt.Errorf("read spec: %w", err)
	}
	return replay.ParseHandSpec(data)
}

func emit(v any) error {
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
