package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"golang.org/x/sync/errgroup"

	"runeclash/internal/catalog"
	"runeclash/internal/combat"
	"runeclash/internal/config"
	"runeclash/internal/util"
)

type options struct {
	cfgDir   string
	scenario string
	out      string
	seed     int64
	n        int
	workers  int
	saveLog  bool
	watch    bool
	verbose  bool
}

func main() {
	var o options
	flag.StringVar(&o.cfgDir, "config", "assets", "config dir")
	flag.StringVar(&o.scenario, "scenario", "", "scenario file (default <config>/battle.yaml)")
	flag.StringVar(&o.out, "out", "out.json", "output file (single) or summary file (batch)")
	flag.Int64Var(&o.seed, "seed", 12345, "seed")
	flag.IntVar(&o.n, "n", 1, "number of simulations")
	flag.IntVar(&o.workers, "workers", 8, "concurrent simulations in batch mode")
	flag.BoolVar(&o.saveLog, "log", true, "save full event log when n==1")
	flag.BoolVar(&o.watch, "watch", false, "re-run the single simulation whenever a yaml file changes")
	flag.BoolVar(&o.verbose, "v", false, "debug logging")
	flag.Parse()
	if o.scenario == "" {
		o.scenario = filepath.Join(o.cfgDir, "battle.yaml")
	}

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, o, logger); err != nil {
		slog.Error("simsvc failed", "err", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, o options, logger *slog.Logger) error {
	switch {
	case o.watch:
		return watch(ctx, o, logger)
	case o.n <= 1:
		return single(o, logger)
	default:
		return batch(ctx, o, logger)
	}
}

func load(o options) (*catalog.Catalog, *config.ScenarioConfig, error) {
	cfg, err := config.LoadAll(o.cfgDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	cat, err := catalog.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("building catalog: %w", err)
	}
	sc, err := config.LoadScenario(o.scenario)
	if err != nil {
		return nil, nil, fmt.Errorf("loading scenario: %w", err)
	}
	return cat, sc, nil
}

func simulate(cat *catalog.Catalog, sc *config.ScenarioConfig, seed int64, record bool, logger *slog.Logger) (combat.SimResult, error) {
	b, err := combat.NewFromScenario(&combat.Context{Catalog: cat, Logger: logger}, sc, util.New(seed), record)
	if err != nil {
		return combat.SimResult{}, err
	}
	return b.Run(sc.TimeLimit)
}

func single(o options, logger *slog.Logger) error {
	cat, sc, err := load(o)
	if err != nil {
		return err
	}
	res, err := simulate(cat, sc, o.seed, o.saveLog, logger)
	if err != nil {
		return err
	}
	if err := os.WriteFile(o.out, combat.MarshalPretty(res), 0644); err != nil {
		return err
	}
	logger.Info("single simulation finished",
		"scenario", sc.ID, "win", res.Win, "t", res.Duration, "events", len(res.Events), "out", o.out)
	return nil
}

type summary struct {
	Runs        int                       `json:"runs"`
	Wins        int                       `json:"wins"`
	WinRate     float64                   `json:"win_rate"`
	AvgDuration float64                   `json:"avg_duration"`
	TotalDamage float64                   `json:"total_damage"`
	DamageBy    map[string]damageShare    `json:"damage_by"`
	Kills       map[string]int            `json:"kills"`
	AvgLoot     map[string]float64        `json:"avg_loot"`
	Scenario    string                    `json:"scenario"`
	Combatants  []combat.SimCombatantMeta `json:"combatants,omitempty"`
}

type damageShare struct {
	Total float64 `json:"total"`
	Ratio float64 `json:"ratio"`
}

func batch(ctx context.Context, o options, logger *slog.Logger) error {
	cat, sc, err := load(o)
	if err != nil {
		return err
	}
	quiet := logger.With("mode", "batch")

	var (
		mu    sync.Mutex
		wins  int
		sumT  float64
		gold  int
		exp   int
		first []combat.SimCombatantMeta
	)
	damageBy := map[string]float64{}
	kills := map[string]int{}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(o.workers, 1))
	for i := 0; i < o.n; i++ {
		if gctx.Err() != nil {
			break
		}
		seed := o.seed + int64(i)
		g.Go(func() error {
			res, err := simulate(cat, sc, seed, false, quiet)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			mu.Lock()
			defer mu.Unlock()
			if res.Win {
				wins++
			}
			sumT += res.Duration
			gold += res.Loot.Gold
			exp += res.Loot.Exp
			for k, v := range res.DamageBy {
				damageBy[k] += v
			}
			for k, v := range res.Kills {
				kills[k] += v
			}
			if first == nil {
				first = res.Meta.Combatants
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	total := 0.0
	for _, v := range damageBy {
		total += v
	}
	s := summary{
		Runs:        o.n,
		Wins:        wins,
		WinRate:     float64(wins) / float64(o.n),
		AvgDuration: sumT / float64(o.n),
		TotalDamage: total,
		DamageBy:    map[string]damageShare{},
		Kills:       kills,
		AvgLoot: map[string]float64{
			"gold": float64(gold) / float64(o.n),
			"exp":  float64(exp) / float64(o.n),
		},
		Scenario:   sc.ID,
		Combatants: first,
	}
	for k, v := range damageBy {
		share := 0.0
		if total > 0 {
			share = v / total
		}
		s.DamageBy[k] = damageShare{Total: v, Ratio: share}
	}
	if err := os.WriteFile(o.out, combat.MarshalPretty(s), 0644); err != nil {
		return err
	}
	logger.Info("batch finished", "runs", o.n, "win_rate", s.WinRate, "avg_duration", s.AvgDuration, "out", filepath.Base(o.out))
	return nil
}

// watch runs once, then again after every yaml change until ctx is done.
// Failed reruns are logged and the watcher keeps going.
func watch(ctx context.Context, o options, logger *slog.Logger) error {
	dirs := []string{o.cfgDir}
	if d := filepath.Dir(o.scenario); filepath.Clean(d) != filepath.Clean(o.cfgDir) {
		dirs = append(dirs, d)
	}
	w, err := config.NewWatcher(dirs...)
	if err != nil {
		return fmt.Errorf("watching %v: %w", dirs, err)
	}
	defer w.Close()

	if err := single(o, logger); err != nil {
		logger.Error("simulation failed", "err", err)
	}
	logger.Info("watching for changes", "dirs", dirs)
	for {
		select {
		case <-ctx.Done():
			logger.Info("watch stopped")
			return nil
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			logger.Info("config changed, re-running", "file", path)
			if err := single(o, logger); err != nil {
				logger.Error("simulation failed", "err", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "err", err)
		}
	}
}
