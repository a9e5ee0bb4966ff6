// Package search brute-forces RNG seeds: it replays one move string against
// a level once per seed and reports which seeds complete it.
package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/chipsim/internal/engine"
	"github.com/vovakirdan/chipsim/internal/levels"
	"github.com/vovakirdan/chipsim/internal/replay"
)

// Options configures a seed search.
type Options struct {
	// Workers is the number of goroutines; zero means one per CPU.
	Workers int
	// First and Count select the seeds First .. First+Count-1.
	First uint32
	Count uint32
	Step  engine.Step
	// StopAfter ends the search early once this many seeds succeed.
	// Zero searches the whole range.
	StopAfter int
	Logger    *log.Logger
}

// Outcome is the result of one seed.
type Outcome struct {
	Seed      uint32
	Complete  bool
	Dead      bool
	Tick      int
	ChipsLeft int
	TimeLeft  int
	Hash      uint64
}

// Report aggregates a finished or cancelled search.
type Report struct {
	LevelID  string
	Moves    string
	Step     engine.Step
	Outcomes []Outcome
	// Successes counts completing seeds.
	Successes int
	// Distinct counts different (result, tick, chips, time) combinations.
	Distinct int
	// Failed lists seeds whose level could not be built, in seed order.
	Failed []uint32
	// Cancelled is set when the context ended the search early.
	Cancelled bool
}

// Winners returns the completing outcomes in seed order.
func (r *Report) Winners() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Complete {
			out = append(out, o)
		}
	}
	return out
}

// Run searches seeds for lvl using a pool of workers, each owning its own
// engine.Level. Cancelling ctx stops the search between seeds and returns
// the partial report.
func Run(ctx context.Context, lvl *levels.Level, moves string, opts Options) (*Report, error) {
	inputs, err := replay.Parse(moves)
	if err != nil {
		return nil, err
	}
	if opts.Count == 0 {
		return nil, errors.New("search: empty seed range")
	}
	if _, err := lvl.NewLevelWith(opts.First, opts.Step); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	seeds := make(chan uint32)
	results := make(chan seedResult, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range seeds {
				o, err := playSeed(lvl, inputs, seed, opts.Step)
				if err != nil {
					logger.Error("seed failed", "seed", seed, "error", err)
				}
				select {
				case results <- seedResult{seed: seed, outcome: o, err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(seeds)
		for i := uint32(0); i < opts.Count; i++ {
			select {
			case seeds <- opts.First + i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	logger.Info("search started", "level", lvl.ID, "first", opts.First, "count", opts.Count, "workers", workers)

	report := &Report{LevelID: lvl.ID, Moves: moves, Step: opts.Step}
	distinct := mapset.New[outcomeKey]()
	for r := range results {
		if r.err != nil {
			report.Failed = append(report.Failed, r.seed)
			continue
		}
		o := r.outcome
		report.Outcomes = append(report.Outcomes, o)
		distinct.Put(o.key())
		if o.Complete {
			report.Successes++
			logger.Debug("seed completes", "seed", o.Seed, "tick", o.Tick)
			if opts.StopAfter > 0 && report.Successes >= opts.StopAfter {
				cancel()
			}
		}
	}

	report.Distinct = distinct.Size()
	report.Cancelled = uint32(len(report.Outcomes)+len(report.Failed)) < opts.Count
	sort.Slice(report.Outcomes, func(i, j int) bool {
		return report.Outcomes[i].Seed < report.Outcomes[j].Seed
	})
	sort.Slice(report.Failed, func(i, j int) bool {
		return report.Failed[i] < report.Failed[j]
	})

	logger.Info("search finished",
		"level", lvl.ID,
		"seeds", len(report.Outcomes),
		"successes", report.Successes,
		"distinct", report.Distinct,
		"failed", len(report.Failed),
		"cancelled", report.Cancelled,
	)
	return report, nil
}

type seedResult struct {
	seed    uint32
	outcome Outcome
	err     error
}

type outcomeKey struct {
	complete, dead bool
	tick, chips    int
	time           int
}

func (o Outcome) key() outcomeKey {
	return outcomeKey{o.Complete, o.Dead, o.Tick, o.ChipsLeft, o.TimeLeft}
}

// playSeed runs one seed; tests swap it to inject failures.
var playSeed = runSeed

func runSeed(lvl *levels.Level, inputs []engine.Input, seed uint32, step engine.Step) (Outcome, error) {
	l, err := lvl.NewLevelWith(seed, step)
	if err != nil {
		return Outcome{}, err
	}
	res := replay.Run(l, inputs)
	return Outcome{
		Seed:      seed,
		Complete:  res.Complete,
		Dead:      res.Dead,
		Tick:      res.Tick,
		ChipsLeft: res.ChipsLeft,
		TimeLeft:  res.TimeLeft,
		Hash:      res.Hash,
	}, nil
}
