package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ouarzazisaid0/wood-opcut/internal/model"
)

// ErrAllStrategiesTimedOut is returned when every placement strategy
// exceeded its per-strategy timeout. It is distinct from infeasibility: a
// solution with only infeasible pieces is still a successful run.
var ErrAllStrategiesTimedOut = errors.New("all placement strategies timed out")

// DefaultStrategyTimeout bounds each individual strategy run.
const DefaultStrategyTimeout = 30 * time.Second

// Coordinator runs the placement strategies in parallel over one immutable
// request snapshot and selects the best result. It never mutates a layout
// a strategy produced.
type Coordinator struct {
	strategies []Strategy
	timeout    time.Duration
	log        *zap.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithStrategies replaces the default strategy set.
func WithStrategies(strategies []Strategy) Option {
	return func(c *Coordinator) { c.strategies = strategies }
}

// WithStrategyTimeout sets the per-strategy timeout.
func WithStrategyTimeout(d time.Duration) Option {
	return func(c *Coordinator) { c.timeout = d }
}

// WithLogger sets the coordinator logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Coordinator) { c.log = log }
}

// NewCoordinator creates a coordinator with the default strategy set, the
// default per-strategy timeout, and a no-op logger.
func NewCoordinator(opts ...Option) *Coordinator {
	c := &Coordinator{
		strategies: DefaultStrategies(),
		timeout:    DefaultStrategyTimeout,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// strategyOutcome is one strategy's result, tagged for selection.
type strategyOutcome struct {
	index      int
	name       string
	layouts    []model.SheetLayout
	infeasible []model.InfeasiblePiece
	unplaced   int
	waste      float64
	cutLength  float64
	timedOut   bool
	defect     error
	elapsed    time.Duration
}

// Optimize runs every strategy over the request and returns the winning
// solution. Cancellation of ctx stops all running strategies promptly;
// per-strategy timeouts and defects are recovered locally so one bad
// strategy cannot prevent a usable solution from the others.
func (c *Coordinator) Optimize(ctx context.Context, req *model.Request) (*model.Solution, error) {
	outcomes := make([]strategyOutcome, len(c.strategies))
	var wg sync.WaitGroup

	for i, strat := range c.strategies {
		wg.Add(1)
		go func(i int, strat Strategy) {
			defer wg.Done()
			outcomes[i] = c.runStrategy(ctx, strat, i, req)
		}(i, strat)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timedOut := 0
	best := -1
	for i := range outcomes {
		o := &outcomes[i]
		switch {
		case o.timedOut:
			timedOut++
			c.log.Warn("strategy timed out",
				zap.String("strategy", o.name),
				zap.Duration("timeout", c.timeout))
		case o.defect != nil:
			c.log.Error("strategy aborted by defect",
				zap.String("strategy", o.name),
				zap.Error(o.defect))
		default:
			c.log.Debug("strategy completed",
				zap.String("strategy", o.name),
				zap.Int("sheets", len(o.layouts)),
				zap.Int("unplaced", o.unplaced),
				zap.Float64("waste_mm2", o.waste),
				zap.Duration("elapsed", o.elapsed))
			if best < 0 || betterOutcome(o, &outcomes[best]) {
				best = i
			}
		}
	}

	if best < 0 {
		if timedOut == len(c.strategies) {
			return nil, ErrAllStrategiesTimedOut
		}
		// Every strategy hit a defect; surface the first one.
		for i := range outcomes {
			if outcomes[i].defect != nil {
				return nil, outcomes[i].defect
			}
		}
		return nil, errors.New("no strategy produced a result")
	}

	winner := &outcomes[best]
	c.log.Info("selected solution",
		zap.String("strategy", winner.name),
		zap.Int("sheets", len(winner.layouts)),
		zap.Int("unplaced", winner.unplaced+preInfeasibleCount(req)),
		zap.Float64("waste_mm2", winner.waste),
		zap.Float64("cut_length_mm", winner.cutLength))

	sol := &model.Solution{
		Strategy: winner.name,
		Layouts:  winner.layouts,
	}
	sol.Infeasible = append(sol.Infeasible, winner.infeasible...)
	sol.Infeasible = append(sol.Infeasible, req.PreInfeasible...)
	return sol, nil
}

// runStrategy executes one strategy under its own timeout, recovering
// panics as defects.
func (c *Coordinator) runStrategy(ctx context.Context, strat Strategy, index int, req *model.Request) (out strategyOutcome) {
	out = strategyOutcome{index: index, name: strat.Name}
	start := time.Now()

	defer func() {
		out.elapsed = time.Since(start)
		if r := recover(); r != nil {
			if err, ok := r.(error); ok {
				out.defect = err
			} else {
				out.defect = errors.New("strategy panic")
			}
		}
	}()

	sctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	layouts, infeasible, err := strat.Pack(sctx, req)
	switch {
	case err == nil:
		out.layouts = layouts
		out.infeasible = infeasible
		for _, ip := range infeasible {
			out.unplaced += ip.Quantity
		}
		for _, l := range layouts {
			out.waste += l.WasteArea()
			out.cutLength += l.CutLength()
		}
	case errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
		out.timedOut = true
	case errors.Is(err, context.Canceled):
		// Caller cancellation; the coordinator returns ctx.Err() itself.
	default:
		out.defect = err
	}
	return out
}

// betterOutcome reports whether a should be preferred over b: fewest
// unplaced instances, then fewest sheets, then least waste, then least cut
// length, then lowest strategy index.
func betterOutcome(a, b *strategyOutcome) bool {
	if a.unplaced != b.unplaced {
		return a.unplaced < b.unplaced
	}
	if len(a.layouts) != len(b.layouts) {
		return len(a.layouts) < len(b.layouts)
	}
	if a.waste != b.waste {
		return a.waste < b.waste
	}
	if a.cutLength != b.cutLength {
		return a.cutLength < b.cutLength
	}
	return a.index < b.index
}

func preInfeasibleCount(req *model.Request) int {
	total := 0
	for _, ip := range req.PreInfeasible {
		total += ip.Quantity
	}
	return total
}
