// Package executor implements the replicate executor: it derives
// regime-specific lookup tables once from a Config, spawns
// one worker per replicate, and collects their per-generation output
// into a shared, generation-ordered writer that feeds a sink.Sink.
package executor

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"driftsim/config"
	"driftsim/rng"
	"driftsim/simulation"
	"driftsim/sink"
)

// Executor runs cfg.Replicates() independent Simulations in parallel and
// streams their per-generation output, in strict order, to a Sink.
type Executor struct {
	cfg   *config.Config
	runID uuid.UUID
}

// New returns an Executor for cfg, tagged with a fresh run identifier
// (surfaced only for diagnostic logging, never fed back into the model).
func New(cfg *config.Config) *Executor {
	return &Executor{cfg: cfg, runID: uuid.New()}
}

// RunID identifies this executor for diagnostic logging.
func (e *Executor) RunID() uuid.UUID {
	return e.runID
}

// Run derives lookups, spawns one worker per replicate via an
// errgroup.Group, and blocks until every worker has produced its full
// T+2-line sequence or one has failed. A failed worker cancels the
// group and aborts the whole run: nothing is retried, and Run returns
// the first error observed.
func (e *Executor) Run(ctx context.Context, out *sink.Sink) error {
	cfg := e.cfg

	lookups, err := deriveLookups(cfg, rng.New(cfg.Seed()))
	if err != nil {
		return errors.Wrap(err, "executor: deriving lookups")
	}

	writer := newSharedWriter(cfg.Replicates(), func(step int, row []string) error {
		return out.WriteRow(step, row)
	})

	g, gctx := errgroup.WithContext(ctx)
	for replicateID := 0; replicateID < cfg.Replicates(); replicateID++ {
		replicateID := replicateID
		g.Go(func() error {
			return runReplicate(gctx, cfg, lookups, replicateID, writer)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	return out.Flush()
}

// runReplicate builds one Simulation, runs it for cfg.Generations()
// steps, buffers all T+2 output lines (padding them under the mutation
// regime once every line's final width is known), and submits each row
// to writer.
func runReplicate(ctx context.Context, cfg *config.Config, lookups simulation.Lookups, replicateID int, writer *sharedWriter) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	worker := rng.New(rng.DeriveSeed(cfg.Seed(), replicateID))
	sim := simulation.New(cfg, lookups, worker)

	frequencies := sim.FrequenciesString
	if cfg.Regime() == config.RegimeMigration && !cfg.MigrationPerDeme() {
		frequencies = sim.AggregatedFrequenciesString
	}

	t := cfg.Generations()
	states := make([]string, t+2)
	states[0] = frequencies()

	for step := 0; step < t; step++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := sim.Update(step); err != nil {
			return errors.Wrapf(err, "executor: replicate %d generation %d", replicateID, step)
		}
		states[step+1] = frequencies()
	}
	states[t+1] = sim.IdentifiersString()

	if cfg.Regime() == config.RegimeMutations {
		padMutationOutput(states, t, sim.Precision())
	}

	for step, line := range states {
		if err := writer.submit(line, replicateID, step); err != nil {
			return err
		}
	}

	return nil
}

// padMutationOutput right-pads every state line shorter than the final
// frequency line (states[t]) with zero-frequency columns, so that once
// new alleles appear mid-run every earlier row still has the same column
// count. The identifier header (states[t+1]) is padded separately, using
// the same target width but empty-identifier columns, so its column
// count matches too.
func padMutationOutput(states []string, t, precision int) {
	targetWidth := columnCount(states[t])
	zeroColumn := fmt.Sprintf("0.%0*d", precision, 0)

	for i := 0; i <= t; i++ {
		states[i] = padColumns(states[i], targetWidth, zeroColumn)
	}
	states[t+1] = padColumns(states[t+1], targetWidth, blankColumn(precision))
}

func columnCount(s string) int {
	if s == "" {
		return 0
	}
	n := 1
	for i := 0; i < len(s); i++ {
		if s[i] == '|' {
			n++
		}
	}
	return n
}

func padColumns(s string, targetWidth int, fill string) string {
	width := columnCount(s)
	if width >= targetWidth {
		return s
	}
	for ; width < targetWidth; width++ {
		if s == "" {
			s = fill
		} else {
			s += "|" + fill
		}
	}
	return s
}

func blankColumn(precision int) string {
	width := precision + 2
	b := make([]byte, width)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
