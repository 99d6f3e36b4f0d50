// Command driftsim runs a forward population-genetics simulation: it
// reads a founding population from a FASTA file and a run configuration
// from a KEY=VALUE file, executes the configured regime for every
// replicate, and writes one tab-separated row per generation to stdout
// or the -out file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"driftsim/executor"
	"driftsim/ingest"
	"driftsim/rng"
	"driftsim/sink"
)

var (
	configFile = flag.String("conf", "", "run configuration file (KEY=VALUE)")
	fastaFile  = flag.String("fasta", "", "founding population FASTA file")
	outFile    = flag.String("out", "", "output file (default: stdout)")
	seed       = flag.Int64("seed", 0, "top-level RNG seed (default: current time)")
	precision  = flag.Int("precision", 2, "minimum output precision (2 or 3 fractional digits)")
	aggregate  = flag.Bool("aggregate", false, "in migration mode, emit one aggregated column per allele instead of per-deme columns")
	verbose    = flag.Bool("v", false, "log run progress to stderr")
)

func main() {
	flag.Parse()

	if *configFile == "" {
		fmt.Fprintf(os.Stderr, "Expecting a configuration file (-conf)\n")
		os.Exit(1)
	}
	if *fastaFile == "" {
		fmt.Fprintf(os.Stderr, "Expecting a founding population file (-fasta)\n")
		os.Exit(1)
	}

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}

	if err := run(*configFile, *fastaFile, *outFile, s, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile, fastaFile, outFile string, seed int64, verbose bool) error {
	raw, err := ingest.ParseConfigFile(configFile)
	if err != nil {
		return err
	}
	raw.MinPrecision = *precision
	raw.AggregateDemes = *aggregate

	alleles, counts, err := ingest.ParseFasta(fastaFile, raw.Sites, rng.New(seed))
	if err != nil {
		return err
	}

	cfg, err := ingest.BuildConfig(raw, alleles, counts, seed)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "driftsim: regime=%v population=%d generations=%d replicates=%d seed=%d\n",
			cfg.Regime(), cfg.PopulationSize(), cfg.Generations(), cfg.Replicates(), seed)
	}

	w := os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	out := sink.New(w, cfg.Generations())
	exec := executor.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if verbose {
		fmt.Fprintf(os.Stderr, "driftsim: run %s started\n", exec.RunID())
	}

	if err := exec.Run(ctx, out); err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "driftsim: run %s complete\n", exec.RunID())
	}

	return nil
}
