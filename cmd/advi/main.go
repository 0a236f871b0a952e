// Command advi fits a mean-field or full-rank variational approximation
// to a standard normal target and reports the result. It exists as a
// minimal, runnable demonstration of the advi package's API; real use
// requires supplying a model.Model for the actual posterior of interest.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/MMesbahU/advi/advi"
	"github.com/MMesbahU/advi/internal/testmodel"
)

const version = "v0.0.1-dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("advi %s\n", version)
		return
	}

	var (
		fullRank      = flag.Bool("full-rank", false, "use the full-rank variational family instead of mean-field")
		seed          = flag.Uint64("seed", 1, "RNG seed")
		eta           = flag.Float64("eta", 0, "base learning rate; 0 runs the automatic step-size search")
		maxIterations = flag.Int("max-iterations", 10000, "maximum gradient-ascent iterations")
		gradSamples   = flag.Int("grad-samples", 1, "Monte-Carlo draws per gradient estimate")
		elboSamples   = flag.Int("elbo-samples", 100, "Monte-Carlo draws per ELBO evaluation")
		evalElbo      = flag.Int("eval-elbo", 100, "iterations between ELBO evaluations")
		tolRelObj     = flag.Float64("tol-rel-obj", 0.01, "rolling relative-ELBO-change convergence threshold")
		outputSamples = flag.Int("output-samples", 1000, "posterior draws to write at the end of the run")
	)
	flag.Parse()

	family := advi.MeanField
	if *fullRank {
		family = advi.FullRank
	}

	cfg := advi.Config{
		Family:        family,
		Seed:          *seed,
		Eta:           *eta,
		MaxIterations: *maxIterations,
		GradSamples:   *gradSamples,
		ElboSamples:   *elboSamples,
		EvalElbo:      *evalElbo,
		TolRelObj:     *tolRelObj,
		OutputSamples: *outputSamples,
		Progress:      os.Stderr,
		Samples:       os.Stdout,
	}

	result, err := advi.Run(context.Background(), cfg, testmodel.StdNormal{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "advi: %v\n", err)
		os.Exit(1)
	}
	if result.Code == advi.AllStepSizesFailed {
		fmt.Fprintln(os.Stderr, "advi: all step sizes failed; no samples written")
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "finished after %d iterations with eta=%g, mean=%v\n", result.Iterations, result.Eta, result.Mean)
}
