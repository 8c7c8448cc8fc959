package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-wkhtmlapp"
	"github.com/alnah/go-wkhtmlapp/internal/hints"
)

// renderResult holds the outcome of a single rendering.
type renderResult struct {
	Arg      string
	Output   string
	Err      error
	Duration time.Duration
}

// renderBatch runs every job through r with at most workers concurrent tool
// processes. Results keep the order of jobs; one failure does not stop the
// others.
func renderBatch(ctx context.Context, r Renderer, jobs []renderJob, workers int) []renderResult {
	results := make([]renderResult, len(jobs))
	if len(jobs) == 0 {
		return results
	}

	var g errgroup.Group
	g.SetLimit(min(workers, len(jobs)))

	for i, job := range jobs {
		g.Go(func() error {
			results[i] = renderOne(ctx, r, job)
			return nil
		})
	}
	_ = g.Wait() // per-job errors live in results

	return results
}

// renderOne renders a single job, skipping the tool once ctx is done.
func renderOne(ctx context.Context, r Renderer, job renderJob) renderResult {
	res := renderResult{Arg: job.arg}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	start := time.Now()
	res.Output, res.Err = r.Run(ctx, job.input, job.name)
	res.Duration = time.Since(start)
	return res
}

// printResults writes one artifact path per line on stdout and one FAILED
// line per error on stderr. Returns the number of failures.
func printResults(results []renderResult, quiet bool, env *Environment) int {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.Arg, r.Err, hintFor(r.Err))
			continue
		}
		fmt.Fprintln(env.Stdout, r.Output)
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stderr, "%d succeeded, %d failed\n", len(results)-failed, failed)
	}
	return failed
}

// hintFor returns an actionable hint for a rendering failure, if any.
func hintFor(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return hints.ForTimeout()
	}
	var e *wkhtmlapp.Error
	if errors.As(err, &e) {
		return hints.ForRendering(e.Stderr)
	}
	return ""
}

// firstError returns the first failure in results.
func firstError(results []renderResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
