package application

import (
	"context"

	"golang.org/x/sync/errgroup"

	"photocat/internal/domain"
	"photocat/internal/ports"
)

// ProbeResult is the outcome of probing one path
type ProbeResult struct {
	Path  string
	Probe domain.FileProbe
	Err   error
}

// ProbeAll probes paths in parallel with at most workers in flight.
// Results keep the order of paths. Per-file failures are reported in the
// result; only cancellation aborts the whole run.
func ProbeAll(ctx context.Context, prober ports.FileProber, paths []string, workers int) ([]ProbeResult, error) {
	if workers < 1 {
		workers = DefaultWorkers
	}

	results := make([]ProbeResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			probe, err := prober.Probe(gctx, path)
			results[i] = ProbeResult{Path: path, Probe: probe, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
