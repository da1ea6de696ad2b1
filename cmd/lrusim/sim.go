package main

import (
	"context"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/containerd/log"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	lru "github.com/venkatsvpr/lrucache"
)

// report summarises one simulation run.
type report struct {
	Name       string
	Capacity   int
	Operations int64
	Workers    int
	Elapsed    time.Duration

	Hits      float64
	Misses    float64
	Inserts   float64
	Updates   float64
	Evictions float64
	Entries   float64

	// Per-operation latency in nanoseconds over the sampled operations.
	P50, P90, P99 float64
}

func (r *report) hitRatio() float64 {
	if r.Hits+r.Misses == 0 {
		return 0
	}
	return r.Hits / (r.Hits + r.Misses)
}

// simulate replays the configured trace against a fresh cache. Even positions
// of the trace are adds and odd positions are lookups. The trace is split in
// contiguous chunks, one per worker.
func simulate(ctx context.Context, cfg config) (*report, error) {
	n, err := cfg.operations()
	if err != nil {
		return nil, err
	}
	trace := generateTrace(cfg.Dist, n, cfg.Keyspace, cfg.Seed)

	reg := prometheus.NewRegistry()
	metrics := lru.NewMetrics("lrusim", cfg.Name)
	if err := reg.Register(metrics); err != nil {
		return nil, errors.Wrap(err, "failed to register cache metrics")
	}

	opts := []lru.Option{lru.WithMetrics(metrics)}
	if cfg.Workers == 1 {
		opts = append(opts, lru.WithLocker(lru.NoOpRWLocker{}))
	}
	cache, err := lru.New[int64, int64](cfg.Capacity, opts...)
	if err != nil {
		return nil, err
	}

	log.G(ctx).WithFields(log.Fields{
		"capacity":     cfg.Capacity,
		"operations":   n,
		"distribution": cfg.Dist,
		"workers":      cfg.Workers,
	}).Info("replaying trace")

	samples := make([][]float64, cfg.Workers)
	chunk := (n + int64(cfg.Workers) - 1) / int64(cfg.Workers)
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < cfg.Workers; w++ {
		lo, hi := int64(w)*chunk, min(int64(w+1)*chunk, n)
		if lo >= hi {
			continue
		}
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if i%4096 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				sampled := i%int64(cfg.SampleRate) == 0
				var t0 time.Time
				if sampled {
					t0 = time.Now()
				}
				k := trace[i]
				if i%2 == 0 {
					cache.Add(k, k)
				} else {
					cache.Get(k)
				}
				if sampled {
					samples[w] = append(samples[w], float64(time.Since(t0).Nanoseconds()))
				}
			}
			log.G(ctx).WithField("worker", w).Debugf("replayed %d operations", hi-lo)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r := &report{
		Name:       cfg.Name,
		Capacity:   cache.Capacity(),
		Operations: n,
		Workers:    cfg.Workers,
		Elapsed:    time.Since(start),
	}
	if err := r.fillCounters(reg); err != nil {
		return nil, err
	}
	if err := r.fillLatencies(slices.Concat(samples...)); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *report) fillCounters(g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return errors.Wrap(err, "failed to gather cache metrics")
	}
	values := make(map[string]float64, len(families))
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				values[mf.GetName()] += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				values[mf.GetName()] += m.GetGauge().GetValue()
			}
		}
	}
	r.Hits = values["lrusim_lru_hits_total"]
	r.Misses = values["lrusim_lru_misses_total"]
	r.Inserts = values["lrusim_lru_inserts_total"]
	r.Updates = values["lrusim_lru_updates_total"]
	r.Evictions = values["lrusim_lru_evictions_total"]
	r.Entries = values["lrusim_lru_entries"]
	return nil
}

func (r *report) fillLatencies(samples []float64) error {
	if len(samples) == 0 {
		return nil
	}
	data := stats.Float64Data(samples)
	var err error
	if r.P50, err = stats.Percentile(data, 50); err != nil {
		return errors.Wrap(err, "p50")
	}
	if r.P90, err = stats.Percentile(data, 90); err != nil {
		return errors.Wrap(err, "p90")
	}
	if r.P99, err = stats.Percentile(data, 99); err != nil {
		return errors.Wrap(err, "p99")
	}
	return nil
}

func (r *report) print(out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "cache:\t%s\n", r.Name)
	fmt.Fprintf(w, "capacity:\t%d\n", r.Capacity)
	fmt.Fprintf(w, "operations:\t%d\n", r.Operations)
	fmt.Fprintf(w, "workers:\t%d\n", r.Workers)
	fmt.Fprintf(w, "elapsed:\t%s\n", r.Elapsed.Round(time.Microsecond))
	fmt.Fprintf(w, "hit: %.0f miss: %.0f\tratio: %f\n", r.Hits, r.Misses, r.hitRatio())
	fmt.Fprintf(w, "inserts:\t%.0f\n", r.Inserts)
	fmt.Fprintf(w, "updates:\t%.0f\n", r.Updates)
	fmt.Fprintf(w, "evictions:\t%.0f\n", r.Evictions)
	fmt.Fprintf(w, "entries:\t%.0f\n", r.Entries)
	fmt.Fprintf(w, "latency p50/p90/p99:\t%.0fns / %.0fns / %.0fns\n", r.P50, r.P90, r.P99)
	return w.Flush()
}
