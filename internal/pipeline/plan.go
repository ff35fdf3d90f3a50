// Package pipeline builds the addressing plan for a run: the receiver pairs
// to process, the canonical path of every artifact they produce, and the
// dispersion prior each pair resolves to. The plan is what the correlation
// and stacking stages consume; building it up front surfaces every
// addressing error before any signal processing starts.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Hao-Yuanxin/ThreeStation/internal/artifact"
	"github.com/Hao-Yuanxin/ThreeStation/internal/catalog"
	"github.com/Hao-Yuanxin/ThreeStation/internal/config"
	"github.com/Hao-Yuanxin/ThreeStation/internal/dispersion"
	"github.com/Hao-Yuanxin/ThreeStation/internal/observability"
)

// PairPlan addresses one canonical receiver pair.
type PairPlan struct {
	Source   string `json:"source"`   // first station of the canonical pair
	Receiver string `json:"receiver"` // second station of the canonical pair

	I2     string `json:"i2"`
	I3     string `json:"i3"`
	I3Rand string `json:"i3_rand"`

	// C3 holds one path per (source station × lag label), in catalog order.
	C3 []string `json:"c3"`

	// CurveSamples is the sample count of the resolved dispersion prior.
	CurveSamples int `json:"curve_samples"`
}

// Plan is the complete addressing pass over a project.
type Plan struct {
	GeneratedAt time.Time  `json:"generated_at"`
	LagLabels   []string   `json:"lag_labels"`
	Sources     []string   `json:"sources"`
	Pairs       []PairPlan `json:"pairs"`
}

// Planner drives the resolvers over every receiver pair.
type Planner struct {
	params  *config.Params
	cat     *catalog.Catalog
	paths   *artifact.Resolver
	disp    *dispersion.Resolver
	logger  *slog.Logger
	metrics *observability.Metrics

	done  atomic.Int64
	total atomic.Int64
}

// New creates a Planner over already-validated parameters and a built
// catalog.
func New(p *config.Params, cat *catalog.Catalog, paths *artifact.Resolver,
	disp *dispersion.Resolver, logger *slog.Logger, metrics *observability.Metrics) *Planner {
	return &Planner{
		params:  p,
		cat:     cat,
		paths:   paths,
		disp:    disp,
		logger:  logger,
		metrics: metrics,
	}
}

// CheckReadiness returns nil once at least one pair has been addressed.
func (pl *Planner) CheckReadiness(_ context.Context) error {
	if pl.done.Load() == 0 {
		return errors.New("no receiver pair addressed yet")
	}
	return nil
}

// Progress returns pairs addressed so far and the pair total.
func (pl *Planner) Progress() (done, total int64) {
	return pl.done.Load(), pl.total.Load()
}

// ReceiverPairs enumerates the pairs to process: the cross product of the
// two receiver groups when the catalog is partitioned, otherwise all
// unordered combinations in catalog order.
func (pl *Planner) ReceiverPairs() [][2]string {
	var pairs [][2]string
	if pl.cat.Grouped() {
		for _, a := range pl.cat.GroupOne {
			for _, b := range pl.cat.GroupTwo {
				pairs = append(pairs, [2]string{a, b})
			}
		}
		return pairs
	}

	recs := pl.cat.Receivers
	for i := 0; i < len(recs); i++ {
		for j := i + 1; j < len(recs); j++ {
			pairs = append(pairs, [2]string{recs[i], recs[j]})
		}
	}
	return pairs
}

// LagLabels returns the lag file-name labels for the configured lag count:
// positive/negative halves for two lags, the symmetric component otherwise.
func (pl *Planner) LagLabels() []string {
	if pl.params.Interferometry.Nlag == 2 {
		return []string{"P", "N"}
	}
	return []string{"S"}
}

// Build runs the addressing pass. Any resolution error is fatal: a pair that
// cannot be addressed consistently would corrupt the run.
func (pl *Planner) Build(ctx context.Context) (*Plan, error) {
	start := time.Now()
	pl.metrics.PlanRunning.Set(1)
	defer pl.metrics.PlanRunning.Set(0)

	pairs := pl.ReceiverPairs()
	pl.total.Store(int64(len(pairs)))
	pl.metrics.StationsLoaded.Set(float64(pl.cat.Len()))
	pl.metrics.ReceiverPairs.Set(float64(len(pairs)))

	pl.logger.Info("addressing pass started",
		"receiver_pairs", len(pairs),
		"sources", len(pl.cat.Sources),
		"grouped", pl.cat.Grouped(),
	)

	plan := &Plan{
		GeneratedAt: clock.Now().UTC(),
		LagLabels:   pl.LagLabels(),
		Sources:     pl.cat.Sources,
	}

	for _, pair := range pairs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		pp, err := pl.planPair(pair[0], pair[1])
		if err != nil {
			return nil, fmt.Errorf("pair (%s, %s): %w", pair[0], pair[1], err)
		}
		plan.Pairs = append(plan.Pairs, pp)
		pl.done.Add(1)
	}

	pl.metrics.PlanDuration.Observe(time.Since(start).Seconds())
	pl.logger.Info("addressing pass finished",
		"pairs", len(plan.Pairs),
		"duration", time.Since(start),
	)

	return plan, nil
}

func (pl *Planner) planPair(sta1, sta2 string) (PairPlan, error) {
	src, rec, err := pl.cat.SortPair(sta1, sta2)
	if err != nil {
		return PairPlan{}, err
	}

	pp := PairPlan{Source: src, Receiver: rec}

	if pp.I2, err = pl.paths.I2(src, rec); err != nil {
		return PairPlan{}, err
	}
	pl.metrics.PathsResolved.WithLabelValues(artifact.KindI2.String()).Inc()

	if pp.I3, err = pl.paths.I3(src, rec); err != nil {
		return PairPlan{}, err
	}
	pl.metrics.PathsResolved.WithLabelValues(artifact.KindI3.String()).Inc()

	if pp.I3Rand, err = pl.paths.I3Rand(src, rec); err != nil {
		return PairPlan{}, err
	}
	pl.metrics.PathsResolved.WithLabelValues(artifact.KindI3Rand.String()).Inc()

	for _, source := range pl.cat.Sources {
		// A source station never contributes to its own pair.
		if source == src || source == rec {
			continue
		}
		for _, lag := range pl.LagLabels() {
			c3, err := pl.paths.C3(src, rec, source, lag)
			if err != nil {
				return PairPlan{}, err
			}
			pp.C3 = append(pp.C3, c3)
			pl.metrics.PathsResolved.WithLabelValues(artifact.KindC3.String()).Inc()
		}
	}

	srcSt, ok := pl.cat.Station(src)
	if !ok {
		return PairPlan{}, fmt.Errorf("%w: %s", catalog.ErrStationNotFound, src)
	}
	recSt, ok := pl.cat.Station(rec)
	if !ok {
		return PairPlan{}, fmt.Errorf("%w: %s", catalog.ErrStationNotFound, rec)
	}

	curve, outcome := pl.disp.Lookup(srcSt.Network, srcSt.Name, recSt.Network, recSt.Name)
	pl.metrics.DispersionLookups.WithLabelValues(string(outcome)).Inc()
	pp.CurveSamples = curve.Len()

	return pp, nil
}
