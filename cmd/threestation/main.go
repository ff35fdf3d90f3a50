// Command threestation runs the addressing pass of the three-station
// interferometry pipeline: it validates the run parameters, builds the
// station catalog, resolves the dispersion priors, and writes the canonical
// path plan the processing stages consume.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/Hao-Yuanxin/ThreeStation/internal/adapter/http"
	"github.com/Hao-Yuanxin/ThreeStation/internal/artifact"
	"github.com/Hao-Yuanxin/ThreeStation/internal/catalog"
	"github.com/Hao-Yuanxin/ThreeStation/internal/config"
	"github.com/Hao-Yuanxin/ThreeStation/internal/dispersion"
	"github.com/Hao-Yuanxin/ThreeStation/internal/observability"
	"github.com/Hao-Yuanxin/ThreeStation/internal/pipeline"
)

func main() {
	paramPath := flag.String("param", "param.yml", "path to the YAML parameter file")
	metricsAddr := flag.String("metrics-addr", "", "optional listen address for /healthz, /progress and /metrics")
	flag.Parse()

	params, err := config.Load(*paramPath)
	if err != nil {
		slog.Error("failed to load parameters", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(params.LogLevel, params.LogFormat)

	// Configuration errors are fatal and never retried.
	if err := params.Check(logger); err != nil {
		logger.Error("inconsistent parameters", "error", err)
		os.Exit(1)
	}

	cat, err := catalog.Load(params)
	if err != nil {
		logger.Error("failed to build station catalog", "error", err)
		os.Exit(1)
	}
	logger.Info("station catalog built",
		"stations", cat.Len(),
		"receivers", len(cat.Receivers),
		"sources", len(cat.Sources),
		"grouped", cat.Grouped(),
	)

	disp, err := loadDispersion(params, logger)
	if err != nil {
		logger.Error("failed to load dispersion priors", "error", err)
		os.Exit(1)
	}

	metrics := observability.NewMetrics()
	paths := artifact.NewResolver(params, cat)
	planner := pipeline.New(params, cat, paths, disp, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var srv *httpadapter.Server
	if *metricsAddr != "" {
		srv = httpadapter.NewServer(*metricsAddr, planner, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
	}

	plan, err := planner.Build(ctx)
	if err != nil {
		logger.Error("addressing pass failed", "error", err)
		os.Exit(1)
	}

	if err := pipeline.WriteOutputs(plan, paths); err != nil {
		logger.Error("failed to write plan outputs", "error", err)
		os.Exit(1)
	}

	logger.Info("plan written",
		"i2_list", paths.I2PathList(),
		"source_list", paths.SourceStationList(),
		"pairs", len(plan.Pairs),
	)

	if srv != nil {
		if err := srv.Shutdown(context.Background()); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
	}
}

// loadDispersion builds the resolver from the optional 1-D global curve and
// pair-indexed table named in the parameters.
func loadDispersion(params *config.Params, logger *slog.Logger) (*dispersion.Resolver, error) {
	r := &dispersion.Resolver{}

	if path := params.Interferometry.PredPV1D; path != "" {
		curve, err := dispersion.LoadCurve(path)
		if err != nil {
			return nil, err
		}
		r.Global = curve
		logger.Debug("global dispersion curve loaded", "path", path, "samples", curve.Len())
	}

	if path := params.Interferometry.PredPV2D; path != "" {
		table, err := dispersion.LoadPairTable(path)
		if err != nil {
			return nil, err
		}
		r.Pairs = table
		logger.Debug("pair dispersion table loaded", "path", path, "pairs", len(table))
	}

	return r, nil
}
