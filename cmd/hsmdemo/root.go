package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/tobbstr/hsm"
	"github.com/tobbstr/hsm/internal/logger"
	"github.com/tobbstr/hsm/metrics"
	"github.com/tobbstr/hsm/trace"
	"go.uber.org/zap"
)

const metricsPath = "/metrics"

// app holds what the demo commands share: configuration, the logger and the metrics registry.
type app struct {
	envFile string
	log     *zap.Logger
	reg     *prometheus.Registry
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "hsmdemo",
		Short: "hsmdemo runs the example state machines",
		Long: `hsmdemo drives the example state machines from keys given on the command line, a YAML scenario file
or standard input. Set LOGGING_LEVEL=DEBUG to trace every dispatched event and HSM_METRICS_ADDR to expose
Prometheus metrics while a demo runs.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&a.envFile, "env-file", "", "file with environment variables to load")

	cmd.AddCommand(newProcessCmd(a), newOvenCmd(a), newLevelsCmd(a), newGraphCmd())
	return cmd
}

// start loads the configuration, creates the logger and, if configured, serves the metrics. The returned function
// stops the metrics server and flushes the logger.
func (a *app) start(cmd *cobra.Command) (func(), error) {
	cfg, err := loadConfig(a.envFile)
	if err != nil {
		return nil, err
	}
	a.log = logger.NewWithWriter(cmd.ErrOrStderr(), cfg.LogLevel, logger.ParseFormat(cfg.LogFormat))
	a.reg = prometheus.NewRegistry()

	if cfg.MetricsAddr == "" {
		return func() { _ = a.log.Sync() }, nil
	}

	mux := http.NewServeMux()
	mux.Handle(metricsPath, promhttp.HandlerFor(a.reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		a.log.Info("serving metrics", zap.String("addr", cfg.MetricsAddr), zap.String("path", metricsPath))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("metrics server failed", zap.Error(err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			a.log.Warn("stopping metrics server", zap.Error(err))
		}
		_ = a.log.Sync()
	}, nil
}

// hooks returns the dispatcher options tracing and counting the machine called name.
func hooks[S, E ~uint](a *app, name string) ([]hsm.Option[S, E], error) {
	collector, err := metrics.New[S, E](prometheus.WrapRegistererWith(prometheus.Labels{"demo": name}, a.reg))
	if err != nil {
		return nil, fmt.Errorf("registering metrics: %w", err)
	}
	opts := trace.New[S, E](a.log.Named(name)).Options()
	return append(opts, collector.Options()...), nil
}

// demoFlags are the flags shared by the demo commands.
type demoFlags struct {
	input    string
	scenario string
	ticks    int
	setTime  uint
}

func (f *demoFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "keys to press, in order")
	cmd.Flags().StringVarP(&f.scenario, "scenario", "f", "", "YAML scenario file")
	cmd.Flags().IntVar(&f.ticks, "ticks", 0, "timer ticks after each key of --input or standard input")
	cmd.Flags().UintVar(&f.setTime, "set-time", 10, "run time in ticks")
	cmd.MarkFlagsMutuallyExclusive("input", "scenario")
}

// load returns the scenario to play: the scenario file, the keys of --input, or the keys read from stdin.
func (f *demoFlags) load(stdin io.Reader) (Scenario, error) {
	var sc Scenario
	switch {
	case f.scenario != "":
		var err error
		if sc, err = loadScenario(f.scenario); err != nil {
			return Scenario{}, err
		}
	case f.input != "":
		sc.Steps = keySteps(f.input, f.ticks)
	default:
		keys, err := io.ReadAll(stdin)
		if err != nil {
			return Scenario{}, fmt.Errorf("reading keys: %w", err)
		}
		sc.Steps = keySteps(string(keys), f.ticks)
	}
	if sc.SetTime == 0 {
		sc.SetTime = f.setTime
	}
	return sc, nil
}
