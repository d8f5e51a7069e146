package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/docmeta/internal/config"
	"git.home.luguber.info/inful/docmeta/internal/logfields"
	"git.home.luguber.info/inful/docmeta/internal/metrics"
	"git.home.luguber.info/inful/docmeta/internal/pipeline"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	WriteBack   bool   `name:"write-back" help:"Store synthesized READMEs in their source directories"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics in textfile format to this path"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	if b.WriteBack {
		cfg.Build.WriteBackSynthesized = true
	}
	logger := ConfigureLogging(cfg, root.Verbose, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := RunBuild(ctx, cfg, root.Root, b.MetricsFile, logger)
	if res != nil {
		_, _ = fmt.Fprintln(g.Out, res.Report.Summary())
	}
	return err
}

// RunBuild executes one build for cfg rooted at projectRoot. When
// metricsFile is set the metrics are written there even if the build fails.
func RunBuild(ctx context.Context, cfg *config.Config, projectRoot, metricsFile string, logger *slog.Logger) (*pipeline.Result, error) {
	opts := []pipeline.Option{pipeline.WithObserver(pipeline.NewLogObserver(logger))}
	var recorder *metrics.PrometheusRecorder
	if metricsFile != "" {
		recorder = metrics.NewPrometheusRecorder(nil)
		opts = append(opts, pipeline.WithRecorder(recorder))
	}

	logger.Info("Starting documentation metadata build",
		logfields.Path(projectRoot),
		slog.Int("workers", cfg.Build.Workers),
		slog.String("last_modified", string(cfg.Build.LastModified)))

	res, err := pipeline.New(pipeline.OptionsFromConfig(cfg, projectRoot), opts...).Run(ctx)

	if recorder != nil {
		if werr := recorder.WriteTextfile(metricsFile); werr != nil {
			logger.Warn("Failed to write metrics file", logfields.Path(metricsFile), logfields.Error(werr))
		}
	}
	return res, err
}
