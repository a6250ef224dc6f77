package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/DannyDoesGraphics/DARE-sub000/config"
	"github.com/DannyDoesGraphics/DARE-sub000/geometry"
	"github.com/DannyDoesGraphics/DARE-sub000/metric"
	"github.com/DannyDoesGraphics/DARE-sub000/pkg/worker"
	"github.com/DannyDoesGraphics/DARE-sub000/source"
)

// manifest is the on-disk shape of a batch repack.
type manifest struct {
	Jobs []repackJob `yaml:"jobs"`
}

func loadManifest(path string) ([]repackJob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	for i, job := range m.Jobs {
		if job.Name == "" {
			m.Jobs[i].Name = fmt.Sprintf("job-%d", i)
		}
		if job.Input == "" || job.Output == "" || job.Stored == "" {
			return nil, fmt.Errorf("manifest job %d: input, output, and stored are required", i)
		}
	}
	return m.Jobs, nil
}

// locationFor picks the source backend from the input string: URLs by
// scheme, everything else a file path.
func locationFor(input string, cfg *config.Config) geometry.Location {
	switch {
	case strings.HasPrefix(input, "http://"), strings.HasPrefix(input, "https://"):
		return geometry.URLLocation{URL: input, ReadSize: cfg.Stream.ReadSize}
	case strings.HasPrefix(input, "ws://"), strings.HasPrefix(input, "wss://"):
		return geometry.WebSocketLocation{URL: input}
	case strings.HasPrefix(input, "nats://"):
		return geometry.NATSLocation{Config: source.NATSConfig{
			URL:      cfg.NATS.URL,
			Stream:   cfg.NATS.Stream,
			Consumer: strings.TrimPrefix(input, "nats://"),
		}}
	default:
		return geometry.FileLocation{Path: input, ReadSize: cfg.Stream.ReadSize}
	}
}

// runJobs fans the jobs out over a worker pool and reports the first
// failure after all of them finish.
func runJobs(ctx context.Context, logger *slog.Logger, registry *metric.MetricsRegistry,
	cfg *config.Config, jobs []repackJob) error {

	loader := geometry.NewLoader(
		geometry.WithLogger(logger),
		geometry.WithMetrics(registry),
		geometry.WithRateLimit(cfg.Stream.RateLimit),
	)

	var mu sync.Mutex
	var failures []error

	pool := worker.NewPool(cfg.Stream.Workers, len(jobs),
		func(ctx context.Context, job repackJob) error {
			err := runJob(ctx, loader, cfg, job)
			if err != nil {
				logger.Error("job failed", "job", job.Name, "error", err)
				mu.Lock()
				failures = append(failures, fmt.Errorf("%s: %w", job.Name, err))
				mu.Unlock()
				return err
			}
			logger.Info("job done", "job", job.Name, "output", job.Output)
			return nil
		},
		worker.WithMetrics[repackJob](registry, "repack"),
	)

	if err := pool.Start(ctx); err != nil {
		return err
	}
	for _, job := range jobs {
		if err := pool.Submit(job); err != nil {
			return err
		}
	}
	if err := pool.Stop(24 * time.Hour); err != nil {
		return err
	}

	if len(failures) > 0 {
		return fmt.Errorf("%d of %d jobs failed, first: %w", len(failures), len(jobs), failures[0])
	}
	return nil
}

func runJob(ctx context.Context, loader *geometry.Loader, cfg *config.Config, job repackJob) error {
	g, err := geometryFor(job, cfg)
	if err != nil {
		return err
	}
	return repack(ctx, loader, g, job.Output)
}
