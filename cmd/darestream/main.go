// Package main implements the darestream command line tool. It repacks
// raw asset buffers: reading strided binary data from a file, URL, or
// broker, converting elements to a target format, and writing the
// framed result out.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/DannyDoesGraphics/DARE-sub000/config"
	"github.com/DannyDoesGraphics/DARE-sub000/format"
	"github.com/DannyDoesGraphics/DARE-sub000/geometry"
	"github.com/DannyDoesGraphics/DARE-sub000/metric"
)

const (
	// Version is the build version reported by -version.
	Version = "0.1.0"
	appName = "darestream"
)

type cliFlags struct {
	configPath string
	manifest   string

	input  string
	output string
	stored string
	target string
	offset int64
	stride int
	count  int64
	frame  int

	validate bool
	version  bool
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("repack failed", "error", err)
		os.Exit(1)
	}
}

func parseFlags() *cliFlags {
	cli := &cliFlags{}
	flag.StringVar(&cli.configPath, "config", "", "path to YAML config file")
	flag.StringVar(&cli.manifest, "manifest", "", "path to a YAML manifest of repack jobs")
	flag.StringVar(&cli.input, "in", "", "input file path or URL")
	flag.StringVar(&cli.output, "out", "", "output file path")
	flag.StringVar(&cli.stored, "stored", "", "stored element format, e.g. f32x3")
	flag.StringVar(&cli.target, "target", "", "target element format, defaults to the stored format")
	flag.Int64Var(&cli.offset, "offset", 0, "byte offset of the first element")
	flag.IntVar(&cli.stride, "stride", 0, "distance between element starts, 0 = tightly packed")
	flag.Int64Var(&cli.count, "count", 0, "number of elements to extract, 0 = all")
	flag.IntVar(&cli.frame, "frame", 0, "output frame size in bytes, 0 = config default")
	flag.BoolVar(&cli.validate, "validate", false, "validate config and manifest, then exit")
	flag.BoolVar(&cli.version, "version", false, "print version and exit")
	flag.Parse()
	return cli
}

func run() error {
	cli := parseFlags()
	if cli.version {
		fmt.Printf("%s %s\n", appName, Version)
		return nil
	}

	cfg := config.Default()
	if cli.configPath != "" {
		loaded, err := config.Load(cli.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	logger := cfg.Logger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var registry *metric.MetricsRegistry
	var metricsServer *metric.Server
	if cfg.Metrics.Enabled {
		registry = metric.NewMetricsRegistry()
		metricsServer = metric.NewServer(cfg.Metrics.Port, cfg.Metrics.Path, registry)
	}

	jobs, err := collectJobs(cli)
	if err != nil {
		return err
	}
	if cli.validate {
		logger.Info("configuration is valid", "jobs", len(jobs))
		return nil
	}
	if len(jobs) == 0 {
		flag.Usage()
		return fmt.Errorf("nothing to do: pass -in/-out or -manifest")
	}

	g, gctx := errgroup.WithContext(ctx)
	if metricsServer != nil {
		g.Go(metricsServer.Start)
		defer func() { _ = metricsServer.Stop() }()
		logger.Info("metrics server listening", "address", metricsServer.Address())
	}
	g.Go(func() error {
		defer func() {
			if metricsServer != nil {
				_ = metricsServer.Stop()
			}
		}()
		return runJobs(gctx, logger, registry, cfg, jobs)
	})

	return g.Wait()
}

// repackJob is one input buffer to transform and where to put it.
type repackJob struct {
	Name   string `yaml:"name"`
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Stored string `yaml:"stored"`
	Target string `yaml:"target"`
	Offset int64  `yaml:"offset"`
	Stride int    `yaml:"stride"`
	Count  int64  `yaml:"count"`
	Frame  int    `yaml:"frame_size"`
}

// collectJobs builds the job list from either the manifest or the
// single-job flags.
func collectJobs(cli *cliFlags) ([]repackJob, error) {
	if cli.manifest != "" {
		return loadManifest(cli.manifest)
	}
	if cli.input == "" && cli.output == "" {
		return nil, nil
	}
	if cli.input == "" || cli.output == "" || cli.stored == "" {
		return nil, fmt.Errorf("single job mode needs -in, -out, and -stored")
	}
	return []repackJob{{
		Name:   "cli",
		Input:  cli.input,
		Output: cli.output,
		Stored: cli.stored,
		Target: cli.target,
		Offset: cli.offset,
		Stride: cli.stride,
		Count:  cli.count,
		Frame:  cli.frame,
	}}, nil
}

// geometryFor turns a job into the loader's geometry descriptor.
func geometryFor(job repackJob, cfg *config.Config) (geometry.Geometry, error) {
	stored, err := format.Parse(job.Stored)
	if err != nil {
		return geometry.Geometry{}, err
	}
	target := stored
	if job.Target != "" {
		if target, err = format.Parse(job.Target); err != nil {
			return geometry.Geometry{}, err
		}
	}

	frame := job.Frame
	if frame == 0 {
		frame = cfg.Stream.FrameSize
	}
	partial, err := cfg.Stream.PartialPolicy()
	if err != nil {
		return geometry.Geometry{}, err
	}

	return geometry.Geometry{
		Name:      job.Name,
		Location:  locationFor(job.Input, cfg),
		Stored:    stored,
		Target:    target,
		Offset:    job.Offset,
		Stride:    job.Stride,
		Count:     job.Count,
		FrameSize: frame,
		Partial:   partial,
	}, nil
}

// repack streams one geometry into its output file frame by frame.
func repack(ctx context.Context, loader *geometry.Loader, g geometry.Geometry, outPath string) error {
	p, err := loader.Stream(ctx, g)
	if err != nil {
		return err
	}
	defer p.Close()

	out, err := os.Create(outPath)
	if err != nil {
		loader.Finish(g.Name, err)
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer out.Close()

	for {
		frame, err := p.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			loader.Finish(g.Name, err)
			return err
		}
		if _, err := out.Write(frame); err != nil {
			loader.Finish(g.Name, err)
			return fmt.Errorf("write %s: %w", outPath, err)
		}
	}

	loader.Finish(g.Name, nil)
	return nil
}
