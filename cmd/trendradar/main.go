package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/emmanuelkyeremeh/trendradar/pkg/config"
	"github.com/emmanuelkyeremeh/trendradar/pkg/content"
	"github.com/emmanuelkyeremeh/trendradar/pkg/db"
	"github.com/emmanuelkyeremeh/trendradar/pkg/feed"
	"github.com/emmanuelkyeremeh/trendradar/pkg/llm"
	"github.com/emmanuelkyeremeh/trendradar/pkg/scheduler"
	"github.com/emmanuelkyeremeh/trendradar/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"trendradar.yml" description:"config file path"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		log.Printf("[ERROR] failed to load config: %v", err)
		os.Exit(1)
	}

	setupLog(opts.Debug, opts.NoColor, cfg.LLM.APIKey)

	log.Printf("[INFO] starting trendradar version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	if err := run(ctx, cfg, opts.Debug); err != nil {
		log.Printf("[ERROR] trendradar failed: %v", err)
		cancel()
		os.Exit(1)
	}
	cancel()

	log.Print("[INFO] shutdown complete")
}

// run wires the components and blocks until the server exits.
func run(ctx context.Context, cfg *config.Config, debug bool) error {
	database, err := db.New(db.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	var upstream scheduler.UpstreamClient
	if cfg.Upstream.BaseURL != "" {
		upstream = feed.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, cfg.Upstream.UserAgent)
		log.Printf("[INFO] upstream API enabled: %s", cfg.Upstream.BaseURL)
	}

	sources := make([]feed.Source, 0, len(cfg.Sources))
	for _, src := range cfg.Sources {
		sources = append(sources, feed.Source{Name: src.Name, URL: src.URL, Category: src.Category})
	}
	var rss scheduler.RSSFetcher
	if len(sources) > 0 {
		rss = feed.NewRSSFetcher(cfg.Upstream.Timeout, cfg.Upstream.UserAgent)
		log.Printf("[INFO] %d rss sources configured", len(sources))
	}

	var extractor scheduler.Extractor
	if cfg.Extraction.Enabled {
		extractor = content.NewExtractor(cfg.Extraction.Timeout, cfg.Extraction.UserAgent, cfg.Extraction.MinTextLength)
		log.Printf("[INFO] content extraction enabled")
	}

	var generator scheduler.InsightGenerator
	if cfg.LLM.Enabled {
		generator = llm.NewGenerator(cfg.LLM)
		log.Printf("[INFO] llm insight generation enabled, model %s", cfg.LLM.Model)
	}

	sched := scheduler.NewScheduler(database, upstream, rss, sources, extractor, generator, scheduler.Config{
		UpdateInterval:  time.Duration(cfg.Schedule.UpdateInterval) * time.Minute,
		ExtractInterval: cfg.Extraction.Interval,
		Retention:       time.Duration(cfg.Schedule.RetentionDays) * 24 * time.Hour,
		MaxWorkers:      cfg.Schedule.MaxWorkers,
	})
	sched.Start(ctx)
	defer sched.Stop()

	srv := server.New(cfg, database, sched, revision, debug)
	return srv.Run(ctx)
}

func setupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}

	for _, s := range secs {
		if s != "" {
			logOpts = append(logOpts, lgr.Secret(s))
		}
	}

	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
