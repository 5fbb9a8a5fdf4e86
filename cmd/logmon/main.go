package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"logmon/internal/alert"
	"logmon/internal/config"
	"logmon/internal/dashboard"
	"logmon/internal/monitor"
	"logmon/internal/report"
	"logmon/internal/state"
	"logmon/internal/types"

	"github.com/gin-gonic/gin"
)

// Exit codes
const (
	ExitOK                = 0
	ExitSinkUnavailable   = 1
	ExitConfigInvalid     = 2
	ExitSourceUnavailable = 3
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args)
	if err != nil {
		report.NewReporter(stdout, stderr, report.NewStyle(false)).Failure(err)
		return ExitConfigInvalid
	}
	if opts.help {
		printUsage(stdout)
		return ExitOK
	}

	loaded, err := config.LoadConfig(opts.configPath)
	if err != nil {
		report.NewReporter(stdout, stderr, report.NewStyle(false)).Failure(err)
		return ExitConfigInvalid
	}
	cfg := config.Apply(*loaded, opts.overrides)

	reporter := report.NewReporter(stdout, stderr, report.NewStyle(cfg.Output.Color))
	reporter.Banner(cfg)

	// The sink is a precondition: nothing is scanned without it
	sink, err := alert.Open(cfg.Output.AlertLogPath)
	if err != nil {
		reporter.Failure(err)
		return ExitSinkUnavailable
	}
	defer sink.Close()

	var store *state.Store
	if cfg.State.DBPath != "" {
		store, err = state.NewStore(cfg.State.DBPath)
		if err != nil {
			log.Printf("[ERROR] Failed to initialize state store: %v", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	m := monitor.New(cfg, sink, store, stdout, stderr)
	if err := m.RestoreState(); err != nil {
		log.Printf("[STATE] %v", err)
	}

	if !cfg.Follow.Enabled {
		if _, err := m.RunOnce(context.Background()); err != nil {
			return ExitSourceUnavailable
		}
		return ExitOK
	}

	if err := follow(m, store, opts); err != nil {
		reporter.Failure(err)
		return ExitSourceUnavailable
	}
	return ExitOK
}

// follow runs the monitor until SIGINT or SIGTERM. SIGHUP and edits to the
// config file reload it.
func follow(m *monitor.Monitor, store *state.Store, opts cliOptions) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reload := func(loaded *types.Config) {
		next := config.Apply(*loaded, opts.overrides)
		m.Reload(&next)
	}

	if opts.configPath != "" {
		w, err := config.NewWatcher(opts.configPath, reload)
		if err != nil {
			log.Printf("[CONFIG] Live reload disabled: %v", err)
		} else {
			go w.Run(ctx)
		}
	}

	cfg := m.Config()
	if cfg.Dashboard.Listen != "" {
		gin.SetMode(gin.ReleaseMode)
		var history dashboard.AlertHistory
		if store != nil {
			history = store
		}
		srv := dashboard.NewServer(m.Totals(), history, cfg.Dashboard.Listen)
		go func() {
			if err := srv.Start(); err != nil {
				log.Printf("[DASHBOARD] Failed to start: %v", err)
			}
		}()
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			srv.Shutdown(shutdownCtx)
		}()
	}

	done := make(chan error, 1)
	go func() { done <- m.Follow(ctx) }()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigChan)

	for {
		select {
		case err := <-done:
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		case sig := <-sigChan:
			if sig != syscall.SIGHUP {
				log.Println("[FOLLOW] Shutting down...")
				cancel()
				continue
			}
			if opts.configPath == "" {
				log.Println("[CONFIG] SIGHUP received but no --config given")
				continue
			}
			log.Println("[CONFIG] SIGHUP received, reloading configuration...")
			loaded, err := config.LoadConfig(opts.configPath)
			if err != nil {
				log.Printf("[ERROR] Failed to reload config: %v", err)
				continue
			}
			reload(loaded)
		}
	}
}
