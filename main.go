package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/luki/ltcsensors/internal/config"
	"github.com/luki/ltcsensors/internal/console"
	"github.com/luki/ltcsensors/internal/monitor"
	"github.com/luki/ltcsensors/internal/sampler"
	"github.com/luki/ltcsensors/internal/sensor"
	"github.com/luki/ltcsensors/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGQUIT, syscall.SIGTERM)
	defer stop()
	err := Run(ctx, os.Args[1:])
	if err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func Run(ctx context.Context, args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}
	lvl, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("error setting logrus loglevel: %w", err)
	}
	logrus.SetLevel(lvl)

	closeLog, err := setupLogOutput(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	if err := sensor.CheckDir(cfg.Dir); err != nil {
		return fmt.Errorf("%w: %w", sampler.ErrNoDevice, err)
	}

	report := store.New(cfg.File)
	if err := report.WriteHeader(sampler.Columns); err != nil {
		return fmt.Errorf("error creating report: %w", err)
	}
	defer report.Close()

	s := sampler.New(sensor.DirStore{}, report, console.New(os.Stdout, cfg.Silent || cfg.Tui), sampler.Options{
		Dir:           cfg.Dir,
		Interval:      cfg.Interval,
		LegacyMinRule: cfg.LegacyMinRule,
	})

	logrus.WithFields(logrus.Fields{
		"dir":    cfg.Dir,
		"file":   cfg.File,
		"length": cfg.Length,
	}).Debug("sampling started")

	if cfg.Tui {
		return monitor.Run(ctx, s, cfg.File, cfg.Length)
	}
	return s.Run(ctx, cfg.Length)
}

// setupLogOutput points logrus at the configured log file. The dashboard
// owns the terminal, so without a log file logs are dropped in that mode.
func setupLogOutput(cfg *config.CliConfig) (func(), error) {
	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("error opening log file: %w", err)
		}
		logrus.SetOutput(f)
		return func() {
			logrus.SetOutput(os.Stderr)
			f.Close()
		}, nil
	case cfg.Tui:
		logrus.SetOutput(io.Discard)
		return func() { logrus.SetOutput(os.Stderr) }, nil
	}
	return func() {}, nil
}
