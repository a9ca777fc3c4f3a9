package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nhle/loopwork/internal/model"
	"github.com/nhle/loopwork/internal/organizer"
	"github.com/nhle/loopwork/internal/store"
)

// Options holds the dependencies commands use, so tests can swap them.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
	Clock  func() time.Time
}

func main() {
	cmd := newRootCmd(Options{})
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(opts Options) *cobra.Command {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	var configPath string

	root := &cobra.Command{
		Use:           "loopwork",
		Short:         "loopwork - company to-do list",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(opts.Stdout)
	root.SetErr(opts.Stderr)
	root.PersistentFlags().StringVar(&configPath, "config", model.DefaultConfigPath(), "path to config file")

	open := func(ctx context.Context) (*app, error) {
		return openApp(ctx, configPath, opts)
	}

	root.AddCommand(
		newInitCmd(&configPath),
		newServeCmd(open),
		newListCmd(open),
		newAddCmd(open),
		newEditCmd(open),
		newToggleCmd(open),
		newRmCmd(open),
		newSweepCmd(open),
		newEmployeesCmd(open),
		newSettingsCmd(open),
	)

	return root
}

// app bundles what every command needs once config is loaded.
type app struct {
	cfg    *model.AppConfig
	log    *logrus.Entry
	store  *store.SQLiteStore
	svc    *organizer.Service
	out    io.Writer
	closer io.Closer
}

func openApp(ctx context.Context, configPath string, opts Options) (*app, error) {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, closer, err := setupLogger(cfg.Env, cfg.LogFile, opts.Stderr)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(cfg.Database.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			closer.Close()
			return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
		}
	}

	s, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}

	svc := organizer.New(s, log, organizer.Options{
		CompanyCode: cfg.Tenant.CompanyCode,
		EmployeeID:  cfg.Tenant.EmployeeID,
		Scope:       cfg.Tenant.Scope,
		Clock:       opts.Clock,
	})
	if err := svc.Load(ctx); err != nil {
		s.Close()
		closer.Close()
		return nil, err
	}

	return &app{
		cfg:    cfg,
		log:    log,
		store:  s,
		svc:    svc,
		out:    opts.Stdout,
		closer: closer,
	}, nil
}

func (a *app) Close() error {
	err := a.store.Close()
	if cerr := a.closer.Close(); err == nil {
		err = cerr
	}
	return err
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// setupLogger configures logrus per environment. Local runs log debug text
// to stderr; dev and prod log to the configured file when one is set.
func setupLogger(env, logFile string, stderr io.Writer) (*logrus.Entry, io.Closer, error) {
	log := logrus.New()
	log.SetOutput(stderr)

	var closer io.Closer = nopCloser{}
	if logFile != "" && env != model.EnvLocal {
		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file %s: %w", logFile, err)
		}
		log.SetOutput(f)
		closer = f
	}

	switch env {
	case model.EnvLocal:
		log.SetLevel(logrus.DebugLevel)
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	case model.EnvDev:
		log.SetLevel(logrus.InfoLevel)
		log.SetFormatter(&logrus.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		})
	default:
		log.SetLevel(logrus.WarnLevel)
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	return logrus.NewEntry(log), closer, nil
}
