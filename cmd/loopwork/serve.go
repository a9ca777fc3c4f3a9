package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/nhle/loopwork/internal/api"
	"github.com/nhle/loopwork/internal/model"
	tasksync "github.com/nhle/loopwork/internal/sync"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(open opener) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the to-do list over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return withApp(cmd, open, func(a *app) error {
				if addr == "" {
					addr = a.cfg.Server.Addr
				}
				return serve(ctx, a, addr)
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

func serve(ctx context.Context, a *app, addr string) error {
	const op = "main.serve"
	log := a.log.WithField("operation", op)

	if a.cfg.Env != model.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	if a.cfg.Sweeper.Enabled {
		sweeper := tasksync.New(a.svc, a.cfg.Sweeper.Schedule, a.log)
		if err := sweeper.Start(ctx); err != nil {
			return err
		}
		defer sweeper.Stop()
	}

	router := api.NewRouter(a.log,
		api.NewTaskHandler(a.svc, a.log),
		api.NewEmployeeHandler(a.store, a.cfg.Tenant.CompanyCode, a.log),
		api.NewLabelHandler(a.store, a.cfg.Tenant.CompanyCode, a.log),
	)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	log.Info("server stopped")
	return nil
}
