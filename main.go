package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/c14220110/poliklinik-frontdesk/config"
	"github.com/c14220110/poliklinik-frontdesk/internal/frontdesk/services"
	"github.com/c14220110/poliklinik-frontdesk/internal/routes"
	"github.com/c14220110/poliklinik-frontdesk/pkg/logger"
	"github.com/c14220110/poliklinik-frontdesk/pkg/storage/mariadb"
	"github.com/c14220110/poliklinik-frontdesk/pkg/utils"
	"github.com/c14220110/poliklinik-frontdesk/ws"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "frontdesk",
		Short: "Poliklinik front-desk queue board",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(hashPasswordCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the front-desk board and API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for DESK_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := utils.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func runServer() error {
	cfg := config.LoadConfig()
	log := logger.New(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := ws.NewHub(log)
	go hub.Run(ctx)

	sinks := []services.EventSink{hub}
	if cfg.LedgerEnabled() {
		db, err := mariadb.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("connect ledger: %w", err)
		}
		defer db.Close()

		ledger := mariadb.NewLedger(db)
		if err := ledger.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("prepare ledger: %w", err)
		}
		sinks = append(sinks, ledger)
		log.Info().Str("host", cfg.DBHost).Str("db", cfg.DBName).Msg("visit ledger enabled")
	}

	desk := services.NewDesk(services.WithSinks(sinks...), services.WithLogger(log))

	e := echo.New()
	e.HideBanner = true
	if err := routes.Init(e, routes.Deps{Config: cfg, Desk: desk, Hub: hub, Logger: log}); err != nil {
		return fmt.Errorf("init routes: %w", err)
	}
	if !cfg.AuthEnabled() {
		log.Warn().Msg("JWT_SECRET or DESK_PASSWORD_HASH not set, the board is open to anyone")
	}

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}
