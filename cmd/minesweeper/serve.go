package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper-panel/internal/app"
	"github.com/vancomm/minesweeper-panel/internal/config"
	"github.com/vancomm/minesweeper-panel/internal/mines"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the game server",
	Long: `Start the HTTP server that hosts game sessions.

Settings come from the file given with --config and can be overridden
with APP_ADDR, DEVELOPMENT and LOG_LEVEL.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Read(flagConfig)
	if err != nil {
		return err
	}
	if err := cfg.SetupLogging(log); err != nil {
		return err
	}
	log.WithFields(cfg.Fields()).Debug("config")
	mines.Log = log

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.New(log, cfg).Start(ctx); err != nil {
		log.WithError(err).Error("server stopped")
		return err
	}
	log.Info("server stopped")
	return nil
}
