// minesweeper serves minesweeper boards sized to a display panel and can
// also be played directly in the terminal.
//
// Usage:
//
//	minesweeper serve [--config path]     - Start the HTTP/WebSocket server
//	minesweeper play [--width w --height h] - Play in the terminal
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	log = logrus.New()

	flagConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "minesweeper",
	Short: "Minesweeper boards for fixed-size display panels",
	Long: `Minesweeper lays a board out on a display panel, one cell per tile,
and lets players open, flag and chord cells over HTTP, WebSocket or
straight from the terminal.

Examples:
  minesweeper serve --config ./config.yaml
  minesweeper play
  minesweeper play --width 9 --height 9 --seed 42`,
	SilenceUsage: true,
}

func init() {
	const usage = "config file path (YAML or JSON)"
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", usage)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(playCmd)
}
