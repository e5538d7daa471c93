package main

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper-panel/internal/config"
	"github.com/vancomm/minesweeper-panel/internal/game"
	"github.com/vancomm/minesweeper-panel/internal/mines"
)

var (
	flagWidth  int
	flagHeight int
	flagSeed   uint64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game in the terminal",
	Long: `Play minesweeper on stdin/stdout using the same commands the
WebSocket endpoint accepts.

Commands:
  g          - Show the board
  o x y      - Open the cell at column x, row y
  f x y      - Toggle a flag
  c x y      - Chord: open the neighbours of a satisfied number
  n [w h]    - New game, optionally with a new size
  q          - Quit

Without --width and --height the board fills the configured panel.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagWidth, "width", 0, "Board width in cells")
	playCmd.Flags().IntVar(&flagHeight, "height", 0, "Board height in cells")
	playCmd.Flags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random)")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Read(flagConfig)
	if err != nil {
		return err
	}
	if err := cfg.SetupLogging(mines.Log); err != nil {
		return err
	}

	width, height := flagWidth, flagHeight
	if width == 0 && height == 0 {
		width, height = game.Layout(cfg.Panel.Width, cfg.Panel.Height, cfg.Panel.TileSize)
	}

	var r *rand.Rand
	if flagSeed != 0 {
		r = rand.New(rand.NewPCG(flagSeed, flagSeed))
	}
	s := game.NewSession(uuid.New(), r, nil)
	if _, err := s.Reset(width, height); err != nil {
		return err
	}
	return play(cmd.InOrStdin(), cmd.OutOrStdout(), s)
}

// play runs the command loop until in is exhausted or the player quits.
func play(in io.Reader, out io.Writer, s *game.Session) error {
	printSnapshot(out, s.Snapshot())

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "q", "quit", "exit":
			return nil
		}

		cmd, err := game.ParseCommand(line)
		if err == nil {
			err = s.Execute(cmd)
		}
		if err != nil {
			fmt.Fprintf(out, "error: %s\n", err)
			continue
		}
		snap, _ := s.Report()
		printSnapshot(out, snap)
	}
}

func printSnapshot(out io.Writer, snap game.Snapshot) {
	fmt.Fprint(out, snap.Grid.ToString(snap.Width))
	fmt.Fprintf(out, "time %03d  mines %03d  %s\n", snap.Seconds, snap.MinesLeft, snap.Status)
}
