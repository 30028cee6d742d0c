// Command scheduledemo is a terminal harness around internal/optimize:
// it reads a JSON request envelope, runs the optimizer, and renders
// the resulting schedule as a colorized table. It exists only to
// exercise the library from the command line — spec §1 excludes a
// frontend and persistence, so this binary keeps no state of its own.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rostercore/shiftopt/internal/config"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	cfg := config.Load()

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	root := &cobra.Command{
		Use:   "scheduledemo",
		Short: "Run the shift-schedule optimizer against a JSON request file",
	}
	root.AddCommand(newSolveCmd(cfg))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
