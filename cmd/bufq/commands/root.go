// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package commands implements the bufq command line.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool

	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "bufq",
	Short: "Operate shared-memory data rings",
	Long: `bufq - create, fill, drain and inspect file-backed data rings.

A data ring is a file holding a 12-byte header (kind, head, tail) followed
by element data. Any process that maps the file sees the same queue.

Examples:
  # Create a ring of 1024 uint32 elements
  bufq create /dev/shm/samples --kind uint32 --length 1024

  # Fill it and read it back
  bufq push /dev/shm/samples data.bin
  bufq drain /dev/shm/samples > out.bin

  # Show the header
  bufq inspect /dev/shm/samples --format json`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(cmd.ErrOrStderr())
	},
}

// Execute runs the root command. ctx cancels long-running commands.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// newLogger returns a tint handler on w, colorized only on a terminal.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	noColor := true
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		w = colorable.NewColorable(f)
		noColor = false
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    noColor,
	}))
}
