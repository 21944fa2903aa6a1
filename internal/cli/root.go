package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Dicklesworthstone/coremeter/internal/config"
	cmerrors "github.com/Dicklesworthstone/coremeter/internal/errors"
	"github.com/Dicklesworthstone/coremeter/internal/logger"
	"github.com/Dicklesworthstone/coremeter/internal/sampler"
	"github.com/Dicklesworthstone/coremeter/internal/ui"
)

const fallbackWidth = 80

// Root command flags
var (
	configPath string
	onceFlag   bool
	jsonFlag   bool
)

var rootCmd = &cobra.Command{
	Use:   "coremeter",
	Short: "Per-CPU usage meters for the terminal",
	Long: `coremeter shows one meter per CPU, laid out in columns like htop's CPU
meters, with optional frequency and temperature readouts.

Meters are picked with --meters. "CPU" is the average of all CPUs,
"CPU:N" a single CPU, and group names such as AllCPUs2 or LeftCPUs4 lay
out a set of CPUs in columns. Run 'coremeter variants' for the list.

Examples:
  coremeter
  coremeter --meters CPU,AllCPUs4 --show-frequency --show-temperature
  coremeter --once --mode text --detailed
  coremeter --json`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRoot(cmd)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/coremeter/coremeter.yaml)")
	rootCmd.Flags().BoolVar(&onceFlag, "once", false, "print one frame and exit")
	rootCmd.Flags().BoolVar(&jsonFlag, "json", false, "print one reading per CPU as JSON and exit")
	config.BindFlags(rootCmd.Flags())
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimRight(err.Error(), "\n"))
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command) error {
	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return err
	}

	closer, err := logger.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()
	logger.Info().Strs("meters", cfg.Meters).Str("mode", cfg.Mode).Dur("interval", cfg.Interval).Msg("starting")

	s := sampler.New()
	if err := s.Probe(); err != nil {
		logger.Error().Err(err).Msg("sampler probe failed")
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case jsonFlag:
		if err := settle(cmd.Context(), cfg.Interval); err != nil {
			return err
		}
		s.Update()
		return writeReadings(out, s, cfg.Meter)
	case onceFlag:
		if err := settle(cmd.Context(), cfg.Interval); err != nil {
			return err
		}
		fmt.Fprintln(out, ui.Snapshot(cfg, s, outputWidth(out)))
		return nil
	}

	if !isTerminal(out) {
		return cmerrors.New(cmerrors.ErrTerminal,
			"Output is not a terminal",
			"Use --once or --json when piping coremeter's output")
	}
	return ui.RunTUI(cfg, s)
}

// settle waits one interval after the probe so the next reading covers
// that interval rather than the time since boot.
func settle(ctx context.Context, interval time.Duration) error {
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-time.After(interval):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func outputWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return fallbackWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallbackWidth
	}
	return width
}
