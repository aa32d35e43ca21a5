package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"ticksignal/config"
	"ticksignal/core"
)

type simOptions struct {
	configPath string
	duration   time.Duration
	speed      float64
	resolution time.Duration
	verbose    bool
}

func newSimCmd() *cobra.Command {
	opts := &simOptions{}

	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Run the main loop against a simulated timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSim(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "Timer config JSON file (default: 509ms at 1MHz)")
	cmd.Flags().DurationVar(&opts.duration, "duration", 0, "Stop after this much wall time (0 = until interrupted)")
	cmd.Flags().Float64Var(&opts.speed, "speed", 1.0, "Simulated time per wall-clock time")
	cmd.Flags().DurationVar(&opts.resolution, "resolution", time.Millisecond, "Wall-clock step of the simulated timer")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Enable debug output")
	return cmd
}

func runSim(ctx context.Context, opts *simOptions, out io.Writer) error {
	if opts.speed <= 0 {
		return fmt.Errorf("speed must be positive, got %v", opts.speed)
	}

	cfg := config.DefaultTimerConfig()
	if opts.configPath != "" {
		loaded, err := config.LoadFile(opts.configPath)
		if err != nil {
			return err
		}
		cfg = *loaded
	}

	core.SetLogWriter(func(s string) {
		fmt.Fprintln(out, s)
	})
	core.SetDebugEnabled(opts.verbose)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	if opts.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.duration)
		defer cancel()
	}

	sim := core.NewSimTimer(core.TimerFreq16MHz)
	var ready core.ReadySignal
	loop := core.NewMainLoop(core.NewTimerController(sim), &ready, cfg)

	go func() {
		_ = sim.RunRealtime(ctx, opts.resolution, opts.speed)
	}()

	err := loop.RunUntil(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
