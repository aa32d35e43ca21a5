package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"ticksignal/config"
	"ticksignal/host/monitor"
	"ticksignal/host/serial"
)

type monitorOptions struct {
	device string
	baud   int
	expect time.Duration
}

func newMonitorCmd() *cobra.Command {
	opts := &monitorOptions{}

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Follow the counter printed on a board's serial console",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMonitor(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.device, "device", envOr("TICKHOST_DEVICE", "/dev/ttyACM0"), "Serial device path")
	cmd.Flags().IntVar(&opts.baud, "baud", envIntOr("TICKHOST_BAUD", serial.DefaultBaud), "Baud rate")
	cmd.Flags().DurationVar(&opts.expect, "expect", config.DefaultTargetUS*time.Microsecond, "Expected period between counter lines (0 = no drift report)")
	return cmd
}

func runMonitor(ctx context.Context, opts *monitorOptions, out io.Writer) error {
	cfg := serial.DefaultConfig(opts.device)
	cfg.Baud = opts.baud
	port, err := serial.Open(cfg)
	if err != nil {
		return err
	}
	// Closed by atexit.Exit in main, also on error exits
	atexit.Register(func() {
		if err := port.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close %s: %v\n", cfg.Device, err)
		}
	})

	if err := port.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", opts.device, err)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	fmt.Fprintf(out, "Monitoring %s at %d baud\n", opts.device, opts.baud)

	m := monitor.New(opts.expect)
	m.Follow = true
	err = m.Run(ctx, port, func(o monitor.Observation) {
		printObservation(out, o)
	})

	fmt.Fprintf(out, "%d counter lines, %d missed, %d resets\n", m.Lines, m.Missed, m.Resets)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func printObservation(out io.Writer, o monitor.Observation) {
	switch {
	case !o.Numeric:
		fmt.Fprintf(out, "  | %s\n", o.Line)
	case o.Restarted:
		fmt.Fprintf(out, "%10d  board restarted\n", o.Value)
	case o.Gap > 0:
		fmt.Fprintf(out, "%10d  +%v  WARNING: %d signal(s) missed\n", o.Value, o.Interval, o.Gap)
	case o.Interval > 0:
		fmt.Fprintf(out, "%10d  +%v (drift %v)\n", o.Value, o.Interval, o.Drift)
	default:
		fmt.Fprintf(out, "%10d\n", o.Value)
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
