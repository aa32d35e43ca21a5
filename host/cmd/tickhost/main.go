// Command tickhost runs the timer demo against a simulated timer, or follows
// the console of a board running the firmware.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

func main() {
	// A missing .env is fine, flags and built-in defaults still apply
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tickhost",
		Short:         "Host tools for the timer signal demo",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newSimCmd())
	root.AddCommand(newMonitorCmd())
	return root
}
