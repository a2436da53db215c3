package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/listkit/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦  ┬┌─┐┌┬┐┬┌─┬┌┬┐
  ║  │└─┐ │ ├┴┐│ │
  ╩═╝┴└─┘ ┴ ┴ ┴┴ ┴
`

func main() {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "listkit",
		Short: "Declarative list adapters for Go",
		Long: `listkit declares heterogeneous list rows in one configuration block
and keeps hosts up to date with minimal, diffed updates.

Commands:

  • demo   renders the sample list in the terminal
  • serve  streams list updates to browsers over WebSocket
  • version`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		demoCmd(),
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

// printBanner prints the listkit ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
