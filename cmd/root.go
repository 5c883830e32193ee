// Package cmd implements the titlecrawl CLI using Cobra.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree. Each call returns fresh flag state.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "titlecrawl",
		Short: "titlecrawl: collect page titles from a single site",
		Long: `titlecrawl walks one website breadth-first from a seed URL, staying on the
seed's host, and records the <title> of every page it visits.

Usage:
  titlecrawl crawl [seed-url] [flags]
  titlecrawl init [-o path]`,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file (default ./titlecrawl.yaml or $XDG_CONFIG_HOME/titlecrawl/titlecrawl.yaml)")
	root.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolP("quiet", "q", false, "only log errors")
	root.PersistentFlags().Bool("log-json", false, "write logs as JSON")

	root.AddCommand(newCrawlCmd())
	root.AddCommand(newInitCmd())
	return root
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
