package cmd

import (
	"fmt"

	"github.com/gaurav-prasanna/titlecrawl/core/config"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default titlecrawl configuration file",
		Long: `Init writes a YAML configuration file holding the default settings.

Examples:
  # Create titlecrawl.yaml in the current directory
  titlecrawl init

  # Write somewhere else, replacing an existing file
  titlecrawl init -o ~/.config/titlecrawl/titlecrawl.yaml -f`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile, "output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false, "overwrite an existing configuration file")
	return cmd
}

func runInit(cmd *cobra.Command, _ []string) error {
	path, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if err := config.WriteDefault(path, force); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Created configuration file: %s\n", path)
	return nil
}
