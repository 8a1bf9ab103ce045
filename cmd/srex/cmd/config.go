package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ssargent/srex/pkg/config"
)

// configCmd groups the configuration commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the srex configuration file",
	// The configuration may not exist or be valid yet
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration",
	Long: `Write the default configuration to path, or to the default location
(~/.config/srex/config.yaml) when no path is given.

Examples:
  srex config init
  srex config init ./srex.yaml --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.GetDefaultConfigPath()
		if len(args) == 1 {
			path = args[0]
		}
		force, _ := cmd.Flags().GetBool("force")
		return runConfigInit(cmd.OutOrStdout(), path, force)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().Bool("force", false, "Overwrite an existing configuration")
}

func runConfigInit(out io.Writer, path string, force bool) error {
	if config.ConfigExists(path) && !force {
		return fmt.Errorf("configuration already exists at %s, use --force to overwrite", path)
	}

	if _, err := config.BootstrapConfig(path); err != nil {
		return err
	}

	fmt.Fprintf(out, "Configuration written to %s\n", path)
	return nil
}
