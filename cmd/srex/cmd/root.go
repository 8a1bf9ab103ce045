/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/ssargent/srex/pkg/config"
	"github.com/ssargent/srex/pkg/image"
)

type contextKey string

const specKey contextKey = "spec"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "srex",
	Short: "srex - Motorola S-Record toolkit",
	Long: `srex builds, merges and inspects firmware images stored as Motorola
S-Records, Intel HEX or raw binary files.

Examples:
  srex create -o app.s37 --bin boot.bin@0x08000000 --start 0x08000000
  srex merge boot.srec app.hex -o full.srec
  srex info full.srec
  srex get full.srec 0x08000000 64`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		glog.Errorf("%v", err)
	}
	glog.Flush()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Configuration file (default ~/.config/srex/config.yaml)")
	rootCmd.PersistentFlags().Int("record-size", 0, "Data bytes per S-Record (overrides output.record_size)")
	rootCmd.PersistentFlags().Bool("strict", false, "Reject out of order and mixed width S-Records")

	// glog registers -v, -logtostderr and friends on the standard flag set
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
}

// setup loads the configuration, applies the global flags and stores the
// resulting image settings in the command context
func setup(cmd *cobra.Command, args []string) error {
	// glog only honors its flags once the standard flag set reports parsed
	if err := flag.CommandLine.Parse(nil); err != nil {
		return err
	}

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if !cmd.Flags().Changed("v") && cfg.Logging.Verbosity > 0 {
		if err := flag.Set("v", strconv.Itoa(cfg.Logging.Verbosity)); err != nil {
			return err
		}
	}

	spec, err := image.SpecFromConfig(cfg)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("record-size") {
		spec.RecordSize, _ = cmd.Flags().GetInt("record-size")
	}
	if cmd.Flags().Changed("strict") {
		spec.Strict, _ = cmd.Flags().GetBool("strict")
	}

	cmd.SetContext(context.WithValue(cmd.Context(), specKey, spec))
	return nil
}

// loadConfig reads the configuration at path. Without a path the default
// location is used when it exists, and built-in defaults otherwise.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = config.GetDefaultConfigPath()
		if !config.ConfigExists(path) {
			glog.V(1).Infof("no configuration at %s, using defaults", path)
			return config.DefaultConfig(), nil
		}
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	glog.V(1).Infof("loaded configuration from %s", path)
	return cfg, nil
}

// specFrom returns the image settings prepared by setup
func specFrom(cmd *cobra.Command) image.Spec {
	if spec, ok := cmd.Context().Value(specKey).(image.Spec); ok {
		return spec
	}
	return image.DefaultSpec()
}
