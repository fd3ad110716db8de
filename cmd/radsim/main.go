// Package main provides the CLI entrypoint for radsim.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/user/radsim_go/internal/analysis"
	"github.com/user/radsim_go/internal/config"
	"github.com/user/radsim_go/internal/materials"
)

type rootOptions struct {
	configPath string
	dataDir    string
}

func main() {
	log.SetPrefix("[RADSIM] ")
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:           "radsim",
		Short:         "Radiation interaction simulator",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/radsim/config.toml)")
	rootCmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", config.DefaultDataDir, "directory with <material>.txt tables")

	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newSimulateCmd(opts))
	rootCmd.AddCommand(newCompareCmd(opts))
	rootCmd.AddCommand(newMaterialsCmd(opts))
	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))

	return rootCmd
}

// loadSettings resolves config file and environment, then lets explicitly
// set flags win.
func loadSettings(cmd *cobra.Command, opts *rootOptions) (config.Settings, error) {
	settings, err := config.LoadWithPath(opts.configPath)
	if err != nil {
		return config.Settings{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringFlag(cmd, "data-dir", &settings.DataDir, opts.dataDir)
	return settings, nil
}

func newCalculator(cmd *cobra.Command, opts *rootOptions) (*analysis.Calculator, config.Settings, error) {
	settings, err := loadSettings(cmd, opts)
	if err != nil {
		return nil, config.Settings{}, err
	}
	catalog, err := materials.NewDefaultCatalog(settings.DataDir)
	if err != nil {
		return nil, config.Settings{}, fmt.Errorf("failed to build catalog: %w", err)
	}
	return analysis.NewCalculator(catalog), settings, nil
}

func applyStringFlag(cmd *cobra.Command, name string, target *string, value string) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
