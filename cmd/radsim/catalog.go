package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/user/radsim_go/internal/config"
)

func newMaterialsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "materials",
		Short: "List catalog materials and their densities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMaterialsCmd(cmd, root)
		},
	}
}

func runMaterialsCmd(cmd *cobra.Command, root *rootOptions) error {
	calc, _, err := newCalculator(cmd, root)
	if err != nil {
		return err
	}
	catalog := calc.Catalog()

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MATERIAL\tDENSITY (g/cm³)\tTABLE")
	for _, id := range catalog.IDs() {
		density, err := catalog.Density(id)
		if err != nil {
			return err
		}
		path, err := catalog.TablePath(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%g\t%s\n", id, density, path)
	}
	return tw.Flush()
}

func newCheckCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the catalog and data directory agree and every table parses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheckCmd(cmd, root)
		},
	}
}

func runCheckCmd(cmd *cobra.Command, root *rootOptions) error {
	calc, settings, err := newCalculator(cmd, root)
	if err != nil {
		return err
	}
	catalog := calc.Catalog()
	p := newPrinter(cmd.OutOrStdout())

	failed := false
	if err := catalog.CheckLockstep(); err != nil {
		p.fail(err.Error())
		failed = true
	}
	for _, id := range catalog.IDs() {
		table, err := catalog.LoadTable(id)
		if err != nil {
			p.fail(fmt.Sprintf("%s: %v", id, err))
			failed = true
			continue
		}
		p.ok(fmt.Sprintf("%s: %d rows", id, table.Len()))
	}
	if failed {
		return fmt.Errorf("data directory %s failed checks", settings.DataDir)
	}
	p.note("data directory " + settings.DataDir + " ok")
	return nil
}

func newConfigCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create the config file if missing and print its path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigCmd(cmd, root)
		},
	}
}

func runConfigCmd(cmd *cobra.Command, root *rootOptions) error {
	path := root.configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(config.DefaultFileTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		logErrf("created %s\n", path)
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
	return err
}
