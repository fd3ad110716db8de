package main

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/user/radsim_go/internal/analysis"
	"github.com/user/radsim_go/internal/materials"
	"github.com/user/radsim_go/internal/report"
)

type simulateOptions struct {
	metal       string
	radiation   string
	temperature float64
	intensity   float64
	plotPath    string
	pdfPath     string
	xlsxPath    string
}

func newSimulateCmd(root *rootOptions) *cobra.Command {
	opts := &simulateOptions{}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate one material under one set of conditions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSimulateCmd(cmd, root, opts)
		},
	}
	cmd.Flags().StringVar(&opts.metal, "metal", "", "material identifier, e.g. iron")
	cmd.Flags().StringVar(&opts.radiation, "radiation", "gamma", "radiation label")
	cmd.Flags().Float64Var(&opts.temperature, "temperature", 300, "temperature in kelvin")
	cmd.Flags().Float64Var(&opts.intensity, "intensity", 50, "intensity in W/m²")
	cmd.Flags().StringVar(&opts.plotPath, "plot", "", "write the energy-loss curve PNG to this path")
	cmd.Flags().StringVar(&opts.pdfPath, "pdf", "", "write a PDF report to this path")
	cmd.Flags().StringVar(&opts.xlsxPath, "xlsx", "", "write an Excel workbook to this path")
	_ = cmd.MarkFlagRequired("metal")
	return cmd
}

func runSimulateCmd(cmd *cobra.Command, root *rootOptions, opts *simulateOptions) error {
	calc, _, err := newCalculator(cmd, root)
	if err != nil {
		return err
	}
	req := analysis.Request{
		Material:    materials.ParseID(opts.metal),
		Radiation:   opts.radiation,
		Temperature: opts.temperature,
		Intensity:   opts.intensity,
	}

	p := newPrinter(cmd.OutOrStdout())
	sim, err := calc.Evaluate(req)
	if err != nil {
		res := analysis.NewErrorResult(err)
		p.fail(res.Summary)
		return fmt.Errorf("simulation failed (%s)", res.Code)
	}
	p.box(analysis.Summary(sim))

	if opts.plotPath == "" && opts.pdfPath == "" && opts.xlsxPath == "" {
		return nil
	}
	return writeArtifacts(p, sim, opts)
}

func writeArtifacts(p *printer, sim *analysis.Simulation, opts *simulateOptions) error {
	var curvePNG []byte
	if opts.plotPath != "" || opts.pdfPath != "" {
		img, err := report.CreateCurvePlot(sim)
		if err != nil {
			return fmt.Errorf("failed to render curve: %w", err)
		}
		curvePNG = img
	}

	if opts.plotPath != "" {
		if err := os.WriteFile(opts.plotPath, curvePNG, 0o644); err != nil {
			return fmt.Errorf("failed to write plot: %w", err)
		}
		p.ok("plot written: " + opts.plotPath)
	}
	if opts.pdfPath != "" {
		var buf bytes.Buffer
		if err := report.BuildPDFReport(&buf, sim, curvePNG); err != nil {
			return err
		}
		if err := os.WriteFile(opts.pdfPath, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write PDF: %w", err)
		}
		p.ok("PDF report written: " + opts.pdfPath)
	}
	if opts.xlsxPath != "" {
		var buf bytes.Buffer
		if err := report.WriteWorkbook(&buf, sim); err != nil {
			return err
		}
		if err := os.WriteFile(opts.xlsxPath, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
		p.ok("workbook written: " + opts.xlsxPath)
	}
	return nil
}

type compareOptions struct {
	radiation   string
	temperature float64
	intensity   float64
	plotPath    string
}

func newCompareCmd(root *rootOptions) *cobra.Command {
	opts := &compareOptions{}
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare every catalog material under the same conditions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompareCmd(cmd, root, opts)
		},
	}
	cmd.Flags().StringVar(&opts.radiation, "radiation", "gamma", "radiation label")
	cmd.Flags().Float64Var(&opts.temperature, "temperature", 300, "temperature in kelvin")
	cmd.Flags().Float64Var(&opts.intensity, "intensity", 50, "intensity in W/m²")
	cmd.Flags().StringVar(&opts.plotPath, "plot", "", "write the comparison heatmap PNG to this path")
	return cmd
}

func runCompareCmd(cmd *cobra.Command, root *rootOptions, opts *compareOptions) error {
	calc, _, err := newCalculator(cmd, root)
	if err != nil {
		return err
	}
	sims, err := calc.CompareMaterials(opts.radiation, opts.temperature, opts.intensity)
	if err != nil {
		return err
	}

	p := newPrinter(cmd.OutOrStdout())
	p.title(fmt.Sprintf("%s radiation at %sK and %s W/m²", opts.radiation,
		strconv.FormatFloat(opts.temperature, 'f', -1, 64),
		strconv.FormatFloat(opts.intensity, 'f', -1, 64)))

	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MATERIAL\tDENSITY\tENERGY LOSS (MeV)\tDAMAGE FACTOR\tABSORPTION")
	for _, sim := range sims {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%.2f\n",
			sim.Request.Material, sim.Density, sim.EnergyLoss, sim.DamageFactor, sim.Absorption)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if opts.plotPath == "" {
		return nil
	}
	img, err := report.CreateComparisonHeatmap(sims)
	if err != nil {
		return fmt.Errorf("failed to render heatmap: %w", err)
	}
	if err := os.WriteFile(opts.plotPath, img, 0o644); err != nil {
		return fmt.Errorf("failed to write heatmap: %w", err)
	}
	p.ok("heatmap written: " + opts.plotPath)
	return nil
}
