package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/user/radsim_go/internal/analysis"
)

// Workbook sheet names.
const (
	SummarySheet = "Summary"
	CurveSheet   = "Curve"
)

// WriteWorkbook exports sim as an XLSX workbook with a summary sheet and the
// sampled curve.
func WriteWorkbook(w io.Writer, sim *analysis.Simulation) error {
	if sim == nil {
		return fmt.Errorf("no simulation to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	summaryRows := [][]interface{}{
		{"Parameter", "Value", "Unit"},
		{"Material", string(sim.Request.Material), ""},
		{"Radiation", sim.Request.Radiation, ""},
		{"Temperature", sim.Request.Temperature, "K"},
		{"Intensity", sim.Request.Intensity, "W/m²"},
		{"Density", sim.Density, "g/cm³"},
		{"Thickness", sim.Thickness, "cm"},
		{"Kinetic Energy", sim.Row.KineticEnergy, "MeV"},
		{"Total Stp. Pow.", sim.Row.TotalStoppingPower, "MeV cm²/g"},
		{"CSDA Range", sim.Row.CSDARange, "g/cm²"},
		{"Radiation Yield", sim.Row.RadiationYield, ""},
		{"Damage Effect Parameter", sim.Row.DamageEffectParameter, ""},
		{"Energy Loss", sim.EnergyLoss, "MeV"},
		{"Damage Factor", sim.DamageFactor, ""},
		{"Radiation Absorption", sim.Absorption, ""},
	}
	for i, row := range summaryRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", i+1, err)
		}
	}

	if _, err := f.NewSheet(CurveSheet); err != nil {
		return fmt.Errorf("failed to create curve sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(CurveSheet)
	if err != nil {
		return fmt.Errorf("failed to open curve sheet: %w", err)
	}
	if err := sw.SetRow("A1", []interface{}{"Thickness (cm)", "Energy Loss (MeV)"}); err != nil {
		return fmt.Errorf("failed to write curve header: %w", err)
	}
	for i, p := range sim.Curve {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, []interface{}{p.Thickness, p.EnergyLoss}); err != nil {
			return fmt.Errorf("failed to write curve row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush curve sheet: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
