package report

import (
	"bytes"
	"fmt"
	"image/color"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/user/radsim_go/internal/analysis"
)

var (
	curveColor    = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 255}
	estimateColor = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 255}
)

// CurveXYs converts a curve to plotter points.
func CurveXYs(curve []analysis.Point) plotter.XYs {
	pts := make(plotter.XYs, len(curve))
	for i, p := range curve {
		pts[i] = plotter.XY{X: p.Thickness, Y: p.EnergyLoss}
	}
	return pts
}

// CreateCurvePlot renders the energy-loss curve of sim as a PNG. The point
// estimate at the assumed thickness is marked on the line.
func CreateCurvePlot(sim *analysis.Simulation) ([]byte, error) {
	if sim == nil || len(sim.Curve) == 0 {
		return nil, fmt.Errorf("no curve to plot")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (%s, %s radiation)", analysis.CurveName, materialTitle(sim), sim.Request.Radiation)
	p.X.Label.Text = "Thickness (cm)"
	p.Y.Label.Text = "Energy Loss (MeV)"
	p.X.Min = 0
	p.X.Max = analysis.CurveMaxThickness
	p.Y.Min = 0
	p.X.Tick.Marker = plot.ConstantTicks(generateTicks(0, int(analysis.CurveMaxThickness), 1))

	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(CurveXYs(sim.Curve))
	if err != nil {
		return nil, fmt.Errorf("failed to create curve line: %w", err)
	}
	line.Color = curveColor
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)
	p.Legend.Add(analysis.CurveName, line)

	estimate, err := plotter.NewScatter(plotter.XYs{{X: sim.Thickness, Y: sim.EnergyLoss}})
	if err != nil {
		return nil, fmt.Errorf("failed to create estimate marker: %w", err)
	}
	estimate.GlyphStyle.Color = estimateColor
	estimate.GlyphStyle.Radius = vg.Points(4)
	estimate.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(estimate)
	p.Legend.Add(fmt.Sprintf("%.2f MeV at %.1f cm", sim.EnergyLoss, sim.Thickness), estimate)

	// Dashed guide from the axis to the estimate.
	guide, err := plotter.NewLine(plotter.XYs{{X: sim.Thickness, Y: 0}, {X: sim.Thickness, Y: sim.EnergyLoss}})
	if err != nil {
		return nil, fmt.Errorf("failed to create guide line: %w", err)
	}
	guide.Color = color.Gray{Y: 128}
	guide.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(guide)

	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.XOffs = vg.Points(10)

	return renderPNG(p, vg.Points(800), vg.Points(400))
}

// generateTicks returns labelled ticks from min to max inclusive.
func generateTicks(min, max, step int) []plot.Tick {
	if step <= 0 {
		step = 1
	}
	ticks := make([]plot.Tick, 0, (max-min)/step+1)
	for i := min; i <= max; i += step {
		ticks = append(ticks, plot.Tick{Value: float64(i), Label: fmt.Sprintf("%d", i)})
	}
	return ticks
}

func renderPNG(p *plot.Plot, width, height vg.Length) ([]byte, error) {
	writer, err := p.WriterTo(width, height, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create plot writer: %w", err)
	}
	buf := new(bytes.Buffer)
	if _, err := writer.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("failed to write plot to buffer: %w", err)
	}
	return buf.Bytes(), nil
}

func materialTitle(sim *analysis.Simulation) string {
	return cases.Title(language.Und).String(string(sim.Request.Material))
}
