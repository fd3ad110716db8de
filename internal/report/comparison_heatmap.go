package report

import (
	"fmt"
	"image/color"
	"math"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/user/radsim_go/internal/analysis"
)

// comparisonGrid lays simulations out as a heat map grid:
// columns are thickness samples, rows are materials.
type comparisonGrid struct {
	sims []*analysis.Simulation
}

func (g comparisonGrid) Dims() (c, r int) {
	return len(g.sims[0].Curve), len(g.sims)
}

func (g comparisonGrid) Z(c, r int) float64 {
	curve := g.sims[r].Curve
	if c >= len(curve) {
		return math.NaN()
	}
	return curve[c].EnergyLoss
}

func (g comparisonGrid) X(c int) float64 {
	return g.sims[0].Curve[c].Thickness
}

func (g comparisonGrid) Y(r int) float64 {
	return float64(r)
}

// CreateComparisonHeatmap renders energy loss over thickness for several
// materials as one heat map PNG, one row per material.
func CreateComparisonHeatmap(sims []*analysis.Simulation) ([]byte, error) {
	if len(sims) == 0 {
		return nil, fmt.Errorf("no simulations to compare")
	}
	for _, sim := range sims {
		if sim == nil || len(sim.Curve) == 0 {
			return nil, fmt.Errorf("simulation without curve cannot be compared")
		}
	}

	grid := comparisonGrid{sims: sims}
	numCols, numRows := grid.Dims()

	minVal, maxVal := math.Inf(1), math.Inf(-1)
	for r := 0; r < numRows; r++ {
		for c := 0; c < numCols; c++ {
			v := grid.Z(c, r)
			if math.IsNaN(v) {
				continue
			}
			minVal = math.Min(minVal, v)
			maxVal = math.Max(maxVal, v)
		}
	}
	if minVal == maxVal {
		maxVal = minVal + 1
	}

	first := sims[0].Request
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Energy Loss by Material (%s radiation, MeV)", first.Radiation)
	p.X.Label.Text = "Thickness (cm)"
	p.Y.Label.Text = "Material"

	title := cases.Title(language.Und)
	yTicks := make([]plot.Tick, numRows)
	for i, sim := range sims {
		yTicks[i] = plot.Tick{Value: float64(i), Label: title.String(string(sim.Request.Material))}
	}
	p.Y.Tick.Marker = plot.ConstantTicks(yTicks)
	p.Y.Min = -0.5
	p.Y.Max = float64(numRows) - 0.5
	p.X.Tick.Marker = plot.ConstantTicks(generateTicks(0, int(analysis.CurveMaxThickness), 1))

	hm := plotter.NewHeatMap(grid, palette.Heat(16, 1))
	hm.Min = minVal
	hm.Max = maxVal
	hm.NaN = color.Gray{Y: 200}
	p.Add(hm)

	// Legend swatches for the lower and upper end of the scale.
	pal := hm.Palette.Colors()
	low, err := plotter.NewPolygon(plotter.XYs{{X: 0, Y: 0}})
	if err == nil {
		low.Color = pal[0]
		low.LineStyle.Width = 0
		p.Legend.Add(fmt.Sprintf("%.1f MeV", minVal), low)
	}
	high, err := plotter.NewPolygon(plotter.XYs{{X: 0, Y: 0}})
	if err == nil {
		high.Color = pal[len(pal)-1]
		high.LineStyle.Width = 0
		p.Legend.Add(fmt.Sprintf("%.1f MeV", maxVal), high)
	}
	p.Legend.Top = true

	return renderPNG(p, vg.Points(1000), vg.Points(120+60*float64(numRows)))
}
