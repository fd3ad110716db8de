package analysis

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gonum.org/v1/gonum/floats"

	apperrors "github.com/user/radsim_go/internal/errors"
	"github.com/user/radsim_go/internal/materials"
)

// Calculator evaluates radiation interaction metrics against a material
// catalog. It keeps no per-request state and is safe for concurrent use.
type Calculator struct {
	catalog *materials.Catalog
}

// NewCalculator creates a calculator over catalog.
func NewCalculator(catalog *materials.Catalog) *Calculator {
	return &Calculator{catalog: catalog}
}

// Catalog returns the catalog the calculator reads from.
func (c *Calculator) Catalog() *materials.Catalog {
	return c.catalog
}

// Compute runs a simulation and always returns a Result. Failures of any
// kind, panics included, become the uniform error result.
func (c *Calculator) Compute(req Request) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = NewErrorResult(fmt.Errorf("simulation failed: %v", r))
		}
	}()

	sim, err := c.Evaluate(req)
	if err != nil {
		return NewErrorResult(err)
	}
	return Result{
		Summary: Summary(sim),
		Curve:   sim.Curve,
	}
}

// Evaluate runs a simulation and reports failures as typed errors.
//
// The representative operating point is the first (lowest-energy) table row.
// Radiation label and temperature do not take part in row selection; this is
// a known simplification of the physical model.
func (c *Calculator) Evaluate(req Request) (*Simulation, error) {
	if !(req.Temperature > 0) {
		return nil, apperrors.New(apperrors.CodeInvalidParameter,
			fmt.Sprintf("temperature must be > 0 K, got %v", req.Temperature))
	}
	if math.IsNaN(req.Intensity) || math.IsInf(req.Intensity, 0) {
		return nil, apperrors.New(apperrors.CodeInvalidParameter,
			fmt.Sprintf("intensity must be finite, got %v", req.Intensity))
	}

	table, err := c.catalog.LoadTable(req.Material)
	if err != nil {
		return nil, err
	}
	density, err := c.catalog.Density(req.Material)
	if err != nil {
		return nil, err
	}
	row, err := table.First()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeMalformedData, string(req.Material), err)
	}
	if !(row.CSDARange > 0) {
		return nil, apperrors.New(apperrors.CodeInvalidParameter,
			fmt.Sprintf("CSDA range must be > 0, got %v", row.CSDARange))
	}

	sim := &Simulation{
		Request:   req,
		Row:       row,
		Density:   density,
		Thickness: Thickness,
	}
	sim.EnergyLoss = energyLoss(row.TotalStoppingPower, density, Thickness)
	sim.DamageFactor = row.DamageEffectParameter * req.Intensity / req.Temperature
	sim.Absorption = 1 - math.Exp(-Thickness/row.CSDARange)
	sim.Curve = sampleCurve(row.TotalStoppingPower, density)
	return sim, nil
}

// CompareMaterials evaluates the same conditions for every catalog material,
// in catalog order.
func (c *Calculator) CompareMaterials(radiation string, temperature, intensity float64) ([]*Simulation, error) {
	ids := c.catalog.IDs()
	sims := make([]*Simulation, 0, len(ids))
	for _, id := range ids {
		sim, err := c.Evaluate(Request{
			Material:    id,
			Radiation:   radiation,
			Temperature: temperature,
			Intensity:   intensity,
		})
		if err != nil {
			return nil, fmt.Errorf("compare %s: %w", id, err)
		}
		sims = append(sims, sim)
	}
	return sims, nil
}

// Summary renders the fixed-format text of a simulation.
func Summary(sim *Simulation) string {
	name := cases.Title(language.Und).String(string(sim.Request.Material))
	return fmt.Sprintf("%s exposed to %s radiation at %sK and %s W/m²:\n"+
		"Energy Loss: %.2f MeV\n"+
		"Damage Factor: %.2f\n"+
		"Radiation Absorption: %.2f",
		name, sim.Request.Radiation, formatNumber(sim.Request.Temperature), formatNumber(sim.Request.Intensity),
		sim.EnergyLoss, sim.DamageFactor, sim.Absorption)
}

func energyLoss(stoppingPower, density, thickness float64) float64 {
	return stoppingPower * density * thickness
}

func sampleCurve(stoppingPower, density float64) []Point {
	thicknesses := floats.Span(make([]float64, CurvePoints), 0, CurveMaxThickness)
	curve := make([]Point, len(thicknesses))
	for i, x := range thicknesses {
		curve[i] = Point{Thickness: x, EnergyLoss: energyLoss(stoppingPower, density, x)}
	}
	return curve
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
