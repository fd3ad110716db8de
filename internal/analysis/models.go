package analysis

import (
	"fmt"

	apperrors "github.com/user/radsim_go/internal/errors"
	"github.com/user/radsim_go/internal/materials"
	"github.com/user/radsim_go/internal/parser"
)

const (
	// Thickness is the assumed material thickness for the point estimate, in cm.
	Thickness = 1.0
	// CurveMaxThickness is the upper end of the sampled thickness range, in cm.
	CurveMaxThickness = 10.0
	// CurvePoints is the number of samples in the energy-loss curve, endpoints included.
	CurvePoints = 100
	// CurveName labels the energy-loss series in plots and JSON traces.
	CurveName = "Energy Loss vs Thickness"
)

// Request holds the inputs of one simulation.
type Request struct {
	Material    materials.ID
	Radiation   string  // Free-form label, e.g. "gamma"
	Temperature float64 // K, must be > 0
	Intensity   float64 // W/m², must be finite
}

// Point is one sample of the energy-loss curve.
type Point struct {
	Thickness  float64 `json:"x"` // cm
	EnergyLoss float64 `json:"y"` // MeV
}

// Simulation is a successful evaluation with every intermediate value kept
// for reporting.
type Simulation struct {
	Request      Request
	Row          parser.Row // Representative (first) table row
	Density      float64    // g/cm³
	Thickness    float64    // cm
	EnergyLoss   float64    // MeV
	DamageFactor float64
	Absorption   float64 // Fraction in [0, 1]
	Curve        []Point
}

// Slope returns the energy loss per cm of thickness.
func (s *Simulation) Slope() float64 {
	return s.Row.TotalStoppingPower * s.Density
}

// Result is what callers of Compute receive. On failure Summary holds an
// error message, Curve is empty and Code names the error kind.
type Result struct {
	Summary string
	Curve   []Point
	Code    apperrors.Code
}

// OK reports whether the result carries a successful simulation.
func (r Result) OK() bool {
	return r.Code == ""
}

// NewErrorResult converts err into the uniform error result.
func NewErrorResult(err error) Result {
	code := apperrors.CodeOf(err)
	if code == "" {
		// Anything outside the taxonomy comes from reading table data.
		code = apperrors.CodeMalformedData
	}
	return Result{
		Summary: fmt.Sprintf("Error: %v", err),
		Curve:   make([]Point, 0),
		Code:    code,
	}
}
