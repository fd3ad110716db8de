package analysis

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"

	apperrors "github.com/user/radsim_go/internal/errors"
	"github.com/user/radsim_go/internal/materials"
)

const tableHeader = "IRON\nKinetic Total CSDA Radiation Damage\nEnergy Stp.Pow. Range Yield Parameter\nMeV MeV-cm2/g g/cm2\n"

func writeTable(t *testing.T, dir string, id materials.ID, rows ...string) {
	t.Helper()
	content := tableHeader + strings.Join(rows, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(dir, string(id)+".txt"), []byte(content), 0o644); err != nil {
		t.Fatalf("write table: %v", err)
	}
}

func newTestCalculator(t *testing.T) (*Calculator, string) {
	t.Helper()
	dir := t.TempDir()
	catalog, err := materials.NewDefaultCatalog(dir)
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	return NewCalculator(catalog), dir
}

func shippedCalculator(t *testing.T) *Calculator {
	t.Helper()
	catalog, err := materials.NewDefaultCatalog(filepath.Join("..", "..", "data"))
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	return NewCalculator(catalog)
}

func TestComputeIronScenario(t *testing.T) {
	calc, dir := newTestCalculator(t)
	writeTable(t, dir, materials.Iron, "1.0 2.0 0.5 0.1 0.02", "2.0 1.8 1.1 0.2 0.04")

	req := Request{Material: materials.Iron, Radiation: "gamma", Temperature: 300, Intensity: 50}
	sim, err := calc.Evaluate(req)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if math.Abs(sim.EnergyLoss-15.74) > 1e-9 {
		t.Fatalf("energy loss = %v, want 15.74", sim.EnergyLoss)
	}
	if math.Abs(sim.DamageFactor-0.02*50/300) > 1e-12 {
		t.Fatalf("damage factor = %v", sim.DamageFactor)
	}
	if math.Abs(sim.Absorption-(1-math.Exp(-2))) > 1e-12 {
		t.Fatalf("absorption = %v", sim.Absorption)
	}

	res := calc.Compute(req)
	if !res.OK() {
		t.Fatalf("unexpected error result: %s", res.Summary)
	}
	want := "Iron exposed to gamma radiation at 300K and 50 W/m²:\n" +
		"Energy Loss: 15.74 MeV\n" +
		"Damage Factor: 0.00\n" +
		"Radiation Absorption: 0.86"
	if res.Summary != want {
		t.Fatalf("summary = %q, want %q", res.Summary, want)
	}
}

func TestComputeUsesFirstRow(t *testing.T) {
	calc, dir := newTestCalculator(t)
	writeTable(t, dir, materials.Steel, "0.5 3.0 0.25 0.1 0.01", "0.1 9.0 0.01 0.1 0.5")

	sim, err := calc.Evaluate(Request{Material: materials.Steel, Radiation: "beta", Temperature: 1, Intensity: 1})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if sim.Row.KineticEnergy != 0.5 || sim.Row.TotalStoppingPower != 3.0 {
		t.Fatalf("expected first row in file order, got %+v", sim.Row)
	}
}

func TestComputeAllShippedMaterials(t *testing.T) {
	calc := shippedCalculator(t)
	for _, id := range calc.Catalog().IDs() {
		t.Run(string(id), func(t *testing.T) {
			res := calc.Compute(Request{Material: id, Radiation: "gamma", Temperature: 293.15, Intensity: -12.5})
			if !res.OK() {
				t.Fatalf("unexpected error result: %s", res.Summary)
			}
			if len(res.Curve) != CurvePoints {
				t.Fatalf("curve has %d points, want %d", len(res.Curve), CurvePoints)
			}
			if res.Curve[0].Thickness != 0 {
				t.Fatalf("first thickness = %v, want 0", res.Curve[0].Thickness)
			}
			if last := res.Curve[len(res.Curve)-1].Thickness; math.Abs(last-CurveMaxThickness) > 1e-12 {
				t.Fatalf("last thickness = %v, want %v", last, CurveMaxThickness)
			}
			step := CurveMaxThickness / float64(CurvePoints-1)
			for i := 1; i < len(res.Curve); i++ {
				if d := res.Curve[i].Thickness - res.Curve[i-1].Thickness; math.Abs(d-step) > 1e-9 {
					t.Fatalf("uneven spacing at %d: %v", i, d)
				}
			}
		})
	}
}

func TestCurveLinearity(t *testing.T) {
	calc := shippedCalculator(t)
	for _, id := range calc.Catalog().IDs() {
		sim, err := calc.Evaluate(Request{Material: id, Radiation: "x-ray", Temperature: 77, Intensity: 1000})
		if err != nil {
			t.Fatalf("evaluate %s: %v", id, err)
		}
		slope := sim.Slope()
		if sim.Curve[0].EnergyLoss != 0 {
			t.Fatalf("%s: curve does not pass through origin", id)
		}
		for _, p := range sim.Curve[1:] {
			if got := p.EnergyLoss / p.Thickness; math.Abs(got-slope) > 1e-9*slope {
				t.Fatalf("%s: y/x = %v at x=%v, want %v", id, got, p.Thickness, slope)
			}
		}
	}
}

func TestAbsorptionBound(t *testing.T) {
	calc, dir := newTestCalculator(t)
	for _, csda := range []float64{0.05, 0.5, 1, 10, 1e6} {
		writeTable(t, dir, materials.Titanium, fmt.Sprintf("1.0 2.0 %g 0.1 0.02", csda))
		sim, err := calc.Evaluate(Request{Material: materials.Titanium, Radiation: "gamma", Temperature: 300, Intensity: 1})
		if err != nil {
			t.Fatalf("csda %g: %v", csda, err)
		}
		if sim.Absorption < 0 || sim.Absorption >= 1 {
			t.Fatalf("csda %g: absorption %v outside [0, 1)", csda, sim.Absorption)
		}
	}
}

func TestComputeErrors(t *testing.T) {
	calc, dir := newTestCalculator(t)
	writeTable(t, dir, materials.Iron, "1.0 2.0 0.5 0.1 0.02")
	writeTable(t, dir, materials.Steel, "1.0 2.0 0 0.1 0.02")
	writeTable(t, dir, materials.Titanium, "1.0 2.0 0.5 oops 0.02")
	writeTable(t, dir, "copper", "1.0 2.0 0.5 0.1 0.02")

	tests := []struct {
		name    string
		req     Request
		code    apperrors.Code
		message string
	}{
		{name: "zero temperature", req: Request{Material: materials.Iron, Temperature: 0, Intensity: 50}, code: apperrors.CodeInvalidParameter, message: "temperature"},
		{name: "negative temperature", req: Request{Material: materials.Iron, Temperature: -5, Intensity: 50}, code: apperrors.CodeInvalidParameter, message: "temperature"},
		{name: "NaN temperature", req: Request{Material: materials.Iron, Temperature: math.NaN(), Intensity: 50}, code: apperrors.CodeInvalidParameter, message: "temperature"},
		{name: "infinite intensity", req: Request{Material: materials.Iron, Temperature: 300, Intensity: math.Inf(1)}, code: apperrors.CodeInvalidParameter, message: "intensity"},
		{name: "missing file", req: Request{Material: materials.Aluminium, Temperature: 300, Intensity: 50}, code: apperrors.CodeNotFound, message: "not found"},
		{name: "no density", req: Request{Material: "copper", Temperature: 300, Intensity: 50}, code: apperrors.CodeUnknownMaterial, message: "copper"},
		{name: "zero range", req: Request{Material: materials.Steel, Temperature: 300, Intensity: 50}, code: apperrors.CodeInvalidParameter, message: "CSDA range"},
		{name: "malformed", req: Request{Material: materials.Titanium, Temperature: 300, Intensity: 50}, code: apperrors.CodeMalformedData, message: "Radiation Yield"},
		{name: "path identifier", req: Request{Material: "../iron", Temperature: 300, Intensity: 50}, code: apperrors.CodeInvalidParameter, message: "identifier"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := calc.Compute(tc.req)
			if res.OK() {
				t.Fatalf("expected error result, got %q", res.Summary)
			}
			if res.Code != tc.code {
				t.Fatalf("code = %q, want %q (%s)", res.Code, tc.code, res.Summary)
			}
			if !strings.HasPrefix(res.Summary, "Error: ") || !strings.Contains(res.Summary, tc.message) {
				t.Fatalf("summary = %q, want %q", res.Summary, tc.message)
			}
			if res.Curve == nil || len(res.Curve) != 0 {
				t.Fatalf("expected empty curve, got %v", res.Curve)
			}
		})
	}
}

func TestComputeRecoversFromPanic(t *testing.T) {
	calc := NewCalculator(nil)
	res := calc.Compute(Request{Material: materials.Iron, Temperature: 300, Intensity: 1})
	if res.OK() || len(res.Curve) != 0 {
		t.Fatalf("expected error result, got %+v", res)
	}
	if !strings.HasPrefix(res.Summary, "Error: simulation failed") {
		t.Fatalf("summary = %q", res.Summary)
	}
}

func TestComputeIdempotent(t *testing.T) {
	calc := shippedCalculator(t)
	req := Request{Material: materials.Aluminium, Radiation: "alpha", Temperature: 350.5, Intensity: 12}
	first := calc.Compute(req)
	for i := 0; i < 5; i++ {
		if got := calc.Compute(req); !reflect.DeepEqual(got, first) {
			t.Fatalf("result %d differs from first", i)
		}
	}
}

func TestComputeConcurrent(t *testing.T) {
	calc := shippedCalculator(t)
	want := calc.Compute(Request{Material: materials.Iron, Radiation: "gamma", Temperature: 300, Intensity: 50})

	var wg sync.WaitGroup
	results := make([]Result, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = calc.Compute(Request{Material: materials.Iron, Radiation: "gamma", Temperature: 300, Intensity: 50})
		}(i)
	}
	wg.Wait()
	for i, got := range results {
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("concurrent result %d differs", i)
		}
	}
}

func TestCompareMaterials(t *testing.T) {
	calc := shippedCalculator(t)
	sims, err := calc.CompareMaterials("gamma", 300, 50)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	ids := calc.Catalog().IDs()
	if len(sims) != len(ids) {
		t.Fatalf("got %d simulations, want %d", len(sims), len(ids))
	}
	for i, sim := range sims {
		if sim.Request.Material != ids[i] {
			t.Fatalf("simulation %d is %s, want %s", i, sim.Request.Material, ids[i])
		}
	}

	if _, err := calc.CompareMaterials("gamma", 0, 50); apperrors.CodeOf(err) != apperrors.CodeInvalidParameter {
		t.Fatalf("expected invalid-parameter error, got %v", err)
	}
}

func TestSummaryFormatsNumbers(t *testing.T) {
	sim := &Simulation{
		Request:      Request{Material: materials.Aluminium, Radiation: "neutron", Temperature: 293.15, Intensity: 0.5},
		EnergyLoss:   1.005,
		DamageFactor: 12.346,
		Absorption:   0.999,
	}
	got := Summary(sim)
	for _, want := range []string{"Aluminium exposed to neutron radiation at 293.15K and 0.5 W/m²:", "Damage Factor: 12.35", "Radiation Absorption: 1.00"} {
		if !strings.Contains(got, want) {
			t.Fatalf("summary %q missing %q", got, want)
		}
	}
}
