package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/user/radsim_go/internal/analysis"
	"github.com/user/radsim_go/internal/httpapi"
	"github.com/user/radsim_go/internal/materials"
	"github.com/user/radsim_go/internal/report"
)

// App struct
type App struct {
	ctx  context.Context
	calc *analysis.Calculator
}

// NewApp creates a new App application struct
func NewApp(calc *analysis.Calculator) *App {
	return &App{calc: calc}
}

// Startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx
	runtime.WindowSetTitle(a.ctx, "Radiation Interaction Simulator")
}

func (a *App) sendStatus(message string) {
	if a.ctx != nil {
		runtime.EventsEmit(a.ctx, "statusUpdate", message)
	}
	log.Println(message)
}

func (a *App) clearLog() {
	if a.ctx != nil {
		runtime.EventsEmit(a.ctx, "clearLog")
	}
}

func (a *App) emit(event string, data ...interface{}) {
	if a.ctx != nil {
		runtime.EventsEmit(a.ctx, event, data...)
	}
}

// Simulate runs one simulation and returns the same shape as POST /simulate.
func (a *App) Simulate(metal, radiation string, temperature, intensity float64) httpapi.SimulateResponse {
	res := a.calc.Compute(analysis.Request{
		Material:    materials.ParseID(metal),
		Radiation:   radiation,
		Temperature: temperature,
		Intensity:   intensity,
	})
	return httpapi.NewSimulateResponse(res)
}

// Materials lists the catalog identifiers.
func (a *App) Materials() []string {
	ids := a.calc.Catalog().IDs()
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

// HandleExportReport starts PDF report generation in the background. Progress
// is reported through statusUpdate, generationStart and generationComplete
// events.
func (a *App) HandleExportReport(metal, radiation string, temperature, intensity float64, pdfFilePath string) (string, error) {
	if pdfFilePath == "" {
		return "", fmt.Errorf("no output path given")
	}
	req := analysis.Request{
		Material:    materials.ParseID(metal),
		Radiation:   radiation,
		Temperature: temperature,
		Intensity:   intensity,
	}

	a.clearLog()
	a.sendStatus(fmt.Sprintf("Request: material=[%s], PDF=[%s]", req.Material, pdfFilePath))

	go a.exportReport(req, pdfFilePath) // Run in a goroutine to avoid blocking the UI

	return "Report generation started in background.", nil
}

func (a *App) exportReport(req analysis.Request, pdfFilePath string) {
	defer func() {
		if r := recover(); r != nil {
			errMsg := fmt.Sprintf("PANIC recovered: %v", r)
			a.sendStatus(errMsg)
			a.emit("generationComplete", false, errMsg)
		}
	}()

	a.emit("generationStart")

	a.sendStatus(fmt.Sprintf("Simulating %s...", req.Material))
	sim, err := a.calc.Evaluate(req)
	if err != nil {
		a.fail(fmt.Sprintf("Error: %v", err))
		return
	}
	a.sendStatus(analysis.Summary(sim))

	a.sendStatus("Generating plot...")
	img, err := report.CreateCurvePlot(sim)
	if err != nil {
		a.sendStatus(fmt.Sprintf("Error generating plot: %v", err))
		img = nil
	}

	a.sendStatus(fmt.Sprintf("Generating PDF: %s...", pdfFilePath))
	var buf bytes.Buffer
	if err := report.BuildPDFReport(&buf, sim, img); err != nil {
		a.fail(fmt.Sprintf("Error generating PDF report: %v", err))
		return
	}
	if err := os.WriteFile(pdfFilePath, buf.Bytes(), 0o644); err != nil {
		a.fail(fmt.Sprintf("Error writing PDF report: %v", err))
		return
	}

	successMsg := fmt.Sprintf("PDF report successfully generated: %s", pdfFilePath)
	a.sendStatus(successMsg)
	a.emit("generationComplete", true, successMsg)
}

func (a *App) fail(errMsg string) {
	a.sendStatus(errMsg)
	a.emit("generationComplete", false, errMsg)
}
