// Package httpapi exposes the simulator over HTTP.
package httpapi

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/user/radsim_go/internal/analysis"
	apperrors "github.com/user/radsim_go/internal/errors"
	"github.com/user/radsim_go/internal/materials"
	"github.com/user/radsim_go/internal/report"
)

//go:embed static/index.html
var staticFiles embed.FS

const maxBodyBytes = 1 << 16

// SimulateRequest is the JSON body of POST /simulate.
type SimulateRequest struct {
	Metal       string    `json:"metal"`
	Radiation   string    `json:"radiation"`
	Temperature flexFloat `json:"temperature"`
	Intensity   flexFloat `json:"intensity"`
}

// Trace is one plot series in the shape the browser plotting code expects.
type Trace struct {
	X    []float64 `json:"x"`
	Y    []float64 `json:"y"`
	Type string    `json:"type"`
	Name string    `json:"name"`
}

// SimulateResponse is the JSON body returned by POST /simulate.
type SimulateResponse struct {
	Result   string  `json:"result"`
	PlotData []Trace `json:"plot_data"`
	Error    string  `json:"error,omitempty"`
}

// MaterialInfo describes one catalog entry.
type MaterialInfo struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Density float64 `json:"density"`
}

// Handler serves the simulator routes.
type Handler struct {
	calc *analysis.Calculator
	mux  *http.ServeMux
}

// NewHandler builds the route table around calc.
func NewHandler(calc *analysis.Calculator) *Handler {
	h := &Handler{calc: calc, mux: http.NewServeMux()}
	h.mux.HandleFunc("GET /{$}", h.handleIndex)
	h.mux.HandleFunc("POST /simulate", h.handleSimulate)
	h.mux.HandleFunc("GET /materials", h.handleMaterials)
	h.mux.HandleFunc("GET /plot.png", h.handlePlot)
	h.mux.HandleFunc("GET /compare.png", h.handleCompare)
	h.mux.HandleFunc("GET /report.pdf", h.handlePDF)
	h.mux.HandleFunc("GET /report.xlsx", h.handleWorkbook)
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleIndex(w http.ResponseWriter, _ *http.Request) {
	page, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "index page unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

func (h *Handler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, SimulateResponse{
			Result:   fmt.Sprintf("Error: invalid request body: %v", err),
			PlotData: []Trace{},
			Error:    string(apperrors.CodeInvalidParameter),
		})
		return
	}

	res := h.calc.Compute(analysis.Request{
		Material:    materials.ParseID(req.Metal),
		Radiation:   req.Radiation,
		Temperature: float64(req.Temperature),
		Intensity:   float64(req.Intensity),
	})
	if !res.OK() {
		log.Printf("simulate %q: %s", req.Metal, res.Summary)
	}
	writeJSON(w, http.StatusOK, NewSimulateResponse(res))
}

// NewSimulateResponse converts a calculator result to its JSON shape.
// Error results keep an empty plot_data list.
func NewSimulateResponse(res analysis.Result) SimulateResponse {
	resp := SimulateResponse{
		Result:   res.Summary,
		PlotData: []Trace{},
		Error:    string(res.Code),
	}
	if !res.OK() {
		return resp
	}
	trace := Trace{
		X:    make([]float64, len(res.Curve)),
		Y:    make([]float64, len(res.Curve)),
		Type: "scatter",
		Name: analysis.CurveName,
	}
	for i, p := range res.Curve {
		trace.X[i] = p.Thickness
		trace.Y[i] = p.EnergyLoss
	}
	resp.PlotData = append(resp.PlotData, trace)
	return resp
}

func (h *Handler) handleMaterials(w http.ResponseWriter, _ *http.Request) {
	catalog := h.calc.Catalog()
	title := cases.Title(language.Und)
	ids := catalog.IDs()
	out := make([]MaterialInfo, 0, len(ids))
	for _, id := range ids {
		density, err := catalog.Density(id)
		if err != nil {
			continue
		}
		out = append(out, MaterialInfo{ID: string(id), Name: title.String(string(id)), Density: density})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handlePlot(w http.ResponseWriter, r *http.Request) {
	sim, ok := h.evaluateQuery(w, r)
	if !ok {
		return
	}
	img, err := report.CreateCurvePlot(sim)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeBinary(w, "image/png", "", img)
}

func (h *Handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	temperature, intensity, err := parseConditions(q)
	if err != nil {
		writeFailure(w, err)
		return
	}
	sims, err := h.calc.CompareMaterials(q.Get("radiation"), temperature, intensity)
	if err != nil {
		writeFailure(w, err)
		return
	}
	img, err := report.CreateComparisonHeatmap(sims)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeBinary(w, "image/png", "", img)
}

func (h *Handler) handlePDF(w http.ResponseWriter, r *http.Request) {
	sim, ok := h.evaluateQuery(w, r)
	if !ok {
		return
	}
	img, err := report.CreateCurvePlot(sim)
	if err != nil {
		log.Printf("report plot for %s: %v", sim.Request.Material, err)
		img = nil
	}
	var buf bytes.Buffer
	if err := report.BuildPDFReport(&buf, sim, img); err != nil {
		writeFailure(w, err)
		return
	}
	writeBinary(w, "application/pdf", string(sim.Request.Material)+"-report.pdf", buf.Bytes())
}

func (h *Handler) handleWorkbook(w http.ResponseWriter, r *http.Request) {
	sim, ok := h.evaluateQuery(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := report.WriteWorkbook(&buf, sim); err != nil {
		writeFailure(w, err)
		return
	}
	writeBinary(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		string(sim.Request.Material)+"-report.xlsx", buf.Bytes())
}

// evaluateQuery runs a simulation from query parameters, writing the failure
// response itself when it cannot.
func (h *Handler) evaluateQuery(w http.ResponseWriter, r *http.Request) (*analysis.Simulation, bool) {
	q := r.URL.Query()
	temperature, intensity, err := parseConditions(q)
	if err != nil {
		writeFailure(w, err)
		return nil, false
	}
	sim, err := h.calc.Evaluate(analysis.Request{
		Material:    materials.ParseID(q.Get("metal")),
		Radiation:   q.Get("radiation"),
		Temperature: temperature,
		Intensity:   intensity,
	})
	if err != nil {
		writeFailure(w, err)
		return nil, false
	}
	return sim, true
}

func parseConditions(q url.Values) (temperature, intensity float64, err error) {
	temperature, err = parseFloatParam(q, "temperature")
	if err != nil {
		return 0, 0, err
	}
	intensity, err = parseFloatParam(q, "intensity")
	if err != nil {
		return 0, 0, err
	}
	return temperature, intensity, nil
}

func parseFloatParam(q url.Values, name string) (float64, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return 0, apperrors.New(apperrors.CodeInvalidParameter, fmt.Sprintf("missing %s", name))
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeInvalidParameter, fmt.Sprintf("invalid %s", name), err)
	}
	return v, nil
}

func writeFailure(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if code := apperrors.CodeOf(err); code != "" {
		status = code.HTTPStatus()
	}
	http.Error(w, fmt.Sprintf("Error: %v", err), status)
}

func writeBinary(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	if filename != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// flexFloat accepts a JSON number or a numeric string.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = 0
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("not a number: %s", string(data))
	}
	*f = flexFloat(v)
	return nil
}
