package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jung-kurt/gofpdf"

	"github.com/user/radsim_go/internal/analysis"
)

const (
	inchToMm          = 25.4
	pdfPageWidth      = 8.5 * inchToMm // Letter portrait
	pdfPageHeight     = 11 * inchToMm
	pdfMargin         = 0.75 * inchToMm
	pdfContentWidth   = pdfPageWidth - (2 * pdfMargin)
	curveSampleStride = 11 // Every 11th sample gives 0, 1.11, ..., 10 cm
)

// pdfStyler holds reusable styling and layout state for PDF generation.
type pdfStyler struct {
	pdf         *gofpdf.Fpdf
	encode      func(string) string
	styles      map[string]func()
	lineHeight  float64
	currentY    float64
	pageBottom  float64
	contentTopY float64
}

func newPDFStyler(pdf *gofpdf.Fpdf) *pdfStyler {
	s := &pdfStyler{
		pdf:         pdf,
		encode:      newTextEncoder(pdf.UnicodeTranslatorFromDescriptor("")),
		styles:      make(map[string]func()),
		lineHeight:  6,
		pageBottom:  pdfPageHeight - pdfMargin,
		contentTopY: pdfMargin,
	}
	s.currentY = s.contentTopY
	s.defineStyles()
	return s
}

func (s *pdfStyler) defineStyles() {
	s.styles["h1"] = func() {
		s.pdf.SetFont("Arial", "B", 16)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["h2"] = func() {
		s.pdf.SetFont("Arial", "B", 13)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["normal"] = func() {
		s.pdf.SetFont("Arial", "", 10)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["note"] = func() {
		s.pdf.SetFont("Arial", "I", 9)
		s.pdf.SetTextColor(90, 90, 90)
	}
	s.styles["tableHeader"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetFillColor(200, 200, 200)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableCell"] = func() {
		s.pdf.SetFont("Arial", "", 9)
		s.pdf.SetTextColor(50, 50, 50)
	}
}

func (s *pdfStyler) applyStyle(styleName string) {
	if fn, ok := s.styles[styleName]; ok {
		fn()
		return
	}
	s.styles["normal"]()
}

func (s *pdfStyler) checkAddPage(neededHeight float64) {
	if s.currentY+neededHeight > s.pageBottom {
		s.pdf.AddPage()
		s.currentY = s.contentTopY
	}
}

// writeParagraph takes UTF-8 text and encodes it for the core fonts.
func (s *pdfStyler) writeParagraph(text, styleName, align string) {
	s.applyStyle(styleName)
	encoded := s.encode(text)
	lines := s.pdf.SplitText(byteRunes(encoded), pdfContentWidth)
	s.checkAddPage(float64(len(lines)) * s.lineHeight)

	s.pdf.SetXY(pdfMargin, s.currentY)
	s.pdf.MultiCell(pdfContentWidth, s.lineHeight, encoded, "", align, false)
	s.currentY = s.pdf.GetY() + 1
}

func (s *pdfStyler) addSpacer(height float64) {
	s.checkAddPage(height)
	s.currentY += height
}

func (s *pdfStyler) addImage(imageBytes []byte, imageName string, width, height float64, caption string) {
	s.pdf.RegisterImageOptionsReader(imageName, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(imageBytes))
	if width > pdfContentWidth {
		height *= pdfContentWidth / width
		width = pdfContentWidth
	}

	captionHeight := 0.0
	if caption != "" {
		captionHeight = s.lineHeight + 1
	}
	s.checkAddPage(height + captionHeight)

	s.pdf.ImageOptions(imageName, pdfMargin, s.currentY, width, height, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	s.currentY += height

	if caption != "" {
		s.addSpacer(1)
		s.writeParagraph(caption, "note", "C")
	}
	s.addSpacer(2)
}

// writeTable draws a bordered table with relative column widths.
func (s *pdfStyler) writeTable(headers []string, widthsRel []float64, rows [][]string) {
	widths := make([]float64, len(widthsRel))
	for i, rel := range widthsRel {
		widths[i] = rel * pdfContentWidth
	}

	drawHeader := func() {
		s.applyStyle("tableHeader")
		x := pdfMargin
		for i, header := range headers {
			s.pdf.SetXY(x, s.currentY)
			s.pdf.CellFormat(widths[i], s.lineHeight, s.encode(header), "1", 0, "C", true, 0, "")
			x += widths[i]
		}
		s.currentY += s.lineHeight
	}

	s.checkAddPage(2 * s.lineHeight)
	drawHeader()
	for _, row := range rows {
		if s.currentY+s.lineHeight > s.pageBottom {
			s.pdf.AddPage()
			s.currentY = s.contentTopY
			drawHeader()
		}
		s.applyStyle("tableCell")
		x := pdfMargin
		for i, cell := range row {
			s.pdf.SetXY(x, s.currentY)
			s.pdf.CellFormat(widths[i], s.lineHeight, s.encode(cell), "1", 0, "C", false, 0, "")
			x += widths[i]
		}
		s.currentY += s.lineHeight
	}
}

// BuildPDFReport writes a one-simulation PDF report to w. curvePNG is the
// rendered energy-loss curve; when empty the plot section is replaced by a note.
func BuildPDFReport(w io.Writer, sim *analysis.Simulation, curvePNG []byte) error {
	if sim == nil {
		return fmt.Errorf("no simulation to report")
	}

	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.SetTitle(fmt.Sprintf("Radiation Interaction Report: %s", materialTitle(sim)), true)
	pdf.AddPage()

	styler := newPDFStyler(pdf)

	styler.writeParagraph(fmt.Sprintf("Radiation Interaction Report: %s", materialTitle(sim)), "h1", "C")
	styler.addSpacer(4)

	styler.writeParagraph("Summary", "h2", "L")
	styler.writeParagraph(analysis.Summary(sim), "normal", "L")
	styler.addSpacer(3)

	styler.writeParagraph("Conditions", "h2", "L")
	styler.writeTable(
		[]string{"Parameter", "Value", "Unit"},
		[]float64{0.45, 0.35, 0.2},
		[][]string{
			{"Material", materialTitle(sim), ""},
			{"Radiation", sim.Request.Radiation, ""},
			{"Temperature", formatValue(sim.Request.Temperature), "K"},
			{"Intensity", formatValue(sim.Request.Intensity), "W/m²"},
			{"Density", formatValue(sim.Density), "g/cm³"},
			{"Thickness", formatValue(sim.Thickness), "cm"},
		},
	)
	styler.addSpacer(4)

	styler.writeParagraph("Representative Table Row", "h2", "L")
	styler.writeTable(
		[]string{"Kinetic Energy (MeV)", "Total Stp. Pow. (MeV cm²/g)", "CSDA Range (g/cm²)", "Radiation Yield", "Damage Effect Param."},
		[]float64{0.18, 0.24, 0.2, 0.17, 0.21},
		[][]string{{
			formatValue(sim.Row.KineticEnergy),
			formatValue(sim.Row.TotalStoppingPower),
			formatValue(sim.Row.CSDARange),
			formatValue(sim.Row.RadiationYield),
			formatValue(sim.Row.DamageEffectParameter),
		}},
	)
	styler.writeParagraph("The first (lowest-energy) tabulated row is used as the operating point.", "note", "L")
	styler.addSpacer(4)

	styler.writeParagraph("Results", "h2", "L")
	styler.writeTable(
		[]string{"Metric", "Value"},
		[]float64{0.6, 0.4},
		[][]string{
			{"Energy Loss (MeV)", fmt.Sprintf("%.4f", sim.EnergyLoss)},
			{"Damage Factor", fmt.Sprintf("%.6f", sim.DamageFactor)},
			{"Radiation Absorption", fmt.Sprintf("%.4f", sim.Absorption)},
			{"Energy Loss per cm (MeV/cm)", fmt.Sprintf("%.4f", sim.Slope())},
		},
	)

	pdf.AddPage()
	styler.currentY = styler.contentTopY
	styler.writeParagraph(analysis.CurveName, "h1", "C")
	styler.addSpacer(4)

	imgWidth := pdfContentWidth
	imgHeight := imgWidth / 2
	if len(curvePNG) > 0 {
		styler.addImage(curvePNG, "curve", imgWidth, imgHeight,
			fmt.Sprintf("Energy loss over 0-%.0f cm, %d samples", analysis.CurveMaxThickness, len(sim.Curve)))
	} else {
		styler.writeParagraph("Curve plot not available.", "normal", "L")
	}

	rows := make([][]string, 0, len(sim.Curve)/curveSampleStride+1)
	for i := 0; i < len(sim.Curve); i += curveSampleStride {
		p := sim.Curve[i]
		rows = append(rows, []string{strconv.Itoa(i), fmt.Sprintf("%.3f", p.Thickness), fmt.Sprintf("%.3f", p.EnergyLoss)})
	}
	styler.writeTable([]string{"Sample", "Thickness (cm)", "Energy Loss (MeV)"}, []float64{0.2, 0.4, 0.4}, rows)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to build PDF report: %w", err)
	}
	return pdf.Output(w)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// newTextEncoder maps UTF-8 text to the single-byte code page of the core
// fonts. Runes with no slot in the code page become '?'.
func newTextEncoder(tr func(string) string) func(string) string {
	return func(text string) string {
		var b strings.Builder
		for _, r := range text {
			if r < utf8.RuneSelf {
				b.WriteRune(r)
				continue
			}
			// The translator reports unmapped runes as '.'.
			if t := tr(string(r)); len(t) == 1 && t != "." {
				b.WriteString(t)
			} else {
				b.WriteByte('?')
			}
		}
		return b.String()
	}
}

// byteRunes widens each byte of an encoded string to its own rune so
// SplitText measures it against the 256-entry width table.
func byteRunes(encoded string) string {
	rs := make([]rune, len(encoded))
	for i := 0; i < len(encoded); i++ {
		rs[i] = rune(encoded[i])
	}
	return string(rs)
}
