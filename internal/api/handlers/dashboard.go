package handlers

import (
	"embed"
	"errors"
	"fmt"
	"hempcrete-carbon-service/internal/domain"
	"hempcrete-carbon-service/internal/platform/obs"
	"html/template"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var dashboardTmpl = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

var moduleLabels = [6]string{
	"A1 Raw materials",
	"A2 Upstream transport",
	"A4 Site transport",
	"A5 Installation",
	"B1 Use phase",
	"C1–C4 End-of-life",
}

var moduleColors = [6]string{"#2E5041", "#6B8F71", "#C4B6A6", "#88A093", "#B6A19E", "#F2E8CF"}

// Chart geometry in SVG user units.
const (
	chartWidth  = 720.0
	chartHeight = 320.0
	chartTop    = 24.0
	chartBottom = 56.0
	chartLeft   = 16.0
	barGap      = 24.0
)

// DashboardHandler renders the HTML calculator. It shares its pipeline with
// the JSON API.
type DashboardHandler struct {
	Calc *CalculationHandler
}

type dashboardForm struct {
	WallArea   string
	PostalCode string
	Compare    bool
	EPD        string
}

type dashboardBar struct {
	Label  string
	Value  string
	Color  string
	X      float64
	Y      float64
	Width  float64
	Height float64
	LabelX float64
	LabelY float64
	ValueY float64
}

type dashboardResult struct {
	Total          string
	DeclaredUnits  string
	DistanceKm     string
	StorageLabel   string
	LocationSource string
	DistanceSource string
	Lat, Lon       string
	FactorSet      string
	CalculatedAt   string

	Bars     []dashboardBar
	ZeroY    float64
	ChartW   float64
	ChartH   float64
	AxisEndX float64

	HasComparison  bool
	CompPerDU      string
	CompTotal      string
	CompDelta      string
	CompSavesLabel string
}

type dashboardView struct {
	Form    dashboardForm
	Error   string
	Result  *dashboardResult
	Factors domain.EmissionFactors
}

// Serve handles GET (empty form) and POST (form submission).
func (h *DashboardHandler) Serve(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	view := dashboardView{
		Form:    dashboardForm{WallArea: "1000", PostalCode: "10007", EPD: "250"},
		Factors: h.Calc.Factors,
	}

	switch r.Method {
	case http.MethodGet:
		h.render(w, r, http.StatusOK, view)
	case http.MethodPost:
		h.submit(w, r, view)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *DashboardHandler) submit(w http.ResponseWriter, r *http.Request, view dashboardView) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<14)
	if err := r.ParseForm(); err != nil {
		view.Error = "could not read form"
		h.render(w, r, http.StatusBadRequest, view)
		return
	}

	view.Form = dashboardForm{
		WallArea:   strings.TrimSpace(r.PostForm.Get("wall_area")),
		PostalCode: strings.TrimSpace(r.PostForm.Get("postal_code")),
		Compare:    r.PostForm.Get("compare") == "on",
		EPD:        strings.TrimSpace(r.PostForm.Get("epd")),
	}

	in, err := parseDashboardForm(view.Form)
	if err == nil {
		var calc domain.Calculation
		calc, err = h.Calc.calculate(r, in)
		if err == nil {
			view.Result = buildResult(calc)
			h.render(w, r, http.StatusOK, view)
			return
		}
	}

	if errors.Is(err, domain.ErrInvalidInput) {
		view.Error = strings.TrimPrefix(err.Error(), "calculate: ")
		h.render(w, r, http.StatusBadRequest, view)
		return
	}

	log.Error().Str("req_id", obs.RequestID(r.Context())).Err(err).Msg("dashboard calculation failed")
	view.Error = "internal server error"
	h.render(w, r, http.StatusInternalServerError, view)
}

func (h *DashboardHandler) render(w http.ResponseWriter, r *http.Request, status int, view dashboardView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := dashboardTmpl.Execute(w, view); err != nil {
		log.Error().Str("method", r.Method).Str("path", r.URL.Path).Err(err).Msg("render dashboard failed")
	}
}

func parseDashboardForm(f dashboardForm) (domain.ProjectInput, error) {
	area, err := strconv.ParseFloat(f.WallArea, 64)
	if err != nil {
		return domain.ProjectInput{}, fmt.Errorf("%w: wall area must be a number", domain.ErrInvalidInput)
	}

	in := domain.ProjectInput{
		WallAreaSqFt: area,
		PostalCode:   f.PostalCode,
		Compare:      f.Compare,
	}

	if f.Compare {
		epd, err := strconv.ParseFloat(f.EPD, 64)
		if err != nil {
			return domain.ProjectInput{}, fmt.Errorf("%w: epd value must be a number", domain.ErrInvalidInput)
		}
		in.EPDPerCubicMeter = &epd
	}

	return in, nil
}

func buildResult(c domain.Calculation) *dashboardResult {
	res := &dashboardResult{
		Total:          fmt.Sprintf("%.1f", c.Total),
		DeclaredUnits:  fmt.Sprintf("%.2f", c.DeclaredUnits),
		DistanceKm:     fmt.Sprintf("%.1f", c.Distance.Kilometers),
		StorageLabel:   "Net Carbon Storage",
		LocationSource: string(c.Location.Source),
		DistanceSource: string(c.Distance.Source),
		Lat:            fmt.Sprintf("%.4f", c.Location.Point.Lat),
		Lon:            fmt.Sprintf("%.4f", c.Location.Point.Lon),
		FactorSet:      c.FactorSet,
		CalculatedAt:   c.CalculatedAt.UTC().Format("2006-01-02 15:04:05 MST"),
		ChartW:         chartWidth,
		ChartH:         chartHeight,
		AxisEndX:       chartWidth - chartLeft,
	}
	if c.Total > 0 {
		res.StorageLabel = "Net Carbon Emission"
	}

	values := [6]float64{c.Modules.A1, c.Modules.A2, c.Modules.A4, c.Modules.A5, c.Modules.B1, c.Modules.C}
	res.Bars, res.ZeroY = layoutBars(values)

	if c.Comparison != nil {
		res.HasComparison = true
		res.CompPerDU = fmt.Sprintf("%.1f", c.Comparison.PerDU)
		res.CompTotal = fmt.Sprintf("%.1f", c.Comparison.Total)
		res.CompDelta = fmt.Sprintf("%.1f", math.Abs(c.Comparison.Delta))
		res.CompSavesLabel = "saved by hempcrete"
		if c.Comparison.Delta < 0 {
			res.CompSavesLabel = "more than the comparison material"
		}
	}

	return res
}

// layoutBars places one bar per module around a shared zero line so storage
// (negative) bars hang below it.
func layoutBars(values [6]float64) ([]dashboardBar, float64) {
	var maxPos, maxNeg float64
	for _, v := range values {
		maxPos = math.Max(maxPos, v)
		maxNeg = math.Max(maxNeg, -v)
	}
	span := maxPos + maxNeg
	if span == 0 {
		span = 1
	}

	plotH := chartHeight - chartTop - chartBottom
	zeroY := chartTop + plotH*maxPos/span
	slot := (chartWidth - 2*chartLeft) / float64(len(values))
	width := slot - barGap

	bars := make([]dashboardBar, 0, len(values))
	for i, v := range values {
		h := plotH * math.Abs(v) / span
		x := chartLeft + float64(i)*slot + barGap/2

		b := dashboardBar{
			Label:  moduleLabels[i],
			Value:  fmt.Sprintf("%.1f", v),
			Color:  moduleColors[i],
			X:      x,
			Width:  width,
			Height: h,
			LabelX: x + width/2,
			LabelY: chartHeight - 20,
		}
		if v >= 0 {
			b.Y = zeroY - h
			b.ValueY = b.Y - 6
		} else {
			b.Y = zeroY
			b.ValueY = zeroY + h + 14
		}
		bars = append(bars, b)
	}

	return bars, zeroY
}
